package search

// resultCache memorizes the most recent successful remote fetch so further
// keystrokes before the next round-trip can be filtered locally instead of
// re-fetched. It is overwritten on every successful remote search and
// cleared when the query empties or remote-affecting options change.
type resultCache struct {
	query    string // the complete-words query sent to the remote
	optsKey  string // remote-affecting option fingerprint at fetch time
	podcasts []Podcast
	episodes []Episode
	valid    bool
}

func (c *resultCache) store(query, optsKey string, podcasts []Podcast, episodes []Episode) {
	c.query = query
	c.optsKey = optsKey
	c.podcasts = podcasts
	c.episodes = episodes
	c.valid = true
}

func (c *resultCache) clear() {
	*c = resultCache{}
}

// covers reports whether the cached fetch can serve the given outbound
// query under the given remote options.
func (c *resultCache) covers(query, optsKey string) bool {
	return c.valid && c.query == query && c.optsKey == optsKey
}
