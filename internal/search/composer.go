package search

// CategoryLabels maps remote category identifiers to display labels. The
// table is owned by the composer's configuration and passed in explicitly;
// there is no lazily built package-level lookup.
type CategoryLabels map[string]string

// DefaultCategoryLabels covers the catalog's top-level categories.
func DefaultCategoryLabels() CategoryLabels {
	return CategoryLabels{
		"1":   "Arts",
		"9":   "Business",
		"16":  "Comedy",
		"20":  "Education",
		"29":  "Fiction",
		"37":  "Government",
		"41":  "History",
		"45":  "Health",
		"55":  "Kids",
		"61":  "Leisure",
		"67":  "Music",
		"77":  "News",
		"84":  "Religion",
		"88":  "Science",
		"98":  "Society",
		"103": "Culture",
		"104": "Sports",
		"108": "Technology",
		"112": "True Crime",
		"114": "TV",
	}
}

// Composer enriches episode records with parent-podcast metadata for
// display and resolves category labels.
type Composer struct {
	labels CategoryLabels
}

// NewComposer builds a Composer with an explicit label table. A nil table
// is replaced by the defaults.
func NewComposer(labels CategoryLabels) *Composer {
	if labels == nil {
		labels = DefaultCategoryLabels()
	}
	return &Composer{labels: labels}
}

// Label resolves a category identifier to its display label, falling back
// to the identifier itself for unknown keys.
func (c *Composer) Label(id string) string {
	if label, ok := c.labels[id]; ok {
		return label
	}
	return id
}

// ComposeEpisodes attaches whatever podcast metadata accompanied each
// episode in the remote response. When the response carried none, the
// snapshot stays nil and consumers must render without it.
func (c *Composer) ComposeEpisodes(episodes []Episode) []EpisodeWithPodcast {
	out := make([]EpisodeWithPodcast, 0, len(episodes))
	for _, e := range episodes {
		ewp := EpisodeWithPodcast{Episode: e}
		if e.FeedTitle != "" || e.FeedAuthor != "" || e.FeedImage != "" {
			ewp.Podcast = &PodcastSummary{
				Title:    e.FeedTitle,
				Author:   e.FeedAuthor,
				ImageURL: e.FeedImage,
			}
		}
		out = append(out, ewp)
	}
	return out
}
