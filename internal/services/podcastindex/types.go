package podcastindex

// SearchResponse is the Podcast Index search envelope.
type SearchResponse struct {
	Status      string `json:"status"`
	Feeds       []Feed `json:"feeds"`
	Count       int    `json:"count"`
	Query       string `json:"query"`
	Description string `json:"description"`
}

// Feed is a podcast record as the Podcast Index API returns it.
type Feed struct {
	ID             int64             `json:"id"`
	Title          string            `json:"title"`
	URL            string            `json:"url"`
	Link           string            `json:"link"`
	Description    string            `json:"description"`
	Author         string            `json:"author"`
	OwnerName      string            `json:"ownerName"`
	Image          string            `json:"image"`
	Artwork        string            `json:"artwork"`
	LastUpdateTime int64             `json:"lastUpdateTime"`
	Language       string            `json:"language"`
	Categories     map[string]string `json:"categories"`
	Explicit       bool              `json:"explicit"`
	EpisodeCount   int               `json:"episodeCount"`
	ITunesID       int64             `json:"itunesId"`
	Value          *FeedValue        `json:"value,omitempty"`
}

// FeedValue is the value-for-value funding block attached to some feeds.
type FeedValue struct {
	Model FeedValueModel `json:"model"`
}

// FeedValueModel names the funding scheme (e.g. "lightning").
type FeedValueModel struct {
	Type   string `json:"type"`
	Method string `json:"method"`
}

// EpisodesResponse is the envelope for episode list endpoints.
type EpisodesResponse struct {
	Status      string `json:"status"`
	Items       []Item `json:"items"`
	Count       int    `json:"count"`
	Description string `json:"description"`
}

// Item is an episode record. Episode search responses denormalize a few
// parent-feed fields onto each item.
type Item struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Link          string `json:"link"`
	GUID          string `json:"guid"`
	DatePublished int64  `json:"datePublished"`
	EnclosureURL  string `json:"enclosureUrl"`
	EnclosureType string `json:"enclosureType"`
	Duration      int    `json:"duration"`
	Image         string `json:"image"`
	FeedID        int64  `json:"feedId"`
	FeedTitle     string `json:"feedTitle"`
	FeedImage     string `json:"feedImage"`
	FeedAuthor    string `json:"feedAuthor"`
	FeedLanguage  string `json:"feedLanguage"`
}
