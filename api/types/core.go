package types

// Core data types used across API responses

// Podcast represents a podcast result with essential fields
type Podcast struct {
	ID           int64    `json:"id"` // Remote catalog feed ID
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	FeedURL      string   `json:"feedUrl"`
	Language     string   `json:"language,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	EpisodeCount int      `json:"episodeCount,omitempty"`
	LastUpdated  int64    `json:"lastUpdated,omitempty"` // Unix timestamp
	Rating       float64  `json:"rating,omitempty"`
	Explicit     bool     `json:"explicit,omitempty"`
}

// Episode represents an episode result with essential fields
type Episode struct {
	ID          int64           `json:"id"`                // Remote catalog episode ID
	PodcastID   int64           `json:"podcastId"`         // Remote catalog feed ID
	Title       string          `json:"title"`
	Description string          `json:"description"`
	AudioURL    string          `json:"audioUrl"`
	Image       string          `json:"image,omitempty"`
	Duration    int             `json:"duration,omitempty"` // Seconds
	PublishedAt int64           `json:"publishedAt"`        // Unix timestamp
	Podcast     *PodcastSummary `json:"podcast,omitempty"`  // Parent snapshot when available
}

// PodcastSummary is the denormalized parent-podcast snapshot attached to
// an episode. Clients must not assume it is present.
type PodcastSummary struct {
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	Image  string `json:"image,omitempty"`
}
