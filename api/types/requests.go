package types

// SearchRequest represents a search request with structured filters
type SearchRequest struct {
	Query      string   `json:"query" binding:"required" example:"history -sport"`
	Categories []string `json:"categories,omitempty" example:"News,Technology"`
	Languages  []string `json:"languages,omitempty" example:"en,no"`
	DateFrom   string   `json:"dateFrom,omitempty" example:"2024-01-01"` // inclusive, YYYY-MM-DD
	DateTo     string   `json:"dateTo,omitempty" example:"2024-12-31"`   // inclusive, YYYY-MM-DD
	SortBy     string   `json:"sortBy,omitempty" example:"newest"`       // relevance, newest, oldest, popular, rating
	Discovery  string   `json:"discovery,omitempty" example:"all"`       // all, indie, value4value
	MinRating  float64  `json:"minRating,omitempty" example:"3.5"`
	Explicit   *bool    `json:"explicit,omitempty" example:"false"` // false = family friendly only
	Limit      int      `json:"limit,omitempty" example:"25"`
}

// LibraryPodcastRequest adds or updates a podcast in the local library
type LibraryPodcastRequest struct {
	ID           int64    `json:"id" binding:"required" example:"920666"` // Remote catalog feed ID
	Title        string   `json:"title" binding:"required" example:"Kulturmagasinet"`
	Author       string   `json:"author,omitempty"`
	Description  string   `json:"description,omitempty"`
	Image        string   `json:"image,omitempty"`
	FeedURL      string   `json:"feedUrl" binding:"required" example:"https://example.org/feed.xml"`
	Language     string   `json:"language,omitempty" example:"en"`
	Categories   []string `json:"categories,omitempty"`
	EpisodeCount int      `json:"episodeCount,omitempty"`
	Rating       float64  `json:"rating,omitempty"`
	Explicit     bool     `json:"explicit,omitempty"`
}
