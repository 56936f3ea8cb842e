package types

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`            // One of the Status constants above
	Message string `json:"message,omitempty"` // Human-readable message
}

// SearchResponse is the combined result set for a search round
type SearchResponse struct {
	BaseResponse
	Query    string    `json:"query"`
	Podcasts []Podcast `json:"podcasts"`
	Episodes []Episode `json:"episodes"`
	Count    int       `json:"count"` // Podcast results in this response
}

// LibraryPodcastResponse wraps one stored library record
type LibraryPodcastResponse struct {
	BaseResponse
	Podcast Podcast `json:"podcast"`
}

// LibraryListResponse lists the locally remembered podcasts
type LibraryListResponse struct {
	BaseResponse
	Podcasts []Podcast `json:"podcasts"`
	Count    int       `json:"count"`
}

// ErrorResponse for error conditions
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
