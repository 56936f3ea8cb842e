package search

import (
	"context"
	"time"
)

// SortBy selects the ordering applied after all filters.
type SortBy string

const (
	SortRelevance SortBy = "relevance"
	SortNewest    SortBy = "newest"
	SortOldest    SortBy = "oldest"
	SortPopular   SortBy = "popular"
	SortRating    SortBy = "rating"
)

// DiscoveryMode selects catalog provenance.
type DiscoveryMode string

const (
	DiscoveryAll         DiscoveryMode = "all"
	DiscoveryIndie       DiscoveryMode = "indie"
	DiscoveryValue4Value DiscoveryMode = "value4value"
)

// Tab identifies which result list the consumer is looking at. Switching
// tabs never triggers a network call, only local recomposition.
type Tab string

const (
	TabPodcasts Tab = "podcasts"
	TabEpisodes Tab = "episodes"
)

// Filters is the complete filter state owned by the Orchestrator. It is
// mutated only through orchestrator setters and reset wholesale by
// ClearFilters.
type Filters struct {
	Query      string
	Categories []string
	Languages  []string
	DateFrom   *time.Time
	DateTo     *time.Time
	SortBy     SortBy
	Discovery  DiscoveryMode
	MinRating  float64
	Explicit   *bool // nil = no preference, false = family friendly only
}

// DefaultFilters returns the session-start filter state.
func DefaultFilters() Filters {
	return Filters{
		SortBy:    SortRelevance,
		Discovery: DiscoveryAll,
	}
}

// Podcast is a catalog feed as seen by the search core.
type Podcast struct {
	ID            int64
	Title         string
	Author        string
	Description   string
	ImageURL      string
	FeedURL       string
	Categories    []string
	Language      string
	EpisodeCount  int
	LastUpdated   time.Time
	Rating        float64
	Explicit      bool
	ITunesID      int64
	HasValueBlock bool
}

// Episode is a single episode record, optionally carrying denormalized feed
// metadata from the remote response.
type Episode struct {
	ID          int64
	PodcastID   int64
	Title       string
	Description string
	AudioURL    string
	ImageURL    string
	Duration    int // seconds
	PublishedAt time.Time

	FeedTitle  string
	FeedAuthor string
	FeedImage  string
}

// PodcastSummary is the denormalized parent-podcast snapshot attached to an
// episode for display. It is a read-only projection, never persisted.
type PodcastSummary struct {
	Title    string
	Author   string
	ImageURL string
}

// EpisodeWithPodcast pairs an episode with its parent snapshot when one is
// available. Consumers must tolerate a nil Podcast.
type EpisodeWithPodcast struct {
	Episode Episode
	Podcast *PodcastSummary
}

// ResultsState is the sole externally visible output of a search round.
// It is rebuilt wholesale on every settle, never patched in place.
type ResultsState struct {
	Podcasts []Podcast
	Episodes []EpisodeWithPodcast
}

// FetchOptions carries per-request knobs for the remote catalog.
type FetchOptions struct {
	Limit    int
	FullText bool
	// Value filters to value-for-value funded feeds ("lightning" blocks).
	Value bool
	// Clean requests family-friendly content only.
	Clean bool
}

// CatalogClient is the contract the orchestrator consumes from the remote
// catalog collaborator. Implementations must report failures as errors,
// never panic.
type CatalogClient interface {
	IsConfigured() bool
	SearchPodcasts(ctx context.Context, query string, opts FetchOptions) ([]Podcast, error)
	SearchEpisodesByPerson(ctx context.Context, query string, opts FetchOptions) ([]Episode, error)
	EpisodesByFeedID(ctx context.Context, feedID int64, limit int) ([]Episode, error)
}

// LocalSource supplies the in-memory dataset searched when no remote client
// is configured. Filter and sort semantics are identical either way.
type LocalSource interface {
	ListPodcasts(ctx context.Context) ([]Podcast, error)
}
