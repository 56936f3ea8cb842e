package search

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/podseek/search-api/internal/search/query"
)

// Service runs the one-shot search pipeline: dispatch to the remote catalog
// or the local dataset, re-filter with the full parsed query, sort and
// compose. The Orchestrator layers debounce, caching and race guarding on
// top of it; the HTTP handlers call it directly.
type Service struct {
	client        CatalogClient
	local         LocalSource
	composer      *Composer
	limit         int
	fallbackFeeds int
	minQueryLen   int

	// flights de-duplicates identical remote fetches that are already in
	// flight, so a burst of equal queries costs one round-trip.
	flights singleflight.Group
}

// ServiceOptions configures a Service.
type ServiceOptions struct {
	Client         CatalogClient
	Local          LocalSource
	Labels         CategoryLabels
	ResultLimit    int // cap passed to the remote catalog
	FallbackFeeds  int // top-N podcasts mined for episodes when the episode search fails
	MinQueryLength int // shorter queries settle empty without dispatching
}

const (
	defaultResultLimit   = 25
	defaultFallbackFeeds = 3
)

// NewService builds a Service, applying defaults for unset limits.
func NewService(opts ServiceOptions) *Service {
	if opts.ResultLimit <= 0 {
		opts.ResultLimit = defaultResultLimit
	}
	if opts.FallbackFeeds <= 0 {
		opts.FallbackFeeds = defaultFallbackFeeds
	}
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = defaultMinQueryLength
	}
	return &Service{
		client:        opts.Client,
		local:         opts.Local,
		composer:      NewComposer(opts.Labels),
		limit:         opts.ResultLimit,
		fallbackFeeds: opts.FallbackFeeds,
		minQueryLen:   opts.MinQueryLength,
	}
}

// Composer exposes the service's composer for consumers that resolve
// category labels.
func (s *Service) Composer() *Composer { return s.composer }

// remoteOptions derives the per-request catalog knobs from the filter
// state. The fingerprint identifies fetches whose cached results are
// interchangeable.
func remoteOptions(f Filters, limit int) (FetchOptions, string) {
	opts := FetchOptions{
		Limit:    limit,
		FullText: true,
		Value:    f.Discovery == DiscoveryValue4Value,
		Clean:    f.Explicit != nil && !*f.Explicit,
	}
	return opts, fmt.Sprintf("v=%t&c=%t&n=%d", opts.Value, opts.Clean, opts.Limit)
}

// fetched is one remote round-trip's worth of raw results.
type fetched struct {
	podcasts []Podcast
	episodes []Episode
}

// fetchRemote performs the podcast and episode searches for an outbound
// query. A failed episode search degrades to mining episodes from the
// top matched feeds; a failed podcast search is a hard error.
func (s *Service) fetchRemote(ctx context.Context, outbound string, opts FetchOptions, optsKey string) (fetched, error) {
	key := outbound + "|" + optsKey
	v, err, _ := s.flights.Do(key, func() (interface{}, error) {
		podcasts, err := s.client.SearchPodcasts(ctx, outbound, opts)
		if err != nil {
			return fetched{}, fmt.Errorf("searching podcasts: %w", err)
		}

		episodes, err := s.client.SearchEpisodesByPerson(ctx, outbound, opts)
		if err != nil {
			log.Printf("[DEBUG] episode search failed for %q, mining top feeds: %v", outbound, err)
			episodes = s.episodesFromTopFeeds(ctx, podcasts)
		}

		return fetched{podcasts: podcasts, episodes: episodes}, nil
	})
	if err != nil {
		return fetched{}, err
	}
	return v.(fetched), nil
}

// episodesFromTopFeeds synthesizes episode results by fetching episodes of
// the top already-matched podcasts individually. A feed that fails simply
// contributes nothing.
func (s *Service) episodesFromTopFeeds(ctx context.Context, podcasts []Podcast) []Episode {
	var episodes []Episode
	for i, p := range podcasts {
		if i >= s.fallbackFeeds {
			break
		}
		items, err := s.client.EpisodesByFeedID(ctx, p.ID, s.limit)
		if err != nil {
			log.Printf("[DEBUG] episodes for feed %d unavailable: %v", p.ID, err)
			continue
		}
		for _, e := range items {
			if e.FeedTitle == "" {
				e.FeedTitle = p.Title
			}
			if e.FeedAuthor == "" {
				e.FeedAuthor = p.Author
			}
			if e.FeedImage == "" {
				e.FeedImage = p.ImageURL
			}
			episodes = append(episodes, e)
		}
	}
	return episodes
}

// compose runs the local half of the pipeline over raw results: parsed-query
// re-filtering, structured filters, stable sort, episode enrichment.
func (s *Service) compose(raw fetched, q query.Query, f Filters) ResultsState {
	podcasts := filterPodcasts(raw.podcasts, q, f)
	sortPodcasts(podcasts, f.SortBy)

	episodes := filterEpisodes(raw.episodes, q, f)
	sortEpisodes(episodes, f.SortBy)

	return ResultsState{
		Podcasts: podcasts,
		Episodes: s.composer.ComposeEpisodes(episodes),
	}
}

// Search runs one synchronous search for the given filters. Queries shorter
// than the configured minimum yield empty results without any remote call.
func (s *Service) Search(ctx context.Context, f Filters) (ResultsState, error) {
	trimmed := strings.TrimSpace(f.Query)
	if len([]rune(trimmed)) < s.minQueryLen {
		return ResultsState{Podcasts: []Podcast{}, Episodes: []EpisodeWithPodcast{}}, nil
	}

	q := query.Parse(trimmed)

	if s.client == nil || !s.client.IsConfigured() {
		raw, err := s.fetchLocal(ctx)
		if err != nil {
			return ResultsState{}, err
		}
		return s.compose(raw, q, f), nil
	}

	opts, optsKey := remoteOptions(f, s.limit)
	raw, err := s.fetchRemote(ctx, trimmed, opts, optsKey)
	if err != nil {
		return ResultsState{}, err
	}
	return s.compose(raw, q, f), nil
}

// fetchLocal loads the caller-supplied dataset used when the remote client
// is unconfigured. This is a routing decision, not an error.
func (s *Service) fetchLocal(ctx context.Context) (fetched, error) {
	if s.local == nil {
		return fetched{podcasts: []Podcast{}}, nil
	}
	podcasts, err := s.local.ListPodcasts(ctx)
	if err != nil {
		return fetched{}, fmt.Errorf("listing local podcasts: %w", err)
	}
	return fetched{podcasts: podcasts}, nil
}
