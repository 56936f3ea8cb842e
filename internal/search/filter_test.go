package search

import (
	"testing"
	"time"

	"github.com/podseek/search-api/internal/search/query"
	"github.com/stretchr/testify/assert"
)

func podcastFixtures() []Podcast {
	return []Podcast{
		{
			ID:          1,
			Title:       "Historie for begyndere",
			Author:      "Lars Jensen",
			Description: "Dansk historie fortalt fra bunden",
			Categories:  []string{"History", "Education"},
			Language:    "da",
			LastUpdated: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Rating:      4.8,
			ITunesID:    555,
		},
		{
			ID:          2,
			Title:       "Sporthistorie",
			Author:      "Mette Madsen",
			Description: "Store øjeblikke i sportens historie",
			Categories:  []string{"Sports", "History"},
			Language:    "da",
			LastUpdated: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Rating:      4.1,
		},
		{
			ID:            3,
			Title:         "True Crime Café",
			Author:        "Anna Berg",
			Description:   "Unsolved cases every week",
			Categories:    []string{"True Crime"},
			Language:      "en",
			LastUpdated:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Rating:        3.9,
			HasValueBlock: true,
		},
	}
}

func TestFilterPodcastsQuery(t *testing.T) {
	podcasts := podcastFixtures()

	tests := []struct {
		name    string
		raw     string
		wantIDs []int64
	}{
		{
			name:    "bare prefix term",
			raw:     "histo",
			wantIDs: []int64{1, 2},
		},
		{
			name:    "diacritic-insensitive term",
			raw:     "cafe",
			wantIDs: []int64{3},
		},
		{
			name:    "quoted phrase must appear verbatim",
			raw:     `"sportens historie"`,
			wantIDs: []int64{2},
		},
		{
			name: "exclusion rejects matches carrying the term in categories",
			raw:  "historie -sport",
			// Podcast 2 matches "historie" but carries sport in both its
			// text and its Sports category, so it is rejected.
			wantIDs: []int64{1},
		},
		{
			name:    "OR group accepts either branch",
			raw:     "crime OR dansk",
			wantIDs: []int64{1, 3},
		},
		{
			name:    "all terms required",
			raw:     "historie begyndere",
			wantIDs: []int64{1},
		},
		{
			name:    "no match",
			raw:     "gardening",
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterPodcasts(podcasts, query.Parse(tt.raw), DefaultFilters())
			ids := make([]int64, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterPodcastsStructured(t *testing.T) {
	podcasts := podcastFixtures()
	q := query.Query{}

	t.Run("category filter is case-insensitive substring", func(t *testing.T) {
		f := DefaultFilters()
		f.Categories = []string{"true crime"}
		got := filterPodcasts(podcasts, q, f)
		assert.Len(t, got, 1)
		assert.Equal(t, int64(3), got[0].ID)
	})

	t.Run("language filter", func(t *testing.T) {
		f := DefaultFilters()
		f.Languages = []string{"da"}
		got := filterPodcasts(podcasts, q, f)
		assert.Len(t, got, 2)
	})

	t.Run("date range brackets lastUpdated", func(t *testing.T) {
		from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
		f := DefaultFilters()
		f.DateFrom = &from
		f.DateTo = &to
		got := filterPodcasts(podcasts, q, f)
		assert.Len(t, got, 1)
		assert.Equal(t, int64(3), got[0].ID)
	})

	t.Run("zero timestamp fails a lower bound", func(t *testing.T) {
		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		f := DefaultFilters()
		f.DateFrom = &from
		got := filterPodcasts([]Podcast{{ID: 9, Title: "No dates"}}, q, f)
		assert.Empty(t, got)
	})

	t.Run("minimum rating", func(t *testing.T) {
		f := DefaultFilters()
		f.MinRating = 4.5
		got := filterPodcasts(podcasts, q, f)
		assert.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})

	t.Run("indie discovery keeps feeds without an iTunes listing", func(t *testing.T) {
		f := DefaultFilters()
		f.Discovery = DiscoveryIndie
		got := filterPodcasts(podcasts, q, f)
		assert.Len(t, got, 2)
		for _, p := range got {
			assert.Zero(t, p.ITunesID)
		}
	})

	t.Run("value4value discovery keeps value-block feeds", func(t *testing.T) {
		f := DefaultFilters()
		f.Discovery = DiscoveryValue4Value
		got := filterPodcasts(podcasts, q, f)
		assert.Len(t, got, 1)
		assert.Equal(t, int64(3), got[0].ID)
	})

	t.Run("family friendly drops explicit feeds", func(t *testing.T) {
		explicit := podcastFixtures()
		explicit[0].Explicit = true
		clean := false
		f := DefaultFilters()
		f.Explicit = &clean
		got := filterPodcasts(explicit, q, f)
		assert.Len(t, got, 2)
	})
}

func TestFilterEpisodes(t *testing.T) {
	episodes := []Episode{
		{ID: 1, Title: "Jazz history part 1", PublishedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Rock legends", FeedTitle: "Jazz FM", PublishedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "Cooking basics", PublishedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	t.Run("episode text includes feed metadata", func(t *testing.T) {
		got := filterEpisodes(episodes, query.Parse("jazz"), DefaultFilters())
		assert.Len(t, got, 2)
	})

	t.Run("date range applies to publishedAt", func(t *testing.T) {
		from := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
		f := DefaultFilters()
		f.DateFrom = &from
		got := filterEpisodes(episodes, query.Query{}, f)
		assert.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})
}

func TestSortPodcasts(t *testing.T) {
	base := podcastFixtures()

	ids := func(podcasts []Podcast) []int64 {
		out := make([]int64, len(podcasts))
		for i, p := range podcasts {
			out[i] = p.ID
		}
		return out
	}

	t.Run("relevance preserves upstream order", func(t *testing.T) {
		podcasts := podcastFixtures()
		sortPodcasts(podcasts, SortRelevance)
		assert.Equal(t, ids(base), ids(podcasts))
	})

	t.Run("newest", func(t *testing.T) {
		podcasts := podcastFixtures()
		sortPodcasts(podcasts, SortNewest)
		assert.Equal(t, []int64{1, 3, 2}, ids(podcasts))
	})

	t.Run("oldest", func(t *testing.T) {
		podcasts := podcastFixtures()
		sortPodcasts(podcasts, SortOldest)
		assert.Equal(t, []int64{2, 3, 1}, ids(podcasts))
	})

	t.Run("rating descending", func(t *testing.T) {
		podcasts := podcastFixtures()
		sortPodcasts(podcasts, SortRating)
		assert.Equal(t, []int64{1, 2, 3}, ids(podcasts))
	})

	t.Run("stable on equal keys", func(t *testing.T) {
		podcasts := []Podcast{
			{ID: 10, Rating: 4.0},
			{ID: 11, Rating: 4.0},
			{ID: 12, Rating: 5.0},
		}
		sortPodcasts(podcasts, SortRating)
		assert.Equal(t, []int64{12, 10, 11}, ids(podcasts))
	})
}

func TestSortEpisodes(t *testing.T) {
	episodes := []Episode{
		{ID: 1, PublishedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, PublishedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	sortEpisodes(episodes, SortNewest)
	assert.Equal(t, int64(2), episodes[0].ID)

	sortEpisodes(episodes, SortOldest)
	assert.Equal(t, int64(1), episodes[0].ID)
}
