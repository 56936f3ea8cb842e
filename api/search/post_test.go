package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/podseek/search-api/api/types"
	searchcore "github.com/podseek/search-api/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock catalog client for testing
type mockCatalog struct {
	searchPodcastsFunc func(ctx context.Context, query string, opts searchcore.FetchOptions) ([]searchcore.Podcast, error)
	searchEpisodesFunc func(ctx context.Context, query string, opts searchcore.FetchOptions) ([]searchcore.Episode, error)
	episodesByFeedFunc func(ctx context.Context, feedID int64, limit int) ([]searchcore.Episode, error)
}

func (m *mockCatalog) IsConfigured() bool { return true }

func (m *mockCatalog) SearchPodcasts(ctx context.Context, query string, opts searchcore.FetchOptions) ([]searchcore.Podcast, error) {
	if m.searchPodcastsFunc != nil {
		return m.searchPodcastsFunc(ctx, query, opts)
	}
	return nil, nil
}

func (m *mockCatalog) SearchEpisodesByPerson(ctx context.Context, query string, opts searchcore.FetchOptions) ([]searchcore.Episode, error) {
	if m.searchEpisodesFunc != nil {
		return m.searchEpisodesFunc(ctx, query, opts)
	}
	return nil, nil
}

func (m *mockCatalog) EpisodesByFeedID(ctx context.Context, feedID int64, limit int) ([]searchcore.Episode, error) {
	if m.episodesByFeedFunc != nil {
		return m.episodesByFeedFunc(ctx, feedID, limit)
	}
	return nil, nil
}

func serviceWith(catalog searchcore.CatalogClient) *searchcore.Service {
	return searchcore.NewService(searchcore.ServiceOptions{Client: catalog})
}

func performSearch(t *testing.T, deps *types.Dependencies, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	Post(deps)(c)
	return w
}

func TestPost(t *testing.T) {
	gin.SetMode(gin.TestMode)

	techPodcast := searchcore.Podcast{
		ID:          101,
		Title:       "Tech Talks",
		Author:      "Jane Austin",
		Description: "Weekly technology interviews",
		Language:    "en",
		Categories:  []string{"Technology"},
		LastUpdated: time.Now().Add(-24 * time.Hour),
		Rating:      4.5,
	}

	t.Run("successful search", func(t *testing.T) {
		catalog := &mockCatalog{
			searchPodcastsFunc: func(ctx context.Context, query string, opts searchcore.FetchOptions) ([]searchcore.Podcast, error) {
				assert.Equal(t, "technology", query)
				return []searchcore.Podcast{techPodcast}, nil
			},
		}

		deps := &types.Dependencies{SearchService: serviceWith(catalog)}
		w := performSearch(t, deps, types.SearchRequest{Query: "technology"})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp types.SearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, types.StatusOK, resp.Status)
		assert.Equal(t, "technology", resp.Query)
		require.Len(t, resp.Podcasts, 1)
		assert.Equal(t, "Tech Talks", resp.Podcasts[0].Title)
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("invalid request body", func(t *testing.T) {
		deps := &types.Dependencies{SearchService: serviceWith(&mockCatalog{})}
		w := performSearch(t, deps, map[string]interface{}{"limit": 5})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp types.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, types.StatusError, resp.Status)
	})

	t.Run("invalid date filter", func(t *testing.T) {
		deps := &types.Dependencies{SearchService: serviceWith(&mockCatalog{})}
		w := performSearch(t, deps, types.SearchRequest{Query: "technology", DateFrom: "not-a-date"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown sortBy rejected", func(t *testing.T) {
		deps := &types.Dependencies{SearchService: serviceWith(&mockCatalog{})}
		w := performSearch(t, deps, types.SearchRequest{Query: "technology", SortBy: "alphabetical"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown discovery mode rejected", func(t *testing.T) {
		deps := &types.Dependencies{SearchService: serviceWith(&mockCatalog{})}
		w := performSearch(t, deps, types.SearchRequest{Query: "technology", Discovery: "premium"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("search service missing", func(t *testing.T) {
		deps := &types.Dependencies{}
		w := performSearch(t, deps, types.SearchRequest{Query: "technology"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("remote failure", func(t *testing.T) {
		catalog := &mockCatalog{
			searchPodcastsFunc: func(ctx context.Context, query string, opts searchcore.FetchOptions) ([]searchcore.Podcast, error) {
				return nil, errors.New("catalog down")
			},
		}

		deps := &types.Dependencies{SearchService: serviceWith(catalog)}
		w := performSearch(t, deps, types.SearchRequest{Query: "technology"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("short query returns empty results without remote call", func(t *testing.T) {
		called := false
		catalog := &mockCatalog{
			searchPodcastsFunc: func(ctx context.Context, query string, opts searchcore.FetchOptions) ([]searchcore.Podcast, error) {
				called = true
				return nil, nil
			},
		}

		deps := &types.Dependencies{SearchService: serviceWith(catalog)}
		w := performSearch(t, deps, types.SearchRequest{Query: "a"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, called, "short queries must not reach the catalog")

		var resp types.SearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Podcasts)
		assert.Empty(t, resp.Episodes)
	})
}

func TestFiltersFromRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		filters, err := filtersFromRequest(types.SearchRequest{Query: "jazz"})
		require.NoError(t, err)
		assert.Equal(t, "jazz", filters.Query)
		assert.Equal(t, searchcore.SortRelevance, filters.SortBy)
		assert.Equal(t, searchcore.DiscoveryAll, filters.Discovery)
	})

	t.Run("date range is inclusive and normalized", func(t *testing.T) {
		filters, err := filtersFromRequest(types.SearchRequest{
			Query:    "jazz",
			DateFrom: "2024-06-30",
			DateTo:   "2024-06-01",
		})
		require.NoError(t, err)
		require.NotNil(t, filters.DateFrom)
		require.NotNil(t, filters.DateTo)
		assert.True(t, filters.DateFrom.Before(*filters.DateTo), "inverted range should be swapped")
		assert.Equal(t, 30, filters.DateTo.Day())
	})

	t.Run("categories deduplicated", func(t *testing.T) {
		filters, err := filtersFromRequest(types.SearchRequest{
			Query:      "jazz",
			Categories: []string{"Music", "Music", "Arts"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Music", "Arts"}, filters.Categories)
	})

	t.Run("known enum values accepted", func(t *testing.T) {
		filters, err := filtersFromRequest(types.SearchRequest{
			Query:     "jazz",
			SortBy:    "newest",
			Discovery: "value4value",
		})
		require.NoError(t, err)
		assert.Equal(t, searchcore.SortNewest, filters.SortBy)
		assert.Equal(t, searchcore.DiscoveryValue4Value, filters.Discovery)
	})

	t.Run("unknown enum values rejected", func(t *testing.T) {
		_, err := filtersFromRequest(types.SearchRequest{Query: "jazz", SortBy: "alphabetical"})
		assert.Error(t, err)

		_, err = filtersFromRequest(types.SearchRequest{Query: "jazz", Discovery: "premium"})
		assert.Error(t, err)
	})
}
