package library

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podseek/search-api/api/types"
	"github.com/podseek/search-api/internal/database"
	librarysvc "github.com/podseek/search-api/internal/library"
	"github.com/podseek/search-api/internal/models"
)

func setupRouter(t *testing.T) (*gin.Engine, *types.Dependencies) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.AutoMigrate(&models.Podcast{}, &models.Episode{}))

	deps := &types.Dependencies{
		DB:      db,
		Library: librarysvc.NewService(librarysvc.NewRepository(db.DB)),
	}

	engine := gin.New()
	RegisterRoutes(engine.Group("/api/v1/library"), deps)
	return engine, deps
}

func addPodcast(t *testing.T, engine *gin.Engine, req types.LibraryPodcastRequest) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(req)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/library", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, httpReq)
	return w
}

func listPodcasts(t *testing.T, engine *gin.Engine) types.LibraryListResponse {
	t.Helper()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/library", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.LibraryListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestLibraryAddAndList(t *testing.T) {
	engine, _ := setupRouter(t)

	w := addPodcast(t, engine, types.LibraryPodcastRequest{
		ID:         920666,
		Title:      "Kulturmagasinet",
		Author:     "Radio Nord",
		FeedURL:    "https://example.org/kultur.xml",
		Language:   "da",
		Categories: []string{"Arts", "Culture"},
		Rating:     4.5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created types.LibraryPodcastResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, types.StatusOK, created.Status)
	assert.Equal(t, int64(920666), created.Podcast.ID)
	assert.NotZero(t, created.Podcast.LastUpdated)

	resp := listPodcasts(t, engine)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Kulturmagasinet", resp.Podcasts[0].Title)
	assert.Equal(t, []string{"Arts", "Culture"}, resp.Podcasts[0].Categories)
}

func TestLibraryAddUpsertsByFeedID(t *testing.T) {
	engine, _ := setupRouter(t)

	first := types.LibraryPodcastRequest{ID: 7, Title: "Original", FeedURL: "https://example.org/feed.xml"}
	require.Equal(t, http.StatusCreated, addPodcast(t, engine, first).Code)

	first.Title = "Renamed"
	require.Equal(t, http.StatusCreated, addPodcast(t, engine, first).Code)

	resp := listPodcasts(t, engine)
	require.Equal(t, 1, resp.Count, "re-adding the same feed must not duplicate it")
	assert.Equal(t, "Renamed", resp.Podcasts[0].Title)
}

func TestLibraryAddValidation(t *testing.T) {
	engine, _ := setupRouter(t)

	// Missing required title.
	w := addPodcast(t, engine, types.LibraryPodcastRequest{ID: 1, FeedURL: "https://example.org/feed.xml"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed body.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/library", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLibraryForget(t *testing.T) {
	engine, _ := setupRouter(t)

	require.Equal(t, http.StatusCreated, addPodcast(t, engine, types.LibraryPodcastRequest{
		ID: 42, Title: "Keep", FeedURL: "https://example.org/keep.xml",
	}).Code)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/library/42", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	resp := listPodcasts(t, engine)
	assert.Equal(t, 0, resp.Count)

	// Forgetting an absent podcast is a no-op.
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/library/42", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLibraryForgetInvalidID(t *testing.T) {
	engine, _ := setupRouter(t)

	for _, id := range []string{"abc", "-1", "0"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/library/"+id, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, "feed ID %q", id)
	}
}

func TestLibraryUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	RegisterRoutes(engine.Group("/api/v1/library"), &types.Dependencies{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/library", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
