package search

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/podseek/search-api/api/types"
	"github.com/podseek/search-api/internal/search"
)

// Post handles search requests
// @Summary      Search for podcasts and episodes
// @Description  Free-text search with a mini boolean query language ("exact phrase", -excluded, A OR B) plus structured filters for category, language, date range and discovery mode
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        request body types.SearchRequest true "Search parameters"
// @Success      200 {object} types.SearchResponse "Combined podcast and episode results"
// @Failure      400 {object} types.ErrorResponse "Bad request - invalid parameters"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Failure      504 {object} types.ErrorResponse "Gateway timeout - search request timed out"
// @Router       /api/v1/search [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request format",
				Details: err.Error(),
			})
			return
		}

		filters, err := filtersFromRequest(req)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid filter parameters",
				Details: err.Error(),
			})
			return
		}

		if deps.SearchService == nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Search service not available",
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		state, err := deps.SearchService.Search(ctx, filters)
		if err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				c.JSON(http.StatusGatewayTimeout, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "Search request timed out",
				})
				return
			}

			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to search podcasts",
				Details: err.Error(),
			})
			return
		}

		podcasts, episodes := types.FromDomainResults(state)

		c.JSON(http.StatusOK, types.SearchResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Search results retrieved successfully",
			},
			Query:    req.Query,
			Podcasts: podcasts,
			Episodes: episodes,
			Count:    len(podcasts),
		})
	}
}

// filtersFromRequest maps the request body onto the search core's filter
// state, validating dates and enum values.
func filtersFromRequest(req types.SearchRequest) (search.Filters, error) {
	filters := search.DefaultFilters()
	filters.Query = req.Query
	filters.Categories = dedupe(req.Categories)
	filters.Languages = dedupe(req.Languages)
	filters.MinRating = req.MinRating
	filters.Explicit = req.Explicit

	if req.SortBy != "" {
		switch by := search.SortBy(req.SortBy); by {
		case search.SortRelevance, search.SortNewest, search.SortOldest, search.SortPopular, search.SortRating:
			filters.SortBy = by
		default:
			return filters, fmt.Errorf("unknown sortBy value %q", req.SortBy)
		}
	}
	if req.Discovery != "" {
		switch mode := search.DiscoveryMode(req.Discovery); mode {
		case search.DiscoveryAll, search.DiscoveryIndie, search.DiscoveryValue4Value:
			filters.Discovery = mode
		default:
			return filters, fmt.Errorf("unknown discovery mode %q", req.Discovery)
		}
	}

	if req.DateFrom != "" {
		t, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return filters, err
		}
		filters.DateFrom = &t
	}
	if req.DateTo != "" {
		t, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return filters, err
		}
		// Inclusive upper bound: cover the whole day.
		t = t.Add(24*time.Hour - time.Nanosecond)
		filters.DateTo = &t
	}
	if filters.DateFrom != nil && filters.DateTo != nil && filters.DateFrom.After(*filters.DateTo) {
		filters.DateFrom, filters.DateTo = filters.DateTo, filters.DateFrom
	}

	return filters, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
