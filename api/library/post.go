package library

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/podseek/search-api/api/types"
	librarysvc "github.com/podseek/search-api/internal/library"
	"github.com/podseek/search-api/internal/search"
)

// Post handles requests to add a podcast to the local library
// @Summary      Remember a podcast
// @Description  Adds or updates a podcast in the local library. Library records feed the offline search fallback when no catalog credentials are configured
// @Tags         library
// @Accept       json
// @Produce      json
// @Param        request body types.LibraryPodcastRequest true "Podcast to remember"
// @Success      201 {object} types.LibraryPodcastResponse "Stored podcast"
// @Failure      400 {object} types.ErrorResponse "Bad request - invalid parameters"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/library [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.Library == nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Library not available",
			})
			return
		}

		var req types.LibraryPodcastRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request format",
				Details: err.Error(),
			})
			return
		}

		domain := podcastFromRequest(req)
		if err := deps.Library.Remember(c.Request.Context(), librarysvc.DomainToModel(domain)); err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to store podcast",
				Details: err.Error(),
			})
			return
		}

		c.JSON(http.StatusCreated, types.LibraryPodcastResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Podcast remembered",
			},
			Podcast: types.FromDomainPodcast(domain),
		})
	}
}

// podcastFromRequest maps the request body onto a domain record. The
// stored timestamp marks when the library last touched the feed.
func podcastFromRequest(req types.LibraryPodcastRequest) search.Podcast {
	return search.Podcast{
		ID:           req.ID,
		Title:        req.Title,
		Author:       req.Author,
		Description:  req.Description,
		ImageURL:     req.Image,
		FeedURL:      req.FeedURL,
		Language:     req.Language,
		Categories:   req.Categories,
		EpisodeCount: req.EpisodeCount,
		Rating:       req.Rating,
		Explicit:     req.Explicit,
		LastUpdated:  time.Now().UTC(),
	}
}
