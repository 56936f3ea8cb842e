package library

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/podseek/search-api/api/types"
)

// Get handles requests to list the local library
// @Summary      List remembered podcasts
// @Description  Returns every podcast stored in the local library, most recently updated first
// @Tags         library
// @Produce      json
// @Success      200 {object} types.LibraryListResponse "Stored podcasts"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/library [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.Library == nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Library not available",
			})
			return
		}

		stored, err := deps.Library.ListPodcasts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to list library",
				Details: err.Error(),
			})
			return
		}

		podcasts := make([]types.Podcast, 0, len(stored))
		for _, p := range stored {
			podcasts = append(podcasts, types.FromDomainPodcast(p))
		}

		c.JSON(http.StatusOK, types.LibraryListResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Library retrieved successfully",
			},
			Podcasts: podcasts,
			Count:    len(podcasts),
		})
	}
}
