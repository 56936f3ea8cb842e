package library

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/podseek/search-api/api/types"
)

// Delete handles requests to remove a podcast from the local library
// @Summary      Forget a podcast
// @Description  Removes a podcast from the local library by its catalog feed ID. Removing an absent podcast is a no-op
// @Tags         library
// @Produce      json
// @Param        feedId path int true "Remote catalog feed ID"
// @Success      200 {object} types.BaseResponse "Podcast removed"
// @Failure      400 {object} types.ErrorResponse "Bad request - invalid feed ID"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/library/{feedId} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.Library == nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Library not available",
			})
			return
		}

		feedID, err := strconv.ParseInt(c.Param("feedId"), 10, 64)
		if err != nil || feedID <= 0 {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid feed ID",
			})
			return
		}

		if err := deps.Library.Forget(c.Request.Context(), feedID); err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to remove podcast",
				Details: err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Podcast forgotten",
		})
	}
}
