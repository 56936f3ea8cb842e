package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get handles version requests
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "PodSeek Search API",
			"version":     "1.0.0",
			"description": "Podcast and episode discovery with boolean query filtering",
			"status":      "running",
		})
	}
}
