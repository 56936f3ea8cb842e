package library

import (
	"github.com/gin-gonic/gin"
	"github.com/podseek/search-api/api/types"
)

// RegisterRoutes registers library routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// /api/v1/library (router already includes /library prefix)
	router.GET("", Get(deps))
	router.POST("", Post(deps))
	router.DELETE("/:feedId", Delete(deps))
}
