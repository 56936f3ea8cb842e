package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/podseek/search-api/api/health"
	apilibrary "github.com/podseek/search-api/api/library"
	"github.com/podseek/search-api/api/search"
	"github.com/podseek/search-api/api/types"
	"github.com/podseek/search-api/api/version"
	_ "github.com/podseek/search-api/docs/swagger"
	"github.com/podseek/search-api/internal/library"
	searchcore "github.com/podseek/search-api/internal/search"
	"github.com/podseek/search-api/internal/services/podcastindex"
	"github.com/podseek/search-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, limiters *rateLimitRegistry) error {
	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine)

	// Swagger documentation
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	v1 := engine.Group("/api/v1")

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if deps == nil {
		deps = &types.Dependencies{}
	}
	if limiters == nil {
		limiters = newRateLimitRegistry()
	}

	// Wire the library when a database is available; it doubles as the
	// local search fallback.
	if deps.Library == nil && deps.DB != nil && deps.DB.DB != nil {
		deps.Library = library.NewService(library.NewRepository(deps.DB.DB))
	}

	// Wire the search service when the caller has not injected one.
	if deps.SearchService == nil {
		catalog := podcastindex.NewCatalog(podcastindex.NewClient(podcastindex.Config{
			APIKey:            cfg.PodcastIndex.APIKey,
			APISecret:         cfg.PodcastIndex.APISecret,
			BaseURL:           cfg.PodcastIndex.BaseURL,
			UserAgent:         cfg.PodcastIndex.UserAgent,
			Timeout:           cfg.PodcastIndex.Timeout,
			RequestsPerSecond: cfg.PodcastIndex.RateLimit,
		}))

		var local searchcore.LocalSource
		if deps.Library != nil {
			local = deps.Library
		}

		deps.SearchService = searchcore.NewService(searchcore.ServiceOptions{
			Client:         catalog,
			Local:          local,
			ResultLimit:    cfg.Search.ResultLimit,
			FallbackFeeds:  cfg.Search.EpisodeFallbackFeeds,
			MinQueryLength: cfg.Search.MinQueryLength,
		})
	}

	// Search gets dedicated rate limiting (5 req/s, burst of 10)
	searchGroup := v1.Group("/search")
	searchGroup.Use(limiters.Middleware(5, 10))
	search.RegisterRoutes(searchGroup, deps)

	apilibrary.RegisterRoutes(v1.Group("/library"), deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
