package types

import (
	"github.com/podseek/search-api/internal/database"
	"github.com/podseek/search-api/internal/library"
	"github.com/podseek/search-api/internal/search"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB            *database.DB
	SearchService *search.Service
	Library       library.Service
}
