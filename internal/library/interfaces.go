package library

import (
	"context"

	"github.com/podseek/search-api/internal/models"
	"github.com/podseek/search-api/internal/search"
)

// PodcastRepository defines the data access interface for the local podcast
// library.
type PodcastRepository interface {
	UpsertPodcast(ctx context.Context, podcast *models.Podcast) error
	GetPodcastByFeedID(ctx context.Context, feedID int64) (*models.Podcast, error)
	ListPodcasts(ctx context.Context) ([]models.Podcast, error)
	DeletePodcast(ctx context.Context, feedID int64) error
}

// Service is the business interface over the library: it records podcasts
// the user has touched and serves the whole set as the offline search
// dataset.
type Service interface {
	Remember(ctx context.Context, podcasts ...models.Podcast) error
	Forget(ctx context.Context, feedID int64) error
	ListPodcasts(ctx context.Context) ([]search.Podcast, error)
}
