package library

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/podseek/search-api/internal/models"
)

// Repository is the gorm-backed PodcastRepository.
type Repository struct {
	db *gorm.DB
}

// NewRepository wraps a gorm handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UpsertPodcast creates or updates a podcast keyed by its remote feed ID.
func (r *Repository) UpsertPodcast(ctx context.Context, podcast *models.Podcast) error {
	var existing models.Podcast
	err := r.db.WithContext(ctx).
		Where("feed_id = ?", podcast.FeedID).
		First(&existing).Error

	if err == nil {
		podcast.ID = existing.ID
		podcast.CreatedAt = existing.CreatedAt
		if err := r.db.WithContext(ctx).Save(podcast).Error; err != nil {
			return fmt.Errorf("updating podcast: %w", err)
		}
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(podcast).Error; err != nil {
			return fmt.Errorf("creating podcast: %w", err)
		}
		return nil
	}

	return fmt.Errorf("checking existing podcast: %w", err)
}

// GetPodcastByFeedID retrieves a podcast by its remote catalog ID.
func (r *Repository) GetPodcastByFeedID(ctx context.Context, feedID int64) (*models.Podcast, error) {
	var podcast models.Podcast
	if err := r.db.WithContext(ctx).Where("feed_id = ?", feedID).First(&podcast).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("podcast with feed ID %d not found", feedID)
		}
		return nil, fmt.Errorf("getting podcast: %w", err)
	}
	return &podcast, nil
}

// ListPodcasts returns the whole library, most recently updated first.
func (r *Repository) ListPodcasts(ctx context.Context) ([]models.Podcast, error) {
	var podcasts []models.Podcast
	if err := r.db.WithContext(ctx).Order("last_updated DESC").Find(&podcasts).Error; err != nil {
		return nil, fmt.Errorf("listing podcasts: %w", err)
	}
	return podcasts, nil
}

// DeletePodcast removes a podcast by its remote catalog ID.
func (r *Repository) DeletePodcast(ctx context.Context, feedID int64) error {
	result := r.db.WithContext(ctx).Where("feed_id = ?", feedID).Delete(&models.Podcast{})
	if result.Error != nil {
		return fmt.Errorf("deleting podcast: %w", result.Error)
	}
	return nil
}
