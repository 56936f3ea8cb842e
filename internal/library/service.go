package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/podseek/search-api/internal/models"
	"github.com/podseek/search-api/internal/search"
)

// service implements Service and search.LocalSource over a repository.
type service struct {
	repo PodcastRepository
}

// NewService builds the library service.
func NewService(repo PodcastRepository) *service {
	return &service{repo: repo}
}

// Remember upserts podcasts into the library.
func (s *service) Remember(ctx context.Context, podcasts ...models.Podcast) error {
	for i := range podcasts {
		if err := s.repo.UpsertPodcast(ctx, &podcasts[i]); err != nil {
			return fmt.Errorf("remembering podcast %d: %w", podcasts[i].FeedID, err)
		}
	}
	return nil
}

// Forget removes a podcast from the library.
func (s *service) Forget(ctx context.Context, feedID int64) error {
	return s.repo.DeletePodcast(ctx, feedID)
}

// ListPodcasts implements search.LocalSource: the stored library converted
// to domain records, ready for local filtering with the same semantics as
// remote results.
func (s *service) ListPodcasts(ctx context.Context) ([]search.Podcast, error) {
	stored, err := s.repo.ListPodcasts(ctx)
	if err != nil {
		return nil, err
	}

	podcasts := make([]search.Podcast, 0, len(stored))
	for _, p := range stored {
		podcasts = append(podcasts, modelToDomain(p))
	}
	return podcasts, nil
}

func modelToDomain(p models.Podcast) search.Podcast {
	var categories []string
	for _, label := range strings.Split(p.Categories, ",") {
		if label = strings.TrimSpace(label); label != "" {
			categories = append(categories, label)
		}
	}

	return search.Podcast{
		ID:            p.FeedID,
		Title:         p.Title,
		Author:        p.Author,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		FeedURL:       p.FeedURL,
		Categories:    categories,
		Language:      p.Language,
		EpisodeCount:  p.EpisodeCount,
		LastUpdated:   p.LastUpdated,
		Rating:        p.Rating,
		Explicit:      p.Explicit,
		ITunesID:      p.ITunesID,
		HasValueBlock: p.HasValueBlock,
	}
}

// DomainToModel converts a catalog result into a storable library record.
func DomainToModel(p search.Podcast) models.Podcast {
	return models.Podcast{
		FeedID:        p.ID,
		Title:         p.Title,
		Author:        p.Author,
		Description:   p.Description,
		FeedURL:       p.FeedURL,
		ImageURL:      p.ImageURL,
		Language:      p.Language,
		Categories:    strings.Join(p.Categories, ","),
		EpisodeCount:  p.EpisodeCount,
		Rating:        p.Rating,
		Explicit:      p.Explicit,
		ITunesID:      p.ITunesID,
		HasValueBlock: p.HasValueBlock,
		LastUpdated:   p.LastUpdated,
	}
}
