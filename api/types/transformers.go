package types

import (
	"github.com/podseek/search-api/internal/search"
)

// FromDomainPodcast converts a search-core podcast into its API shape.
func FromDomainPodcast(p search.Podcast) Podcast {
	out := Podcast{
		ID:           p.ID,
		Title:        p.Title,
		Author:       p.Author,
		Description:  p.Description,
		Image:        p.ImageURL,
		FeedURL:      p.FeedURL,
		Language:     p.Language,
		Categories:   p.Categories,
		EpisodeCount: p.EpisodeCount,
		Rating:       p.Rating,
		Explicit:     p.Explicit,
	}
	if !p.LastUpdated.IsZero() {
		out.LastUpdated = p.LastUpdated.Unix()
	}
	return out
}

// FromDomainEpisode converts an enriched episode into its API shape.
func FromDomainEpisode(e search.EpisodeWithPodcast) Episode {
	out := Episode{
		ID:          e.Episode.ID,
		PodcastID:   e.Episode.PodcastID,
		Title:       e.Episode.Title,
		Description: e.Episode.Description,
		AudioURL:    e.Episode.AudioURL,
		Image:       e.Episode.ImageURL,
		Duration:    e.Episode.Duration,
	}
	if !e.Episode.PublishedAt.IsZero() {
		out.PublishedAt = e.Episode.PublishedAt.Unix()
	}
	if e.Podcast != nil {
		out.Podcast = &PodcastSummary{
			Title:  e.Podcast.Title,
			Author: e.Podcast.Author,
			Image:  e.Podcast.ImageURL,
		}
	}
	return out
}

// FromDomainResults converts a full results state.
func FromDomainResults(state search.ResultsState) ([]Podcast, []Episode) {
	podcasts := make([]Podcast, 0, len(state.Podcasts))
	for _, p := range state.Podcasts {
		podcasts = append(podcasts, FromDomainPodcast(p))
	}
	episodes := make([]Episode, 0, len(state.Episodes))
	for _, e := range state.Episodes {
		episodes = append(episodes, FromDomainEpisode(e))
	}
	return podcasts, episodes
}
