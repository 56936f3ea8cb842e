package podcastindex

import (
	"context"
	"sort"
	"time"

	"github.com/podseek/search-api/internal/search"
)

// Catalog adapts the API client to the search core's CatalogClient
// contract, converting wire records into domain records.
type Catalog struct {
	client *Client
}

// NewCatalog wraps a Client for the search core.
func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

// IsConfigured reports whether remote search is possible.
func (c *Catalog) IsConfigured() bool {
	return c.client.IsConfigured()
}

// SearchPodcasts implements search.CatalogClient.
func (c *Catalog) SearchPodcasts(ctx context.Context, query string, opts search.FetchOptions) ([]search.Podcast, error) {
	resp, err := c.client.SearchFeeds(ctx, query, fetchToSearchOptions(opts))
	if err != nil {
		return nil, err
	}

	podcasts := make([]search.Podcast, 0, len(resp.Feeds))
	for _, feed := range resp.Feeds {
		podcasts = append(podcasts, feedToPodcast(feed))
	}
	return podcasts, nil
}

// SearchEpisodesByPerson implements search.CatalogClient.
func (c *Catalog) SearchEpisodesByPerson(ctx context.Context, query string, opts search.FetchOptions) ([]search.Episode, error) {
	resp, err := c.client.SearchEpisodesByPerson(ctx, query, fetchToSearchOptions(opts))
	if err != nil {
		return nil, err
	}
	return itemsToEpisodes(resp.Items), nil
}

// EpisodesByFeedID implements search.CatalogClient.
func (c *Catalog) EpisodesByFeedID(ctx context.Context, feedID int64, limit int) ([]search.Episode, error) {
	resp, err := c.client.GetEpisodesByFeedID(ctx, feedID, limit)
	if err != nil {
		return nil, err
	}
	return itemsToEpisodes(resp.Items), nil
}

func fetchToSearchOptions(opts search.FetchOptions) SearchOptions {
	out := SearchOptions{
		Max:      opts.Limit,
		FullText: opts.FullText,
		Clean:    opts.Clean,
	}
	if opts.Value {
		out.Val = "lightning"
	}
	return out
}

func feedToPodcast(feed Feed) search.Podcast {
	// Category map values are already display labels; order them for
	// deterministic output.
	categories := make([]string, 0, len(feed.Categories))
	for _, label := range feed.Categories {
		categories = append(categories, label)
	}
	sort.Strings(categories)

	var lastUpdated time.Time
	if feed.LastUpdateTime > 0 {
		lastUpdated = time.Unix(feed.LastUpdateTime, 0).UTC()
	}

	author := feed.Author
	if author == "" {
		author = feed.OwnerName
	}

	image := feed.Image
	if image == "" {
		image = feed.Artwork
	}

	return search.Podcast{
		ID:            feed.ID,
		Title:         feed.Title,
		Author:        author,
		Description:   feed.Description,
		ImageURL:      image,
		FeedURL:       feed.URL,
		Categories:    categories,
		Language:      feed.Language,
		EpisodeCount:  feed.EpisodeCount,
		LastUpdated:   lastUpdated,
		Explicit:      feed.Explicit,
		ITunesID:      feed.ITunesID,
		HasValueBlock: feed.Value != nil,
	}
}

func itemsToEpisodes(items []Item) []search.Episode {
	episodes := make([]search.Episode, 0, len(items))
	for _, item := range items {
		var published time.Time
		if item.DatePublished > 0 {
			published = time.Unix(item.DatePublished, 0).UTC()
		}
		episodes = append(episodes, search.Episode{
			ID:          item.ID,
			PodcastID:   item.FeedID,
			Title:       item.Title,
			Description: item.Description,
			AudioURL:    item.EnclosureURL,
			ImageURL:    item.Image,
			Duration:    item.Duration,
			PublishedAt: published,
			FeedTitle:   item.FeedTitle,
			FeedAuthor:  item.FeedAuthor,
			FeedImage:   item.FeedImage,
		})
	}
	return episodes
}
