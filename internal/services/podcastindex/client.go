package podcastindex

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Client talks to the Podcast Index API. A zero-credential client reports
// itself unconfigured and performs no requests.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
	apiSecret  string
	userAgent  string
}

// Config holds configuration for the Podcast Index client.
type Config struct {
	APIKey    string
	APISecret string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// RequestsPerSecond caps outbound calls; zero means no client-side
	// limiting.
	RequestsPerSecond int
}

// NewClient creates a new Podcast Index API client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.podcastindex.org/api/1.0"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "PodSeekSearchAPI/1.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestsPerSecond)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		userAgent:  cfg.UserAgent,
	}
}

// IsConfigured reports whether the client has credentials to reach the
// remote catalog.
func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != "" && c.apiSecret != ""
}

// get performs a signed GET against an API endpoint and decodes the JSON
// body into result.
func (c *Client) get(ctx context.Context, endpoint string, result interface{}) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limit wait: %v", ErrRemoteUnavailable, err)
		}
	}

	// Inherit the caller's deadline but not its values, so middleware
	// metadata never leaks into external API calls.
	cleanCtx := context.Background()
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		cleanCtx, cancel = context.WithDeadline(cleanCtx, deadline)
		defer cancel()
	}

	fullURL := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	req, err := http.NewRequestWithContext(cleanCtx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	signRequest(req, c.apiKey, c.apiSecret, c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[ERROR] Podcast Index returned status %d for %s", resp.StatusCode, fullURL)
		return fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrRemoteUnavailable, err)
	}

	return nil
}

// SearchOptions carries the per-request knobs of the search endpoints.
type SearchOptions struct {
	Max      int
	FullText bool
	// Val filters to feeds with the given value block type, e.g. "lightning".
	Val string
	// Clean requests family-friendly content only.
	Clean bool
}

func (o SearchOptions) values(query string) url.Values {
	max := o.Max
	if max <= 0 {
		max = 25
	}
	if max > 100 {
		max = 100
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("max", fmt.Sprintf("%d", max))
	if o.FullText {
		params.Set("fulltext", "true")
	}
	if o.Val != "" {
		params.Set("val", o.Val)
	}
	if o.Clean {
		params.Set("clean", "true")
	}
	return params
}

// SearchFeeds searches podcasts by term.
func (c *Client) SearchFeeds(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error) {
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	endpoint := fmt.Sprintf("search/byterm?%s", opts.values(query).Encode())

	var searchResp SearchResponse
	if err := c.get(ctx, endpoint, &searchResp); err != nil {
		return nil, err
	}

	if searchResp.Status != "true" {
		return nil, fmt.Errorf("%w: %s", ErrRemoteUnavailable, searchResp.Description)
	}

	return &searchResp, nil
}

// SearchEpisodesByPerson searches episodes mentioning a person or term.
func (c *Client) SearchEpisodesByPerson(ctx context.Context, query string, opts SearchOptions) (*EpisodesResponse, error) {
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	endpoint := fmt.Sprintf("search/byperson?%s", opts.values(query).Encode())

	var episodesResp EpisodesResponse
	if err := c.get(ctx, endpoint, &episodesResp); err != nil {
		return nil, err
	}

	if episodesResp.Status != "true" {
		return nil, fmt.Errorf("%w: %s", ErrRemoteUnavailable, episodesResp.Description)
	}

	return &episodesResp, nil
}

// GetEpisodesByFeedID fetches episodes for a specific feed.
func (c *Client) GetEpisodesByFeedID(ctx context.Context, feedID int64, limit int) (*EpisodesResponse, error) {
	if feedID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFeedID, feedID)
	}

	params := url.Values{}
	params.Set("id", fmt.Sprintf("%d", feedID))
	if limit > 0 {
		params.Set("max", fmt.Sprintf("%d", limit))
	}

	endpoint := fmt.Sprintf("episodes/byfeedid?%s", params.Encode())

	var episodesResp EpisodesResponse
	if err := c.get(ctx, endpoint, &episodesResp); err != nil {
		return nil, err
	}

	if episodesResp.Status != "true" {
		return nil, fmt.Errorf("%w: %s", ErrRemoteUnavailable, episodesResp.Description)
	}

	return &episodesResp, nil
}
