package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	// BaseURL is the HN Firebase API root.
	BaseURL        = "https://hacker-news.firebaseio.com/v0"
	requestTimeout = 10 * time.Second
	maxConcurrent  = 10
)

// ItemSource is the single-item level of the HN API.
type ItemSource interface {
	GetItem(ctx context.Context, id int) (*Item, error)
	GetStoryIDs(ctx context.Context, feed Feed) ([]int, error)
}

// Client is the HN API client.
type Client struct {
	http    *http.Client
	baseURL string
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a new HN API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: BaseURL,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get fetches a URL and decodes the JSON response into dst.
func (c *Client) get(ctx context.Context, url string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "hnpeek/1.0")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, url, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

// GetItem fetches a single item by ID. The API answers null for unknown IDs,
// which is reported as ErrNotFound.
func (c *Client) GetItem(ctx context.Context, id int) (*Item, error) {
	url := fmt.Sprintf("%s/item/%d.json", c.baseURL, id)
	var item *Item
	if err := c.get(ctx, url, &item); err != nil {
		return nil, err
	}
	if item == nil || item.ID == 0 {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return item, nil
}

// GetStoryIDs fetches the ranked story IDs of a feed.
func (c *Client) GetStoryIDs(ctx context.Context, feed Feed) ([]int, error) {
	if !feed.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFeed, feed)
	}
	url := fmt.Sprintf("%s/%sstories.json", c.baseURL, feed)
	var ids []int
	if err := c.get(ctx, url, &ids); err != nil {
		return nil, fmt.Errorf("fetching %s stories: %w", feed, err)
	}
	return ids, nil
}

// Valid reports whether f is one of the known feeds.
func (f Feed) Valid() bool {
	for _, known := range Feeds {
		if f == known {
			return true
		}
	}
	return false
}
