package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultBaseURL = "https://umassdining.com"
	DefaultTimeout = 15 * time.Second

	// Some upstream origins reject default Go client identities, so fetches
	// carry a realistic browser profile.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36"
	accept    = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream HTTP %d for %s", e.Code, e.URL)
}

type Client struct {
	client  *http.Client
	baseURL string
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
	}
}

// MenuURL builds the canonical menu page URL for a location slug.
func (c *Client) MenuURL(slug string) string {
	return fmt.Sprintf("%s/locations-menus/%s/menu", c.baseURL, slug)
}

// FetchMenu retrieves and parses one location's menu page. A non-2xx
// response yields a *StatusError; transport failures come back as-is.
func (c *Client) FetchMenu(ctx context.Context, slug string) (*goquery.Document, error) {
	menuURL := c.MenuURL(slug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, menuURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Referer", c.baseURL+"/")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: menuURL, Code: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse menu page: %w", err)
	}

	return doc, nil
}
