// Package itunes implements the search-provider port against the iTunes
// Search API.
package itunes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yearworm/backend/internal/core/ports"
)

const defaultBaseURL = "https://itunes.apple.com"

// Client is an HTTP client for the iTunes Search API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.SearchProvider = (*Client)(nil)

// NewClient constructs an iTunes client. A nil httpClient falls back to
// http.DefaultClient, an empty baseURL to the public API.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxRetries, baseBackoff := getRetryConfig()
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("itunes adapter: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("itunes adapter: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("itunes adapter: decode: %w", err)
	}

	return nil
}
