// Package amplify downloads and decodes the Amplify ETFs master holdings feed.
package amplify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fetches the master holdings CSV published by Amplify ETFs.
type Client struct {
	feedURL    string
	userAgent  string
	httpClient *http.Client
	delay      time.Duration
	maxRetries int
}

// NewClient creates a new feed client.
func NewClient(feedURL, userAgent string, timeout, delay time.Duration, maxRetries int) *Client {
	return &Client{
		feedURL:    feedURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		delay:      delay,
		maxRetries: maxRetries,
	}
}

// FetchFeed downloads the raw master CSV.
// Rate limiting (429) and server errors (5xx) are retried with exponential backoff.
func (c *Client) FetchFeed(ctx context.Context) ([]byte, error) {
	var lastErr error
	for attempt := range c.maxRetries + 1 {
		if attempt > 0 {
			baseDelay := c.delay
			if baseDelay == 0 {
				baseDelay = 5 * time.Second
			}
			delay := baseDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
		if err != nil {
			return nil, fmt.Errorf("creating feed request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "text/csv,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("feed request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading feed response: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			return body, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("feed HTTP %d (attempt %d/%d)", resp.StatusCode, attempt+1, c.maxRetries+1)
			continue
		}

		return nil, fmt.Errorf("feed HTTP %d: %s", resp.StatusCode, string(body))
	}

	return nil, lastErr
}
