// Package client reads the feed endpoint of a notiongram server.
package client

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lysyi3m/notiongram/app/feed"
)

// ResponseError is returned for any non-2xx feed response. Message is the
// server's error field, or the HTTP status text when the body has none.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	return e.Message
}

type Client struct {
	httpClient *http.Client
	feedURL    string
	userAgent  string
}

func New(feedURL, userAgent string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		feedURL:    feedURL,
		userAgent:  userAgent,
	}
}

// Fetch issues one request and returns the items sorted by date, most
// recent first.
func (c *Client) Fetch(ctx context.Context) ([]feed.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ResponseError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data, resp),
		}
	}

	var items []feed.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	if items == nil {
		items = []feed.Item{}
	}

	feed.SortByDate(items)
	return items, nil
}

func errorMessage(data []byte, resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}

	statusText := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode)))
	return cmp.Or(statusText, http.StatusText(resp.StatusCode), fmt.Sprintf("HTTP %d", resp.StatusCode))
}
