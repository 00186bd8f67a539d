// Package cms is the read-only client for the external visual page builder.
// This system never writes to it.
package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrPageNotFound signals the CMS has no content for the path.
var ErrPageNotFound = errors.New("cms: page not found")

// Page is the renderable content for one marketing page.
type Page struct {
	Path      string          `json:"path"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Client fetches page content over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the CMS at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetPageContent fetches the content published for a URL path.
func (c *Client) GetPageContent(ctx context.Context, urlPath string) (*Page, error) {
	endpoint := c.baseURL + "/pages?path=" + url.QueryEscape(urlPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("cms: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cms: fetch page: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrPageNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("cms: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("cms: decode page: %w", err)
	}

	return &page, nil
}
