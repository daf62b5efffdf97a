// Package client fetches the portfolio collections from the API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/garnizeh/portfolio/pkg/models"
)

// APIError is a non-2xx response. Message and Kind come from the
// {"error","kind"} body when the server sent one.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Kind       string `json:"kind"`
}

func (e *APIError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Kind, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL. A nil httpClient gets a 15s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// TestResult is the body of GET /api/test.
type TestResult struct {
	Message string           `json:"message"`
	Result  []map[string]any `json:"result"`
}

func (c *Client) Test(ctx context.Context) (*TestResult, error) {
	var out TestResult
	if err := c.get(ctx, "/api/test", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Portfolio(ctx context.Context) ([]models.PortfolioItem, error) {
	var out []models.PortfolioItem
	if err := c.get(ctx, "/api/portfolio", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Videos(ctx context.Context) ([]models.FeaturedVideo, error) {
	var out []models.FeaturedVideo
	if err := c.get(ctx, "/api/videos", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Gallery is everything the front page renders.
type Gallery struct {
	Items  []models.PortfolioItem
	Videos []models.FeaturedVideo
}

// LoadGallery fetches both collections concurrently, once. The first
// failure cancels the other request.
func (c *Client) LoadGallery(ctx context.Context) (*Gallery, error) {
	var g Gallery
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		items, err := c.Portfolio(ctx)
		if err != nil {
			return fmt.Errorf("load portfolio: %w", err)
		}
		g.Items = items
		return nil
	})
	eg.Go(func() error {
		videos, err := c.Videos(ctx)
		if err != nil {
			return fmt.Errorf("load videos: %w", err)
		}
		g.Videos = videos
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{StatusCode: res.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
		if json.Unmarshal(body, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return apiErr
	}

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
