// Package catalogapi provides the HTTP JSON client for the remote catalog
// and search-history service.
package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const serviceTokenHeader = "X-Service-Token"

// Client talks to the catalog service. Idempotent reads are retried with
// exponential backoff; writes are attempted once.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	serviceToken string
	maxTries     uint
}

// NewClient creates a catalog client. timeout bounds each individual HTTP
// attempt, not the whole retry sequence.
func NewClient(baseURL, serviceToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: timeout},
		serviceToken: serviceToken,
		maxTries:     3,
	}
}

func (c *Client) SearchProducts(ctx context.Context, query string, page, limit int) ([]Product, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var products []Product
	if err := c.getJSON(ctx, "/v1/products/search", q, &products); err != nil {
		return nil, fmt.Errorf("SearchProducts: %w", err)
	}
	return products, nil
}

func (c *Client) ListBrands(ctx context.Context) ([]Brand, error) {
	var brands []Brand
	if err := c.getJSON(ctx, "/v1/brands", nil, &brands); err != nil {
		return nil, fmt.Errorf("ListBrands: %w", err)
	}
	return brands, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.getJSON(ctx, "/v1/categories", nil, &categories); err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}
	return categories, nil
}

func (c *Client) GetSearchHistory(ctx context.Context, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var terms []string
	if err := c.getJSON(ctx, "/v1/search/history", q, &terms); err != nil {
		return nil, fmt.Errorf("GetSearchHistory: %w", err)
	}
	return terms, nil
}

func (c *Client) SaveSearchQuery(ctx context.Context, query string) error {
	body := map[string]string{"query": query}
	if err := c.do(ctx, http.MethodPost, "/v1/search/history", body); err != nil {
		return fmt.Errorf("SaveSearchQuery: %w", err)
	}
	return nil
}

func (c *Client) ClearSearchHistory(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/v1/search/history", nil); err != nil {
		return fmt.Errorf("ClearSearchHistory: %w", err)
	}
	return nil
}

func (c *Client) GetTrendingSearches(ctx context.Context, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var terms []string
	if err := c.getJSON(ctx, "/v1/search/trending", q, &terms); err != nil {
		return nil, fmt.Errorf("GetTrendingSearches: %w", err)
	}
	return terms, nil
}

func (c *Client) GetRecentlyViewedProducts(ctx context.Context, limit int) ([]Product, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var products []Product
	if err := c.getJSON(ctx, "/v1/products/recently-viewed", q, &products); err != nil {
		return nil, fmt.Errorf("GetRecentlyViewedProducts: %w", err)
	}
	return products, nil
}

// getJSON issues a GET and decodes the response body into dest. Transport
// errors and 5xx responses are retried; 4xx responses and decode failures
// are permanent.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	operation := func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		c.addAuth(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return struct{}{}, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			_, _ = io.Copy(io.Discard, resp.Body)
			return struct{}{}, fmt.Errorf("status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return struct{}{}, backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return struct{}{}, backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		return struct{}{}, nil
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(newRetryBackoff()),
		backoff.WithMaxTries(c.maxTries),
	)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.addAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	return nil
}

func (c *Client) addAuth(req *http.Request) {
	if c.serviceToken != "" {
		req.Header.Set(serviceTokenHeader, c.serviceToken)
	}
}

func newRetryBackoff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.Multiplier = 2
	return bo
}
