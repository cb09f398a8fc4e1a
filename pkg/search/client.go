// Package search is a client for the Google Custom Search JSON API.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"studymanager/pkg/config"
	"studymanager/pkg/logger"
	"studymanager/pkg/metrics"
	"studymanager/pkg/upstream"
)

const serviceName = "search"

// Client is the web search API client
type Client struct {
	apiKey     string
	engineID   string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new search client. The API key only ever comes from cfg.
func NewClient(cfg *config.SearchConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultSearchBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultUpstreamTimeout
	}

	return &Client{
		apiKey:   cfg.APIKey,
		engineID: cfg.EngineID,
		baseURL:  baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// buildURL returns the request URL for query with all parameters encoded
func (c *Client) buildURL(query string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid search base URL: %w", err)
	}

	params := u.Query()
	params.Set("q", query)
	params.Set("key", c.apiKey)
	if c.engineID != "" {
		params.Set("cx", c.engineID)
	}
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// Search runs query and returns the upstream JSON body unchanged
func (c *Client) Search(ctx context.Context, query string) (json.RawMessage, error) {
	endpoint, err := c.buildURL(query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	logger.DebugCtx(ctx, "Search API Request: query=%q", query)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(serviceName, "search", "error")
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	metrics.RecordUpstreamRequest(serviceName, "search", strconv.Itoa(resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return nil, &upstream.Error{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Body:       json.RawMessage(respData),
		}
	}

	if !json.Valid(respData) {
		return nil, fmt.Errorf("search API returned invalid JSON")
	}

	return json.RawMessage(respData), nil
}
