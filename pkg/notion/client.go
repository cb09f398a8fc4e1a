package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"studymanager/pkg/config"
	"studymanager/pkg/logger"
	"studymanager/pkg/metrics"
	"studymanager/pkg/upstream"
)

const serviceName = "notion"

// Entry is a study log entry as written to the database
type Entry struct {
	TaskName string
	Status   string
	Mistakes string
	Rewards  string
	Date     time.Time
}

// Client is the Notion API client
type Client struct {
	apiKey     string
	databaseID string
	baseURL    string
	version    string
	httpClient *http.Client
}

// NewClient creates a new Notion API client
func NewClient(cfg *config.NotionConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultNotionBaseURL
	}
	version := cfg.Version
	if version == "" {
		version = config.DefaultNotionVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultUpstreamTimeout
	}

	return &Client{
		apiKey:     cfg.APIKey,
		databaseID: cfg.DatabaseID,
		baseURL:    baseURL,
		version:    version,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BuildCreatePageRequest builds the page creation payload for entry.
// The date is sent as an RFC 3339 UTC timestamp.
func BuildCreatePageRequest(databaseID string, entry Entry) *CreatePageRequest {
	return &CreatePageRequest{
		Parent: Parent{DatabaseID: databaseID},
		Properties: map[string]Property{
			PropertyTaskName: {Title: []RichText{{Text: Text{Content: entry.TaskName}}}},
			PropertyStatus:   {Select: &SelectOption{Name: entry.Status}},
			PropertyMistakes: {RichText: []RichText{{Text: Text{Content: entry.Mistakes}}}},
			PropertyRewards:  {RichText: []RichText{{Text: Text{Content: entry.Rewards}}}},
			PropertyDate:     {Date: &DateValue{Start: entry.Date.UTC().Format(time.RFC3339Nano)}},
		},
	}
}

// CreateEntry creates a page for entry in the configured database
func (c *Client) CreateEntry(ctx context.Context, entry Entry) error {
	req := BuildCreatePageRequest(c.databaseID, entry)

	_, err := c.doRequest(ctx, "create_page", http.MethodPost, c.baseURL+"/pages", req)
	return err
}

// QueryEntries returns the first page of results of an unfiltered database query
func (c *Client) QueryEntries(ctx context.Context) ([]Page, error) {
	endpoint := fmt.Sprintf("%s/databases/%s/query", c.baseURL, url.PathEscape(c.databaseID))

	respData, err := c.doRequest(ctx, "query_database", http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp QueryResponse
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse query database response: %w", err)
	}
	if resp.HasMore {
		logger.DebugCtx(ctx, "notion query has more results, only the first page is used")
	}

	return resp.Results, nil
}

// doRequest performs an HTTP request with the Notion headers and
// returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, operation, method, endpoint string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
		logger.DebugCtx(ctx, "Notion API Request: %s %s, Body: %s", method, endpoint, string(jsonData))
	} else {
		logger.DebugCtx(ctx, "Notion API Request: %s %s", method, endpoint)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", c.version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(serviceName, operation, "error")
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	metrics.RecordUpstreamRequest(serviceName, operation, strconv.Itoa(resp.StatusCode))
	logger.DebugCtx(ctx, "Notion API Response: Status %d, Body: %s", resp.StatusCode, string(respData))

	if resp.StatusCode != http.StatusOK {
		return nil, &upstream.Error{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Body:       json.RawMessage(respData),
		}
	}

	return respData, nil
}
