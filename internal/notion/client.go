// ABOUTME: Minimal Notion REST client for database queries and page writes.
// ABOUTME: Handles auth headers, API versioning, and cursor pagination.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// APIVersion is the Notion-Version header value sent on every request.
	APIVersion = "2022-06-28"

	// DefaultBaseURL is the production Notion API endpoint.
	DefaultBaseURL = "https://api.notion.com/v1"
)

// Client talks to the Notion API with an internal integration secret.
type Client struct {
	// BaseURL may be overridden for tests.
	BaseURL    string
	secret     string
	httpClient *http.Client
}

// NewClient creates a Notion client. A missing secret is a configuration
// error and fails immediately rather than on the first request.
func NewClient(secret string) (*Client, error) {
	if secret == "" {
		return nil, fmt.Errorf("notion secret not configured: set NOTION_SECRET or add notion_secret to the config file")
	}
	return &Client{
		BaseURL:    DefaultBaseURL,
		secret:     secret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Page is a Notion page with its property envelope.
type Page struct {
	ID         string              `json:"id"`
	Properties map[string]Property `json:"properties"`
}

// QueryDatabase fetches every page in a database, following pagination
// cursors until the API reports no more results.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string) ([]Page, error) {
	var all []Page
	cursor := ""

	for {
		payload := map[string]any{}
		if cursor != "" {
			payload["start_cursor"] = cursor
		}

		var page struct {
			Results    []Page  `json:"results"`
			HasMore    bool    `json:"has_more"`
			NextCursor *string `json:"next_cursor"`
		}
		if err := c.do(ctx, http.MethodPost, "/databases/"+databaseID+"/query", payload, &page); err != nil {
			return nil, fmt.Errorf("querying database %s: %w", databaseID, err)
		}

		all = append(all, page.Results...)
		if !page.HasMore || page.NextCursor == nil {
			return all, nil
		}
		cursor = *page.NextCursor
	}
}

// CreatePage creates a page in the given database.
func (c *Client) CreatePage(ctx context.Context, databaseID string, properties map[string]Property) (*Page, error) {
	payload := map[string]any{
		"parent":     map[string]any{"database_id": databaseID},
		"properties": properties,
	}
	var created Page
	if err := c.do(ctx, http.MethodPost, "/pages", payload, &created); err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	return &created, nil
}

// UpdatePage patches properties on an existing page. At least one property
// must be supplied.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties map[string]Property) (*Page, error) {
	if len(properties) == 0 {
		return nil, fmt.Errorf("at least one property must be provided for update")
	}
	payload := map[string]any{"properties": properties}
	var updated Page
	if err := c.do(ctx, http.MethodPatch, "/pages/"+pageID, payload, &updated); err != nil {
		return nil, fmt.Errorf("updating page %s: %w", pageID, err)
	}
	return &updated, nil
}

// SetCheckbox flips a single checkbox property on a page.
func (c *Client) SetCheckbox(ctx context.Context, pageID, property string, checked bool) error {
	props := map[string]Property{
		property: CheckboxProp(checked),
	}
	_, err := c.UpdatePage(ctx, pageID, props)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("notion API error %d: %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
