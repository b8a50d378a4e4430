// ABOUTME: Polar AccessLink API client for exercises and user information.
// ABOUTME: Uses an oauth2 token source; token management is the caller's concern.
package polar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/harperreed/polarsync/internal/normalize"
)

// DefaultBaseURL is the production AccessLink endpoint.
const DefaultBaseURL = "https://www.polaraccesslink.com/v3"

// Client is a Polar AccessLink API client.
type Client struct {
	// BaseURL may be overridden for tests.
	BaseURL    string
	httpClient *http.Client
}

// NewClient creates a new AccessLink client authenticated by the given
// token source.
func NewClient(tokenSource oauth2.TokenSource) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		httpClient: oauth2.NewClient(context.Background(), tokenSource),
	}
}

// StaticToken builds a token source from a pre-obtained access token.
func StaticToken(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
}

// ListExercises fetches the available exercises for the authenticated user.
// Payload shapes vary by device and firmware, so records come back as loose
// maps for the normalizer to interpret.
func (c *Client) ListExercises(ctx context.Context) ([]normalize.Exercise, error) {
	resp, err := c.do(ctx, http.MethodGet, c.BaseURL+"/exercises")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var raw []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding exercises: %w", err)
	}

	exercises := make([]normalize.Exercise, len(raw))
	for i, r := range raw {
		exercises[i] = normalize.Exercise(r)
	}
	return exercises, nil
}

// GetUserInformation fetches basic user information, including the
// registered weight used as a fallback metric source.
func (c *Client) GetUserInformation(ctx context.Context, userID string) (map[string]any, error) {
	resp, err := c.do(ctx, http.MethodGet, c.BaseURL+"/users/"+userID)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding user information: %w", err)
	}
	return info, nil
}

func (c *Client) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	return resp, nil
}
