// ABOUTME: Physical-information transaction lifecycle for AccessLink.
// ABOUTME: Open transaction, list snapshot URLs, fetch each, then commit.
package polar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// PhysicalInfoTransaction is one open physical-information transaction.
// AccessLink hands out snapshots only inside a transaction; the data is
// consumed once the transaction is committed.
type PhysicalInfoTransaction struct {
	client      *Client
	ResourceURI string
}

// CreatePhysicalInfoTransaction opens a transaction for the user's pending
// physical-information snapshots. Returns nil when the vendor reports no
// new data (204).
func (c *Client) CreatePhysicalInfoTransaction(ctx context.Context, userID string) (*PhysicalInfoTransaction, error) {
	url := fmt.Sprintf("%s/users/%s/physical-information-transactions", c.BaseURL, userID)
	resp, err := c.do(ctx, http.MethodPost, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var created struct {
		ResourceURI string `json:"resource-uri"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decoding transaction: %w", err)
	}
	if created.ResourceURI == "" {
		return nil, fmt.Errorf("transaction response missing resource-uri")
	}

	return &PhysicalInfoTransaction{client: c, ResourceURI: created.ResourceURI}, nil
}

// ListPhysicalInfos returns the snapshot URLs available in this transaction.
func (t *PhysicalInfoTransaction) ListPhysicalInfos(ctx context.Context) ([]string, error) {
	resp, err := t.client.do(ctx, http.MethodGet, t.ResourceURI)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var listing struct {
		PhysicalInformations []string `json:"physical-informations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decoding physical info listing: %w", err)
	}
	return listing.PhysicalInformations, nil
}

// GetPhysicalInfo fetches one snapshot payload by its URL. Fields of
// interest: created, weight, resting-heart-rate, vo2-max.
func (t *PhysicalInfoTransaction) GetPhysicalInfo(ctx context.Context, url string) (map[string]any, error) {
	resp, err := t.client.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding physical info: %w", err)
	}
	return info, nil
}

// Commit closes the transaction, acknowledging the consumed snapshots.
func (t *PhysicalInfoTransaction) Commit(ctx context.Context) error {
	resp, err := t.client.do(ctx, http.MethodPut, t.ResourceURI)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
