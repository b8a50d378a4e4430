// ABOUTME: One-time creation of the coaching database under a parent page.
// ABOUTME: Schema mirrors what the week upsert writes.
package notion

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// NormalizePageID expands a bare 32-char hex page ID (as copied from a
// Notion URL) into the dashed UUID form the API expects. Already-dashed
// IDs pass through unchanged.
func NormalizePageID(id string) string {
	if len(id) != 32 || strings.Contains(id, "-") {
		return id
	}
	return fmt.Sprintf("%s-%s-%s-%s-%s", id[:8], id[8:12], id[12:16], id[16:20], id[20:])
}

// CreateCoachingDatabase creates the weekly running progress database under
// the given parent page and returns its ID with dashes stripped, ready to
// paste into the config file.
func CreateCoachingDatabase(ctx context.Context, c *Client, parentPageID string) (string, error) {
	if parentPageID == "" {
		return "", fmt.Errorf("a parent page ID is required: create a page in Notion first, then pass its ID")
	}

	payload := map[string]any{
		"parent": map[string]any{"page_id": NormalizePageID(parentPageID)},
		"title": []map[string]any{
			{"type": "text", "text": map[string]any{"content": "Running Progress & Coaching"}},
		},
		"properties": map[string]any{
			"Week": map[string]any{"title": map[string]any{}},
			"Date": map[string]any{"date": map[string]any{}},
			"Status": map[string]any{
				"select": map[string]any{
					"options": []map[string]any{
						{"name": "Planning", "color": "blue"},
						{"name": "In Progress", "color": "yellow"},
						{"name": "Completed", "color": "green"},
					},
				},
			},
			"Weekly Goal":    map[string]any{"rich_text": map[string]any{}},
			"Progress Notes": map[string]any{"rich_text": map[string]any{}},
			"Action Items":   map[string]any{"multi_select": map[string]any{}},
			"Distance This Week": map[string]any{
				"number": map[string]any{"format": "number"},
			},
			"Sessions This Week": map[string]any{
				"number": map[string]any{"format": "number"},
			},
			"Next Week Focus": map[string]any{"rich_text": map[string]any{}},
		},
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/databases", payload, &created); err != nil {
		return "", fmt.Errorf("creating coaching database: %w", err)
	}
	return strings.ReplaceAll(created.ID, "-", ""), nil
}
