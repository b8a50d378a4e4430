// ABOUTME: Weekly coaching page upsert against the Notion running database.
// ABOUTME: Matches by exact week title, then creates or updates in place.
package notion

import (
	"context"
	"strings"

	"github.com/harperreed/polarsync/internal/models"
)

// SplitActionItems turns a comma- or newline-separated string into a clean
// item list for the Action Items property.
func SplitActionItems(raw string) []string {
	if raw == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(strings.ReplaceAll(raw, "\n", ","), ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// UpsertResult reports the outcome of a weekly entry write. Failures are
// carried in the result rather than a returned error so callers can relay
// them verbatim.
type UpsertResult struct {
	Success bool   `json:"success"`
	Action  string `json:"action,omitempty"`
	PageID  string `json:"page_id,omitempty"`
	Week    string `json:"week"`
	Err     string `json:"error,omitempty"`
}

// FindWeekPage returns the page whose Week title exactly matches week,
// or nil when no page matches.
func FindWeekPage(ctx context.Context, c *Client, databaseID, week string) (*Page, error) {
	pages, err := c.QueryDatabase(ctx, databaseID)
	if err != nil {
		return nil, err
	}
	for i := range pages {
		prop, ok := pages[i].Properties["Week"]
		if !ok {
			continue
		}
		if title, ok := ExtractValue(prop).(string); ok && title == week {
			return &pages[i], nil
		}
	}
	return nil, nil
}

// UpsertWeek writes a weekly coaching entry. When updateExisting is set and
// a page with the same week title already exists, that page is patched;
// otherwise a new page is created.
func UpsertWeek(ctx context.Context, c *Client, databaseID string, entry models.WeekEntry, updateExisting bool) UpsertResult {
	fail := func(err error) UpsertResult {
		return UpsertResult{Week: entry.Week, Err: err.Error()}
	}

	if updateExisting {
		existing, err := FindWeekPage(ctx, c, databaseID, entry.Week)
		if err != nil {
			return fail(err)
		}
		if existing != nil {
			updated, err := c.UpdatePage(ctx, existing.ID, weekProperties(entry, false))
			if err != nil {
				return fail(err)
			}
			return UpsertResult{Success: true, Action: "updated", PageID: updated.ID, Week: entry.Week}
		}
	}

	created, err := c.CreatePage(ctx, databaseID, weekProperties(entry, true))
	if err != nil {
		return fail(err)
	}
	return UpsertResult{Success: true, Action: "created", PageID: created.ID, Week: entry.Week}
}

// weekProperties projects a week entry onto the coaching database schema.
// Identity properties (title and start date) are only written on create;
// updates touch just the supplied fields.
func weekProperties(entry models.WeekEntry, create bool) map[string]Property {
	props := map[string]Property{}

	if create {
		props["Week"] = TitleProp(entry.Week)
		if entry.StartDate != nil {
			props["Date"] = DateProp(*entry.StartDate)
		}
	}

	status := entry.Status
	if create && status == "" {
		status = models.StatusInProgress
	}
	if status != "" {
		props["Status"] = StatusProp(models.NormalizeStatus(status))
	}

	if entry.Goal != nil {
		props["Weekly Goal"] = RichTextProp(*entry.Goal)
	}
	if entry.Notes != nil {
		props["Progress Notes"] = RichTextProp(*entry.Notes)
	}
	if len(entry.ActionItems) > 0 {
		props["Action Items"] = TextListProp(entry.ActionItems)
	}
	if entry.DistanceKM != nil {
		props["Distance This Week"] = NumberProp(*entry.DistanceKM)
	}
	if entry.SessionCount != nil {
		props["Sessions This Week"] = NumberProp(float64(*entry.SessionCount))
	}
	if entry.NextFocus != nil {
		props["Next Week Focus"] = RichTextProp(*entry.NextFocus)
	}

	return props
}
