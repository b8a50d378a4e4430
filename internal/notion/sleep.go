// ABOUTME: Pulls sleep entries out of a Notion tracker database into the
// ABOUTME: local metrics store, then marks the source pages as synced.
package notion

import (
	"context"
	"strings"

	"github.com/harperreed/polarsync/internal/models"
	"github.com/harperreed/polarsync/internal/normalize"
	"github.com/harperreed/polarsync/internal/storage"
)

// SleepSyncOptions names the properties the sleep tracker uses. Zero values
// fall back to the conventional names.
type SleepSyncOptions struct {
	DateField   string
	SleepField  string
	SyncedField string
}

func (o *SleepSyncOptions) applyDefaults() {
	if o.DateField == "" {
		o.DateField = "Date"
	}
	if o.SleepField == "" {
		o.SleepField = "Sleep Hours"
	}
	if o.SyncedField == "" {
		o.SyncedField = "Synced to ETL"
	}
}

// SleepSyncResult summarizes one sleep sync pass.
type SleepSyncResult struct {
	Pages     int
	Processed int
	Skipped   int
	Errors    []string
}

// SyncSleep reads every page in the sleep database, merges parseable sleep
// hours into the local metrics table, and checks the synced checkbox on
// pages that have one. Per-page failures are collected, not fatal; checkbox
// write-backs are best effort.
func SyncSleep(ctx context.Context, c *Client, store *storage.DB, databaseID string, opts SleepSyncOptions) (*SleepSyncResult, error) {
	opts.applyDefaults()

	pages, err := c.QueryDatabase(ctx, databaseID)
	if err != nil {
		return nil, err
	}

	result := &SleepSyncResult{Pages: len(pages)}
	for _, page := range pages {
		date, hours := parseSleepPage(page, opts.DateField, opts.SleepField)
		if date == "" {
			result.Skipped++
			continue
		}
		if hours == nil {
			// A dated page with an unparseable or empty sleep value is
			// left alone so a later edit can still be picked up.
			result.Skipped++
			continue
		}

		if err := store.UpsertMetricDay(date, models.MetricDelta{SleepHours: hours}); err != nil {
			result.Errors = append(result.Errors, date+": "+err.Error())
			continue
		}
		result.Processed++

		if prop, ok := page.Properties[opts.SyncedField]; ok {
			if synced, _ := ExtractValue(prop).(bool); !synced {
				if err := c.SetCheckbox(ctx, page.ID, opts.SyncedField, true); err != nil {
					result.Errors = append(result.Errors, date+": checkbox: "+err.Error())
				}
			}
		}
	}

	return result, nil
}

// parseSleepPage pulls the date and sleep hours out of one tracker page.
// The date is trimmed to YYYY-MM-DD; sleep hours may be a number property
// or a text value like "06:19" or "6h 30m".
func parseSleepPage(page Page, dateField, sleepField string) (string, *float64) {
	dateProp, ok := page.Properties[dateField]
	if !ok {
		return "", nil
	}
	dateValue, ok := ExtractValue(dateProp).(string)
	if !ok || dateValue == "" {
		return "", nil
	}
	if i := strings.Index(dateValue, "T"); i >= 0 {
		dateValue = dateValue[:i]
	}
	if len(dateValue) > 10 {
		dateValue = dateValue[:10]
	}

	sleepProp, ok := page.Properties[sleepField]
	if !ok {
		return dateValue, nil
	}
	switch v := ExtractValue(sleepProp).(type) {
	case float64:
		return dateValue, &v
	case string:
		return dateValue, normalize.ParseTimeToHours(v)
	default:
		return dateValue, nil
	}
}
