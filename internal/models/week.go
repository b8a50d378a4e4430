// ABOUTME: WeekEntry model for the Notion coaching database.
// ABOUTME: Includes the status alias mapping between planning and Notion terms.
package models

// WeekEntry is one coaching record, addressed by its free-text Week label
// (e.g. "Week of 2025-11-04"). Nil fields are omitted from outgoing
// updates entirely, so an update never clears a previously set value.
type WeekEntry struct {
	Week         string
	Status       string
	Goal         *string
	Notes        *string
	ActionItems  []string
	DistanceKM   *float64
	SessionCount *int
	NextFocus    *string
	StartDate    *string
}

// Notion status option names used by the coaching database.
const (
	StatusNotStarted = "Not started"
	StatusInProgress = "In progress"
	StatusDone       = "Done"
)

// statusAliases maps the planning-side vocabulary onto the Notion
// database's status options.
var statusAliases = map[string]string{
	"Planning":    StatusNotStarted,
	"In Progress": StatusInProgress,
	"Completed":   StatusDone,
}

// NormalizeStatus maps planning-side status names ("Planning",
// "In Progress", "Completed") to the Notion option names. Anything else
// passes through unchanged so already-normalized values stay valid.
func NormalizeStatus(status string) string {
	if mapped, ok := statusAliases[status]; ok {
		return mapped
	}
	return status
}
