// ABOUTME: Session model for normalized Polar exercise records.
// ABOUTME: One row per vendor exercise, keyed by vendor-assigned session ID.
package models

// Session represents one recorded exercise, uniquely identified by the
// vendor-assigned SessionID. Re-importing the same ID fully overwrites the
// row (last write wins, no field-level merge).
type Session struct {
	SessionID    string
	TsStart      string
	TsEnd        *string
	Sport        string
	DistanceM    float64
	DurationS    float64
	Kcal         float64
	AvgHR        *int
	MaxHR        *int
	Device       string
	TrainingLoad *float64
}

// DefaultSport is used when the vendor payload carries no sport field.
const DefaultSport = "UNKNOWN"

// DefaultDevice is used when the vendor payload carries no device field.
const DefaultDevice = "Polar"
