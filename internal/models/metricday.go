// ABOUTME: MetricDay model and MetricDelta partial-update type.
// ABOUTME: One sparse row per calendar date, merged field-by-field.
package models

// MetricDay is the daily health-metrics row. Every field except Date is
// independently nullable; a nil field means "no source has reported this
// value for this date yet".
type MetricDay struct {
	Date       string
	RestingHR  *float64
	HRVRMSSD   *float64
	VO2Max     *float64
	WeightKG   *float64
	SleepHours *float64
}

// MetricDelta is a partial update for one MetricDay. A nil field means
// "leave whatever is stored untouched" — there is deliberately no way to
// clear a stored value through a delta.
type MetricDelta struct {
	RestingHR  *float64
	HRVRMSSD   *float64
	VO2Max     *float64
	WeightKG   *float64
	SleepHours *float64
}

// IsEmpty reports whether the delta carries no values at all.
func (d MetricDelta) IsEmpty() bool {
	return d.RestingHR == nil && d.HRVRMSSD == nil && d.VO2Max == nil &&
		d.WeightKG == nil && d.SleepHours == nil
}

// Float returns a pointer to v, for building deltas inline.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
