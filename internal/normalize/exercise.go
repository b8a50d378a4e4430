// ABOUTME: Normalizes loosely-typed Polar exercise payloads into Session records.
// ABOUTME: Classifies fitness-test snapshots and resolves aliased field locations.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/polarsync/internal/models"
)

// Exercise is one raw vendor exercise payload. Field names and locations
// vary across Polar devices and firmware, so values are resolved through
// accessor chains rather than a fixed struct.
type Exercise map[string]any

// sessionIDAccessors is the ordered identity fallback chain: explicit id,
// list-item id, transaction id, then the last path segment of the URL.
// The first non-empty result wins.
var sessionIDAccessors = []func(Exercise) string{
	func(ex Exercise) string { return ex.str("id") },
	func(ex Exercise) string { return ex.str("list_item_id") },
	func(ex Exercise) string { return ex.str("transaction-id") },
	func(ex Exercise) string {
		u := ex.str("url")
		if u == "" {
			return ""
		}
		parts := strings.Split(u, "/")
		return parts[len(parts)-1]
	},
}

// IsFitnessTest reports whether the payload is a fitness-test or orthostatic
// snapshot rather than an ordinary exercise session. The test type lives
// either under a nested "test" object or in a top-level "test_type" field.
func IsFitnessTest(ex Exercise) bool {
	tt := ex.sub("test").str("type")
	if tt == "" {
		tt = ex.str("test_type")
	}
	switch strings.ToUpper(tt) {
	case "FITNESS_TEST", "ORTHOSTATIC_TEST":
		return true
	}
	return false
}

// FitnessTest holds the daily-metric fields extracted from a test snapshot.
// Any field may be absent.
type FitnessTest struct {
	Date      string
	RestingHR *float64
	RMSSD     *float64
	VO2Max    *float64
}

// ParseFitnessTest extracts date, resting HR, HRV RMSSD, and VO2max from a
// fitness-test payload. The date is the 10-character prefix of start_time.
func ParseFitnessTest(ex Exercise) FitnessTest {
	start := ex.str("start_time")
	if len(start) > 10 {
		start = start[:10]
	}
	return FitnessTest{
		Date:      start,
		RestingHR: ex.sub("heart_rate").num("average"),
		RMSSD:     ex.sub("heart_rate_variability").num("rmssd"),
		VO2Max:    ex.num("vo2max"),
	}
}

// NormalizeExercise maps one vendor exercise payload into the canonical
// Session shape. The returned SessionID may be empty when no identity could
// be resolved; callers drop such records instead of storing them.
func NormalizeExercise(ex Exercise) *models.Session {
	s := &models.Session{
		SessionID: resolveSessionID(ex),
		TsStart:   ex.str("start_time"),
		Sport:     ex.strOr("sport", models.DefaultSport),
		DistanceM: ex.numOr("distance", 0),
		Kcal:      ex.numOr("calories", 0),
		Device:    ex.strOr("device", models.DefaultDevice),
	}

	hr := ex.sub("heart_rate")
	if v := hr.num("average"); v != nil {
		s.AvgHR = models.Int(int(*v))
	}
	// Both "maximum" and "max" occur in the wild.
	maxHR := hr.num("maximum")
	if maxHR == nil {
		maxHR = hr.num("max")
	}
	if maxHR != nil {
		s.MaxHR = models.Int(int(*maxHR))
	}

	// Training load is top-level on newer firmware, nested under the
	// pro-metrics object on older payloads.
	s.TrainingLoad = ex.num("training_load")
	if s.TrainingLoad == nil {
		s.TrainingLoad = ex.sub("training_load_pro").num("cardio-load")
	}

	duration := ParseISODuration(ex.str("duration"))
	if duration != nil {
		s.DurationS = *duration
	}

	// ts_end is derived only when both a start time and a duration exist.
	// An unparsable start time yields a nil ts_end, never an error.
	if s.TsStart != "" && duration != nil && *duration > 0 {
		if start, ok := parseStartTime(s.TsStart); ok {
			end := start.Add(time.Duration(*duration * float64(time.Second)))
			s.TsEnd = models.String(end.Format("2006-01-02T15:04:05"))
		}
	}

	return s
}

func resolveSessionID(ex Exercise) string {
	for _, accessor := range sessionIDAccessors {
		if id := accessor(ex); id != "" {
			return id
		}
	}
	return ""
}

var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseStartTime(s string) (time.Time, bool) {
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Loose accessors over the payload map. JSON decoding produces float64 for
// all numbers, but vendor ids sometimes arrive as integers, so strings are
// coerced where an identity is expected.

func (ex Exercise) str(key string) string {
	switch v := ex[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

func (ex Exercise) strOr(key, fallback string) string {
	if v := ex.str(key); v != "" {
		return v
	}
	return fallback
}

func (ex Exercise) num(key string) *float64 {
	switch v := ex[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	default:
		return nil
	}
}

func (ex Exercise) numOr(key string, fallback float64) float64 {
	if v := ex.num(key); v != nil {
		return *v
	}
	return fallback
}

func (ex Exercise) sub(key string) Exercise {
	if m, ok := ex[key].(map[string]any); ok {
		return Exercise(m)
	}
	if m, ok := ex[key].(Exercise); ok {
		return m
	}
	return nil
}
