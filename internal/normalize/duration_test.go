// ABOUTME: Tests for ISO duration and time-to-hours parsing.
// ABOUTME: Covers colon, decimal, compact, free-text, and fallback forms.
package normalize

import (
	"math"
	"testing"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"PT1H5M12S", 3912},
		{"P1DT2H", 93600},
		{"PT30M", 1800},
		{"PT5.5S", 5.5},
		{"PT1H", 3600},
		{"PT", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseISODuration(tt.in)
			if got == nil {
				t.Fatalf("ParseISODuration(%q) = nil, want %v", tt.in, tt.want)
			}
			if *got != tt.want {
				t.Errorf("ParseISODuration(%q) = %v, want %v", tt.in, *got, tt.want)
			}
		})
	}
}

func TestParseISODurationMalformed(t *testing.T) {
	for _, in := range []string{"", "P1D", "1H5M", "PTxHyM", "one hour", "PT1H5M12"} {
		t.Run(in, func(t *testing.T) {
			if got := ParseISODuration(in); got != nil {
				t.Errorf("ParseISODuration(%q) = %v, want nil", in, *got)
			}
		})
	}
}

func TestParseTimeToHours(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"6:30", 6.5},
		{"6:30:30", 6.508333},
		{"06:19", 6.0 + 19.0/60.0},
		{"6.5", 6.5},
		{"6,5", 6.5},
		{"7", 7},
		{"6h30m", 6.5},
		{"7h15", 7.25},
		{"8h", 8},
		{"6 h 30 m", 6.5},
		{"6 hours 15 minutes", 6.25},
		{"2 hrs", 2},
		{"90 min", 1.5},
		{"slept about 7.5 last night", 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseTimeToHours(tt.in)
			if got == nil {
				t.Fatalf("ParseTimeToHours(%q) = nil, want %v", tt.in, tt.want)
			}
			if math.Abs(*got-tt.want) > 1e-4 {
				t.Errorf("ParseTimeToHours(%q) = %v, want %v", tt.in, *got, tt.want)
			}
		})
	}
}

func TestParseTimeToHoursUnparseable(t *testing.T) {
	for _, in := range []string{"", "   ", "didn't sleep", "n/a"} {
		t.Run(in, func(t *testing.T) {
			if got := ParseTimeToHours(in); got != nil {
				t.Errorf("ParseTimeToHours(%q) = %v, want nil", in, *got)
			}
		})
	}
}
