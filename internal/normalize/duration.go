// ABOUTME: Duration and time-of-day text parsing for vendor and Notion data.
// ABOUTME: Handles ISO-8601 durations, H:MM clocks, compact and free-text forms.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// ISO 8601 duration with optional days and a required T designator,
	// e.g. PT1H5M12S or P1DT2H. Seconds may be fractional.
	isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?$`)

	colonRe   = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})(?::(\d{1,2}))?$`)
	decimalRe = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	compactRe = regexp.MustCompile(`^(\d+)(?:h(\d{1,2})?)?(?:m(\d{1,2})?)?$`)
	unitRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes|s|sec|secs|second|seconds)`)
	numberRe  = regexp.MustCompile(`\d+(?:\.\d+)?`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// ParseISODuration converts an ISO 8601 duration (e.g. PT1H5M12S) to total
// seconds. Returns nil for anything malformed; never returns an error.
func ParseISODuration(s string) *float64 {
	if s == "" {
		return nil
	}

	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}

	days := atoiOrZero(m[1])
	hours := atoiOrZero(m[2])
	minutes := atoiOrZero(m[3])
	seconds := 0.0
	if m[4] != "" {
		seconds, _ = strconv.ParseFloat(m[4], 64)
	}

	total := seconds + float64(minutes)*60 + float64(hours)*3600 + float64(days)*86400
	return &total
}

// ParseTimeToHours parses a variety of elapsed-time formats (HH:MM, "6h 30m",
// "6.5", "6 hours 15 minutes", ...) into decimal hours. Formats are tried in
// order and the first match wins. Returns nil when nothing usable is found.
func ParseTimeToHours(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	normalized := strings.ReplaceAll(strings.ToLower(s), ",", ".")

	// H:MM[:SS]
	if m := colonRe.FindStringSubmatch(normalized); m != nil {
		hours := float64(atoiOrZero(m[1]))
		minutes := float64(atoiOrZero(m[2]))
		seconds := float64(atoiOrZero(m[3]))
		v := hours + minutes/60.0 + seconds/3600.0
		return &v
	}

	// Pure decimal, e.g. "6.5"
	if decimalRe.MatchString(normalized) {
		if v, err := strconv.ParseFloat(normalized, 64); err == nil {
			return &v
		}
	}

	// Compact forms like "6h30m" or "7h15"
	compact := spaceRe.ReplaceAllString(normalized, "")
	if m := compactRe.FindStringSubmatch(compact); m != nil {
		hours := float64(atoiOrZero(m[1]))
		minutes := m[2]
		if minutes == "" {
			minutes = m[3]
		}
		v := hours + float64(atoiOrZero(minutes))/60.0
		return &v
	}

	// Textual pairs like "6 h 30 m" or "6 hours 15 minutes"
	total := 0.0
	found := false
	for _, m := range unitRe.FindAllStringSubmatch(normalized, -1) {
		number, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		switch m[2][0] {
		case 'h':
			total += number
		case 'm':
			total += number / 60.0
		case 's':
			total += number / 3600.0
		}
		found = true
	}
	if found && total > 0 {
		return &total
	}

	// Fallback: first floating-point-looking substring anywhere in the text.
	if num := numberRe.FindString(normalized); num != "" {
		if v, err := strconv.ParseFloat(num, 64); err == nil {
			return &v
		}
	}

	return nil
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
