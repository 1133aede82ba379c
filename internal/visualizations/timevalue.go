package visualizations

import (
	"regexp"
	"strconv"
	"strings"
)

var timeValuePattern = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*([a-zA-Z]*)$`)

// ParseTimeValue normalizes a human time expression to minutes. Accepted
// forms: a bare number (assumed minutes), "3 hours", "20 minutes", "45s".
// Underscores count as whitespace so chatbot payloads like "3_hours" work.
//
// Anything unparseable falls back to zero minutes. That silent fallback is
// long-standing behavior the calibration fixtures depend on; treat it as
// contract, not as a bug to fix.
func ParseTimeValue(raw string) TimeValue {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, "_", " "))
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	fallback := TimeValue{Minutes: 0, Unit: "minutes", Raw: raw}
	if cleaned == "" {
		return fallback
	}

	m := timeValuePattern.FindStringSubmatch(cleaned)
	if m == nil {
		return fallback
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return fallback
	}

	unit, perMinute, ok := normalizeTimeUnit(m[2])
	if !ok {
		return fallback
	}
	return TimeValue{Minutes: value * perMinute, Unit: unit, Raw: raw}
}

// MinutesValue builds a TimeValue directly from a minute count.
func MinutesValue(minutes float64) TimeValue {
	return TimeValue{Minutes: minutes, Unit: "minutes"}
}

// HoursValue builds a TimeValue from an hour count, retaining hours as the
// display unit.
func HoursValue(hours float64) TimeValue {
	return TimeValue{Minutes: hours * 60, Unit: "hours"}
}

func normalizeTimeUnit(raw string) (unit string, minutesPer float64, ok bool) {
	switch strings.ToLower(raw) {
	case "", "m", "min", "mins", "minute", "minutes":
		return "minutes", 1, true
	case "h", "hr", "hrs", "hour", "hours":
		return "hours", 60, true
	case "s", "sec", "secs", "second", "seconds":
		return "seconds", 1.0 / 60.0, true
	}
	return "", 0, false
}
