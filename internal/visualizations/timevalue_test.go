package visualizations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeValue(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		minutes float64
		unit    string
	}{
		{"bare number is minutes", "90", 90, "minutes"},
		{"hours long form", "3 hours", 180, "hours"},
		{"hours short form", "2h", 120, "hours"},
		{"single hour", "1 hour", 60, "hours"},
		{"minutes long form", "20 minutes", 20, "minutes"},
		{"minutes short form", "45min", 45, "minutes"},
		{"seconds", "45s", 0.75, "seconds"},
		{"underscores as whitespace", "3_hours", 180, "hours"},
		{"decimal hours", "1.5 hours", 90, "hours"},
		{"padded input", "  20  minutes ", 20, "minutes"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tv := ParseTimeValue(tc.raw)
			assert.InDelta(t, tc.minutes, tv.Minutes, 1e-9)
			assert.Equal(t, tc.unit, tv.Unit)
			assert.Equal(t, tc.raw, tv.Raw)
		})
	}
}

// Unparseable values silently become zero minutes. The calibration fixtures
// depend on this; the test pins the behavior so nobody "fixes" it silently.
func TestParseTimeValueZeroFallback(t *testing.T) {
	for _, raw := range []string{"", "soon", "three hours", "5 fortnights", "h3"} {
		tv := ParseTimeValue(raw)
		assert.Zero(t, tv.Minutes, "raw=%q", raw)
		assert.Equal(t, "minutes", tv.Unit, "raw=%q", raw)
	}
}
