package zkteco

import (
	"strings"
	"time"
)

// Layouts seen from different firmware and bridge versions.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05.999999",
	"2006/01/02 15:04:05",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp turns a terminal timestamp into a wall-clock time in UTC.
// Values carrying an offset are first converted into loc. It returns nil for
// anything it cannot read.
func ParseTimestamp(raw string, loc *time.Location) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return wallClock(t.In(loc))
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return wallClock(t)
		}
	}
	return nil
}

// wallClock keeps whole seconds only. Terminals record punches to the second,
// so two punches in the same second share one ledger key.
func wallClock(t time.Time) *time.Time {
	w := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
	return &w
}
