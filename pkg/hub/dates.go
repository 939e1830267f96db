package hub

import (
	"strings"
	"time"
)

// Layouts accepted for date cells, tried in order. Zone-less values are read as UTC
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseDate parses an ISO-8601 date or date-time cell. ok is false for empty or unparseable values
func ParseDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Timestamp formats a time the way rows store creation and update times
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// DateOnly formats a time as a plain calendar date
func DateOnly(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
