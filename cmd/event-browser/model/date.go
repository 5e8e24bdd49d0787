package model

import (
	"strings"
	"time"
)

// TimestampLayout matches the millisecond ISO form used for createdAt and
// updatedAt.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const dateOnlyLayout = "2006-01-02"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	dateOnlyLayout,
}

// FormatTimestamp renders t in UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseDate parses the ISO-8601 variants events are stored with. Values
// without a zone are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	t, _, ok := ParseDateLayout(s)
	return t, ok
}

// ParseDateLayout is ParseDate that also reports whether s carried only a
// calendar date.
func ParseDateLayout(s string) (time.Time, bool, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, layout == dateOnlyLayout, true
		}
	}
	return time.Time{}, false, false
}
