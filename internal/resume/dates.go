package resume

import (
	"strings"
	"time"
)

var dateLayouts = []string{"2006-01", "2006-01-02", time.RFC3339, "2006"}

// ParseDate parses the month-input values the builder forms produce.
func ParseDate(raw string) (time.Time, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatMonth renders a date as "January 2024". Unparsable values are returned unchanged.
func FormatMonth(raw string) string {
	t, ok := ParseDate(raw)
	if !ok {
		return strings.TrimSpace(raw)
	}
	return t.Format("January 2006")
}
