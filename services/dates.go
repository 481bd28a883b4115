package services

import (
	"time"
)

// Wire dates are ISO-8601 date-times in UTC. Responses carry no offset
// suffix; requests may include one (or fractional seconds) and are
// normalized to UTC.
const wireDateLayout = "2006-01-02T15:04:05"

var wireDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// parseWireDate parses a wire date string. A string that matches none of
// the accepted layouts degrades to the current instant instead of an error:
// this lenient fallback is long-standing externally observable behavior and
// clients may rely on it, so it stays even though a typo silently becomes
// "now" (see DESIGN.md).
func parseWireDate(s string) time.Time {
	for _, layout := range wireDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}

// formatWireDate normalizes the instant to UTC and formats it for the wire.
func formatWireDate(t time.Time) string {
	return t.UTC().Format(wireDateLayout)
}
