// Package datefmt centralizes the multi-format date/time parsing shared by
// the Validator and Transformer, so both sides of §4.5/§4.7 agree on what
// counts as a valid date.
package datefmt

import (
	"fmt"
	"strings"
	"time"
)

// knownFormats maps a schema's declared FieldDefinition.Format string
// (written the way a human specs a date shape) to a Go time layout.
var knownFormats = map[string]string{
	"YYYY-MM-DD":           "2006-01-02",
	"YYYY-MM-DDTHH:MM:SS":  "2006-01-02T15:04:05",
	"YYYY-MM-DD HH:MM:SS":  "2006-01-02 15:04:05",
	"MM/DD/YYYY":           "01/02/2006",
	"DD/MM/YYYY":           "02/01/2006",
	"MM-DD-YYYY":           "01-02-2006",
}

// fallbackLayouts are attempted, in order, whenever no format hint is
// supplied or the hint doesn't match.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"01-02-2006",
}

// ParseAny attempts formatHint first (if it names a known layout), then
// falls through the fixed fallback list. It returns the parsed time.
func ParseAny(formatHint, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("datefmt: empty value")
	}

	if formatHint != "" {
		if layout, ok := knownFormats[formatHint]; ok {
			if t, err := time.Parse(layout, value); err == nil {
				return t, nil
			}
		}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("datefmt: unparseable date %q", value)
}

// FormatDate renders t as a bare date, per §4.7 output shape.
func FormatDate(t time.Time) string { return t.Format("2006-01-02") }

// FormatDateTime renders t as a date+time, per §4.7 output shape.
func FormatDateTime(t time.Time) string { return t.Format("2006-01-02T15:04:05") }
