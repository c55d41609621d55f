package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yourorg/hr-field-resolver/internal/resolver"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
)

// emailRe, urlRe and dateLayouts back the informational type sniff of
// §4.6 step 6. Sniffing never rejects a file; it only annotates the
// Table for the Validator and Field Resolver to consume.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var urlRe = regexp.MustCompile(`^https?://[^\s]+$`)
var booleanTokens = map[string]bool{
	"true": true, "false": true, "yes": true, "no": true, "y": true, "n": true, "1": true, "0": true,
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"01-02-2006",
	"2006/01/02",
	"Jan 2, 2006",
	"02 Jan 2006",
}

// sniffColumnType classifies a column from its non-empty sample values.
// It requires a clear majority (>=0.8) to commit to anything more
// specific than TypeString.
func sniffColumnType(values []string) schemaregistry.SemanticType {
	total, numeric, email, date, boolean, url := 0, 0, 0, 0, 0, 0
	for _, raw := range values {
		for _, v := range splitMultiValue(raw) {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			total++
			switch {
			case emailRe.MatchString(v):
				email++
			case urlRe.MatchString(v):
				url++
			case looksLikeDate(v):
				date++
			case looksLikeNumber(v):
				numeric++
			case booleanTokens[strings.ToLower(v)]:
				boolean++
			}
		}
	}
	if total == 0 {
		return schemaregistry.TypeString
	}

	const majority = 0.8
	switch {
	case float64(email)/float64(total) >= majority:
		return schemaregistry.TypeEmail
	case float64(url)/float64(total) >= majority:
		return schemaregistry.TypeURL
	case float64(date)/float64(total) >= majority:
		return schemaregistry.TypeDate
	case float64(boolean)/float64(total) >= majority:
		return schemaregistry.TypeBoolean
	case float64(numeric)/float64(total) >= majority:
		return schemaregistry.TypeNumber
	default:
		return schemaregistry.TypeString
	}
}

func looksLikeNumber(v string) bool {
	_, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	return err == nil
}

func looksLikeDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

// splitMultiValue splits on the "||" multi-value separator so type
// sniffing sees individual logical values, not joined blobs. Comma-joined
// cells are not split.
func splitMultiValue(v string) []string {
	if strings.Contains(v, multiValueSeparator) {
		return strings.Split(v, multiValueSeparator)
	}
	return []string{v}
}

// ColumnStats computes the shape ratios the resolver's opt-in
// value-statistics tie-break consumes.
func ColumnStats(values []string) resolver.ColumnStats {
	total, numeric, email, date, url := 0, 0, 0, 0, 0
	for _, raw := range values {
		for _, v := range splitMultiValue(raw) {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			total++
			switch {
			case emailRe.MatchString(v):
				email++
			case urlRe.MatchString(v):
				url++
			case looksLikeDate(v):
				date++
			case looksLikeNumber(v):
				numeric++
			}
		}
	}
	if total == 0 {
		return resolver.ColumnStats{}
	}
	return resolver.ColumnStats{
		NumericRatio: float64(numeric) / float64(total),
		EmailRatio:   float64(email) / float64(total),
		DateRatio:    float64(date) / float64(total),
		URLRatio:     float64(url) / float64(total),
	}
}
