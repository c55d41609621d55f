package transform

import (
	"strings"
	"time"

	"github.com/yourorg/hr-field-resolver/internal/datefmt"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
)

var trueTokens = map[string]bool{"true": true, "yes": true, "1": true, "t": true, "y": true}
var falseTokens = map[string]bool{"false": true, "no": true, "0": true, "f": true, "n": true, "": true, "null": true}

// coerceCell implements the §4.7 type-coercion table for one cell. multi
// reports whether the source column was flagged multi-valued with a comma
// separator during ingestion (controls the comma fallback for list<T>).
func coerceCell(t schemaregistry.FieldDefinition, raw string, multi bool) string {
	raw = strings.TrimSpace(raw)

	switch {
	case t.SemanticType.IsList():
		return joinList(splitListCell(raw, multi))
	case t.SemanticType == schemaregistry.TypeDate:
		if parsed, err := datefmt.ParseAny(t.Format, raw); err == nil {
			return datefmt.FormatDate(parsed)
		}
		return raw
	case t.SemanticType == schemaregistry.TypeDateTime:
		if parsed, err := datefmt.ParseAny(t.Format, raw); err == nil {
			return datefmt.FormatDateTime(parsed)
		}
		return raw
	case t.SemanticType == schemaregistry.TypeBoolean:
		lower := strings.ToLower(raw)
		if trueTokens[lower] {
			return "true"
		}
		if falseTokens[lower] {
			return "false"
		}
		return raw
	default:
		return raw
	}
}

// splitListCell splits a raw cell into logical values, per §4.7: "||"
// first, falling back to "," only when the column was flagged
// multi-valued with a comma separator during ingestion.
func splitListCell(raw string, multi bool) []string {
	var parts []string
	if strings.Contains(raw, "||") {
		parts = strings.Split(raw, "||")
	} else if multi && strings.Contains(raw, ",") {
		parts = strings.Split(raw, ",")
	} else {
		parts = []string{raw}
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinList(values []string) string {
	return strings.Join(values, "||")
}

// autoPopulateTimestamp returns the current UTC time formatted per t, for
// a required timestamp target that has no mapped source (§4.7).
func autoPopulateTimestamp(t schemaregistry.FieldDefinition) string {
	now := time.Now().UTC()
	if t.SemanticType == schemaregistry.TypeDateTime {
		return datefmt.FormatDateTime(now)
	}
	return datefmt.FormatDate(now)
}
