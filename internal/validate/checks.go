package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourorg/hr-field-resolver/internal/datefmt"
	"github.com/yourorg/hr-field-resolver/internal/fuzzy"
	"github.com/yourorg/hr-field-resolver/internal/ingest"
	"github.com/yourorg/hr-field-resolver/internal/normalize"
	"github.com/yourorg/hr-field-resolver/internal/resolver"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
)

// listSeparator mirrors the Ingestor's primary multi-value token (§4.6
// step 4); the Validator inspects individual list elements the same way.
const listSeparator = "||"

// headerSuggestionThreshold gates MISSPELLED_HEADER vs. UNKNOWN_HEADER
// (§4.5 header reconciliation).
const headerSuggestionThreshold = 0.80

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate runs every §4.5 check, in order, and returns the accumulated
// Report.
func Validate(table *ingest.Table, schema *schemaregistry.EntitySchema, mappings []resolver.Mapping) *Report {
	report := &Report{IsValid: true}

	checkStructure(report, table)
	checkHeaderReconciliation(report, table, schema, mappings)
	checkRequiredFields(report, table, schema, mappings)
	checkTypedFields(report, table, schema, mappings)
	checkLengths(report, table, schema, mappings)
	checkCharacters(report, table)

	return report
}

func checkStructure(report *Report, table *ingest.Table) {
	if len(table.Rows) == 0 {
		report.add(Issue{Code: CodeTableEmpty, Message: "table has no data rows"})
	}
	if table.HasDuplicateHeaders() {
		report.add(Issue{Code: CodeDuplicateColumns, Message: "two or more columns share the same header name"})
	}
	if table.HasBlankHeader() {
		report.add(Issue{Code: CodeEmptyColumns, Message: "one or more columns have a blank header"})
	}
}

func checkHeaderReconciliation(report *Report, table *ingest.Table, schema *schemaregistry.EntitySchema, mappings []resolver.Mapping) {
	mapped := make(map[string]bool, len(mappings))
	for _, m := range mappings {
		mapped[m.Source] = true
	}

	for _, header := range table.Headers {
		if mapped[header] {
			continue
		}
		best, bestRatio := "", 0.0
		ns := normalize.Normalize(header)
		for _, f := range schema.Fields {
			ratio := fuzzy.Ratio(ns, normalize.Normalize(f.DisplayName))
			if ratio > bestRatio {
				best, bestRatio = f.Name, ratio
			}
		}
		if bestRatio >= headerSuggestionThreshold {
			report.add(Issue{Code: CodeMisspelledHeader, Column: header, Suggestion: best,
				Message: fmt.Sprintf("column %q closely resembles target %q", header, best)})
		} else {
			report.add(Issue{Code: CodeUnknownHeader, Column: header,
				Message: fmt.Sprintf("column %q doesn't correspond to any target field", header)})
		}
	}
}

func checkRequiredFields(report *Report, table *ingest.Table, schema *schemaregistry.EntitySchema, mappings []resolver.Mapping) {
	byTarget := make(map[string]resolver.Mapping, len(mappings))
	for _, m := range mappings {
		byTarget[m.Target] = m
	}

	for _, t := range schema.RequiredFields() {
		m, ok := byTarget[t.Name]
		if !ok {
			report.add(Issue{Code: CodeMissingRequiredField, Target: t.Name,
				Message: fmt.Sprintf("required target %q has no mapped source column", t.Name)})
			continue
		}
		values := table.Column(m.Source)
		empty := 0
		for _, v := range values {
			if strings.TrimSpace(v) == "" {
				empty++
			}
		}
		if empty > 0 {
			report.add(Issue{Code: CodeMissingRequiredData, Target: t.Name, Column: m.Source, Count: empty,
				Message: fmt.Sprintf("%d row(s) are missing a value for required field %q", empty, t.Name)})
		}
	}
}

func checkTypedFields(report *Report, table *ingest.Table, schema *schemaregistry.EntitySchema, mappings []resolver.Mapping) {
	for _, m := range mappings {
		t, ok := schema.FieldByName(m.Target)
		if !ok {
			continue
		}
		values := table.Column(m.Source)
		switch {
		case t.SemanticType == schemaregistry.TypeEmail || t.SemanticType == schemaregistry.TypeListEmail:
			checkEmailColumn(report, m, t, values)
		case t.SemanticType == schemaregistry.TypeDate || t.SemanticType == schemaregistry.TypeDateTime:
			checkDateColumn(report, m, t, values)
		case t.SemanticType == schemaregistry.TypeNumber:
			checkNumberColumn(report, m, t, values)
		}
	}
}

func checkEmailColumn(report *Report, m resolver.Mapping, t schemaregistry.FieldDefinition, values []string) {
	invalid := 0
	for _, v := range values {
		for _, part := range splitListValue(v, t.SemanticType) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if !emailRe.MatchString(part) {
				invalid++
			}
		}
	}
	if invalid > 0 {
		report.add(Issue{Code: CodeInvalidEmail, Target: t.Name, Column: m.Source, Count: invalid,
			Message: fmt.Sprintf("%d value(s) in %q don't look like an email address", invalid, m.Source)})
	}
}

func checkDateColumn(report *Report, m resolver.Mapping, t schemaregistry.FieldDefinition, values []string) {
	invalid := 0
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, err := datefmt.ParseAny(t.Format, v); err != nil {
			invalid++
		}
	}
	if invalid > 0 {
		report.add(Issue{Code: CodeInvalidDate, Target: t.Name, Column: m.Source, Count: invalid,
			Message: fmt.Sprintf("%d value(s) in %q don't parse as a date", invalid, m.Source)})
	}
}

func checkNumberColumn(report *Report, m resolver.Mapping, t schemaregistry.FieldDefinition, values []string) {
	invalid := 0
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64); err != nil {
			invalid++
		}
	}
	if invalid > 0 {
		report.add(Issue{Code: CodeInvalidNumber, Target: t.Name, Column: m.Source, Count: invalid,
			Message: fmt.Sprintf("%d value(s) in %q aren't numeric", invalid, m.Source)})
	}
}

func checkLengths(report *Report, table *ingest.Table, schema *schemaregistry.EntitySchema, mappings []resolver.Mapping) {
	for _, m := range mappings {
		t, ok := schema.FieldByName(m.Target)
		if !ok || t.MaxLength <= 0 {
			continue
		}
		exceeded := 0
		for _, v := range table.Column(m.Source) {
			if len(v) > t.MaxLength {
				exceeded++
			}
		}
		if exceeded > 0 {
			report.add(Issue{Code: CodeExceedsMaxLength, Target: t.Name, Column: m.Source, Count: exceeded,
				Message: fmt.Sprintf("%d value(s) in %q exceed the %d character limit", exceeded, m.Source, t.MaxLength)})
		}
	}
}

func checkCharacters(report *Report, table *ingest.Table) {
	for _, header := range table.Headers {
		count := 0
		for _, v := range table.Column(header) {
			if containsControlBytes(v) {
				count++
			}
		}
		if count > 0 {
			report.add(Issue{Code: CodeNullBytes, Column: header, Count: count,
				Message: fmt.Sprintf("%d value(s) in %q contain null bytes or control characters", count, header)})
		}
	}
}

func containsControlBytes(s string) bool {
	for _, r := range s {
		if r == 0 {
			return true
		}
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}

func splitListValue(v string, t schemaregistry.SemanticType) []string {
	if !t.IsList() && t != schemaregistry.TypeListEmail {
		return []string{v}
	}
	if strings.Contains(v, listSeparator) {
		return strings.Split(v, listSeparator)
	}
	return []string{v}
}
