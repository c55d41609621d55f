package ingest

import (
	"encoding/csv"
	"strings"
)

// multiValueSeparator is the preferred multi-value join token; spec §4.6
// step 4 falls back to a bare comma only when the column delimiter isn't
// already a comma and the column was not flagged for "||".
const multiValueSeparator = "||"

// parseCSV turns decoded text plus a detected delimiter into a Table and
// the set of columns it judges to be multi-valued.
func parseCSV(text string, delim rune) (*Table, []MultiValueColumn, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, &InvalidFileFormatError{Reason: "malformed CSV: " + err.Error()}
	}
	if len(records) == 0 {
		return nil, nil, &InvalidFileFormatError{Reason: "file has no rows"}
	}

	headers := records[0]
	width := len(headers)
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, width)
		copy(row, rec)
		rows = append(rows, row)
	}

	table := &Table{Headers: headers, Rows: rows}
	mv := detectMultiValueColumns(table, delim)
	return table, mv, nil
}

// detectMultiValueColumns flags columns whose cells carry more than one
// logical value, per §4.6 step 4: "||" wins whenever it appears in more
// than multiValueThreshold of the column's non-empty cells; a bare comma
// (same threshold) is accepted only when the column delimiter itself
// isn't a comma.
func detectMultiValueColumns(t *Table, delim rune) []MultiValueColumn {
	var out []MultiValueColumn
	for col, header := range t.Headers {
		values := columnValues(t, col)
		if usesSeparator(values, multiValueSeparator) {
			out = append(out, MultiValueColumn{Column: header, Separator: multiValueSeparator, SampleValues: sampleNonEmpty(values, 3)})
			continue
		}
		if delim != ',' && usesSeparator(values, ",") {
			out = append(out, MultiValueColumn{Column: header, Separator: ",", SampleValues: sampleNonEmpty(values, 3)})
		}
	}
	return out
}

func columnValues(t *Table, col int) []string {
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if col < len(row) {
			out = append(out, row[col])
		}
	}
	return out
}

// multiValueThreshold is the §4.6 step 4 "more than 5% of sampled cells"
// requirement; a single occurrence in a large column is ordinary text,
// not a multi-valued field.
const multiValueThreshold = 0.05

func usesSeparator(values []string, sep string) bool {
	sampled := 0
	hits := 0
	for _, v := range values {
		if v == "" {
			continue
		}
		sampled++
		if strings.Contains(v, sep) {
			hits++
		}
	}
	if sampled == 0 {
		return false
	}
	return float64(hits)/float64(sampled) > multiValueThreshold
}

func sampleNonEmpty(values []string, max int) []string {
	var out []string
	for _, v := range values {
		if v == "" {
			continue
		}
		out = append(out, v)
		if len(out) >= max {
			break
		}
	}
	return out
}
