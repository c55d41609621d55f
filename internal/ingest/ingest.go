package ingest

import (
	"path/filepath"
	"strings"

	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
)

// Ingest runs the full §4.6 pipeline against a raw upload: size gate,
// encoding detection, format branch (CSV/pipe/TSV vs. XLSX), multi-value
// detection, and informational type sniffing. It never returns a partial
// Table: either the whole file ingests or an error explains why not.
func Ingest(raw []byte, filename string, maxBytes int64) (*Table, *ParseMetadata, error) {
	if int64(len(raw)) > maxBytes {
		return nil, nil, &FileTooLargeError{SizeBytes: int64(len(raw)), MaxBytes: maxBytes}
	}

	ext := strings.ToLower(filepath.Ext(filename))

	if ext == ".xlsx" || ext == ".xls" {
		table, mv, err := parseXLSX(raw)
		if err != nil {
			return nil, nil, err
		}
		meta := finishTable(table, mv, "", "", ext[1:])
		return table, meta, nil
	}

	text, encodingName, err := decodeText(raw)
	if err != nil {
		return nil, nil, err
	}

	delim, err := sniffDelimiter(text)
	if err != nil {
		return nil, nil, err
	}

	table, mv, err := parseCSV(text, delim)
	if err != nil {
		return nil, nil, err
	}

	meta := finishTable(table, mv, encodingName, string(delim), "csv")
	return table, meta, nil
}

// finishTable runs type sniffing over every column, annotates the
// Table's ColumnTypes, and assembles ParseMetadata.
func finishTable(table *Table, mv []MultiValueColumn, encodingName, delimiter, sourceFormat string) *ParseMetadata {
	table.ColumnTypes = make(map[string]schemaregistry.SemanticType, len(table.Headers))
	for col, header := range table.Headers {
		table.ColumnTypes[header] = sniffColumnType(columnValues(table, col))
	}
	return &ParseMetadata{
		Encoding:          encodingName,
		Delimiter:         delimiter,
		RowCount:          table.RowCount(),
		ColumnCount:       table.ColumnCount(),
		MultiValueColumns: mv,
		SourceFormat:      sourceFormat,
	}
}
