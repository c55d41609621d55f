package transform

import (
	"bytes"
	"encoding/csv"

	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
)

// writeCSV emits RFC-4180-quoted CSV: header row is target field names in
// schema order, multi-values already "||"-joined by coerceCell. It
// streams to an internal staging buffer, committed on success, per the
// cancellation model's "no partial writes" guarantee.
func writeCSV(columns []schemaregistry.FieldDefinition, records [][]string) ([]byte, error) {
	var staging bytes.Buffer
	w := csv.NewWriter(&staging)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Name
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return staging.Bytes(), nil
}
