package transform

import (
	"github.com/yourorg/hr-field-resolver/internal/ingest"
	"github.com/yourorg/hr-field-resolver/internal/resolver"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
)

// outputColumns computes the emitted column list: mapped targets plus any
// unmapped required targets (emitted empty), in schema.fields order,
// per §4.7.
func outputColumns(schema *schemaregistry.EntitySchema, mappings []resolver.Mapping) []schemaregistry.FieldDefinition {
	mappedTargets := make(map[string]bool, len(mappings))
	for _, m := range mappings {
		mappedTargets[m.Target] = true
	}

	var out []schemaregistry.FieldDefinition
	for _, f := range schema.Fields {
		if mappedTargets[f.Name] || f.Required {
			out = append(out, f)
		}
	}
	return out
}

// buildRecords applies mappings and type coercion to every input row,
// producing one output record (ordered per columns) per input row.
func buildRecords(table *ingest.Table, columns []schemaregistry.FieldDefinition, mappings []resolver.Mapping, multiValueCols map[string]bool) [][]string {
	sourceByTarget := make(map[string]string, len(mappings))
	for _, m := range mappings {
		sourceByTarget[m.Target] = m.Source
	}

	records := make([][]string, table.RowCount())
	for r := 0; r < table.RowCount(); r++ {
		record := make([]string, len(columns))
		for i, col := range columns {
			source, hasSource := sourceByTarget[col.Name]
			if !hasSource {
				if col.Required && col.SemanticType == schemaregistry.TypeDateTime {
					record[i] = autoPopulateTimestamp(col)
				}
				continue
			}
			idx := table.ColumnIndex(source)
			if idx < 0 {
				continue
			}
			raw := table.Cell(r, idx)
			record[i] = coerceCell(col, raw, multiValueCols[source])
		}
		records[r] = record
	}
	return records
}
