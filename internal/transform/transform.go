// Package transform implements the Transformer (C9): mapping application,
// type coercion, and CSV/XML emission with a hard row-count invariant,
// per spec §4.7.
package transform

import (
	"fmt"

	"github.com/yourorg/hr-field-resolver/internal/ingest"
	"github.com/yourorg/hr-field-resolver/internal/resolver"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
)

// Format selects the emitted artifact's shape.
type Format string

const (
	FormatCSV Format = "csv"
	FormatXML Format = "xml"
)

// Apply runs the full §4.7 pipeline: build the output column list, apply
// mappings and type coercion row by row, emit the requested format, and
// verify the row-count invariant (I1) before returning.
//
// multiValueCols names the source columns the Ingestor flagged as
// multi-valued with a comma separator (see
// ParseMetadata.MultiValueColumns); it controls the comma-fallback branch
// of list<T> coercion.
func Apply(table *ingest.Table, schema *schemaregistry.EntitySchema, mappings []resolver.Mapping, format Format, multiValueCols map[string]bool) ([]byte, error) {
	if schema == nil {
		return nil, &InvalidMappingsError{Reason: "schema is nil"}
	}
	if table.RowCount() == 0 {
		return nil, &InvalidMappingsError{Reason: "table has no rows"}
	}

	columns := outputColumns(schema, mappings)
	if len(columns) == 0 {
		return nil, &InvalidMappingsError{Reason: "no target column is mapped or required"}
	}

	records := buildRecords(table, columns, mappings, multiValueCols)
	inputRows := table.RowCount()

	switch format {
	case FormatCSV:
		doc, err := writeCSV(columns, records)
		if err != nil {
			return nil, err
		}
		if len(records) != inputRows {
			return nil, dataLoss(inputRows, len(records), table)
		}
		return doc, nil

	case FormatXML:
		doc, err := writeXML(schema.Entity, columns, records)
		if err != nil {
			return nil, err
		}
		outputRows, err := countXMLRecords(schema.Entity, doc)
		if err != nil {
			return nil, err
		}
		if outputRows != inputRows {
			return nil, dataLoss(inputRows, outputRows, table)
		}
		return doc, nil

	default:
		return nil, fmt.Errorf("transform: unknown format %q", format)
	}
}

func dataLoss(inputRows, outputRows int, table *ingest.Table) *DataLossError {
	lost := make([]int, 0, 8)
	for i := outputRows; i < inputRows && len(lost) < 8; i++ {
		lost = append(lost, i)
	}
	return &DataLossError{
		InputRows:  inputRows,
		OutputRows: outputRows,
		LostRows:   lost,
		Reasons:    []string{"emitted record count did not match input row count"},
	}
}
