// Package facade implements the Resolver Facade (C11): the programmatic
// surface a thin driver consumes, composing Storage, the Entity
// Classifier, the Field Resolver, and the Validator, per spec §4.9/§6.
package facade

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourorg/hr-field-resolver/internal/alias"
	"github.com/yourorg/hr-field-resolver/internal/classify"
	"github.com/yourorg/hr-field-resolver/internal/embedding"
	"github.com/yourorg/hr-field-resolver/internal/ingest"
	"github.com/yourorg/hr-field-resolver/internal/resolver"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
	"github.com/yourorg/hr-field-resolver/internal/storage"
	"github.com/yourorg/hr-field-resolver/internal/transform"
	"github.com/yourorg/hr-field-resolver/internal/validate"
)

// ErrSchemaNotFound surfaces SCHEMA_NOT_FOUND per spec §6.
var ErrSchemaNotFound = errors.New("facade: schema not found")

// Facade wires the core components behind the five public operations.
type Facade struct {
	Storage    *storage.Store
	Registry   *schemaregistry.Registry
	Aliases    *alias.Dictionary
	Embeddings *embedding.Index
	MaxUpload  int64

	// UseValueStatistics gates the supplemented Stage C tie-break
	// heuristic (SPEC_FULL.md §4); off by default.
	UseValueStatistics bool
}

// New builds a Facade from its collaborators. UseValueStatistics defaults
// to false; set the field directly to opt in.
func New(store *storage.Store, registry *schemaregistry.Registry, aliases *alias.Dictionary, embeddings *embedding.Index, maxUpload int64) *Facade {
	return &Facade{Storage: store, Registry: registry, Aliases: aliases, Embeddings: embeddings, MaxUpload: maxUpload}
}

// Ingest implements ingest(bytes, filename) -> (file_id, ParseMetadata).
func (f *Facade) Ingest(raw []byte, filename string) (string, *ingest.ParseMetadata, error) {
	table, meta, err := ingest.Ingest(raw, filename, f.MaxUpload)
	if err != nil {
		return "", nil, err
	}
	id := f.Storage.Store(table, meta)
	return id, meta, nil
}

// DetectEntity implements detect_entity(file_id) -> {entity, confidence, all_scores}.
func (f *Facade) DetectEntity(ctx context.Context, fileID string) (*classify.Result, error) {
	table, _, err := f.Storage.Retrieve(fileID)
	if err != nil {
		return nil, err
	}
	r := resolver.New(f.Aliases, f.Embeddings)
	return classify.Classify(ctx, r, f.Registry, table.Headers)
}

// AutoMap implements auto_map(file_id, entity_name) -> ResolutionReport.
func (f *Facade) AutoMap(ctx context.Context, fileID, entityName string) (*resolver.ResolutionReport, error) {
	table, _, err := f.Storage.Retrieve(fileID)
	if err != nil {
		return nil, err
	}
	schema, ok := f.Registry.Get(entityName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, entityName)
	}

	r := resolver.New(f.Aliases, f.Embeddings)
	opts := resolver.Options{
		UseValueStatistics: f.UseValueStatistics,
		Stats:              columnStatsByHeader(table),
	}
	return r.Resolve(ctx, table.Headers, schema, opts)
}

// Validate implements validate(file_id, entity_name, mappings) -> ValidationReport.
func (f *Facade) Validate(fileID, entityName string, mappings []resolver.Mapping) (*validate.Report, error) {
	table, _, err := f.Storage.Retrieve(fileID)
	if err != nil {
		return nil, err
	}
	schema, ok := f.Registry.Get(entityName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, entityName)
	}
	return validate.Validate(table, schema, mappings), nil
}

// Transform implements transform(file_id, entity_name, mappings, format) -> bytes.
// It refuses to run against a failing ValidationReport, per §4.7's
// precondition.
func (f *Facade) Transform(fileID, entityName string, mappings []resolver.Mapping, format transform.Format) ([]byte, error) {
	table, meta, err := f.Storage.Retrieve(fileID)
	if err != nil {
		return nil, err
	}
	schema, ok := f.Registry.Get(entityName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, entityName)
	}

	report := validate.Validate(table, schema, mappings)
	if !report.IsValid {
		return nil, &InvalidStateError{Reason: "validation failed", Issues: report.Issues}
	}

	multiValued := make(map[string]bool, len(meta.MultiValueColumns))
	for _, mv := range meta.MultiValueColumns {
		multiValued[mv.Column] = mv.Separator == ","
	}
	return transform.Apply(table, schema, mappings, format, multiValued)
}

func columnStatsByHeader(table *ingest.Table) map[string]resolver.ColumnStats {
	stats := make(map[string]resolver.ColumnStats, len(table.Headers))
	for _, header := range table.Headers {
		stats[header] = ingest.ColumnStats(table.Column(header))
	}
	return stats
}
