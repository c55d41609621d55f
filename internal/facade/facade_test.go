package facade

import (
	"context"
	"testing"
	"time"

	"github.com/yourorg/hr-field-resolver/internal/alias"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
	"github.com/yourorg/hr-field-resolver/internal/storage"
	"github.com/yourorg/hr-field-resolver/internal/transform"
)

func newTestFacade(t *testing.T) *Facade {
	t.Helper()
	registry, err := schemaregistry.NewRegistry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	aliases, err := alias.NewWithDefaults()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return New(storage.New(time.Hour), registry, aliases, nil, 1<<20)
}

func TestFacadeEndToEndHappyPath(t *testing.T) {
	f := newTestFacade(t)
	raw := []byte("EmployeeID,FirstName,LastName,Email\n1,Alice,Smith,alice@example.com\n2,Bob,Jones,bob@example.com\n")

	fileID, _, err := f.Ingest(raw, "roster.csv")
	if err != nil {
		t.Fatalf("Ingest: unexpected error: %v", err)
	}

	detected, err := f.DetectEntity(context.Background(), fileID)
	if err != nil {
		t.Fatalf("DetectEntity: unexpected error: %v", err)
	}
	if detected.Entity != "Employee" {
		t.Fatalf("expected Employee detected, got %q", detected.Entity)
	}

	report, err := f.AutoMap(context.Background(), fileID, detected.Entity)
	if err != nil {
		t.Fatalf("AutoMap: unexpected error: %v", err)
	}
	if len(report.Mappings) == 0 {
		t.Fatal("expected at least one mapping")
	}

	validation, err := f.Validate(fileID, detected.Entity, report.Mappings)
	if err != nil {
		t.Fatalf("Validate: unexpected error: %v", err)
	}
	if !validation.IsValid {
		t.Fatalf("expected valid report, got issues: %+v", validation.Issues)
	}

	out, err := f.Transform(fileID, detected.Entity, report.Mappings, transform.FormatCSV)
	if err != nil {
		t.Fatalf("Transform: unexpected error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty transform output")
	}
}

func TestFacadeTransformRefusesInvalidMappings(t *testing.T) {
	f := newTestFacade(t)
	raw := []byte("FirstName\nAlice\n")
	fileID, _, err := f.Ingest(raw, "partial.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = f.Transform(fileID, "Employee", nil, transform.FormatCSV)
	if err == nil {
		t.Fatal("expected Transform to refuse a table missing required fields")
	}
	if _, ok := err.(*InvalidStateError); !ok {
		t.Errorf("expected *InvalidStateError, got %T", err)
	}
}

func TestFacadeRetrieveUnknownFileID(t *testing.T) {
	f := newTestFacade(t)
	_, err := f.AutoMap(context.Background(), "missing", "Employee")
	if err == nil {
		t.Fatal("expected an error for unknown file_id")
	}
}
