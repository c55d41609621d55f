package schemaregistry

import "testing"

func TestNewRegistryDefaults(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, entity := range []string{"Candidate", "Employee", "Position"} {
		if _, ok := r.Get(entity); !ok {
			t.Fatalf("expected default schema for %q", entity)
		}
	}
}

func TestEntitySchemaFieldByName(t *testing.T) {
	r, _ := NewRegistry()
	schema, _ := r.Get("Candidate")

	field, ok := schema.FieldByName("EMPLOYEE_ID")
	if ok {
		t.Fatalf("did not expect Candidate to have EMPLOYEE_ID, got %+v", field)
	}

	field, ok = schema.FieldByName("CANDIDATE_ID")
	if !ok {
		t.Fatal("expected CANDIDATE_ID field on Candidate schema")
	}
	if !field.Required {
		t.Fatal("expected CANDIDATE_ID to be required")
	}
}

func TestSchemaHashStableAcrossLoads(t *testing.T) {
	r1, _ := NewRegistry()
	r2, _ := NewRegistry()

	h1, _ := r1.SchemaHash("Employee")
	h2, _ := r2.SchemaHash("Employee")
	if h1 == "" || h1 != h2 {
		t.Fatalf("expected stable non-empty schema hash, got %q and %q", h1, h2)
	}
}

func TestRegistryRejectsDuplicateFieldNames(t *testing.T) {
	bad := &EntitySchema{
		Entity: "Broken",
		Fields: []FieldDefinition{
			{Name: "X", DisplayName: "X"},
			{Name: "X", DisplayName: "X again"},
		},
	}
	if err := bad.validate(); err == nil {
		t.Fatal("expected validation error for duplicate field name")
	}
}
