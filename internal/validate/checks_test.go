package validate

import (
	"testing"

	"github.com/yourorg/hr-field-resolver/internal/ingest"
	"github.com/yourorg/hr-field-resolver/internal/resolver"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
)

func employeeSchema(t *testing.T) *schemaregistry.EntitySchema {
	t.Helper()
	reg, err := schemaregistry.NewRegistry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	schema, ok := reg.Get("Employee")
	if !ok {
		t.Fatal("expected Employee schema to exist")
	}
	return schema
}

func TestValidateMissingRequiredField(t *testing.T) {
	schema := employeeSchema(t)
	table := &ingest.Table{Headers: []string{"FirstName"}, Rows: [][]string{{"Alice"}}}
	mappings := []resolver.Mapping{{Source: "FirstName", Target: "FIRST_NAME", Method: resolver.MethodExact, Confidence: 1.0}}

	report := Validate(table, schema, mappings)
	if report.IsValid {
		t.Fatal("expected invalid report: EMPLOYEE_ID is required and unmapped")
	}
	found := false
	for _, issue := range report.Issues {
		if issue.Code == CodeMissingRequiredField && issue.Target == "EMPLOYEE_ID" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected MISSING_REQUIRED_FIELD for EMPLOYEE_ID, got %+v", report.Issues)
	}
}

func TestValidateMissingRequiredData(t *testing.T) {
	schema := employeeSchema(t)
	table := &ingest.Table{
		Headers: []string{"EmployeeID", "FirstName", "LastName", "Email"},
		Rows: [][]string{
			{"1", "Alice", "Smith", "alice@example.com"},
			{"", "Bob", "Jones", "bob@example.com"},
		},
	}
	mappings := []resolver.Mapping{
		{Source: "EmployeeID", Target: "EMPLOYEE_ID", Method: resolver.MethodExact, Confidence: 1.0},
		{Source: "FirstName", Target: "FIRST_NAME", Method: resolver.MethodExact, Confidence: 1.0},
		{Source: "LastName", Target: "LAST_NAME", Method: resolver.MethodExact, Confidence: 1.0},
		{Source: "Email", Target: "EMAIL", Method: resolver.MethodExact, Confidence: 1.0},
	}

	report := Validate(table, schema, mappings)
	found := false
	for _, issue := range report.Issues {
		if issue.Code == CodeMissingRequiredData && issue.Target == "EMPLOYEE_ID" && issue.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected MISSING_REQUIRED_DATA count=1 for EMPLOYEE_ID, got %+v", report.Issues)
	}
	if report.IsValid {
		t.Fatal("expected invalid report: missing required data is critical")
	}
}

func TestValidateInvalidEmail(t *testing.T) {
	schema := employeeSchema(t)
	table := &ingest.Table{
		Headers: []string{"EmployeeID", "FirstName", "LastName", "Email"},
		Rows: [][]string{
			{"1", "Alice", "Smith", "not-an-email"},
		},
	}
	mappings := []resolver.Mapping{
		{Source: "EmployeeID", Target: "EMPLOYEE_ID", Method: resolver.MethodExact, Confidence: 1.0},
		{Source: "FirstName", Target: "FIRST_NAME", Method: resolver.MethodExact, Confidence: 1.0},
		{Source: "LastName", Target: "LAST_NAME", Method: resolver.MethodExact, Confidence: 1.0},
		{Source: "Email", Target: "EMAIL", Method: resolver.MethodExact, Confidence: 1.0},
	}

	report := Validate(table, schema, mappings)
	found := false
	for _, issue := range report.Issues {
		if issue.Code == CodeInvalidEmail {
			found = true
		}
	}
	if !found {
		t.Errorf("expected INVALID_EMAIL, got %+v", report.Issues)
	}
	if !report.IsValid {
		t.Error("INVALID_EMAIL is a warning, report should still be valid")
	}
}

func TestValidateMisspelledHeaderSuggestion(t *testing.T) {
	schema := employeeSchema(t)
	table := &ingest.Table{Headers: []string{"FirstNme"}, Rows: [][]string{{"Alice"}}}

	report := Validate(table, schema, nil)
	found := false
	for _, issue := range report.Issues {
		if issue.Code == CodeMisspelledHeader && issue.Column == "FirstNme" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected MISSPELLED_HEADER for FirstNme, got %+v", report.Issues)
	}
}

func TestValidateDuplicateColumnsIsCritical(t *testing.T) {
	schema := employeeSchema(t)
	table := &ingest.Table{Headers: []string{"FirstName", "FirstName"}, Rows: [][]string{{"Alice", "Alice"}}}

	report := Validate(table, schema, nil)
	if report.IsValid {
		t.Fatal("expected DUPLICATE_COLUMNS to make the report invalid")
	}
}
