package transform

import (
	"strings"
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
		t.Fatal("expected Employee schema")
	}
	return schema
}

func baseTable() *ingest.Table {
	return &ingest.Table{
		Headers: []string{"EmployeeID", "FirstName", "LastName", "Email", "HireDate"},
		Rows: [][]string{
			{"1", "Alice", "Smith", "alice@example.com||alice.smith@corp.com", "2022-03-01"},
			{"2", "Bob", "Jones", "bob@example.com", "03/15/2021"},
		},
	}
}

func baseMappings() []resolver.Mapping {
	return []resolver.Mapping{
		{Source: "EmployeeID", Target: "EMPLOYEE_ID", Method: resolver.MethodExact, Confidence: 1.0},
		{Source: "FirstName", Target: "FIRST_NAME", Method: resolver.MethodExact, Confidence: 1.0},
		{Source: "LastName", Target: "LAST_NAME", Method: resolver.MethodExact, Confidence: 1.0},
		{Source: "Email", Target: "EMAIL", Method: resolver.MethodExact, Confidence: 1.0},
		{Source: "HireDate", Target: "HIRE_DATE", Method: resolver.MethodExact, Confidence: 1.0},
	}
}

func TestApplyCSVEmitsHeaderAndRows(t *testing.T) {
	schema := employeeSchema(t)
	out, err := Apply(baseTable(), schema, baseMappings(), FormatCSV, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "EMPLOYEE_ID") {
		t.Errorf("expected header to contain EMPLOYEE_ID, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "alice@example.com||alice.smith@corp.com") {
		t.Errorf("expected multi-value email joined with ||, got %q", lines[1])
	}
	if !strings.Contains(lines[1], "2022-03-01") {
		t.Errorf("expected HIRE_DATE pass-through, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "2021-03-15") {
		t.Errorf("expected MM/DD/YYYY coerced to YYYY-MM-DD, got %q", lines[2])
	}
}

func TestApplyXMLStructure(t *testing.T) {
	schema := employeeSchema(t)
	out, err := Apply(baseTable(), schema, baseMappings(), FormatXML, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := string(out)
	if !strings.Contains(doc, "<EF_Employee_List>") || !strings.Contains(doc, "</EF_Employee_List>") {
		t.Errorf("expected EF_Employee_List root, got %q", doc)
	}
	if strings.Count(doc, "<EF_Employee>") != 2 {
		t.Errorf("expected 2 EF_Employee records, got %q", doc)
	}
	if !strings.Contains(doc, "<email_list>") {
		t.Errorf("expected list-typed field wrapped in email_list, got %q", doc)
	}
}

func TestApplyXMLEscapesSpecialCharacters(t *testing.T) {
	schema := employeeSchema(t)
	table := &ingest.Table{
		Headers: []string{"EmployeeID", "FirstName", "LastName", "Email"},
		Rows:    [][]string{{"1", `A&B <"test">`, "Smith", "a@example.com"}},
	}
	mappings := []resolver.Mapping{
		{Source: "EmployeeID", Target: "EMPLOYEE_ID"},
		{Source: "FirstName", Target: "FIRST_NAME"},
		{Source: "LastName", Target: "LAST_NAME"},
		{Source: "Email", Target: "EMAIL"},
	}
	out, err := Apply(table, schema, mappings, FormatXML, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), "<test>") {
		t.Errorf("expected angle brackets to be escaped, got %q", out)
	}
	if !strings.Contains(string(out), "&amp;") {
		t.Errorf("expected ampersand to be escaped, got %q", out)
	}
}

func TestApplyIncludesUnmappedRequiredColumnEmpty(t *testing.T) {
	schema := employeeSchema(t)
	table := &ingest.Table{
		Headers: []string{"EmployeeID", "FirstName", "LastName"},
		Rows:    [][]string{{"1", "Alice", "Smith"}},
	}
	mappings := []resolver.Mapping{
		{Source: "EmployeeID", Target: "EMPLOYEE_ID"},
		{Source: "FirstName", Target: "FIRST_NAME"},
		{Source: "LastName", Target: "LAST_NAME"},
	}
	out, err := Apply(table, schema, mappings, FormatCSV, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "EMAIL") {
		t.Errorf("expected unmapped required EMAIL column to still appear in output header, got %q", out)
	}
}
