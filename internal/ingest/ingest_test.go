package ingest

import "testing"

func TestIngestCSVHappyPath(t *testing.T) {
	raw := []byte("EmployeeID,FirstName,Email\n1,Alice,alice@example.com\n2,Bob,bob@example.com\n")
	table, meta, err := Ingest(raw, "roster.csv", 1<<20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.RowCount() != 2 || table.ColumnCount() != 3 {
		t.Fatalf("unexpected table shape: %d rows, %d cols", table.RowCount(), table.ColumnCount())
	}
	if meta.Delimiter != "," {
		t.Errorf("expected comma delimiter, got %q", meta.Delimiter)
	}
	if meta.Encoding != "utf-8" {
		t.Errorf("expected utf-8, got %q", meta.Encoding)
	}
}

func TestIngestPipeDelimited(t *testing.T) {
	raw := []byte("EmployeeID|FirstName|Email\n1|Alice|alice@example.com\n")
	_, meta, err := Ingest(raw, "roster.txt", 1<<20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Delimiter != "|" {
		t.Errorf("expected pipe delimiter, got %q", meta.Delimiter)
	}
}

func TestIngestRejectsOversizeFile(t *testing.T) {
	raw := make([]byte, 100)
	_, _, err := Ingest(raw, "roster.csv", 10)
	if err == nil {
		t.Fatal("expected FileTooLargeError")
	}
	if _, ok := err.(*FileTooLargeError); !ok {
		t.Errorf("expected *FileTooLargeError, got %T", err)
	}
}

func TestIngestDetectsMultiValueColumn(t *testing.T) {
	raw := []byte("EmployeeID,Email\n1,work@example.com||home@example.com\n2,bob@example.com\n")
	table, meta, err := Ingest(raw, "roster.csv", 1<<20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, mv := range meta.MultiValueColumns {
		if mv.Column == "Email" && mv.Separator == multiValueSeparator {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Email to be detected as multi-value, got %+v", meta.MultiValueColumns)
	}
	if table.ColumnTypes["Email"] != "email" {
		t.Errorf("expected Email column sniffed as email type, got %v", table.ColumnTypes["Email"])
	}
}

func TestIngestWindows1252Fallback(t *testing.T) {
	// 0x93/0x94 are Windows-1252 curly double quotes, invalid as standalone UTF-8.
	raw := []byte{'N', 'a', 'm', 'e', ',', 'N', 'o', 't', 'e', '\n', 'A', ',', 0x93, 'h', 'i', 0x94, '\n'}
	_, meta, err := Ingest(raw, "roster.csv", 1<<20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Encoding != "windows-1252" && meta.Encoding != "latin-1" {
		t.Errorf("expected a legacy single-byte encoding, got %q", meta.Encoding)
	}
}

func TestIngestUnrecognizedDelimiterFails(t *testing.T) {
	raw := []byte("just one long column of text with no structure at all\nmore of the same\n")
	_, _, err := Ingest(raw, "roster.csv", 1<<20)
	if err == nil {
		t.Fatal("expected DelimiterError")
	}
}
