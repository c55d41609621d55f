package ingest

import "testing"

func TestParseCSVBasic(t *testing.T) {
	table, mv, err := parseCSV("a,b,c\n1,2,3\n4,5,6\n", ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.RowCount() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.RowCount())
	}
	if len(mv) != 0 {
		t.Errorf("expected no multi-value columns, got %+v", mv)
	}
}

func TestParseCSVDetectsDoublePipeSeparator(t *testing.T) {
	table, mv, err := parseCSV("id,phones\n1,555-1111||555-2222\n", ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.RowCount() != 1 {
		t.Fatalf("expected 1 row, got %d", table.RowCount())
	}
	if len(mv) != 1 || mv[0].Column != "phones" || mv[0].Separator != multiValueSeparator {
		t.Errorf("expected phones flagged multi-value with || separator, got %+v", mv)
	}
}

func TestParseCSVRaggedRowsPadded(t *testing.T) {
	table, _, err := parseCSV("a,b,c\n1,2\n4,5,6,7\n", ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows[0]) != 3 {
		t.Errorf("expected row padded/truncated to header width 3, got %d", len(table.Rows[0]))
	}
}
