package ingest

import "testing"

func TestSniffDelimiterComma(t *testing.T) {
	d, err := sniffDelimiter("a,b,c\n1,2,3\n4,5,6\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != ',' {
		t.Errorf("expected comma, got %q", d)
	}
}

func TestSniffDelimiterPipe(t *testing.T) {
	d, err := sniffDelimiter("a|b|c\n1|2|3\n4|5|6\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != '|' {
		t.Errorf("expected pipe, got %q", d)
	}
}

func TestSniffDelimiterTab(t *testing.T) {
	d, err := sniffDelimiter("a\tb\tc\n1\t2\t3\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != '\t' {
		t.Errorf("expected tab, got %q", d)
	}
}

func TestSniffDelimiterIgnoresCommaInsideQuotes(t *testing.T) {
	d, err := sniffDelimiter("a|b|c\n\"Doe, John\"|2|3\n\"Lee, Amy\"|5|6\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != '|' {
		t.Errorf("expected pipe despite quoted commas, got %q", d)
	}
}

func TestSniffDelimiterPipeWinsCommaTie(t *testing.T) {
	d, err := sniffDelimiter("a,b|c,d\n1,2|3,4\n5,6|7,8\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != '|' {
		t.Errorf("expected pipe to win an equally-stable tie with comma, got %q", d)
	}
}

func TestSniffDelimiterNoStructureFails(t *testing.T) {
	_, err := sniffDelimiter("just text\nmore text\n")
	if err == nil {
		t.Fatal("expected DelimiterError")
	}
	if _, ok := err.(*DelimiterError); !ok {
		t.Errorf("expected *DelimiterError, got %T", err)
	}
}
