package normalize

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Employee_ID", "employeeid"},
		{"First Name", "firstname"},
		{"Work-Emails!!", "workemails"},
		{"", ""},
		{"123-ABC", "123abc"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWordComponents(t *testing.T) {
	stems := WordComponents("WorkEmails")
	if !stems["work"] || !stems["email"] {
		t.Fatalf("expected work and email stems, got %v", stems)
	}

	stems = WordComponents("LastActivityTimeStamp")
	if !stems["last"] || !stems["activity"] || !stems["timestamp"] {
		t.Fatalf("expected last/activity/timestamp stems, got %v", stems)
	}
}

func TestWordComponentsPrefersLongestMatch(t *testing.T) {
	stems := WordComponents("timestamp")
	if stems["time"] {
		t.Fatalf("expected 'timestamp' to consume the full word, not leave a dangling 'time' match: %v", stems)
	}
	if !stems["timestamp"] {
		t.Fatalf("expected timestamp stem, got %v", stems)
	}
}

func TestJaccard(t *testing.T) {
	a := map[string]bool{"email": true, "work": true}
	b := map[string]bool{"email": true, "home": true}

	got := Jaccard(a, b)
	want := 1.0 / 3.0
	if got != want {
		t.Errorf("Jaccard = %v, want %v", got, want)
	}

	if Jaccard(map[string]bool{}, map[string]bool{}) != 0 {
		t.Error("expected Jaccard of two empty sets to be 0")
	}
}
