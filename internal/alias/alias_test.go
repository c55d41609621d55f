package alias

import (
	"testing"

	"github.com/yourorg/hr-field-resolver/internal/normalize"
)

func TestLookupDefaults(t *testing.T) {
	d, err := NewWithDefaults()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	target, ok := d.Lookup("Candidate", normalize.Normalize("PersonID"))
	if !ok || target != "CANDIDATE_ID" {
		t.Fatalf("expected PersonID -> CANDIDATE_ID, got %q, %v", target, ok)
	}

	target, ok = d.Lookup("Employee", normalize.Normalize("PersonID"))
	if !ok || target != "EMPLOYEE_ID" {
		t.Fatalf("expected PersonID -> EMPLOYEE_ID for Employee entity, got %q, %v", target, ok)
	}
}

func TestLookupUnknownReturnsFalse(t *testing.T) {
	d, _ := NewWithDefaults()
	if _, ok := d.Lookup("Candidate", "nonexistentalias"); ok {
		t.Fatal("expected no match for unregistered alias")
	}
	if _, ok := d.Lookup("NoSuchEntity", "personid"); ok {
		t.Fatal("expected no match for unregistered entity")
	}
}

func TestLoadEntriesRejectsCollidingAlias(t *testing.T) {
	d := New()
	err := d.LoadEntries("Employee", []Entry{
		{Target: "EMPLOYEE_ID", Aliases: []string{"WorkerID"}},
		{Target: "MANAGER_ID", Aliases: []string{"workerid"}}, // normalizes to the same alias
	})
	if err == nil {
		t.Fatal("expected error for alias colliding across two targets")
	}
}

func TestAliasesForReturnsRawList(t *testing.T) {
	d, _ := NewWithDefaults()
	aliases := d.AliasesFor("Candidate", "EMAIL")
	if len(aliases) == 0 {
		t.Fatal("expected at least one alias for Candidate EMAIL")
	}
}
