package classify

import (
	"context"
	"testing"

	"github.com/yourorg/hr-field-resolver/internal/alias"
	"github.com/yourorg/hr-field-resolver/internal/resolver"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
)

func TestClassifyPicksBestMatchingEntity(t *testing.T) {
	registry, err := schemaregistry.NewRegistry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	aliases, err := alias.NewWithDefaults()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := resolver.New(aliases, nil)

	result, err := Classify(context.Background(), r, registry, []string{
		"CandidateID", "FirstName", "LastName", "Emails", "LastActivityDate",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Entity != "Candidate" {
		t.Errorf("expected Candidate to win, got %q (scores: %+v)", result.Entity, result.AllScores)
	}
	if len(result.AllScores) != len(registry.Entities()) {
		t.Errorf("expected a score per registered entity, got %d", len(result.AllScores))
	}
}

func TestClassifyEmptySourceColumns(t *testing.T) {
	registry, _ := schemaregistry.NewRegistry()
	aliases, _ := alias.NewWithDefaults()
	r := resolver.New(aliases, nil)

	result, err := Classify(context.Background(), r, registry, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Confidence != 0 {
		t.Errorf("expected zero confidence with no source columns, got %v", result.Confidence)
	}
}
