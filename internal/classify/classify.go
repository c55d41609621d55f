// Package classify implements the Entity Classifier (C12): scoring every
// candidate entity's ResolutionReport to guess which schema a table
// belongs to, per spec §4.8.
package classify

import (
	"context"

	"github.com/yourorg/hr-field-resolver/internal/resolver"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
)

// Score is one entity's candidacy result.
type Score struct {
	Entity            string
	Confidence        float64
	RequiredCoverage  float64
	Report            *resolver.ResolutionReport
}

// Result is the classifier's full output: the winner plus every
// candidate's score, for transparency.
type Result struct {
	Entity     string
	Confidence float64
	AllScores  []Score
}

// Classify runs the Resolver against every entity in the registry and
// picks the best-scoring one, breaking ties toward higher required-field
// coverage, per §4.8.
func Classify(ctx context.Context, r *resolver.Resolver, registry *schemaregistry.Registry, sourceColumns []string) (*Result, error) {
	var scores []Score

	for _, entityName := range registry.Entities() {
		schema, ok := registry.Get(entityName)
		if !ok {
			continue
		}
		report, err := r.Resolve(ctx, sourceColumns, schema, resolver.Options{})
		if err != nil {
			continue
		}
		scores = append(scores, Score{
			Entity:           entityName,
			Confidence:       score(report, len(sourceColumns)),
			RequiredCoverage: requiredCoverage(schema, report),
			Report:           report,
		})
	}

	if len(scores) == 0 {
		return &Result{}, nil
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Confidence > best.Confidence ||
			(s.Confidence == best.Confidence && s.RequiredCoverage > best.RequiredCoverage) {
			best = s
		}
	}

	return &Result{Entity: best.Entity, Confidence: best.Confidence, AllScores: scores}, nil
}

// score implements §4.8: sum(conf_i * w(method_i)) normalized by the
// number of source columns.
func score(report *resolver.ResolutionReport, numSourceColumns int) float64 {
	if numSourceColumns == 0 {
		return 0
	}
	var total float64
	for _, m := range report.Mappings {
		total += m.Confidence * resolver.MethodWeight[m.Method]
	}
	return total / float64(numSourceColumns)
}

func requiredCoverage(schema *schemaregistry.EntitySchema, report *resolver.ResolutionReport) float64 {
	required := schema.RequiredFields()
	if len(required) == 0 {
		return 1.0
	}
	claimed := make(map[string]bool, len(report.Mappings))
	for _, m := range report.Mappings {
		claimed[m.Target] = true
	}
	covered := 0
	for _, f := range required {
		if claimed[f.Name] {
			covered++
		}
	}
	return float64(covered) / float64(len(required))
}
