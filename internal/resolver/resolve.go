package resolver

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/yourorg/hr-field-resolver/internal/alias"
	"github.com/yourorg/hr-field-resolver/internal/embedding"
	"github.com/yourorg/hr-field-resolver/internal/normalize"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
)

// Resolver orchestrates the three-stage resolution pipeline. Its
// collaborators are read-only after init (schema registry, alias
// dictionary, embedding index); its only mutable state is the once-only
// degradation warning and the embedDegraded flag, which stays set for the
// Resolver's lifetime once Stage B has been skipped.
type Resolver struct {
	Aliases    *alias.Dictionary
	Embeddings *embedding.Index // may be nil: resolver runs degraded (A+C only)

	warnOnce      sync.Once
	embedDegraded bool
}

// New builds a Resolver. embeddings may be nil to run permanently
// degraded (useful for tests and for deployments with no API key).
func New(aliases *alias.Dictionary, embeddings *embedding.Index) *Resolver {
	return &Resolver{Aliases: aliases, Embeddings: embeddings}
}

// Resolve implements the public contract from spec §4.3:
// resolve(source_columns, entity, min_confidence=0.70) -> ResolutionReport.
func (r *Resolver) Resolve(ctx context.Context, sourceColumns []string, schema *schemaregistry.EntitySchema, opts Options) (*ResolutionReport, error) {
	if schema == nil {
		return &ResolutionReport{
			UnmappedSources: append([]string(nil), sourceColumns...),
			CountsByMethod:  map[Method]int{},
		}, errors.New("resolver: schema is nil")
	}
	if opts.MinConfidence <= 0 {
		opts.MinConfidence = DefaultMinConfidence
	}

	claimed := make(map[string]bool, len(schema.Fields))
	committed := make(map[string]Mapping, len(sourceColumns))
	mapped := make(map[string]bool, len(sourceColumns))
	required := make(map[string]bool, len(schema.Fields))
	for _, f := range schema.Fields {
		if f.Required {
			required[f.Name] = true
		}
	}

	// Stage A: deterministic matching.
	for _, s := range sourceColumns {
		ns := normalize.Normalize(s)
		cands := stageACandidates(ns, schema.Entity, schema.Fields, claimed, r.Aliases)
		if len(cands) == 0 {
			continue
		}
		rankCandidates(cands, required)
		best := cands[0]
		if best.Confidence >= stageAThreshold {
			committed[s] = Mapping{
				Source:       s,
				Target:       best.Target,
				Confidence:   best.Confidence,
				Method:       best.Method,
				Alternatives: topAlternatives(cands, best.Target),
			}
			claimed[best.Target] = true
			mapped[s] = true
		}
	}

	// Stage B: embedding similarity, skipped entirely in degraded mode.
	if r.Embeddings != nil {
		if err := r.Embeddings.Ensure(ctx, schema.Entity); err != nil {
			r.warnOnce.Do(func() {
				slog.Warn("resolver: embedding index unavailable, degrading to stages A+C", "entity", schema.Entity, "error", err)
			})
			r.embedDegraded = true
		}
	} else {
		r.embedDegraded = true
	}

	if !r.embedDegraded {
		for _, s := range sourceColumns {
			if mapped[s] {
				continue
			}
			ns := normalize.Normalize(s)
			cands, err := stageBCandidates(ctx, r.Embeddings, schema.Entity, ns, claimed)
			if err != nil {
				r.warnOnce.Do(func() {
					slog.Warn("resolver: embedding query failed, degrading to stages A+C", "entity", schema.Entity, "error", err)
				})
				r.embedDegraded = true
				break
			}
			if len(cands) == 0 {
				continue
			}
			rankCandidates(cands, required)
			if !passesMargin(cands) {
				continue
			}
			best := cands[0]
			committed[s] = Mapping{
				Source:       s,
				Target:       best.Target,
				Confidence:   best.Confidence,
				Method:       best.Method,
				Alternatives: topAlternatives(cands, best.Target),
			}
			claimed[best.Target] = true
			mapped[s] = true
		}
	}

	// Stage C: fuzzy fallback.
	for _, s := range sourceColumns {
		if mapped[s] {
			continue
		}
		ns := normalize.Normalize(s)
		cands := stageCCandidates(ns, schema.Fields, claimed)
		if len(cands) == 0 {
			continue
		}
		rankCandidates(cands, required)
		if opts.UseValueStatistics {
			if stats, ok := opts.Stats[s]; ok {
				cands = applyValueStatisticsTieBreak(cands, stats, schema.Fields)
			}
		}
		rankCandidates(cands, required)
		best := cands[0]
		if best.Confidence >= opts.MinConfidence {
			committed[s] = Mapping{
				Source:       s,
				Target:       best.Target,
				Confidence:   best.Confidence,
				Method:       best.Method,
				Alternatives: topAlternatives(cands, best.Target),
			}
			claimed[best.Target] = true
			mapped[s] = true
		}
	}

	return buildReport(sourceColumns, schema, committed, mapped, claimed), nil
}

func buildReport(sourceColumns []string, schema *schemaregistry.EntitySchema, committed map[string]Mapping, mapped map[string]bool, claimed map[string]bool) *ResolutionReport {
	report := &ResolutionReport{
		CountsByMethod: map[Method]int{},
	}

	for _, s := range sourceColumns {
		if m, ok := committed[s]; ok {
			report.Mappings = append(report.Mappings, m)
			report.CountsByMethod[m.Method]++
		} else {
			report.UnmappedSources = append(report.UnmappedSources, s)
		}
	}
	sort.SliceStable(report.Mappings, func(i, j int) bool {
		return indexOfSource(sourceColumns, report.Mappings[i].Source) < indexOfSource(sourceColumns, report.Mappings[j].Source)
	})

	for _, f := range schema.Fields {
		if !claimed[f.Name] {
			report.UnmappedTargets = append(report.UnmappedTargets, f.Name)
		}
	}

	if len(sourceColumns) > 0 {
		report.MappingPercentage = 100 * float64(len(report.Mappings)) / float64(len(sourceColumns))
	}

	applyReviewGate(report, schema)
	return report
}

func indexOfSource(sources []string, source string) int {
	for i, s := range sources {
		if s == source {
			return i
		}
	}
	return -1
}

// applyReviewGate is the supplemented confidence-banded review gating: a
// read-only summary, never a §4.3 threshold change.
func applyReviewGate(report *ResolutionReport, schema *schemaregistry.EntitySchema) {
	const (
		lowAvgConfidence  = 0.75
		highUnmappedRatio = 0.30
	)

	var reasons []string

	if len(report.Mappings) > 0 {
		var sum float64
		for _, m := range report.Mappings {
			sum += m.Confidence
		}
		avg := sum / float64(len(report.Mappings))
		if avg < lowAvgConfidence {
			reasons = append(reasons, "average mapping confidence below 0.75")
		}
	}

	total := len(report.Mappings) + len(report.UnmappedSources)
	if total > 0 {
		unmappedRatio := float64(len(report.UnmappedSources)) / float64(total)
		if unmappedRatio > highUnmappedRatio {
			reasons = append(reasons, "more than 30% of source columns are unmapped")
		}
	}

	claimed := make(map[string]bool, len(report.Mappings))
	for _, m := range report.Mappings {
		claimed[m.Target] = true
	}
	for _, f := range schema.Fields {
		if f.Required && !claimed[f.Name] {
			reasons = append(reasons, "required field "+f.Name+" has no mapping")
		}
	}

	report.NeedsReview = len(reasons) > 0
	report.ReviewReasons = reasons
}
