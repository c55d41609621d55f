package resolver

import (
	"github.com/yourorg/hr-field-resolver/internal/fuzzy"
	"github.com/yourorg/hr-field-resolver/internal/normalize"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
)

// fuzzyBandCeiling caps Stage C confidence at the top of its declared band
// (I4: fuzzy in [0.70, 0.84]). A handful of near-identical typo pairs
// produce a raw LCS ratio above that ceiling; capping preserves the
// numbered confidence-band invariant rather than the illustrative range
// mentioned alongside individual scenarios.
const fuzzyBandCeiling = 0.84

// stageCCandidates scores ns against every unclaimed target using the
// fuzzy similarity ratio, per spec §4.3 Stage C.
func stageCCandidates(ns string, targets []schemaregistry.FieldDefinition, claimed map[string]bool) []scoredCandidate {
	var out []scoredCandidate
	for _, t := range targets {
		if claimed[t.Name] {
			continue
		}
		ratio := fuzzy.Ratio(ns, normalize.Normalize(t.Name))
		conf := ratio
		if conf > fuzzyBandCeiling {
			conf = fuzzyBandCeiling
		}
		out = append(out, scoredCandidate{Target: t.Name, Confidence: conf, Method: MethodFuzzy})
	}
	return out
}

// applyValueStatisticsTieBreak is the supplemented, opt-in heuristic that
// breaks ties between Stage C candidates already at the minimum
// confidence using per-column value-shape statistics (§4 "Dynamic/
// statistical gap-filling"). It never invents a new stage, never changes
// a confidence value, and never fires when there's already a clear
// winner.
func applyValueStatisticsTieBreak(cands []scoredCandidate, stats ColumnStats, targets []schemaregistry.FieldDefinition) []scoredCandidate {
	if len(cands) < 2 {
		return cands
	}
	if cands[0].Confidence-cands[1].Confidence > 0.02 {
		return cands // not a tie, leave arbitration's normal ordering alone
	}

	typeOf := make(map[string]schemaregistry.SemanticType, len(targets))
	for _, t := range targets {
		typeOf[t.Name] = t.SemanticType
	}

	boosted := make([]scoredCandidate, len(cands))
	copy(boosted, cands)
	for i := range boosted {
		bonus := statisticsAffinity(typeOf[boosted[i].Target], stats)
		boosted[i].Confidence += bonus * 1e-6 // break ties only, never cross a confidence band
	}
	rankCandidates(boosted, nil)
	return boosted
}

func statisticsAffinity(t schemaregistry.SemanticType, stats ColumnStats) float64 {
	switch t {
	case schemaregistry.TypeEmail, schemaregistry.TypeListEmail:
		return stats.EmailRatio
	case schemaregistry.TypeDate, schemaregistry.TypeDateTime:
		return stats.DateRatio
	case schemaregistry.TypeURL:
		return stats.URLRatio
	case schemaregistry.TypeNumber:
		return stats.NumericRatio
	default:
		return 0
	}
}
