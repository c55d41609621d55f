package resolver

import (
	"context"

	"github.com/yourorg/hr-field-resolver/internal/embedding"
)

const stageBMargin = 0.03

// stageBCandidates queries the Embedding Index for ns, restricted to
// targets still unclaimed, mapping similarity to confidence via
// conf = 0.70 + 0.15*similarity, per spec §4.3.
func stageBCandidates(ctx context.Context, idx *embedding.Index, entity, ns string, claimed map[string]bool) ([]scoredCandidate, error) {
	results, err := idx.Query(ctx, entity, ns)
	if err != nil {
		return nil, err
	}

	var out []scoredCandidate
	for _, c := range results {
		if claimed[c.Target] {
			continue
		}
		out = append(out, scoredCandidate{
			Target:     c.Target,
			Confidence: 0.70 + 0.15*c.Similarity,
			Method:     MethodSemantic,
		})
	}
	return out, nil
}

// passesMargin implements the margin rule: the top candidate must beat
// the runner-up by at least stageBMargin, or the query is inconclusive.
func passesMargin(ranked []scoredCandidate) bool {
	if len(ranked) == 0 {
		return false
	}
	if len(ranked) == 1 {
		return true
	}
	return ranked[0].Confidence-ranked[1].Confidence >= stageBMargin
}
