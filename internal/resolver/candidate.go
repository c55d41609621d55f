package resolver

import "sort"

// scoredCandidate is an internal (target, confidence, method) tuple used
// while a stage is choosing the best unclaimed target for one source.
type scoredCandidate struct {
	Target     string
	Confidence float64
	Method     Method
}

// rankCandidates sorts candidates per the arbitration rule shared by all
// stages (§4.3 "Arbitration"): (1) higher confidence, (2) preference for
// required targets, (3) lexicographic target name.
func rankCandidates(cands []scoredCandidate, required map[string]bool) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		ar, br := required[a.Target], required[b.Target]
		if ar != br {
			return ar
		}
		return a.Target < b.Target
	})
}

// topAlternatives converts the runners-up (excluding the committed target)
// into at most 3 Alternatives, per spec §3.
func topAlternatives(cands []scoredCandidate, committedTarget string) []Alternative {
	var out []Alternative
	for _, c := range cands {
		if c.Target == committedTarget {
			continue
		}
		out = append(out, Alternative{Target: c.Target, Confidence: c.Confidence})
		if len(out) == 3 {
			break
		}
	}
	return out
}
