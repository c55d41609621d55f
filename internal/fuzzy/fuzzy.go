// Package fuzzy provides the longest-common-subsequence-style similarity
// ratio used by the Field Resolver's Stage C fallback and by the
// Validator's header-reconciliation suggestions. It reuses go-difflib's
// SequenceMatcher rather than hand-rolling LCS.
package fuzzy

import "github.com/pmezard/go-difflib/difflib"

// Ratio returns a similarity ratio in [0,1] between a and b, computed as
// `M / max(len(a), len(b))`, where M is the total size of the matching
// blocks go-difflib's SequenceMatcher finds. Those blocks form a common
// subsequence of a and b, so M stands in for the longest common
// subsequence length.
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	ac, bc := splitChars(a), splitChars(b)
	matcher := difflib.NewMatcher(ac, bc)
	matched := 0
	for _, m := range matcher.GetMatchingBlocks() {
		matched += m.Size
	}
	longest := len(ac)
	if len(bc) > longest {
		longest = len(bc)
	}
	return float64(matched) / float64(longest)
}

func splitChars(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}

// BestMatch scans candidates and returns the one with the highest Ratio
// against query, along with that ratio. Returns ("", 0) for an empty
// candidate list.
func BestMatch(query string, candidates []string) (string, float64) {
	best := ""
	bestRatio := 0.0
	for _, c := range candidates {
		r := Ratio(query, c)
		if r > bestRatio {
			bestRatio = r
			best = c
		}
	}
	return best, bestRatio
}
