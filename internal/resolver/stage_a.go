package resolver

import (
	"github.com/yourorg/hr-field-resolver/internal/alias"
	"github.com/yourorg/hr-field-resolver/internal/normalize"
	"github.com/yourorg/hr-field-resolver/internal/schemaregistry"
)

const stageAThreshold = 0.85

// discriminatingStems gate rule 4's word-component overlap, per spec §4.3:
// a shared stem alone isn't enough evidence unless it's one of these.
var discriminatingStems = map[string]bool{
	"id": true, "email": true, "phone": true, "date": true, "name": true,
}

// stageACandidates scores ns against every unclaimed target using the
// first-firing rule per target (exact, alias, partial-substring,
// partial-word-overlap), returning all scored candidates unsorted.
func stageACandidates(ns, entity string, targets []schemaregistry.FieldDefinition, claimed map[string]bool, aliases *alias.Dictionary) []scoredCandidate {
	var out []scoredCandidate
	for _, t := range targets {
		if claimed[t.Name] {
			continue
		}
		conf, method, ok := matchTarget(ns, entity, t, aliases)
		if ok {
			out = append(out, scoredCandidate{Target: t.Name, Confidence: conf, Method: method})
		}
	}
	return out
}

func matchTarget(ns, entity string, t schemaregistry.FieldDefinition, aliases *alias.Dictionary) (float64, Method, bool) {
	nt := normalize.Normalize(t.Name)

	// Rule 1: exact.
	if ns == nt {
		return 1.00, MethodExact, true
	}

	// Rule 2: alias.
	if target, ok := aliases.Lookup(entity, ns); ok && target == t.Name {
		return 0.95, MethodAlias, true
	}

	// Rule 3: substring containment with a length-ratio floor.
	if ns != "" && nt != "" {
		var longer, shorter string
		if len(ns) >= len(nt) {
			longer, shorter = ns, nt
		} else {
			longer, shorter = nt, ns
		}
		if containsSubstring(longer, shorter) {
			ratio := float64(len(shorter)) / float64(len(longer))
			if ratio >= 0.6 {
				return 0.85 + 0.05*ratio, MethodPartial, true
			}
		}
	}

	// Rule 4: discriminating word-component overlap.
	sourceStems := normalize.WordComponents(ns)
	targetStems := normalize.WordComponents(nt)
	if hasDiscriminatingOverlap(sourceStems, targetStems) && normalize.Jaccard(sourceStems, targetStems) >= 0.5 {
		return 0.82, MethodPartial, true
	}

	return 0, "", false
}

func containsSubstring(longer, shorter string) bool {
	if shorter == "" {
		return false
	}
	return indexOf(longer, shorter) >= 0
}

func indexOf(s, substr string) int {
	n, m := len(s), len(substr)
	if m > n {
		return -1
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == substr {
			return i
		}
	}
	return -1
}

func hasDiscriminatingOverlap(a, b map[string]bool) bool {
	for stem := range a {
		if b[stem] && discriminatingStems[stem] {
			return true
		}
	}
	return false
}
