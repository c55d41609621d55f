// Package normalize canonicalizes source and target field names for
// comparison. It is a pure, allocation-light leaf package with no
// dependency on any other component.
package normalize

import "strings"

// Normalize lowercases s and strips every character outside [a-z0-9]. The
// empty string is a valid result.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stems is the fixed vocabulary WordComponents scans for, longest match
// first so e.g. "timestamp" is preferred over "time" when both would fire.
var stems = sortByLengthDesc([]string{
	"work", "home", "personal", "business", "email", "phone", "mobile", "fax",
	"url", "id", "code", "number", "name", "first", "last", "middle", "given",
	"family", "surname", "date", "time", "timestamp", "hire", "start", "join",
	"end", "termination", "title", "role", "position", "department", "division",
	"unit", "team", "org", "location", "office", "site", "city", "country",
	"manager", "supervisor", "person", "candidate", "employee", "user",
	"status", "activity", "modified", "updated", "created",
})

func sortByLengthDesc(words []string) []string {
	out := make([]string, len(words))
	copy(out, words)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j]) > len(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// WordComponents detects the fixed vocabulary of semantic stems present in
// the normalized form of s via a longest-match scan, returning the set of
// matched stems.
func WordComponents(s string) map[string]bool {
	n := Normalize(s)
	found := make(map[string]bool)
	for i := 0; i < len(n); {
		matched := false
		for _, stem := range stems {
			if strings.HasPrefix(n[i:], stem) {
				found[stem] = true
				i += len(stem)
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return found
}

// Jaccard returns the Jaccard similarity of two stem sets: |intersection| /
// |union|, or 0 if both sets are empty.
func Jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	union := make(map[string]bool, len(a)+len(b))
	for s := range a {
		union[s] = true
		if b[s] {
			intersection++
		}
	}
	for s := range b {
		union[s] = true
	}
	if len(union) == 0 {
		return 0
	}
	return float64(intersection) / float64(len(union))
}
