package formula

import (
	"sort"
	"strings"
)

// sortedUnique returns the distinct strings of lits in length-then-lex
// order: shortest first, ties broken lexicographically. Sorting once here
// replaces maintaining an ordered set throughout extraction; callers only
// ever need the order at simplification time.
func sortedUnique(lits []string) []string {
	seen := make(map[string]struct{}, len(lits))
	uniq := make([]string, 0, len(lits))
	for _, s := range lits {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		uniq = append(uniq, s)
	}
	sort.Slice(uniq, func(i, j int) bool {
		if len(uniq[i]) != len(uniq[j]) {
			return len(uniq[i]) < len(uniq[j])
		}
		return uniq[i] < uniq[j]
	})
	return uniq
}

// simplifyStringSet applies superset elimination: a literal that strictly
// contains another, shorter literal from the same set is dropped, because
// the shorter literal is already a weaker (more easily satisfied) necessary
// condition — keeping both adds nothing but atom-count bloat.
//
// Processing in length-then-lex order means every literal is checked only
// against previously-kept, necessarily-shorter-or-equal literals; substring
// containment is transitive, so this one forward pass is sufficient (if a
// longer literal contains some dropped literal Y, and Y itself was dropped
// because it contains a kept literal Z, then the longer literal contains Z
// too, and the pass already rejects it on that basis).
//
// The empty string is kept only when no non-empty literal survives —
// otherwise it is dominated by everything (every string "contains" "") and
// would swallow the whole set.
func simplifyStringSet(lits []string) []string {
	sorted := sortedUnique(lits)

	hasNonEmpty := false
	for _, s := range sorted {
		if s != "" {
			hasNonEmpty = true
			break
		}
	}

	kept := make([]string, 0, len(sorted))
	for _, s := range sorted {
		if s == "" {
			if !hasNonEmpty {
				kept = append(kept, s)
			}
			continue
		}
		dominated := false
		for _, k := range kept {
			if k == "" {
				continue
			}
			if strings.Contains(s, k) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, s)
		}
	}
	return kept
}
