// Package acsearch wraps github.com/pgavlin/aho-corasick's overlapping
// automaton into the multi-string searcher contract the propagation network
// needs: given the catalogue's flat atom list, yield every overlapping hit
// in a haystack, each carrying the atom's index.
package acsearch

import (
	ahocorasick "github.com/pgavlin/aho-corasick"
)

// Hit is one occurrence of an atom in a searched haystack.
type Hit struct {
	// AtomIndex is the position of the matched literal in the atom list
	// Searcher was built from.
	AtomIndex int
	Start     int
	End       int
}

// Searcher performs overlapping multi-string search over a fixed atom list,
// ASCII case-insensitively. Case-insensitivity is implemented by lower-
// casing the haystack once per query rather than configuring the automaton
// itself: every atom is already lower-cased at extraction time (see
// formula.Atom), so a case-sensitive automaton walk over a folded haystack
// copy is equivalent and keeps the automaton construction itself simple.
type Searcher struct {
	ac ahocorasick.AhoCorasick
}

// New builds a Searcher over atoms. An empty atoms list is valid; it yields
// no hits for any haystack.
func New(atoms []string) *Searcher {
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{})
	return &Searcher{ac: builder.Build(atoms)}
}

// Overlapping returns every occurrence of every atom in haystack, in the
// order the underlying automaton discovers them (left to right, shortest
// match first at a given start position is not guaranteed — callers only
// need the set of atom indices, not match order).
func (s *Searcher) Overlapping(haystack string) []Hit {
	folded := asciiLower(haystack)
	iter := s.ac.IterOverlappingByte(folded)

	var hits []Hit
	for {
		m := iter.Next()
		if m == nil {
			break
		}
		hits = append(hits, Hit{
			AtomIndex: m.Pattern(),
			Start:     m.Start(),
			End:       m.End(),
		})
	}
	return hits
}

// asciiLower returns a lower-cased copy of s's ASCII bytes, leaving any
// non-ASCII byte untouched. This mirrors formula.Atom's case-folding, which
// only ever lower-cases via strings.ToLower on the pattern side — matching
// on the haystack side only needs the ASCII fast path the automaton walks
// byte-by-byte over.
func asciiLower(s string) []byte {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return out
}
