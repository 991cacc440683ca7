// Package sieve accelerates matching a single input string against a large
// catalogue of regular expressions, returning the indices of every pattern
// that matches. It statically reduces each pattern to a sound "atom
// formula" of required literal substrings, deduplicates and compresses
// those formulas across the whole catalogue into a propagation DAG, and at
// query time uses a multi-string search over the input to drive that DAG
// and narrow which patterns actually need the full regex engine.
package sieve

import (
	"iter"

	"github.com/coregx/sieve/internal/acsearch"
	"github.com/coregx/sieve/internal/mapper"
)

// Regexes is a built, query-ready catalogue. It is immutable after Build
// and safe for concurrent IsMatch/Matching calls; each call owns its own
// scratch state.
type Regexes struct {
	regexes  []*CompiledRegex
	mapper   *mapper.Mapper
	searcher *acsearch.Searcher
}

// Regexes returns every compiled regex in the catalogue, in push order.
func (r *Regexes) Regexes() []*CompiledRegex { return r.regexes }

// IsMatch reports whether any regex in the catalogue matches haystack. It
// short-circuits on the first successful verification.
func (r *Regexes) IsMatch(haystack string) bool {
	for _, idx := range r.candidates(haystack) {
		if r.regexes[idx].IsMatch(haystack) {
			return true
		}
	}
	return false
}

// Matching yields (index, regex) for every regex that matches haystack, in
// ascending index order. Verification is lazy: nothing past the next
// requested result is executed.
func (r *Regexes) Matching(haystack string) iter.Seq2[int, *CompiledRegex] {
	return func(yield func(int, *CompiledRegex) bool) {
		for _, idx := range r.candidates(haystack) {
			re := r.regexes[idx]
			if !re.IsMatch(haystack) {
				continue
			}
			if !yield(idx, re) {
				return
			}
		}
	}
}

// candidates runs the multi-string search over haystack, maps each hit's
// atom index to its propagation-entry id, and propagates through the DAG
// to the ascending, deduplicated list of candidate regex indices (plus
// every always-unfiltered regex).
func (r *Regexes) candidates(haystack string) []int {
	worklist := r.mapper.NewWorklist()
	for _, hit := range r.searcher.Overlapping(haystack) {
		worklist.Insert(r.mapper.AtomEntry(hit.AtomIndex))
	}
	return r.mapper.Propagate(worklist)
}
