package mapper

import (
	"sort"

	"github.com/coregx/sieve/internal/conv"
	"github.com/coregx/sieve/internal/intset"
)

// NewWorklist allocates a per-query worklist sized to this Mapper's entry
// count. Callers seed it with the entry ids for every atom observed in the
// input (via AtomEntry) before calling Propagate. A fresh worklist must be
// used per query; Reset and reuse is also valid between queries against the
// same Mapper.
func (m *Mapper) NewWorklist() *intset.Set {
	return intset.New(m.EntryCount())
}

// Propagate walks worklist — which must already contain the entry ids for
// every atom observed in the query input — through the propagation DAG and
// returns the sorted, deduplicated set of candidate regex indices: every
// regex whose formula the observed atoms satisfy, unioned with every regex
// that had no usable atom formula at all (and is therefore always a
// candidate).
//
// worklist is mutated (parents are enqueued into it as they fire) and must
// not be reused concurrently with this call; it is safe to Reset and reuse
// for a subsequent, sequential query.
func (m *Mapper) Propagate(worklist *intset.Set) []int {
	count := make([]uint32, len(m.entries))
	result := intset.New(m.regexpCount)

	for i := 0; i < worklist.Len(); i++ {
		id := worklist.At(i)
		e := &m.entries[id]

		for _, r := range e.regexps {
			result.Insert(conv.IntToUint32(r))
		}

		for _, p := range e.parents {
			parent := &m.entries[p]
			if parent.propagateUpAtCount > 1 {
				count[p]++
				if count[p] >= parent.propagateUpAtCount {
					worklist.Insert(p)
				}
			} else {
				worklist.Insert(p)
			}
		}
	}

	for _, u := range m.unfiltered {
		result.Insert(conv.IntToUint32(u))
	}

	out := make([]int, result.Len())
	for i, v := range result.Slice() {
		out[i] = int(v)
	}
	sort.Ints(out)
	return out
}
