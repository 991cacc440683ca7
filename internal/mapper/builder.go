package mapper

import (
	"math"
	"sort"

	"github.com/coregx/sieve/internal/conv"
	"github.com/coregx/sieve/internal/formula"
)

// PruneConfig parameterises the mapper builder's two tunables: the minimum
// atom length kept by the filter pass, and the parents-count threshold above
// which the edge-pruning heuristic starts cutting And-node fan-in. The
// defaults (3, 9) match a catalogue in the low thousands; a caller indexing
// a much smaller or larger catalogue may want to relax or tighten either.
type PruneConfig struct {
	ParentThreshold int
	MinAtomLen      int
}

// DefaultPruneConfig returns the tunable defaults used when a caller
// doesn't override them.
func DefaultPruneConfig() PruneConfig {
	return PruneConfig{ParentThreshold: 9, MinAtomLen: 3}
}

// Mapper is the frozen propagation network built from a catalogue's atom
// formulas: one entry per deduplicated DAG node, plus the bookkeeping needed
// to turn a set of observed atoms into a set of candidate regex indices.
type Mapper struct {
	entries     []entry
	atomToEntry []uint32
	unfiltered  []int
	regexpCount int
}

// EntryCount returns the number of entries in the propagation DAG — the size
// a caller should allocate its per-query worklist and count scratch to.
func (m *Mapper) EntryCount() int { return len(m.entries) }

// AtomEntry returns the entry id that atom index atomIdx maps to.
func (m *Mapper) AtomEntry(atomIdx int) uint32 { return m.atomToEntry[atomIdx] }

// RegexpCount returns the total number of regexes this Mapper was built
// over (kept plus unfiltered).
func (m *Mapper) RegexpCount() int { return m.regexpCount }

// Build deduplicates models (one atom-formula per regex, in catalogue
// order) into a DAG, computes propagation thresholds, applies the
// edge-pruning heuristic, and returns the frozen Mapper plus the flat,
// ascending-assigned atom list (atom index i corresponds to the literal
// atoms[i], and maps to entry id via Mapper.AtomEntry(i)).
func Build(models []*formula.Model, cfg PruneConfig) (*Mapper, []string) {
	filtered := make([]*formula.Model, len(models))
	var unfiltered []int
	for i, m := range models {
		kept, ok := keepNode(m, cfg.MinAtomLen)
		if !ok {
			unfiltered = append(unfiltered, i)
			filtered[i] = nil
			continue
		}
		filtered[i] = kept
	}

	// Topological list, roots first: the prefix of v corresponding to kept
	// regexes (in original order) is exactly the roots, followed by every
	// And/Or child appended as it's discovered. No recursion: a formula.Model
	// is a tree, so forward iteration by growing index is sufficient.
	var v []*formula.Model
	for _, m := range filtered {
		if m == nil {
			continue
		}
		v = append(v, m)
	}
	for i := 0; i < len(v); i++ {
		node := v[i]
		if node.Kind() == formula.KindAnd || node.Kind() == formula.KindOr {
			v = append(v, node.Children()...)
		}
	}

	// Reverse walk (leaves first): canonicalise by structural Key, which
	// depends on children's already-assigned unique ids.
	canon := make(map[string]uint32, len(v))
	var exemplar []*formula.Model
	var atoms []string
	for i := len(v) - 1; i >= 0; i-- {
		node := v[i]
		if node.HasUniqueID() {
			continue
		}
		key := node.Key()
		if id, ok := canon[key]; ok {
			node.SetUniqueID(id)
			continue
		}
		id := conv.IntToUint32(len(exemplar))
		node.SetUniqueID(id)
		canon[key] = id
		exemplar = append(exemplar, node)
		if node.Kind() == formula.KindAtom {
			atoms = append(atoms, node.Literal())
		}
	}

	entries := make([]entry, len(exemplar))
	for id, node := range exemplar {
		switch node.Kind() {
		case formula.KindAtom:
			entries[id].propagateUpAtCount = 1
		case formula.KindAnd, formula.KindOr:
			selfID := conv.IntToUint32(id)
			var upCount uint32
			for _, child := range node.Children() {
				cid := child.UniqueID()
				parents := entries[cid].parents
				if len(parents) == 0 || parents[len(parents)-1] != selfID {
					entries[cid].parents = append(parents, selfID)
					upCount++
				}
			}
			if node.Kind() == formula.KindAnd {
				entries[id].propagateUpAtCount = upCount
			} else {
				entries[id].propagateUpAtCount = 1
			}
		}
	}

	// Roots: using the original models.len-indexed filtered slice, append
	// each kept regex's index to its root's entry.
	for i, m := range filtered {
		if m == nil {
			continue
		}
		id := m.UniqueID()
		entries[id].regexps = append(entries[id].regexps, i)
	}

	pruneEdges(entries, exemplar, len(models)-len(unfiltered), cfg.ParentThreshold)

	atomToEntry := make([]uint32, len(atoms))
	ai := 0
	for _, node := range exemplar {
		if node.Kind() == formula.KindAtom {
			atomToEntry[ai] = node.UniqueID()
			ai++
		}
	}

	return &Mapper{
		entries:     entries,
		atomToEntry: atomToEntry,
		unfiltered:  unfiltered,
		regexpCount: len(models),
	}, atoms
}

// pruneEdges implements the edge-pruning heuristic: for every canonical And
// node, walk its distinct children sorted ascending by current parent-count,
// accumulating a natural-log budget seeded at ln(keptRegexes); once the
// budget is exhausted, every remaining child with more than parentThreshold
// parents has this And's edge removed, and the And's own threshold is
// lowered by the same amount so soundness is preserved.
func pruneEdges(entries []entry, exemplar []*formula.Model, keptRegexes, parentThreshold int) {
	logN := 0.0
	if keptRegexes > 0 {
		logN = math.Log(float64(keptRegexes))
	}

	type pair struct {
		parentsLen int
		childID    uint32
	}

	for id, node := range exemplar {
		if node.Kind() != formula.KindAnd {
			continue
		}

		var pairs []pair
		seen := make(map[uint32]bool, len(node.Children()))
		for _, child := range node.Children() {
			cid := child.UniqueID()
			if seen[cid] {
				continue
			}
			seen[cid] = true
			pairs = append(pairs, pair{parentsLen: len(entries[cid].parents), childID: cid})
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].parentsLen < pairs[j].parentsLen })

		selfID := conv.IntToUint32(id)
		logTriggered := logN
		i := 0
		for ; i < len(pairs) && logTriggered > 0; i++ {
			logTriggered += math.Log(float64(pairs[i].parentsLen)) - logN
		}
		for ; i < len(pairs); i++ {
			if pairs[i].parentsLen <= parentThreshold {
				continue
			}
			cid := pairs[i].childID
			ps := entries[cid].parents
			for k, p := range ps {
				if p == selfID {
					ps[k] = ps[len(ps)-1]
					ps = ps[:len(ps)-1]
					break
				}
			}
			entries[cid].parents = ps
			if entries[id].propagateUpAtCount > 0 {
				entries[id].propagateUpAtCount--
			}
		}
	}
}

// keepNode evaluates whether m can contribute a sound necessary condition
// given min_atom_len, returning the (possibly narrowed) model to keep and
// whether it is keepable at all.
func keepNode(m *formula.Model, minLen int) (*formula.Model, bool) {
	switch m.Kind() {
	case formula.KindAll, formula.KindNone:
		return nil, false
	case formula.KindAtom:
		if len(m.Literal()) >= minLen {
			return m, true
		}
		return nil, false
	case formula.KindAnd:
		var kept []*formula.Model
		for _, c := range m.Children() {
			if kc, ok := keepNode(c, minLen); ok {
				kept = append(kept, kc)
			}
		}
		if len(kept) == 0 {
			return nil, false
		}
		return formula.And(kept), true
	case formula.KindOr:
		kept := make([]*formula.Model, 0, len(m.Children()))
		for _, c := range m.Children() {
			kc, ok := keepNode(c, minLen)
			if !ok {
				return nil, false
			}
			kept = append(kept, kc)
		}
		return formula.Or(kept), true
	default:
		return nil, false
	}
}
