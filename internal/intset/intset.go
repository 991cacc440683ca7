// Package intset provides a sparse set over a bounded integer universe.
//
// It supports O(1) insertion, O(1) membership testing, and O(1) clearing,
// at the cost of reserving one uint32 per possible value up front. This
// trades memory for speed in the hot path of match propagation, where the
// same worklist is drained and refilled once per query.
package intset

// Set is a sparse set of uint32 values drawn from [0, capacity).
//
// It maintains a sparse array (value -> position in dense) and a dense,
// insertion-ordered array of the members themselves. Membership testing and
// insertion are both O(1); iteration is over dense, in insertion order.
//
// The zero value is not usable; construct with New.
type Set struct {
	sparse []uint32
	dense  []uint32
}

// New creates a Set over the universe [0, capacity).
// Inserting a value outside this range panics.
func New(capacity int) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Contains reports whether v is currently a member.
func (s *Set) Contains(v uint32) bool {
	idx := s.sparse[v]
	return int(idx) < len(s.dense) && s.dense[idx] == v
}

// Insert adds v to the set and reports whether it was newly added.
//
// A value counts as new iff dense[sparse[v]] is not v: this single check
// guards both against sparse's zero-valued sentinel (the first ever use of
// an index) and against a stale sparse entry left over from a previous
// lifecycle of this Set (after Reset, sparse still holds old positions,
// but those positions now point at different, or no, dense entries).
func (s *Set) Insert(v uint32) bool {
	if s.Contains(v) {
		return false
	}
	s.sparse[v] = uint32(len(s.dense))
	s.dense = append(s.dense, v)
	return true
}

// Len returns the number of members currently in the set.
func (s *Set) Len() int {
	return len(s.dense)
}

// At returns the member at dense position i, in insertion order.
//
// Callers may grow the set while iterating by position (0 up to Len()),
// re-checking Len() on each step: values inserted during the walk are
// appended to dense and so are visited within the same pass. This is what
// lets match propagation enqueue a parent while still draining the
// worklist that triggered it.
func (s *Set) At(i int) uint32 {
	return s.dense[i]
}

// Slice returns the dense member list, in insertion order. The returned
// slice aliases the Set's backing array and is only valid until the next
// Insert or Reset.
func (s *Set) Slice() []uint32 {
	return s.dense
}

// Reset empties the set in O(1) by discarding the dense vector. sparse is
// left untouched; Insert's staleness check makes this safe without
// rezeroing sparse on every reuse.
func (s *Set) Reset() {
	s.dense = s.dense[:0]
}

// Cap returns the universe size the Set was constructed with.
func (s *Set) Cap() int {
	return len(s.sparse)
}
