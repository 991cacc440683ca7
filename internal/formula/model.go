// Package formula implements the atom-formula model: a boolean expression
// over required literal substrings that is a necessary (never sufficient)
// condition for a regex to match, plus the visitor that derives one from a
// parsed regex syntax tree.
//
// Where prefix/suffix literal extraction reduces a pattern to a flat
// literal sequence anchored at a boundary, the formula here is recursive
// And/Or: soundness has to hold for a literal required *anywhere* in the
// pattern, not just at a fixed position.
package formula

import (
	"math"
	"strings"
)

// Kind identifies which variant of the atom-formula sum type a Model is.
type Kind uint8

const (
	// KindAll means the formula is trivially satisfied; the regex it
	// describes cannot be usefully prefiltered.
	KindAll Kind = iota
	// KindNone means the formula can never be satisfied; the regex it
	// describes can never match.
	KindNone
	// KindAtom means a single literal substring must appear.
	KindAtom
	// KindAnd means every child formula must hold.
	KindAnd
	// KindOr means at least one child formula must hold.
	KindOr
)

func (k Kind) String() string {
	switch k {
	case KindAll:
		return "All"
	case KindNone:
		return "None"
	case KindAtom:
		return "Atom"
	case KindAnd:
		return "And"
	case KindOr:
		return "Or"
	default:
		return "Kind(?)"
	}
}

// unsetID is the sentinel unique-id value a freshly built Model carries
// before the mapper builder's dedup pass assigns it a canonical id. It is
// chosen so it can never alias a real id: ids are assigned densely from 0
// and catalogues never approach math.MaxUint32 entries.
const unsetID = math.MaxUint32

// Model is a node in the atom-formula tree. The zero value is not valid;
// build one with All, None, Atom, And, or Or.
//
// Model carries a mutable unique-id slot (uniqueID) that the mapper builder
// assigns during deduplication, bottom-up. Equality and hashing of a node
// for that pass depend on the node's kind and its children's assigned ids
// — not on the children's structure — which is why assignment must happen
// leaves-first: see Key.
type Model struct {
	kind     Kind
	atom     string
	children []*Model
	uniqueID uint32
}

// All returns the trivially-true formula.
func All() *Model { return &Model{kind: KindAll, uniqueID: unsetID} }

// None returns the unsatisfiable formula.
func None() *Model { return &Model{kind: KindNone, uniqueID: unsetID} }

// Atom returns a formula requiring literal s to appear in the input. s is
// lower-cased here so every Atom node in the system is already case-folded
// — case-insensitivity at match time is delegated entirely to the
// multi-string searcher, which folds the haystack instead of the needles.
func Atom(s string) *Model {
	return &Model{kind: KindAtom, atom: strings.ToLower(s), uniqueID: unsetID}
}

// Kind reports which variant m is.
func (m *Model) Kind() Kind { return m.kind }

// Literal returns m's literal. Only meaningful when m.Kind() == KindAtom.
func (m *Model) Literal() string { return m.atom }

// Children returns m's operands. Only meaningful when m.Kind() is KindAnd
// or KindOr. The returned slice must not be mutated by callers outside this
// package.
func (m *Model) Children() []*Model { return m.children }

// UniqueID returns the id the mapper builder assigned during dedup, or the
// unset sentinel if none has been assigned yet.
func (m *Model) UniqueID() uint32 { return m.uniqueID }

// HasUniqueID reports whether SetUniqueID has been called on m.
func (m *Model) HasUniqueID() bool { return m.uniqueID != unsetID }

// SetUniqueID assigns m's canonical id. Called at most once per node, by
// the mapper builder's reverse-topological dedup pass.
func (m *Model) SetUniqueID(id uint32) { m.uniqueID = id }

// Key returns a comparable identity for m suitable for use as a dedup map
// key. It depends on m's children's already-assigned unique ids, so it must
// only be called after every child of m has one — i.e. bottom-up, leaves
// before parents. Two structurally different nodes that happen to dedup to
// the same children produce the same Key, which is exactly the point.
func (m *Model) Key() string {
	switch m.kind {
	case KindAll:
		return "A"
	case KindNone:
		return "N"
	case KindAtom:
		return "L" + m.atom
	case KindAnd, KindOr:
		b := make([]byte, 0, 2+4*len(m.children))
		if m.kind == KindAnd {
			b = append(b, '&')
		} else {
			b = append(b, '|')
		}
		for _, c := range m.children {
			if !c.HasUniqueID() {
				panic("formula: Key called before child unique id assigned")
			}
			b = append(b, ':')
			b = appendUint32(b, c.uniqueID)
		}
		return string(b)
	default:
		panic("formula: unknown kind")
	}
}

func appendUint32(b []byte, v uint32) []byte {
	if v == 0 {
		return append(b, '0')
	}
	var tmp [10]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
	}
	return append(b, tmp[i:]...)
}

// And builds the conjunction of children, applying the simplification
// rules: flatten nested And children into this one, All is the identity
// (dropped), None is absorbing (short-circuits the whole conjunction),
// a single surviving child collapses to that child, and an empty result
// collapses to All (an empty And is never constructed as a distinct node).
func And(children []*Model) *Model {
	return combine(KindAnd, children)
}

// Or builds the disjunction of children, applying the dual simplification
// rules: flatten nested Or children, None is the identity (dropped), All is
// absorbing, a single surviving child collapses to that child, and an
// empty result collapses to None (an empty Or is never constructed).
func Or(children []*Model) *Model {
	return combine(KindOr, children)
}

func combine(kind Kind, children []*Model) *Model {
	identity, absorbing := KindAll, KindNone
	if kind == KindOr {
		identity, absorbing = KindNone, KindAll
	}

	flat := make([]*Model, 0, len(children))
	for _, c := range children {
		if c.kind == absorbing {
			if absorbing == KindAll {
				return All()
			}
			return None()
		}
		if c.kind == identity {
			continue
		}
		if c.kind == kind {
			// Flatten: no immediate And-under-And or Or-under-Or.
			flat = append(flat, c.children...)
			continue
		}
		flat = append(flat, c)
	}

	switch len(flat) {
	case 0:
		if identity == KindAll {
			return All()
		}
		return None()
	case 1:
		return flat[0]
	default:
		return &Model{kind: kind, children: flat, uniqueID: unsetID}
	}
}
