// Package mapper builds and runs the propagation network: the deduplicated
// DAG of atom-formula nodes shared across an entire regex catalogue, and the
// runtime walk that turns a set of observed atom indices into the sorted set
// of candidate regex indices.
package mapper

// entry is one canonical node of the propagation DAG (an Atom, And, or Or
// node from the atom-formula tree, deduplicated across the whole catalogue).
//
// propagateUpAtCount is how many distinct child activations are required
// before this node itself fires: 1 for Atom and Or nodes (any single child
// suffices), the number of distinct children linked to this node for And
// (every child must fire). parents lists the entries to notify when this
// one fires. regexps lists the regex indices whose root formula is exactly
// this node — populated only for nodes that are some regex's top-level
// entry.
type entry struct {
	propagateUpAtCount uint32
	parents            []uint32
	regexps            []int
}
