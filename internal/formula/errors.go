package formula

import "fmt"

// EarlyStopError is returned when extraction visits more than the
// configured cap of syntax-tree nodes. It is a distinct error rather than
// a silent promotion of the regex to All: whether an unanalysable pattern
// should run unfiltered on every input is the caller's call to make, not
// this package's.
type EarlyStopError struct {
	Visited int
	Cap     int
}

func (e *EarlyStopError) Error() string {
	return fmt.Sprintf("formula: extraction aborted after visiting %d nodes (cap %d)", e.Visited, e.Cap)
}

// FinalizationError means the extraction traversal did not end with
// exactly one result. With a recursive, tree-shaped visitor (this
// package's approach) this is structurally unreachable — every call
// returns exactly one Info for its subtree — but the type is kept so the
// error taxonomy matches an explicit-stack implementation faithfully and
// so callers have a stable type to match against.
type FinalizationError struct {
	StackDepth int
}

func (e *FinalizationError) Error() string {
	return fmt.Sprintf("formula: finalization error: stack held %d items, want 1", e.StackDepth)
}

// DecodeError means a literal's runes could not be treated as valid text.
// The syntax tree this package walks already holds Unicode runes, so no
// extraction path here constructs or returns it; like FinalizationError it
// is kept as a stable type to match against.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("formula: decode error: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// ClassError means a character class could not be interpreted (e.g. a byte
// class the parser collaborator could not convert to Unicode ranges).
type ClassError struct {
	Class string
}

func (e *ClassError) Error() string {
	return fmt.Sprintf("formula: class error: %s", e.Class)
}
