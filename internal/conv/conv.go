// Package conv provides bounds-checked narrowing conversions for the
// integer ids the propagation DAG is built on: entry ids and regex indices
// are carried as uint32 while Go slice arithmetic produces int.
//
// Overflow panics rather than returning an error: an id outside uint32
// range means the catalogue outgrew the DAG's id space, which is a
// programming error, not an input condition.
package conv

import "math"

// IntToUint32 converts an int to uint32, panicking if n < 0 or
// n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Compare as uint so the upper bound is representable on 32-bit
	// platforms, where int cannot hold math.MaxUint32.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("conv: int value out of uint32 range")
	}
	return uint32(n)
}
