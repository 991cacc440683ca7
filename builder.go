package sieve

import (
	"github.com/coregx/sieve/internal/acsearch"
	"github.com/coregx/sieve/internal/formula"
	"github.com/coregx/sieve/internal/mapper"
)

// Builder accumulates patterns and their Options, then compiles them into a
// Regexes catalogue. The zero value is not usable; construct with
// NewBuilderWithMinAtomLen.
type Builder struct {
	minAtomLen int
	regexes    []*CompiledRegex
	models     []*formula.Model
}

// NewBuilderWithMinAtomLen returns an empty Builder. n is the minimum atom
// length the mapper builder's filter pass keeps; atoms shorter than n
// can't usefully narrow a multi-thousand-pattern catalogue and only add
// automaton size.
func NewBuilderWithMinAtomLen(n int) *Builder {
	return &Builder{minAtomLen: n}
}

// Push parses pattern under opts, extracts its atom formula, and compiles
// it for verification. On any failure, b is left exactly as it was before
// the call — state prior to a failed push is preserved.
func (b *Builder) Push(pattern string, opts Options) (*Builder, error) {
	rewritten := opts.apply(pattern)

	compiled, parsed, err := compilePattern(rewritten)
	if err != nil {
		return nil, err
	}

	model, err := formula.New(parsed)
	if err != nil {
		return nil, &ProcessingError{Pattern: pattern, Cause: err}
	}

	b.regexes = append(b.regexes, compiled)
	b.models = append(b.models, model)
	return b, nil
}

// PushAll pushes every pattern in patterns under the same opts, stopping
// at (and returning) the first failure.
func (b *Builder) PushAll(patterns []string, opts Options) (*Builder, error) {
	for _, p := range patterns {
		if _, err := b.Push(p, opts); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Build drives the mapper build over every pushed pattern's atom formula,
// wires the resulting atom list into an overlapping multi-string searcher,
// and returns the frozen, query-ready Regexes. An empty Builder builds
// successfully; the resulting Regexes yields no matches for any input.
func (b *Builder) Build() (*Regexes, error) {
	cfg := mapper.DefaultPruneConfig()
	cfg.MinAtomLen = b.minAtomLen
	m, atoms := mapper.Build(b.models, cfg)
	searcher := acsearch.New(atoms)

	return &Regexes{
		regexes:  b.regexes,
		mapper:   m,
		searcher: searcher,
	}, nil
}
