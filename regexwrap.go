package sieve

import (
	"regexp/syntax"

	re2 "github.com/wasilibs/go-re2"
)

// maxProgramSize bounds how large a single pattern's compiled program may
// be (measured via the standard library's syntax compiler, used here only
// as a size estimate ahead of handing the pattern to the real execution
// engine) before push rejects it as RegexTooLargeError. Chosen generously
// above what any single realistic catalogue entry needs, to catch runaway
// patterns (e.g. deeply nested bounded repetition) rather than legitimate
// complex ones.
const maxProgramSize = 1 << 16

// CompiledRegex wraps a pattern compiled by the execution-engine
// collaborator (github.com/wasilibs/go-re2, API-compatible with the
// standard library's regexp.Regexp), alongside the pattern it was built
// from.
type CompiledRegex struct {
	pattern string
	re      *re2.Regexp
}

// String returns the original pattern this CompiledRegex was built from
// (after Options.apply — i.e. with inline flags and any verbose-mode or
// CRLF rewriting already applied).
func (c *CompiledRegex) String() string { return c.pattern }

// IsMatch reports whether haystack contains a match anywhere.
func (c *CompiledRegex) IsMatch(haystack string) bool {
	return c.re.MatchString(haystack)
}

// Find returns the leftmost match in haystack, or nil if there is none.
func (c *CompiledRegex) Find(haystack string) []int {
	loc := c.re.FindStringIndex(haystack)
	if loc == nil {
		return nil
	}
	return []int{loc[0], loc[1]}
}

// Captures returns the leftmost match's capture group offsets (including
// the implicit whole-match group 0), or nil if there is no match.
func (c *CompiledRegex) Captures(haystack string) []int {
	return c.re.FindStringSubmatchIndex(haystack)
}

// CapturesLen returns the number of capture groups, including the
// implicit whole-match group.
func (c *CompiledRegex) CapturesLen() int {
	return c.re.NumSubexp() + 1
}

// compilePattern parses pattern (after Options.apply) with the syntax
// parser collaborator for a program-size estimate, then compiles it with
// the execution-engine collaborator.
func compilePattern(pattern string) (*CompiledRegex, *syntax.Regexp, error) {
	parsed, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, nil, &SyntaxError{Pattern: pattern, Cause: err}
	}

	prog, err := syntax.Compile(parsed.Simplify())
	if err != nil {
		return nil, nil, &SyntaxError{Pattern: pattern, Cause: err}
	}
	if len(prog.Inst) > maxProgramSize {
		return nil, nil, &RegexTooLargeError{Pattern: pattern, Size: len(prog.Inst)}
	}

	re, err := re2.Compile(pattern)
	if err != nil {
		return nil, nil, &SyntaxError{Pattern: pattern, Cause: err}
	}
	return &CompiledRegex{pattern: pattern, re: re}, parsed, nil
}
