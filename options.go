package sieve

import "strings"

// Options configures how a pushed pattern is parsed and, ultimately,
// matched. All fields default to false. They propagate identically to the
// syntax parser (for atom extraction) and the compiled regex (for
// verification), so the two never disagree about what a pattern means.
type Options struct {
	// CaseInsensitive folds the pattern with an inline "(?i)" flag.
	CaseInsensitive bool
	// DotMatchesNewLine makes "." match "\n" too, via an inline "(?s)" flag.
	DotMatchesNewLine bool
	// IgnoreWhitespace enables verbose mode: unescaped whitespace and
	// "#"-to-end-of-line comments outside character classes are stripped
	// from the pattern before parsing.
	IgnoreWhitespace bool
	// MultiLine makes "^"/"$" match at line boundaries, via an inline
	// "(?m)" flag.
	MultiLine bool
	// CRLF accepts "\r\n" as the line terminator for MultiLine's "^"/"$"
	// anchors, instead of bare "\n". Only meaningful combined with
	// MultiLine — see DESIGN.md for the approximation this applies (RE2
	// has no native CRLF line-ending mode).
	CRLF bool
}

// apply returns pattern rewritten per o: verbose-mode stripping first (so
// later flag-prefix injection doesn't get mangled by removed whitespace),
// then a CRLF-awareness rewrite of bare "$" anchors, then the inline flag
// prefix RE2 and the parser collaborator both understand.
func (o Options) apply(pattern string) string {
	if o.IgnoreWhitespace {
		pattern = stripVerbose(pattern)
	}
	if o.CRLF && o.MultiLine {
		pattern = rewriteCRLFAnchors(pattern)
	}

	var prefix string
	if o.CaseInsensitive {
		prefix += "(?i)"
	}
	if o.DotMatchesNewLine {
		prefix += "(?s)"
	}
	if o.MultiLine {
		prefix += "(?m)"
	}
	return prefix + pattern
}

// stripVerbose removes unescaped ASCII whitespace and "#"-introduced
// line comments that fall outside a character class: a single forward
// pass tracking escape state and class depth rather than a full reparse.
func stripVerbose(pattern string) string {
	var out strings.Builder
	out.Grow(len(pattern))
	classDepth := 0

	i := 0
	for i < len(pattern) {
		c := pattern[i]

		if c == '\\' && i+1 < len(pattern) {
			out.WriteByte(c)
			out.WriteByte(pattern[i+1])
			i += 2
			continue
		}

		if c == '[' {
			classDepth++
			out.WriteByte(c)
			i++
			continue
		}
		if c == ']' && classDepth > 0 {
			classDepth--
			out.WriteByte(c)
			i++
			continue
		}

		if classDepth == 0 {
			if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
				i++
				continue
			}
			if c == '#' {
				for i < len(pattern) && pattern[i] != '\n' {
					i++
				}
				continue
			}
		}

		out.WriteByte(c)
		i++
	}
	return out.String()
}

// rewriteCRLFAnchors makes every unescaped, out-of-class "$" also accept an
// optional trailing "\r" immediately before it, so "$" matches before a
// "\r\n" pair rather than only immediately before "\n".
func rewriteCRLFAnchors(pattern string) string {
	var out strings.Builder
	out.Grow(len(pattern) + 8)
	classDepth := 0

	i := 0
	for i < len(pattern) {
		c := pattern[i]

		if c == '\\' && i+1 < len(pattern) {
			out.WriteByte(c)
			out.WriteByte(pattern[i+1])
			i += 2
			continue
		}

		if c == '[' {
			classDepth++
		} else if c == ']' && classDepth > 0 {
			classDepth--
		} else if c == '$' && classDepth == 0 {
			out.WriteString(`\r?$`)
			i++
			continue
		}

		out.WriteByte(c)
		i++
	}
	return out.String()
}
