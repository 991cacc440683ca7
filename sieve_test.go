package sieve

import (
	"sync"
	"testing"
)

func buildOne(t *testing.T, minAtomLen int, pattern string, opts Options) *Regexes {
	t.Helper()
	b := NewBuilderWithMinAtomLen(minAtomLen)
	if _, err := b.Push(pattern, opts); err != nil {
		t.Fatalf("Push(%q): %v", pattern, err)
	}
	rx, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return rx
}

func matchingIndices(rx *Regexes, haystack string) []int {
	var out []int
	for i := range rx.Matching(haystack) {
		out = append(out, i)
	}
	return out
}

func TestAlternationBothShortIsUnfiltered(t *testing.T) {
	rx := buildOne(t, 4, "(foo|bar)", Options{})
	got := matchingIndices(rx, "lemurs bar")
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("matching = %v, want [0] (unfiltered at min_atom_len=4)", got)
	}
}

func TestAlternationWithShorterMinAtomLenUsesAtoms(t *testing.T) {
	rx := buildOne(t, 3, "(foo|bar)", Options{})
	got := matchingIndices(rx, "lemurs bar")
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("matching = %v, want [0]", got)
	}

	missGot := matchingIndices(rx, "lemurs only")
	if len(missGot) != 0 {
		t.Fatalf("matching(no atom present) = %v, want []", missGot)
	}
}

func TestCatalogueAtomSetScenario(t *testing.T) {
	b := NewBuilderWithMinAtomLen(3)
	patterns := []string{
		`(abc123|abc|defxyz|ghi789|abc1234|xyz).*[x-z]+`,
		`abcd..yyy..yyyzzz`,
		`mnmnpp[a-z]+PPP`,
	}
	if _, err := b.PushAll(patterns, Options{}); err != nil {
		t.Fatalf("PushAll: %v", err)
	}
	rx, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := matchingIndices(rx, "abcd12yyy32yyyzzz")
	want := []int{0, 1}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("matching(abcd12yyy32yyyzzz) = %v, want %v", got, want)
	}

	got2 := matchingIndices(rx, "abc121212xyz")
	if len(got2) != 1 || got2[0] != 0 {
		t.Fatalf("matching(abc121212xyz) = %v, want [0]", got2)
	}
}

func TestDigitShorthandNoMatch(t *testing.T) {
	rx := buildOne(t, 3, `foo\d+`, Options{})
	got := matchingIndices(rx, "abc bar2 xyz")
	if len(got) != 0 {
		t.Fatalf("matching = %v, want []", got)
	}
}

func TestEmptyPatternIsAlwaysUnfiltered(t *testing.T) {
	rx := buildOne(t, 3, "", Options{})
	got := matchingIndices(rx, "0123")
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("matching = %v, want [0]", got)
	}
}

func TestIsMatchConsistentWithMatching(t *testing.T) {
	rx := buildOne(t, 3, "(foo|bar)", Options{})
	for _, h := range []string{"lemurs bar", "nothing here"} {
		isMatch := rx.IsMatch(h)
		_, hasAny := func() (int, bool) {
			for i := range rx.Matching(h) {
				return i, true
			}
			return 0, false
		}()
		if isMatch != hasAny {
			t.Fatalf("IsMatch(%q) = %v, Matching has-any = %v, want equal", h, isMatch, hasAny)
		}
	}
}

func TestEmptyBuilderBuildsAndMatchesNothing(t *testing.T) {
	b := NewBuilderWithMinAtomLen(3)
	rx, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rx.IsMatch("anything") {
		t.Fatal("empty builder's Regexes matched something")
	}
	if got := matchingIndices(rx, "anything"); len(got) != 0 {
		t.Fatalf("matching on empty builder = %v, want []", got)
	}
}

func TestCaseInsensitiveOption(t *testing.T) {
	rx := buildOne(t, 3, "hello", Options{CaseInsensitive: true})
	if !rx.IsMatch("say HELLO there") {
		t.Fatal("case-insensitive pattern did not match differently-cased haystack")
	}
}

func TestPushPreservesPriorStateOnFailure(t *testing.T) {
	b := NewBuilderWithMinAtomLen(3)
	if _, err := b.Push("valid", Options{}); err != nil {
		t.Fatalf("Push(valid): %v", err)
	}
	if _, err := b.Push("(unterminated", Options{}); err == nil {
		t.Fatal("Push(unterminated) succeeded, want SyntaxError")
	}
	rx, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(rx.Regexes()) != 1 {
		t.Fatalf("Regexes() len = %d, want 1 (failed push must not be retained)", len(rx.Regexes()))
	}
}

// TestConcurrentMatching verifies Regexes is safe for concurrent IsMatch
// and Matching calls against one built catalogue: each call must own its
// own worklist and count scratch, never sharing mutable state with another
// concurrent caller.
func TestConcurrentMatching(t *testing.T) {
	b := NewBuilderWithMinAtomLen(3)
	patterns := []string{
		`(abc123|abc|defxyz|ghi789|abc1234|xyz).*[x-z]+`,
		`abcd..yyy..yyyzzz`,
		`mnmnpp[a-z]+PPP`,
		`(foo|bar)`,
		`foo\d+`,
	}
	if _, err := b.PushAll(patterns, Options{}); err != nil {
		t.Fatalf("PushAll: %v", err)
	}
	rx, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	inputs := []string{
		"abcd12yyy32yyyzzz",
		"abc121212xyz",
		"lemurs bar",
		"abc bar2 xyz",
		"nothing here",
	}

	const numGoroutines = 50
	const numIterations = 100

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				for _, in := range inputs {
					isMatch := rx.IsMatch(in)
					var hasAny bool
					for range rx.Matching(in) {
						hasAny = true
						break
					}
					if isMatch != hasAny {
						t.Errorf("IsMatch(%q) = %v, Matching has-any = %v", in, isMatch, hasAny)
					}
				}
			}
		}()
	}
	wg.Wait()
}

func TestMatchingAscendingOrderAcrossCatalogue(t *testing.T) {
	b := NewBuilderWithMinAtomLen(3)
	if _, err := b.PushAll([]string{"zulu", "alpha", "mike"}, Options{}); err != nil {
		t.Fatalf("PushAll: %v", err)
	}
	rx, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := matchingIndices(rx, "zulu alpha mike")
	want := []int{0, 1, 2}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("matching order = %v, want ascending %v", got, want)
		}
	}
}
