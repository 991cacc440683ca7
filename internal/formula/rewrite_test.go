package formula

import "testing"

func TestRewriteBoundedRepetitionLargeZeroMin(t *testing.T) {
	got := RewriteBoundedRepetition("a.{0,100}b")
	want := "a.*b"
	if got != want {
		t.Fatalf("RewriteBoundedRepetition = %q, want %q", got, want)
	}
}

func TestRewriteBoundedRepetitionLargeOneMin(t *testing.T) {
	got := RewriteBoundedRepetition("a.{1,300}b")
	want := "a.+b"
	if got != want {
		t.Fatalf("RewriteBoundedRepetition = %q, want %q", got, want)
	}
}

func TestRewriteBoundedRepetitionSmallBoundUntouched(t *testing.T) {
	got := RewriteBoundedRepetition("a.{1,50}b")
	want := "a.{1,50}b"
	if got != want {
		t.Fatalf("RewriteBoundedRepetition = %q, want %q", got, want)
	}
}

func TestRewriteBoundedRepetitionDigitShorthand(t *testing.T) {
	got := RewriteBoundedRepetition(`\d+`)
	want := "[0-9]+"
	if got != want {
		t.Fatalf("RewriteBoundedRepetition = %q, want %q", got, want)
	}
}

func TestRewriteBoundedRepetitionWordShorthand(t *testing.T) {
	got := RewriteBoundedRepetition(`\w+`)
	want := "[A-Za-z0-9_]+"
	if got != want {
		t.Fatalf("RewriteBoundedRepetition = %q, want %q", got, want)
	}
}

func TestRewriteBoundedRepetitionSkipsShorthandInsideClass(t *testing.T) {
	got := RewriteBoundedRepetition(`[\da-f]`)
	want := `[\da-f]`
	if got != want {
		t.Fatalf("RewriteBoundedRepetition = %q, want %q", got, want)
	}
}

func TestRewriteBoundedRepetitionPreservesOtherEscapes(t *testing.T) {
	got := RewriteBoundedRepetition(`a\.b`)
	want := `a\.b`
	if got != want {
		t.Fatalf("RewriteBoundedRepetition = %q, want %q", got, want)
	}
}
