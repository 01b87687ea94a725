package lang

import (
	"testing"
	"unicode"
)

func TestJust_Match(t *testing.T) {
	r := Just("fn").Parse("fn main")
	if r.IsFailure() {
		t.Fatalf("parse error: %v", r.Err())
	}

	s := r.Value()
	if s.Value != "fn" {
		t.Errorf("expected 'fn', got %q", s.Value)
	}

	if s.Rest.Rest() != " main" {
		t.Errorf("expected ' main' remaining, got %q", s.Rest.Rest())
	}
}

func TestJust_FailureConsumesNothing(t *testing.T) {
	in := NewInput("abc").advance(1)

	r := Just("xyz")(in)
	if r.IsSuccess() {
		t.Fatal("expected failure")
	}

	if r.Err().Offset != 1 {
		t.Errorf("expected failure anchored at offset 1, got %d", r.Err().Offset)
	}
}

func TestThen_Sequences(t *testing.T) {
	p := Then(Just("a"), Just("b"))

	r := p.Parse("abc")
	if r.IsFailure() {
		t.Fatalf("parse error: %v", r.Err())
	}

	s := r.Value()
	if s.Value.Left != "a" || s.Value.Right != "b" {
		t.Errorf("expected (a, b), got (%q, %q)", s.Value.Left, s.Value.Right)
	}

	if s.Rest.Rest() != "c" {
		t.Errorf("expected 'c' remaining, got %q", s.Rest.Rest())
	}
}

func TestThen_FailsWithoutConsuming(t *testing.T) {
	p := Then(Just("a"), Just("b"))

	r := p.Parse("ax")
	if r.IsSuccess() {
		t.Fatal("expected failure")
	}
}

func TestOrElse_BacktracksFromOriginalPosition(t *testing.T) {
	// Both alternatives start with 'a'; the second must see the full
	// input even though the first advanced past 'a' before failing.
	p := Then(Just("a"), Just("b")).OrElse(Then(Just("a"), Just("c")))

	r := p.Parse("ac")
	if r.IsFailure() {
		t.Fatalf("parse error: %v", r.Err())
	}

	if r.Value().Value.Right != "c" {
		t.Errorf("expected second alternative, got %q", r.Value().Value.Right)
	}
}

func TestOrElse_SurfacesLastError(t *testing.T) {
	r := Just("a").OrElse(Just("b")).Parse("c")
	if r.IsSuccess() {
		t.Fatal("expected failure")
	}

	if got := r.Err().Message; got != `expected "b", found "c"` {
		t.Errorf("expected second alternative's error, got %q", got)
	}
}

func TestPadded_SkipsLeadingWhitespaceOnly(t *testing.T) {
	p := Number().Padded()

	for _, src := range []string{"3", "  3", "\n\t 3"} {
		r := p.Parse(src)
		if r.IsFailure() {
			t.Fatalf("parse error on %q: %v", src, r.Err())
		}

		if r.Value().Value != 3 {
			t.Errorf("expected 3 from %q, got %d", src, r.Value().Value)
		}
	}

	r := p.Parse(" 3 ")
	if r.IsFailure() {
		t.Fatalf("parse error: %v", r.Err())
	}

	if r.Value().Rest.Rest() != " " {
		t.Errorf("expected trailing space to remain, got %q", r.Value().Rest.Rest())
	}
}

func TestRepeated_CollectsUntilFailure(t *testing.T) {
	r := Repeated(Just("ab")).Parse("ababx")
	if r.IsFailure() {
		t.Fatalf("parse error: %v", r.Err())
	}

	s := r.Value()
	if len(s.Value) != 2 {
		t.Errorf("expected 2 matches, got %d", len(s.Value))
	}

	if s.Rest.Rest() != "x" {
		t.Errorf("expected 'x' remaining, got %q", s.Rest.Rest())
	}
}

func TestRepeated_ZeroMatches(t *testing.T) {
	r := Repeated(Just("ab")).Parse("xy")
	if r.IsFailure() {
		t.Fatalf("parse error: %v", r.Err())
	}

	s := r.Value()
	if len(s.Value) != 0 {
		t.Errorf("expected no matches, got %d", len(s.Value))
	}

	if s.Rest.Offset() != 0 {
		t.Errorf("expected nothing consumed, got offset %d", s.Rest.Offset())
	}
}

func TestRepeated_TerminatesOnZeroConsumption(t *testing.T) {
	// AccumulateWhile succeeds with an empty match on non-digits, which
	// would loop forever without the zero-consumption guard.
	digits := AccumulateWhile(unicode.IsDigit)

	r := Repeated(digits).Parse("abc")
	if r.IsFailure() {
		t.Fatalf("parse error: %v", r.Err())
	}

	if len(r.Value().Value) != 0 {
		t.Errorf("expected empty-match iteration discarded, got %v", r.Value().Value)
	}
}

func TestSepBy(t *testing.T) {
	p := SepBy(Number(), Just(","))

	r := p.Parse("1,2,3")
	if r.IsFailure() {
		t.Fatalf("parse error: %v", r.Err())
	}

	s := r.Value()
	if len(s.Value) != 3 || s.Value[0] != 1 || s.Value[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", s.Value)
	}
}

func TestSepBy_EmptyNeverFails(t *testing.T) {
	r := SepBy(Number(), Just(",")).Parse("x")
	if r.IsFailure() {
		t.Fatalf("parse error: %v", r.Err())
	}

	s := r.Value()
	if len(s.Value) != 0 || s.Rest.Offset() != 0 {
		t.Errorf("expected empty result with nothing consumed, got %v at %d",
			s.Value, s.Rest.Offset())
	}
}

func TestSepBy_TrailingDelimiterNotConsumed(t *testing.T) {
	r := SepBy(Number(), Just(",")).Parse("1,2,")
	if r.IsFailure() {
		t.Fatalf("parse error: %v", r.Err())
	}

	s := r.Value()
	if len(s.Value) != 2 {
		t.Errorf("expected 2 values, got %v", s.Value)
	}

	if s.Rest.Rest() != "," {
		t.Errorf("expected trailing ',' unconsumed, got %q", s.Rest.Rest())
	}
}

func TestOrNot(t *testing.T) {
	p := OrNot(Just("x"))

	r := p.Parse("xy")
	if r.IsFailure() || r.Value().Value == nil || *r.Value().Value != "x" {
		t.Fatalf("expected present 'x', got %v", r)
	}

	r = p.Parse("zz")
	if r.IsFailure() {
		t.Fatalf("parse error: %v", r.Err())
	}

	if r.Value().Value != nil {
		t.Errorf("expected nil marker, got %v", *r.Value().Value)
	}

	if r.Value().Rest.Offset() != 0 {
		t.Errorf("expected nothing consumed, got offset %d", r.Value().Rest.Offset())
	}
}

func TestEOF(t *testing.T) {
	p := Just("x").EOF()

	if r := p.Parse("x"); r.IsFailure() {
		t.Fatalf("parse error: %v", r.Err())
	}

	r := p.Parse("xy")
	if r.IsSuccess() {
		t.Fatal("expected failure on leftover input")
	}

	if r.Err().Offset != 1 {
		t.Errorf("expected failure at offset 1, got %d", r.Err().Offset)
	}
}

func TestChar(t *testing.T) {
	p := Char(unicode.IsLetter, "a letter")

	r := p.Parse("ab")
	if r.IsFailure() || r.Value().Value != 'a' {
		t.Fatalf("expected 'a', got %v", r)
	}

	if r := p.Parse("1"); r.IsSuccess() {
		t.Fatal("expected failure on digit")
	}

	if r := p.Parse(""); r.IsSuccess() {
		t.Fatal("expected failure on empty input")
	}
}

func TestNumber(t *testing.T) {
	r := Number().Parse("123abc")
	if r.IsFailure() {
		t.Fatalf("parse error: %v", r.Err())
	}

	s := r.Value()
	if s.Value != 123 {
		t.Errorf("expected 123, got %d", s.Value)
	}

	if s.Rest.Rest() != "abc" {
		t.Errorf("expected 'abc' remaining, got %q", s.Rest.Rest())
	}

	if r := Number().Parse("abc"); r.IsSuccess() {
		t.Fatal("expected failure on empty digit run")
	}
}

func TestIdent(t *testing.T) {
	r := Ident().Parse("foo2 bar")
	if r.IsFailure() {
		t.Fatalf("parse error: %v", r.Err())
	}

	if r.Value().Value != "foo2" {
		t.Errorf("expected 'foo2', got %q", r.Value().Value)
	}

	if r := Ident().Parse("2foo"); r.IsSuccess() {
		t.Fatal("expected failure on leading digit")
	}
}

func TestRecursive_BalancedParens(t *testing.T) {
	// unit := "()" | "(" unit ")"
	unit := Recursive(func(unit Parser[int]) Parser[int] {
		leaf := Map(Just("()"), func(string) int { return 1 })
		nested := Map(Between(unit, Just("("), Just(")")), func(n int) int { return n + 1 })

		return leaf.OrElse(nested)
	})

	r := unit.EOF().Parse("((()))")
	if r.IsFailure() {
		t.Fatalf("parse error: %v", r.Err())
	}

	if r.Value().Value != 3 {
		t.Errorf("expected depth 3, got %d", r.Value().Value)
	}
}

func TestParseErrorPosition(t *testing.T) {
	perr := &ParseError{
		Message: "expected a number",
		Source:  "fn main() {\n  return @;\n}",
		Offset:  21,
	}

	line, col := perr.Position()
	if line != 2 || col != 10 {
		t.Errorf("expected line 2 column 10, got line %d column %d", line, col)
	}
}
