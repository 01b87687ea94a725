package lang

import (
	"strings"
	"testing"
)

// parseMainExpr parses a program whose main returns a single expression
// and returns that expression.
func parseMainExpr(t *testing.T, expr string) Expression {
	t.Helper()

	prog, err := ParseProgram(t.Context(), "fn main() { return "+expr+"; }")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	ret, ok := prog.Functions[0].Body.Statements[0].(Return)
	if !ok {
		t.Fatalf("expected return statement, got %T",
			prog.Functions[0].Body.Statements[0])
	}

	return ret.Value
}

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"2 + 3 * 4", "(2 + (3 * 4))"},
		{"2 * 3 + 4", "((2 * 3) + 4)"},
		{"(2 + 3) * 4", "((2 + 3) * 4)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"20 / 2 / 5", "((20 / 2) / 5)"},
		{"1 + 2 == 3", "((1 + 2) == 3)"},
		{"a < b + 1", "(a < (b + 1))"},
		{"x <= y", "(x <= y)"},
		{"x >= y", "(x >= y)"},
		{"x != y", "(x != y)"},
	}

	for _, tt := range tests {
		got := parseMainExpr(t, tt.expr).String()
		if got != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.expr, tt.want, got)
		}
	}
}

func TestParse_UnaryMinusRewrite(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"-3", "(-1 * 3)"},
		{"-3 * 2", "((-1 * 3) * 2)"},
		{"- - 3", "3"},
		{"- - - 3", "(-1 * 3)"},
		{"1 - -2", "(1 - (-1 * 2))"},
	}

	for _, tt := range tests {
		got := parseMainExpr(t, tt.expr).String()
		if got != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.expr, tt.want, got)
		}
	}
}

func TestParse_Calls(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"f()", "f()"},
		{"f(1)", "f(1)"},
		{"f(1, 2 + 3)", "f(1, (2 + 3))"},
		{"f(g(1), 2)", "f(g(1), 2)"},
		{"(1 + 2)(3)", "(1 + 2)(3)"},
	}

	for _, tt := range tests {
		got := parseMainExpr(t, tt.expr).String()
		if got != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.expr, tt.want, got)
		}
	}
}

func TestParse_ElseAlwaysPresent(t *testing.T) {
	prog, err := ParseProgram(t.Context(), "fn main() { if 1 { return 2; } }")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	stmt, ok := prog.Functions[0].Body.Statements[0].(If)
	if !ok {
		t.Fatalf("expected if statement, got %T", prog.Functions[0].Body.Statements[0])
	}

	if stmt.Else == nil {
		t.Fatal("expected canonical empty else block, got nil")
	}

	if len(stmt.Else.Statements) != 0 {
		t.Errorf("expected empty else block, got %d statements", len(stmt.Else.Statements))
	}
}

func TestParse_OptionalSemicolonAfterCompound(t *testing.T) {
	sources := []string{
		"fn main() { if 1 { x = 2; } }",
		"fn main() { if 1 { x = 2; }; }",
		"fn main() { while 0 { x = 2; } }",
		"fn main() { while 0 { x = 2; }; }",
	}

	for _, src := range sources {
		if _, err := ParseProgram(t.Context(), src); err != nil {
			t.Errorf("parse error on %q: %v", src, err)
		}
	}
}

func TestParse_MissingSemicolonAfterSimple(t *testing.T) {
	if _, err := ParseProgram(t.Context(), "fn main() { return 1 }"); err == nil {
		t.Fatal("expected parse error for missing semicolon")
	}
}

func TestParse_RequiresEndOfInput(t *testing.T) {
	_, err := ParseProgram(t.Context(), "fn main() { return 1; } garbage")
	if err == nil {
		t.Fatal("expected parse error for trailing garbage")
	}

	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}

	if !strings.Contains(perr.Message, "end of input") {
		t.Errorf("expected end-of-input message, got %q", perr.Message)
	}
}

func TestParse_TrailingWhitespaceAccepted(t *testing.T) {
	if _, err := ParseProgram(t.Context(), "fn main() { return 1; }\n\n"); err != nil {
		t.Fatalf("parse error: %v", err)
	}
}

func TestParse_EmptyProgram(t *testing.T) {
	prog, err := ParseProgram(t.Context(), "")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(prog.Functions) != 0 {
		t.Errorf("expected no functions, got %d", len(prog.Functions))
	}
}

func TestParse_Declarations(t *testing.T) {
	src := `
fn add(a, b) {
	return a + b;
}

fn main() {
	return add(1, 2);
}
`

	prog, err := ParseProgram(t.Context(), src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(prog.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(prog.Functions))
	}

	add := prog.Functions[0]
	if add.Name.Name != "add" {
		t.Errorf("expected 'add', got %q", add.Name.Name)
	}

	if len(add.Parameters) != 2 || add.Parameters[0].Name != "a" || add.Parameters[1].Name != "b" {
		t.Errorf("unexpected parameters: %v", add.Parameters)
	}
}

func TestParse_ErrorIncludesPosition(t *testing.T) {
	_, err := ParseProgram(t.Context(), "fn main() {\n  return @;\n}")
	if err == nil {
		t.Fatal("expected parse error")
	}

	msg := err.Error()
	if !strings.Contains(msg, "line 2") {
		t.Errorf("expected line info in %q", msg)
	}

	if !strings.Contains(msg, "^") {
		t.Errorf("expected caret snippet in %q", msg)
	}
}

func TestParse_CacheReturnsSameProgram(t *testing.T) {
	t.Cleanup(ClearParseCache)

	src := "fn main() { return 1; }"

	first, err := ParseProgram(t.Context(), src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	second, err := ParseProgram(t.Context(), src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if first != second {
		t.Error("expected cached program on identical source")
	}
}

func TestProgramPrint(t *testing.T) {
	prog, err := ParseProgram(t.Context(), "fn main() { x = 1; if x { print(x); } }")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf strings.Builder
	if err := prog.Print(&buf); err != nil {
		t.Fatalf("print error: %v", err)
	}

	out := buf.String()

	for _, want := range []string{"fn main()", "set x = 1", "if x", "expr print(x)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}
