package lang

import (
	"fmt"
	"io"
	"strings"
)

// Expression is the sum of all expression forms. The marker method seals
// the set to the types defined in this package.
type Expression interface {
	fmt.Stringer
	expression()
}

// Statement is the sum of all statement forms.
type Statement interface {
	statement()
}

// NumberLiteral is a nonnegative integer literal. Negative constants are
// produced by the unary minus rewrite, not by the lexer.
type NumberLiteral struct {
	Value int64
}

// Identifier is a bare name in expression position.
type Identifier struct {
	Name string
}

// BinaryExpression applies an infix operator to two operands. Operator is
// the surface token ("+", "-", "*", "/", "==", "!=", "<", "<=", ">", ">=").
type BinaryExpression struct {
	Left     Expression
	Operator string
	Right    Expression
}

// CallExpression invokes Callee with Arguments. The grammar permits an
// arbitrary callee expression; the evaluator requires it to be an
// [Identifier].
type CallExpression struct {
	Callee    Expression
	Arguments []Expression
}

func (NumberLiteral) expression()    {}
func (Identifier) expression()       {}
func (BinaryExpression) expression() {}
func (CallExpression) expression()   {}

func (n NumberLiteral) String() string { return fmt.Sprintf("%d", n.Value) }
func (i Identifier) String() string    { return i.Name }

func (b BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

func (c CallExpression) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}

	return c.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// Block is a brace-delimited statement sequence. Entering a block opens a
// new variable scope.
type Block struct {
	Statements []Statement
}

// VarSet assigns the value of RHS to Name, either updating an existing
// binding or defining a new one in the innermost scope.
type VarSet struct {
	Name string
	RHS  Expression
}

// Return exits the enclosing function call with the value of its operand.
type Return struct {
	Value Expression
}

// ExpressionStmt evaluates an expression for its effects and discards the
// result.
type ExpressionStmt struct {
	Expr Expression
}

// If runs Then when Condition evaluates nonzero and Else otherwise. The
// parser canonicalizes a missing else branch to an empty Block, so Else is
// always non-nil.
type If struct {
	Condition Expression
	Then      *Block
	Else      *Block
}

// While re-evaluates Condition before each iteration and runs Body while
// it is nonzero.
type While struct {
	Condition Expression
	Body      *Block
}

func (VarSet) statement()         {}
func (Return) statement()         {}
func (ExpressionStmt) statement() {}
func (If) statement()             {}
func (While) statement()          {}

// FunctionDeclaration is a named function with zero or more parameters.
type FunctionDeclaration struct {
	Name       Identifier
	Parameters []Identifier
	Body       *Block
}

// Program is a parsed source file: an ordered list of function
// declarations.
type Program struct {
	Functions []FunctionDeclaration
}

// Print writes an indented tree rendering of the program, one node per
// line.
func (p *Program) Print(w io.Writer) error {
	pr := &printer{w: w}

	for _, fn := range p.Functions {
		pr.function(fn)
	}

	return pr.err
}

type printer struct {
	w     io.Writer
	depth int
	err   error
}

func (pr *printer) line(format string, args ...any) {
	if pr.err != nil {
		return
	}

	_, pr.err = fmt.Fprintf(
		pr.w, "%s"+format+"\n",
		append([]any{strings.Repeat("  ", pr.depth)}, args...)...,
	)
}

func (pr *printer) function(fn FunctionDeclaration) {
	params := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = p.Name
	}

	pr.line("fn %s(%s)", fn.Name.Name, strings.Join(params, ", "))
	pr.depth++
	pr.block(fn.Body)
	pr.depth--
}

func (pr *printer) block(b *Block) {
	for _, s := range b.Statements {
		pr.statement(s)
	}
}

func (pr *printer) statement(s Statement) {
	switch s := s.(type) {
	case VarSet:
		pr.line("set %s = %s", s.Name, s.RHS)
	case Return:
		pr.line("return %s", s.Value)
	case ExpressionStmt:
		pr.line("expr %s", s.Expr)
	case If:
		pr.line("if %s", s.Condition)
		pr.depth++
		pr.block(s.Then)
		pr.depth--

		if len(s.Else.Statements) > 0 {
			pr.line("else")
			pr.depth++
			pr.block(s.Else)
			pr.depth--
		}
	case While:
		pr.line("while %s", s.Condition)
		pr.depth++
		pr.block(s.Body)
		pr.depth--
	}
}
