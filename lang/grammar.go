package lang

import (
	"context"
	"log/slog"
	"sync"
	"unicode"
)

// token parses the literal tok, skipping leading whitespace.
func token(tok string) Parser[string] {
	return Just(tok).Padded().Label("token " + tok)
}

// identifier parses a name, skipping leading whitespace.
func identifier() Parser[Identifier] {
	return Map(Ident().Padded(), func(name string) Identifier {
		return Identifier{Name: name}
	}).Label("identifier")
}

// foldBinary parses operand (op operand)* and folds the sequence into a
// left-associated [BinaryExpression] chain.
func foldBinary(operand Parser[Expression], op Parser[string]) Parser[Expression] {
	tail := Repeated(Then(op, operand))

	return Map(
		Then(operand, tail),
		func(p Pair[Expression, []Pair[string, Expression]]) Expression {
			expr := p.Left
			for _, t := range p.Right {
				expr = BinaryExpression{Left: expr, Operator: t.Left, Right: t.Right}
			}

			return expr
		},
	)
}

// expressionParser builds the expression grammar. Precedence, loosest
// first: comparison, additive, multiplicative, unary minus, atoms and
// calls. All binary operators associate left.
func expressionParser() Parser[Expression] {
	return Recursive(func(expr Parser[Expression]) Parser[Expression] {
		number := Map(Number().Padded(), func(n int64) Expression {
			return NumberLiteral{Value: n}
		}).Label("number")

		name := Map(identifier(), func(id Identifier) Expression {
			return Expression(id)
		})

		parens := Between(expr, token("("), token(")"))

		atom := number.OrElse(name).OrElse(parens).Label("atom")

		arguments := Between(SepBy(expr, token(",")), token("("), token(")"))

		// An atom followed by an argument list is a call. The callee is
		// any atom, so "(1 + 2)(3)" parses; the evaluator rejects it.
		call := Map(
			Then(atom, OrNot(arguments)),
			func(p Pair[Expression, *[]Expression]) Expression {
				if p.Right == nil {
					return p.Left
				}

				return CallExpression{Callee: p.Left, Arguments: *p.Right}
			},
		).Label("call")

		// Unary minus is rewritten as multiplication by -1, so "-x * y"
		// folds to "((-1 * x) * y)". An even number of signs cancels out.
		unary := Map(
			Then(Repeated(token("-")), call),
			func(p Pair[[]string, Expression]) Expression {
				if len(p.Left)%2 == 0 {
					return p.Right
				}

				return BinaryExpression{
					Left:     NumberLiteral{Value: -1},
					Operator: "*",
					Right:    p.Right,
				}
			},
		).Label("unary")

		product := foldBinary(unary, token("*").OrElse(token("/"))).Label("product")

		sum := foldBinary(product, token("+").OrElse(token("-"))).Label("sum")

		// Two-character operators come first so "<" cannot shadow "<=".
		compareOp := token("==").
			OrElse(token("!=")).
			OrElse(token("<=")).
			OrElse(token(">=")).
			OrElse(token("<")).
			OrElse(token(">"))

		return foldBinary(sum, compareOp).Label("expression")
	})
}

// blockParser builds the statement grammar rooted at a braced block.
func blockParser(expr Parser[Expression]) Parser[*Block] {
	return Recursive(func(block Parser[*Block]) Parser[*Block] {
		returnStmt := Map(
			IgnoreThen(token("return"), expr),
			func(e Expression) Statement { return Return{Value: e} },
		).Label("return")

		varSet := Map(
			Then(ThenIgnore(identifier(), token("=")), expr),
			func(p Pair[Identifier, Expression]) Statement {
				return VarSet{Name: p.Left.Name, RHS: p.Right}
			},
		).Label("varset")

		exprStmt := Map(expr, func(e Expression) Statement {
			return ExpressionStmt{Expr: e}
		}).Label("exprstmt")

		// A missing else branch is canonicalized to an empty block, so
		// the evaluator never checks for nil.
		ifStmt := Map(
			Then(
				Then(IgnoreThen(token("if"), expr), block),
				OrNot(IgnoreThen(token("else"), block)),
			),
			func(p Pair[Pair[Expression, *Block], **Block]) Statement {
				stmt := If{Condition: p.Left.Left, Then: p.Left.Right, Else: &Block{}}
				if p.Right != nil {
					stmt.Else = *p.Right
				}

				return stmt
			},
		).Label("if")

		whileStmt := Map(
			Then(IgnoreThen(token("while"), expr), block),
			func(p Pair[Expression, *Block]) Statement {
				return While{Condition: p.Left, Body: p.Right}
			},
		).Label("while")

		// Simple statements require a terminating semicolon; after a
		// compound statement's closing brace it is optional.
		simple := ThenIgnore(
			returnStmt.OrElse(varSet).OrElse(exprStmt),
			token(";"),
		)

		compound := ThenIgnore(
			ifStmt.OrElse(whileStmt),
			OrNot(token(";")),
		)

		statement := compound.OrElse(simple).Label("statement")

		return Map(
			Between(Repeated(statement), token("{"), token("}")),
			func(stmts []Statement) *Block { return &Block{Statements: stmts} },
		).Label("block")
	})
}

// programParser builds the parser for a whole source file: zero or more
// function declarations followed by end of input.
func programParser() Parser[*Program] {
	expr := expressionParser()
	block := blockParser(expr)

	parameters := Between(
		SepBy(identifier(), token(",")),
		token("("), token(")"),
	)

	fnDecl := Map(
		Then(Then(IgnoreThen(token("fn"), identifier()), parameters), block),
		func(p Pair[Pair[Identifier, []Identifier], *Block]) FunctionDeclaration {
			return FunctionDeclaration{
				Name:       p.Left.Left,
				Parameters: p.Left.Right,
				Body:       p.Right,
			}
		},
	).Label("fn")

	program := Map(Repeated(fnDecl), func(fns []FunctionDeclaration) *Program {
		return &Program{Functions: fns}
	})

	// Consume trailing whitespace so a final newline does not trip the
	// end-of-input check.
	return ThenIgnore(program, AccumulateWhile(unicode.IsSpace)).EOF()
}

// grammar is built once and reused across all parses. Parsers are pure
// values, so sharing one across goroutines is safe.
var grammar = sync.OnceValue(programParser)

// ParseProgram parses source into a [Program]. On failure the returned
// error is a [*ParseError] carrying the offset of the failure and the
// source for rendering a caret snippet.
//
// Results for unconfigured calls are cached by content hash, so reparsing
// an identical source is a lookup.
func ParseProgram(ctx context.Context, source string, opts ...Option) (*Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := makeOptions(opts...)

	cacheable := len(opts) == 0
	if cacheable {
		if prog, ok := parseCache.lookup(source); ok {
			return prog, nil
		}
	}

	r := grammar()(NewInput(source))
	if r.IsFailure() {
		perr := r.Err()
		perr.Source = source
		cfg.logger.Debug("parse failed",
			slog.Int("offset", perr.Offset),
			slog.String("message", perr.Message),
		)

		return nil, perr
	}

	prog := r.Value().Value
	cfg.logger.Debug("parsed program",
		slog.Int("functions", len(prog.Functions)),
	)

	if cacheable {
		parseCache.store(source, prog)
	}

	return prog, nil
}
