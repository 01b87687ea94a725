package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kartva/ph-interpreters/log"
)

// flow distinguishes normal statement completion from an early return
// propagating out of nested blocks.
type flow int

const (
	flowNext flow = iota
	flowReturn
)

// Interp is a tree-walking evaluator over a parsed [Program].
type Interp struct {
	funcs  map[string]*FunctionDeclaration
	stdout io.Writer
	logger log.Logger
}

// Run evaluates prog by invoking its main function with no arguments. It
// returns main's value and whether main executed an explicit return
// statement; a function body that falls off the end yields 0.
//
// When prog declares the same function name more than once, the last
// declaration wins.
func Run(ctx context.Context, prog *Program, opts ...Option) (int64, bool, error) {
	cfg := makeOptions(opts...)

	interp := &Interp{
		funcs:  make(map[string]*FunctionDeclaration, len(prog.Functions)),
		stdout: cfg.stdout,
		logger: cfg.logger,
	}

	for i := range prog.Functions {
		fn := &prog.Functions[i]
		if _, ok := interp.funcs[fn.Name.Name]; ok {
			interp.logger.Warn("function redeclared",
				slog.String("name", fn.Name.Name),
			)
		}

		interp.funcs[fn.Name.Name] = fn
	}

	main, ok := interp.funcs["main"]
	if !ok {
		return 0, false, ErrUndefinedFunction.
			With(slog.String("name", "main"))
	}

	if len(main.Parameters) != 0 {
		return 0, false, ErrArityMismatch.
			With(
				slog.String("name", "main"),
				slog.Int("expected", 0),
				slog.Int("got", len(main.Parameters)),
			)
	}

	value, returned, err := interp.call(ctx, main, nil, NewEnv(nil))
	if err != nil {
		return 0, false, err
	}

	interp.logger.Debug("program finished",
		slog.Int64("value", value),
		slog.Bool("returned", returned),
	)

	return value, returned, nil
}

// call runs fn with args bound to its parameters. The parameter scope is a
// child of the caller's environment, so callee bodies can read and update
// the caller's variables. Duplicate parameter names bind the last value.
func (interp *Interp) call(
	ctx context.Context,
	fn *FunctionDeclaration,
	args []int64,
	caller *Env,
) (int64, bool, error) {
	if len(args) != len(fn.Parameters) {
		return 0, false, ErrArityMismatch.
			With(
				slog.String("name", fn.Name.Name),
				slog.Int("expected", len(fn.Parameters)),
				slog.Int("got", len(args)),
			)
	}

	env := NewEnv(caller)
	for i, param := range fn.Parameters {
		env.vars[param.Name] = args[i]
	}

	value, ctl, err := interp.execBlock(ctx, fn.Body, env)
	if err != nil {
		return 0, false, err
	}

	return value, ctl == flowReturn, nil
}

// execBlock runs the statements of b in a fresh child scope of env. It
// stops early when a statement signals flowReturn.
func (interp *Interp) execBlock(ctx context.Context, b *Block, env *Env) (int64, flow, error) {
	scope := NewEnv(env)

	for _, stmt := range b.Statements {
		value, ctl, err := interp.execStmt(ctx, stmt, scope)
		if err != nil {
			return 0, flowNext, err
		}

		if ctl == flowReturn {
			return value, flowReturn, nil
		}
	}

	return 0, flowNext, nil
}

func (interp *Interp) execStmt(ctx context.Context, stmt Statement, env *Env) (int64, flow, error) {
	switch stmt := stmt.(type) {
	case VarSet:
		value, err := interp.evalExpr(ctx, stmt.RHS, env)
		if err != nil {
			return 0, flowNext, err
		}

		env.Set(stmt.Name, value)

		return 0, flowNext, nil

	case Return:
		value, err := interp.evalExpr(ctx, stmt.Value, env)
		if err != nil {
			return 0, flowNext, err
		}

		return value, flowReturn, nil

	case ExpressionStmt:
		if _, err := interp.evalExpr(ctx, stmt.Expr, env); err != nil {
			return 0, flowNext, err
		}

		return 0, flowNext, nil

	case If:
		cond, err := interp.evalExpr(ctx, stmt.Condition, env)
		if err != nil {
			return 0, flowNext, err
		}

		branch := stmt.Then
		if cond == 0 {
			branch = stmt.Else
		}

		return interp.execBlock(ctx, branch, env)

	case While:
		for {
			if err := ctx.Err(); err != nil {
				return 0, flowNext, err
			}

			cond, err := interp.evalExpr(ctx, stmt.Condition, env)
			if err != nil {
				return 0, flowNext, err
			}

			if cond == 0 {
				return 0, flowNext, nil
			}

			value, ctl, err := interp.execBlock(ctx, stmt.Body, env)
			if err != nil {
				return 0, flowNext, err
			}

			if ctl == flowReturn {
				return value, flowReturn, nil
			}
		}

	default:
		return 0, flowNext, ErrUnknownNode.
			With(slog.String("node", fmt.Sprintf("%T", stmt)))
	}
}

func (interp *Interp) evalExpr(ctx context.Context, expr Expression, env *Env) (int64, error) {
	switch expr := expr.(type) {
	case NumberLiteral:
		return expr.Value, nil

	case Identifier:
		value, ok := env.Lookup(expr.Name)
		if !ok {
			return 0, ErrUndefinedVariable.
				With(slog.String("name", expr.Name))
		}

		return value, nil

	case BinaryExpression:
		left, err := interp.evalExpr(ctx, expr.Left, env)
		if err != nil {
			return 0, err
		}

		right, err := interp.evalExpr(ctx, expr.Right, env)
		if err != nil {
			return 0, err
		}

		return applyOperator(expr.Operator, left, right)

	case CallExpression:
		return interp.evalCall(ctx, expr, env)

	default:
		return 0, ErrUnknownNode.
			With(slog.String("node", fmt.Sprintf("%T", expr)))
	}
}

// evalCall evaluates the arguments left to right in the caller's scope,
// then resolves and invokes the callee. The print builtin is intercepted
// before user functions are consulted and yields 0.
func (interp *Interp) evalCall(ctx context.Context, call CallExpression, env *Env) (int64, error) {
	args := make([]int64, len(call.Arguments))

	for i, arg := range call.Arguments {
		value, err := interp.evalExpr(ctx, arg, env)
		if err != nil {
			return 0, err
		}

		args[i] = value
	}

	callee, ok := call.Callee.(Identifier)
	if !ok {
		return 0, ErrInvalidCallee.
			With(slog.String("callee", call.Callee.String()))
	}

	if callee.Name == "print" {
		if len(args) != 1 {
			return 0, ErrArityMismatch.
				With(
					slog.String("name", "print"),
					slog.Int("expected", 1),
					slog.Int("got", len(args)),
				)
		}

		if _, err := fmt.Fprintln(interp.stdout, args[0]); err != nil {
			return 0, ErrWriteOutput.Wrap(err)
		}

		return 0, nil
	}

	fn, ok := interp.funcs[callee.Name]
	if !ok {
		return 0, ErrUndefinedFunction.
			With(slog.String("name", callee.Name))
	}

	interp.logger.Trace("call",
		slog.String("name", callee.Name),
		slog.Any("args", args),
	)

	value, _, err := interp.call(ctx, fn, args, env)

	return value, err
}

// applyOperator evaluates one binary operation. Comparisons yield 1 for
// true and 0 for false. Division truncates toward zero and fails on a zero
// divisor.
func applyOperator(op string, left, right int64) (int64, error) {
	switch op {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return 0, ErrDivisionByZero.
				With(slog.Int64("dividend", left))
		}

		return left / right, nil
	case "==":
		return boolToInt(left == right), nil
	case "!=":
		return boolToInt(left != right), nil
	case "<":
		return boolToInt(left < right), nil
	case "<=":
		return boolToInt(left <= right), nil
	case ">":
		return boolToInt(left > right), nil
	case ">=":
		return boolToInt(left >= right), nil
	default:
		return 0, ErrUnknownOperator.
			With(slog.String("operator", op))
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}

	return 0
}
