// Package lang implements the ph language toolchain: a generic
// parser-combinator engine, the ph grammar, and a tree-walking evaluator.
//
// # Pipeline
//
// Source text flows through the grammar (built entirely from the combinator
// engine) into an immutable abstract syntax tree, which the evaluator walks
// directly:
//
//	source → ParseProgram → *Program → Run → result
//
// Parsing performs no I/O and evaluation's only observable side effect is
// the print built-in. Everything is single-threaded and synchronous.
//
// # Grammar
//
// Informal EBNF (keywords fn, return, if, else, while):
//
//	Program    → Function* EOF
//	Function   → 'fn' IDENT '(' (IDENT (',' IDENT)*)? ')' Block
//	Block      → '{' Statement* '}'
//	Statement  → 'return' Expr ';'
//	           | 'if' Expr Block ('else' Block)? ';'?
//	           | 'while' Expr Block ';'?
//	           | IDENT '=' Expr ';'
//	           | Expr ';'
//	Expr       → Compare
//	Compare    → Sum (('==' | '!=' | '<=' | '>=' | '<' | '>') Sum)*
//	Sum        → Product (('+' | '-') Product)*
//	Product    → Unary (('*' | '/') Unary)*
//	Unary      → '-'* (Call | Atom)
//	Call       → Atom '(' (Expr (',' Expr)*)? ')'
//	Atom       → NUMBER | IDENT | '(' Expr ')'
//
// All binary levels are left-associative. Integer literals are unsigned
// digit runs; identifiers start with a letter and continue with letters or
// digits. There are no strings, floats, or comments.
//
// # Values and scoping
//
// The only runtime value is int64. Environments are parent-linked scopes:
// lookups walk outward, assignments write through to the scope defining the
// name, and new names bind in the innermost scope. A function call roots the
// callee's scope chain at the caller's current environment, so a callee can
// observe caller variables (there are no closures). Comparison operators
// yield exactly 1 or 0, and a nonzero condition is true.
//
// # Errors
//
// Parse failures travel through [Outcome] as [*ParseError] values anchored
// at the offending offset; nothing in the engine panics. Evaluation errors
// (undefined variable or function, invalid callee, unknown operator,
// division by zero, arity mismatch) are fatal: they abort the run and the
// language offers no construct to catch them. Early return is not an error
// and uses a separate control signal internal to the evaluator.
package lang
