package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined evaluation errors (sentinel values). Each aborts the entire
// run; the interpreted language exposes no construct to recover from them.
var (
	ErrUndefinedVariable = NewError("undefined variable")
	ErrUndefinedFunction = NewError("undefined function")
	ErrInvalidCallee     = NewError("invalid callee")
	ErrUnknownOperator   = NewError("unknown operator")
	ErrDivisionByZero    = NewError("division by zero")
	ErrArityMismatch     = NewError("argument count mismatch")
	ErrUnknownNode       = NewError("unknown syntax tree node")
	ErrReadInput         = NewError("failed to read input")
	ErrWriteOutput       = NewError("failed to write output")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer.
type Error struct {
	msg   string
	err   error       // wrapped error (for errors.Unwrap)
	attrs []slog.Attr // attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// "<msg>: <err>" when both are set, otherwise whichever is present.
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same sentinel this Error was derived
// from. With and Wrap return copies, so identity comparison alone would
// break errors.Is against the sentinels above.
func (e *Error) Is(target error) bool {
	te := &Error{}
	if !errors.As(target, &te) {
		return false
	}

	return e.msg == te.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // share attrs
	}
}

// With adds attributes to the error for structured logging.
// A new Error is returned to keep the sentinel immutable.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// ParseError describes a parse failure anchored at the byte offset of the
// input that caused it. Parsers propagate ParseError values through
// [Outcome]; none of them consume input on failure, so Offset is always the
// position the failing parser was applied at.
//
// Source is empty while the error travels through the engine. Top-level
// entry points attach the full source before returning, which upgrades
// Error() from a bare message to a line/column diagnostic with a snippet.
type ParseError struct {
	Message string
	Source  string
	Offset  int
}

func newParseError(in Input, msg string) *ParseError {
	return &ParseError{Message: msg, Offset: in.off}
}

// Position returns the 1-based line and column of the error offset within
// the attached source. Without an attached source it reports the offset as
// a column on line 1.
func (e *ParseError) Position() (line, col int) {
	line, col = 1, 1

	for _, r := range e.Source[:min(e.Offset, len(e.Source))] {
		if r == '\n' {
			line++
			col = 1

			continue
		}

		col++
	}

	return line, col
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Source == "" {
		return e.Message
	}

	line, col := e.Position()

	var buf strings.Builder

	buf.WriteString("parse error at line ")
	buf.WriteString(strconv.Itoa(line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(col))
	buf.WriteString(": ")
	buf.WriteString(e.Message)
	buf.WriteString("\n")
	buf.WriteString(e.snippet(line, col))

	return buf.String()
}

// snippet renders the offending source line with a caret under the error
// column.
func (e *ParseError) snippet(line, col int) string {
	lines := strings.Split(e.Source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}

	var buf strings.Builder

	num := strconv.Itoa(line)

	buf.WriteString("  ")
	buf.WriteString(num)
	buf.WriteString(" | ")
	buf.WriteString(lines[line-1])
	buf.WriteRune('\n')

	// 2 leading spaces + line number + " | " before the caret column.
	padding := strings.Repeat(" ", len(num)+5)
	if col > 0 {
		padding += strings.Repeat(" ", col-1)
	}

	buf.WriteString(padding + "^\n")

	return buf.String()
}

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	line, col := e.Position()

	return slog.GroupValue(
		slog.String("error", e.Message),
		slog.Int("offset", e.Offset),
		slog.Int("line", line),
		slog.Int("column", col),
	)
}
