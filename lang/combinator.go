package lang

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Input is an immutable position within a source string. Parsers never
// mutate an Input; advancing produces a new value. Two Inputs over the same
// source compare by offset.
type Input struct {
	src string
	off int
}

// NewInput returns an Input positioned at the start of src.
func NewInput(src string) Input {
	return Input{src: src}
}

// Rest returns the unconsumed remainder of the source.
func (in Input) Rest() string { return in.src[in.off:] }

// Offset returns the byte offset of the position within the source.
func (in Input) Offset() int { return in.off }

// Empty reports whether no input remains.
func (in Input) Empty() bool { return in.off >= len(in.src) }

// advance returns an Input moved forward by n bytes.
func (in Input) advance(n int) Input {
	return Input{src: in.src, off: in.off + n}
}

// skipSpace returns an Input with leading whitespace consumed.
func (in Input) skipSpace() Input {
	rest := in.Rest()
	for i, r := range rest {
		if !unicode.IsSpace(r) {
			return in.advance(i)
		}
	}

	return in.advance(len(rest))
}

// previewLen bounds the amount of unconsumed input quoted in error
// messages and trace output.
const previewLen = 20

// preview returns a short quoted prefix of the unconsumed input.
func (in Input) preview() string {
	rest := in.Rest()
	if len(rest) <= previewLen {
		return strconv.Quote(rest)
	}

	return strconv.Quote(rest[:previewLen]) + "..."
}

// Parsed pairs a successfully parsed value with the remaining input.
type Parsed[T any] struct {
	Value T
	Rest  Input
}

// Parser consumes input and produces either a value paired with the
// remaining input or a [*ParseError] anchored at the position it was
// applied at. Parsers are side-effect-free values: combinators build new
// parsers from existing ones without mutating them. A failing parser never
// consumes input, which is what makes [Parser.OrElse] backtracking sound.
type Parser[T any] func(Input) Outcome[Parsed[T], *ParseError]

// Parse applies the parser to the start of src.
func (p Parser[T]) Parse(src string) Outcome[Parsed[T], *ParseError] {
	return p(NewInput(src))
}

// good wraps a value and remaining input in a success outcome.
func good[T any](value T, rest Input) Outcome[Parsed[T], *ParseError] {
	return Success[Parsed[T], *ParseError](Parsed[T]{Value: value, Rest: rest})
}

// bad wraps a parse error in a failure outcome.
func bad[T any](err *ParseError) Outcome[Parsed[T], *ParseError] {
	return Failure[Parsed[T]](err)
}

// Pair holds the two values produced by [Then].
type Pair[L, R any] struct {
	Left  L
	Right R
}

// Map transforms the success value of p with f; failures pass through
// untouched.
//
// Map, Then, IgnoreThen, ThenIgnore, Between, SepBy, and Recursive are free
// functions rather than methods because Go methods cannot introduce the
// second type parameter.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(in Input) Outcome[Parsed[U], *ParseError] {
		r := p(in)
		if r.IsFailure() {
			return bad[U](r.Err())
		}

		s := r.Value()

		return good(f(s.Value), s.Rest)
	}
}

// Then sequences p and q, succeeding with both values and the position
// after q. It fails if either parser fails.
func Then[L, R any](p Parser[L], q Parser[R]) Parser[Pair[L, R]] {
	return func(in Input) Outcome[Parsed[Pair[L, R]], *ParseError] {
		r1 := p(in)
		if r1.IsFailure() {
			return bad[Pair[L, R]](r1.Err())
		}

		s1 := r1.Value()

		r2 := q(s1.Rest)
		if r2.IsFailure() {
			return bad[Pair[L, R]](r2.Err())
		}

		s2 := r2.Value()

		return good(Pair[L, R]{Left: s1.Value, Right: s2.Value}, s2.Rest)
	}
}

// IgnoreThen sequences p and q, keeping only q's value.
func IgnoreThen[L, R any](p Parser[L], q Parser[R]) Parser[R] {
	return Map(Then(p, q), func(t Pair[L, R]) R { return t.Right })
}

// ThenIgnore sequences p and q, keeping only p's value.
func ThenIgnore[L, R any](p Parser[L], q Parser[R]) Parser[L] {
	return Map(Then(p, q), func(t Pair[L, R]) L { return t.Left })
}

// Between parses open, then p, then close, keeping only p's value.
func Between[T, O, C any](p Parser[T], open Parser[O], close Parser[C]) Parser[T] {
	return ThenIgnore(IgnoreThen(open, p), close)
}

// OrElse tries p; if it fails, q is retried from the original position.
// The backtrack is sound because failing parsers consume nothing. When both
// alternatives fail, the error of the last attempted alternative (q) is
// surfaced.
func (p Parser[T]) OrElse(q Parser[T]) Parser[T] {
	return func(in Input) Outcome[Parsed[T], *ParseError] {
		r := p(in)
		if r.IsSuccess() {
			return r
		}

		return q(in)
	}
}

// Padded skips leading whitespace before applying p. Trailing whitespace is
// not consumed.
func (p Parser[T]) Padded() Parser[T] {
	return func(in Input) Outcome[Parsed[T], *ParseError] {
		return p(in.skipSpace())
	}
}

// Repeated applies p zero or more times until it fails, collecting the
// values. It never fails: zero matches yield an empty sequence with nothing
// consumed.
//
// An iteration that succeeds without consuming input would repeat forever,
// so it terminates the loop instead; its value is discarded.
func Repeated[T any](p Parser[T]) Parser[[]T] {
	return func(in Input) Outcome[Parsed[[]T], *ParseError] {
		var values []T

		rest := in

		for {
			r := p(rest)
			if r.IsFailure() {
				break
			}

			s := r.Value()
			if s.Rest.off == rest.off {
				break
			}

			values = append(values, s.Value)
			rest = s.Rest
		}

		return good(values, rest)
	}
}

// SepBy parses zero or more occurrences of p separated by delim. It never
// fails: if the first occurrence fails, it yields an empty sequence with
// nothing consumed. A trailing delimiter is not consumed.
//
// The same zero-consumption guard as [Parser.Repeated] applies to each
// (delimiter, item) round.
func SepBy[T, D any](p Parser[T], delim Parser[D]) Parser[[]T] {
	next := IgnoreThen(delim, p)

	return func(in Input) Outcome[Parsed[[]T], *ParseError] {
		var values []T

		r := p(in)
		if r.IsFailure() {
			return good(values, in)
		}

		s := r.Value()
		if s.Rest.off == in.off {
			return good(values, in)
		}

		values = append(values, s.Value)
		rest := s.Rest

		for {
			r := next(rest)
			if r.IsFailure() {
				break
			}

			s := r.Value()
			if s.Rest.off == rest.off {
				break
			}

			values = append(values, s.Value)
			rest = s.Rest
		}

		return good(values, rest)
	}
}

// OrNot applies p; on failure it succeeds with nil as the missing marker,
// consuming nothing. It never fails.
func OrNot[T any](p Parser[T]) Parser[*T] {
	return func(in Input) Outcome[Parsed[*T], *ParseError] {
		r := p(in)
		if r.IsFailure() {
			return good[*T](nil, in)
		}

		s := r.Value()
		value := s.Value

		return good(&value, s.Rest)
	}
}

// EOF applies p and then requires that no input remains.
func (p Parser[T]) EOF() Parser[T] {
	return func(in Input) Outcome[Parsed[T], *ParseError] {
		r := p(in)
		if r.IsFailure() {
			return r
		}

		s := r.Value()
		if !s.Rest.Empty() {
			return bad[T](newParseError(
				s.Rest,
				"expected end of input, found "+s.Rest.preview(),
			))
		}

		return r
	}
}

// Char parses a single rune satisfying pred. The name appears in error
// messages.
func Char(pred func(rune) bool, name string) Parser[rune] {
	return func(in Input) Outcome[Parsed[rune], *ParseError] {
		r, size := utf8.DecodeRuneInString(in.Rest())
		if size == 0 || !pred(r) {
			return bad[rune](newParseError(
				in,
				"expected "+name+", found "+in.preview(),
			))
		}

		return good(r, in.advance(size))
	}
}

// Just parses the literal token, yielding the token itself.
func Just(token string) Parser[string] {
	return func(in Input) Outcome[Parsed[string], *ParseError] {
		if rest := in.Rest(); len(rest) >= len(token) && rest[:len(token)] == token {
			return good(token, in.advance(len(token)))
		}

		return bad[string](newParseError(
			in,
			"expected "+strconv.Quote(token)+", found "+in.preview(),
		))
	}
}

// AccumulateWhile collects leading runes satisfying pred. It always
// succeeds, possibly with an empty string and nothing consumed; wrap it
// with a non-empty check before handing it to a loop combinator.
func AccumulateWhile(pred func(rune) bool) Parser[string] {
	return func(in Input) Outcome[Parsed[string], *ParseError] {
		rest := in.Rest()

		end := len(rest)

		for i, r := range rest {
			if !pred(r) {
				end = i

				break
			}
		}

		return good(rest[:end], in.advance(end))
	}
}

// Number parses a run of ASCII digits as an int64. It fails on an empty
// run and on overflow.
func Number() Parser[int64] {
	digits := AccumulateWhile(func(r rune) bool { return r >= '0' && r <= '9' })

	return func(in Input) Outcome[Parsed[int64], *ParseError] {
		s := digits(in).Value()
		if s.Value == "" {
			return bad[int64](newParseError(
				in,
				"expected a number, found "+in.preview(),
			))
		}

		n, err := strconv.ParseInt(s.Value, 10, 64)
		if err != nil {
			return bad[int64](newParseError(
				in,
				"number out of range: "+s.Value,
			))
		}

		return good(n, s.Rest)
	}
}

// Ident parses an identifier: a letter followed by letters or digits.
func Ident() Parser[string] {
	return func(in Input) Outcome[Parsed[string], *ParseError] {
		rest := in.Rest()

		first, size := utf8.DecodeRuneInString(rest)
		if size == 0 || !unicode.IsLetter(first) {
			return bad[string](newParseError(
				in,
				"expected an identifier, found "+in.preview(),
			))
		}

		end := len(rest)

		for i, r := range rest {
			if i == 0 {
				continue
			}

			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				end = i

				break
			}
		}

		return good(rest[:end], in.advance(end))
	}
}

// Recursive supports self-referential grammars. It creates a forward
// reference first, passes it to define, and wires the reference to the
// returned definition before any input is processed. All recursive calls
// route through the reference.
func Recursive[T any](define func(Parser[T]) Parser[T]) Parser[T] {
	var cell Parser[T]

	forward := Parser[T](func(in Input) Outcome[Parsed[T], *ParseError] {
		return cell(in)
	})

	cell = define(forward)

	return forward
}
