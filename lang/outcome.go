package lang

// Outcome is a two-variant result holding either a success value of type T
// or a failure value of type E. It is the propagation channel for every
// parser in this package: failures are ordinary values carried alongside
// successes, never raised through panic.
//
// The zero value is a failure carrying zero values; use [Success] and
// [Failure] to construct meaningful outcomes. An Outcome is immutable.
type Outcome[T, E any] struct {
	value T
	err   E
	ok    bool
}

// Success returns an Outcome carrying a success value.
func Success[T, E any](value T) Outcome[T, E] {
	return Outcome[T, E]{value: value, ok: true}
}

// Failure returns an Outcome carrying a failure value.
func Failure[T, E any](err E) Outcome[T, E] {
	return Outcome[T, E]{err: err}
}

// IsSuccess reports whether the outcome carries a success value.
func (o Outcome[T, E]) IsSuccess() bool { return o.ok }

// IsFailure reports whether the outcome carries a failure value.
func (o Outcome[T, E]) IsFailure() bool { return !o.ok }

// Value returns the success value, or the zero value of T on failure.
func (o Outcome[T, E]) Value() T { return o.value }

// Err returns the failure value, or the zero value of E on success.
func (o Outcome[T, E]) Err() E { return o.err }

// Get returns both payloads along with the success flag. Exactly one of the
// two payloads is meaningful, selected by ok.
func (o Outcome[T, E]) Get() (value T, err E, ok bool) {
	return o.value, o.err, o.ok
}

// MapOutcome transforms the success payload with f, passing failures
// through unchanged. It is a free function because Go methods cannot
// introduce the result type parameter U.
func MapOutcome[T, U, E any](o Outcome[T, E], f func(T) U) Outcome[U, E] {
	if !o.ok {
		return Failure[U](o.err)
	}

	return Success[U, E](f(o.value))
}
