// Package result provides a success/failure container used by the domain
// layer to propagate expected failures as values instead of panics.
package result

import "fmt"

// Result holds either a value or an error, never both.
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err wraps a failure.
func Err[T any](err error) Result[T] {
	if err == nil {
		err = fmt.Errorf("result: Err called with nil error")
	}
	return Result[T]{err: err}
}

// From bridges an ordinary (value, error) return into a Result.
func From[T any](value T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(value)
}

func (r Result[T]) IsOk() bool  { return r.err == nil }
func (r Result[T]) IsErr() bool { return r.err != nil }

// Value returns the conventional (value, error) pair.
func (r Result[T]) Value() (T, error) {
	return r.value, r.err
}

// Error returns the contained error, nil when Ok.
func (r Result[T]) Error() error { return r.err }

// Unwrap returns the value and panics on Err. Callers must guard with IsOk
// first; an Unwrap on Err is a programmer error, not a domain failure.
func (r Result[T]) Unwrap() T {
	if r.err != nil {
		panic(fmt.Sprintf("result: Unwrap on Err: %v", r.err))
	}
	return r.value
}

// UnwrapOr returns the value, or def when the result is Err.
func (r Result[T]) UnwrapOr(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}

// Match forces handling of both branches.
func (r Result[T]) Match(onOk func(T), onErr func(error)) {
	if r.err != nil {
		onErr(r.err)
		return
	}
	onOk(r.value)
}

// Tap observes the value without altering the chain.
func (r Result[T]) Tap(fn func(T)) Result[T] {
	if r.err == nil {
		fn(r.value)
	}
	return r
}

// TapErr observes the error without altering the chain.
func (r Result[T]) TapErr(fn func(error)) Result[T] {
	if r.err != nil {
		fn(r.err)
	}
	return r
}

// MapErr transforms the error, leaving Ok untouched.
func (r Result[T]) MapErr(fn func(error) error) Result[T] {
	if r.err != nil {
		return Err[T](fn(r.err))
	}
	return r
}

// FlatMapSame chains a same-typed fallible step, short-circuiting on Err.
func (r Result[T]) FlatMapSame(fn func(T) Result[T]) Result[T] {
	if r.err != nil {
		return r
	}
	return fn(r.value)
}

// Map transforms the Ok value. Declared at package level because Go methods
// cannot introduce new type parameters.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.err != nil {
		return Err[U](r.err)
	}
	return Ok(fn(r.value))
}

// FlatMap chains a fallible computation, short-circuiting on the first Err.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Err[U](r.err)
	}
	return fn(r.value)
}

// Fold collapses both branches into a single value.
func Fold[T, U any](r Result[T], onOk func(T) U, onErr func(error) U) U {
	if r.err != nil {
		return onErr(r.err)
	}
	return onOk(r.value)
}

// Combine returns Ok with every value when all inputs are Ok, else the first
// Err encountered. Fail-fast: errors are not accumulated.
func Combine[T any](results []Result[T]) Result[[]T] {
	values := make([]T, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			return Err[[]T](r.err)
		}
		values = append(values, r.value)
	}
	return Ok(values)
}

// Try runs fn, converting a panic into an Err. This is the sanctioned bridge
// from panicking code into the Result world.
func Try[T any](fn func() T) (out Result[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			if err, ok := rec.(error); ok {
				out = Err[T](err)
				return
			}
			out = Err[T](fmt.Errorf("%v", rec))
		}
	}()
	return Ok(fn())
}
