// Package result provides the two-outcome value returned by every capability
// service operation that can fail for an expected reason. Expected failures
// travel inside a Result as a *domain.Error; only fatal infrastructure
// failures use Go's plain error channel.
package result

import "github.com/99minutos/identity-admin/internal/core/domain"

// Result holds exactly one of a success value or a domain error. Construct
// only via Ok or Err; the zero value is not meaningful. Once built, a Result
// is immutable.
type Result[T any] struct {
	value T
	err   *domain.Error
	ok    bool
}

// Ok wraps a success value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Err wraps an expected domain failure. Panics on a nil error: an error
// branch with no error is a programming bug, not a representable outcome.
func Err[T any](e *domain.Error) Result[T] {
	if e == nil {
		panic("result: Err called with nil domain error")
	}
	return Result[T]{err: e}
}

// IsOk reports whether the Result holds the success branch.
func (r Result[T]) IsOk() bool {
	return r.ok
}

// Cata folds the Result by invoking exactly one of the two handlers, exactly
// once. It is the only way to extract the payload, which forces every caller
// to decide what the error branch means before touching the value.
func (r Result[T]) Cata(onErr func(*domain.Error) error, onOk func(T) error) error {
	if r.ok {
		return onOk(r.value)
	}
	return onErr(r.err)
}
