// Package result wraps the outcome of a remote call as success, error or
// loading. Call is the boundary where faults become messages.
package result

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Status identifies which of the three states a Result is in.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "loading"
	}
}

const (
	unknownMessage = "An unknown error occurred"
	networkPrefix  = "Network error: "
)

// Result holds exactly one of a value, an error message, or nothing while loading.
type Result[T any] struct {
	status  Status
	value   T
	message string
}

// Success wraps a value.
func Success[T any](value T) Result[T] {
	return Result[T]{status: StatusSuccess, value: value}
}

// Failure wraps an error message. Blank messages are replaced.
func Failure[T any](message string) Result[T] {
	if strings.TrimSpace(message) == "" {
		message = unknownMessage
	}
	return Result[T]{status: StatusError, message: message}
}

// Loading returns the in-flight state.
func Loading[T any]() Result[T] {
	return Result[T]{status: StatusLoading}
}

// Status reports the state.
func (r Result[T]) Status() Status { return r.status }

// Ok reports whether the result is a success.
func (r Result[T]) Ok() bool { return r.status == StatusSuccess }

// Value returns the wrapped value; the zero value unless Ok.
func (r Result[T]) Value() T { return r.value }

// Message returns the error message; empty unless the status is StatusError.
func (r Result[T]) Message() string { return r.message }

// Unwrap converts the result back to Go's (value, error) pair. A loading
// result yields ErrPending.
func (r Result[T]) Unwrap() (T, error) {
	switch r.status {
	case StatusSuccess:
		return r.value, nil
	case StatusError:
		var zero T
		return zero, errors.New(r.message)
	default:
		var zero T
		return zero, ErrPending
	}
}

// ErrPending is returned by Unwrap on a loading result.
var ErrPending = errors.New("result still loading")

// Call runs fn and converts its outcome into a Result. Returned errors and
// panics both become StatusError.
func Call[T any](ctx context.Context, fn func(context.Context) (T, error)) (res Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			res = Failure[T](fmt.Sprint(p))
		}
	}()

	value, err := fn(ctx)
	if err != nil {
		return Failure[T](Describe(err))
	}
	return Success(value)
}

// Describe renders err as a user-facing message. Transport failures are
// prefixed so they read differently from backend validation errors.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = unknownMessage
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return networkPrefix + msg
	}
	return msg
}
