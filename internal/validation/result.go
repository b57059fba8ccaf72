package validation

import "errors"

// Status tells a caller what to do with a parsed field.
type Status int

const (
	Skipped Status = iota // empty input; the caller cancels or leaves the field alone
	Valid                 // Value holds the parsed input
	Invalid               // Message says why; the caller re-prompts
)

// Result is the outcome of validating one line of user input.
type Result[T any] struct {
	Value   T
	Status  Status
	Message string
}

func ok[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: Valid}
}

func invalid[T any](msg string) Result[T] {
	return Result[T]{Status: Invalid, Message: msg}
}

func skipped[T any]() Result[T] {
	return Result[T]{Status: Skipped}
}

// OK reports whether the input parsed and passed validation.
func (r Result[T]) OK() bool { return r.Status == Valid }

// Skipped reports whether the input was empty.
func (r Result[T]) Skipped() bool { return r.Status == Skipped }

// Err returns the rejection as an error, or nil unless the result is Invalid.
func (r Result[T]) Err() error {
	if r.Status != Invalid {
		return nil
	}
	return errors.New(r.Message)
}
