package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Failure classes carried by every ValidationError.
var (
	ErrUnknownField = errors.New("no such port")
	ErrTypeMismatch = errors.New("type mismatch")
)

// ValidationError is one rejected entry of a value map.
type ValidationError struct {
	Key    string
	Reason string
	Value  any
	Err    error // ErrUnknownField or ErrTypeMismatch
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%q: %s", e.Key, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AggregateError collects every failure of one Validate call, in key order.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns the individual failures of err, or nil when err is
// not an AggregateError.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
