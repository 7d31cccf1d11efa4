package domain

import (
	"errors"
	"fmt"
)

// Build errors. Any of these aborts a rebuild and leaves the running graph intact.
var (
	// ErrUnknownVariant is returned when a declaration names a generator kind that does not exist.
	ErrUnknownVariant = errors.New("unknown generator kind")

	// ErrUnknownGenerator is returned when a connection references an undeclared instance.
	ErrUnknownGenerator = errors.New("unknown generator")

	// ErrUnknownPort is returned when a statement references a port the generator does not expose.
	ErrUnknownPort = errors.New("unknown port")

	// ErrMalformedStatement is returned when a statement is missing required fields.
	ErrMalformedStatement = errors.New("malformed statement")

	// ErrDuplicateName is returned when two declarations in one script share an instance name.
	ErrDuplicateName = errors.New("duplicate generator name")

	// ErrPortType is returned when an initial port value does not match the port type.
	ErrPortType = errors.New("port type mismatch")
)

// ErrNoGraph is returned when the running script is requested before any build succeeded.
var ErrNoGraph = errors.New("no graph loaded")

// BuildError ties a build failure to the offending statement.
// Index is zero-based; it is -1 when the failure happened before statements were read (e.g. decoding).
type BuildError struct {
	Index     int
	Statement Statement
	Err       error
}

func (e *BuildError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("build failed: %v", e.Err)
	}
	if e.Statement == nil {
		return fmt.Sprintf("build failed at statement %d: %v", e.Index+1, e.Err)
	}
	return fmt.Sprintf("build failed at statement %d (%s): %v", e.Index+1, e.Statement, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// IsBuildError reports whether err is (or wraps) a BuildError.
func IsBuildError(err error) bool {
	var be *BuildError
	return errors.As(err, &be)
}

// TickError reports a fatal failure while stepping a generator.
// The rest of the frame is skipped; the next tick starts over.
type TickError struct {
	Frame     uint64
	Generator string
	Err       error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d aborted at generator %q: %v", e.Frame, e.Generator, e.Err)
}

func (e *TickError) Unwrap() error {
	return e.Err
}
