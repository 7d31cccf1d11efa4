package port

import (
	"errors"
	"fmt"

	"github.com/aretw0/tendril/pkg/domain"
)

// ErrPropagationDepth is returned when an update laps a wiring cycle more often
// than the limit allows.
var ErrPropagationDepth = errors.New("propagation depth exceeded")

// Runtime value anomalies reported by sanitizers.
var (
	ErrNonNumeric = errors.New("value is not numeric")
	ErrNonFinite  = errors.New("value is not finite")
	ErrNonBoolean = errors.New("value is not boolean")
	ErrUnknownKey = errors.New("unknown key name")
)

// PropagationError reports where a cyclic propagation was cut.
type PropagationError struct {
	Origin string // port that started the update
	At     string // port re-entered once too often
	Laps   int    // times At was already fanning out when re-entered
}

func (e *PropagationError) Error() string {
	return fmt.Sprintf("%s: update from %s re-entered %s after %d laps of a wiring cycle",
		ErrPropagationDepth, e.Origin, e.At, e.Laps)
}

func (e *PropagationError) Unwrap() error {
	return ErrPropagationDepth
}

// ValueError is a non-fatal sanitizer complaint about a raw value.
type ValueError struct {
	Value any
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%v (got %T %v)", e.Err, e.Value, e.Value)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// AnomalyKind classifies a sanitizer error.
func AnomalyKind(err error) domain.AnomalyKind {
	switch {
	case errors.Is(err, ErrNonNumeric):
		return domain.AnomalyNonNumeric
	case errors.Is(err, ErrNonFinite):
		return domain.AnomalyNonFinite
	case errors.Is(err, ErrNonBoolean):
		return domain.AnomalyNonBoolean
	case errors.Is(err, ErrUnknownKey):
		return domain.AnomalyUnknownKey
	}
	return domain.AnomalyOther
}
