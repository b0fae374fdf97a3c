package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for engine operations.
var (
	// ErrInvalidConfiguration indicates a non-positive mass, radius, count
	// or speed passed at construction. Values are never clamped.
	ErrInvalidConfiguration = errors.New("dynamo: invalid configuration")

	// ErrDegenerateGeometry indicates coincident bodies during force
	// evaluation. The field recovers by skipping the pair.
	ErrDegenerateGeometry = errors.New("dynamo: coincident bodies")

	// ErrNumericOverflow indicates position or velocity became NaN or Inf.
	ErrNumericOverflow = errors.New("dynamo: non-finite body state")
)

// StepError wraps an error with the step it was detected on.
type StepError struct {
	Step    int
	Time    float64
	Bodies  []int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4g s): %v (bodies %v)", e.Step, e.Time, e.Wrapped, e.Bodies)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
