package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for configuration and analysis. The step loop itself never
// returns errors.
var (
	// ErrInvalidParams indicates a physics parameter outside its valid range.
	ErrInvalidParams = errors.New("dynamo: invalid simulation parameter")

	// ErrInvalidBounds indicates a domain with a non-positive extent.
	ErrInvalidBounds = errors.New("dynamo: domain extent must be positive")

	// ErrUnknownPreset indicates a preset name with no registered configuration.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrEmptySeries indicates an analysis request on too few samples.
	ErrEmptySeries = errors.New("dynamo: not enough samples")
)

// ParamError wraps an error with the offending parameter.
type ParamError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s (%s=%g)", e.Wrapped.Error(), e.Field, e.Value)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
