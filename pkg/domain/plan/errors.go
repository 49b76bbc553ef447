package plan

import (
	"errors"
	"fmt"
)

// Plan domain errors.
var (
	// ErrInvalidPlanFormat indicates a malformed or incomplete decomposition.
	ErrInvalidPlanFormat = errors.New("invalid plan format")
)

// FormatError names the first structural violation found in a raw
// decomposition. Validation stops at the first violation; no repair is
// attempted.
type FormatError struct {
	Field  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid plan format: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid plan format: %s", e.Reason)
}

// Is allows errors.Is to work with FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidPlanFormat
}
