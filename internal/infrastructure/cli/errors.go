package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/planwright/pkg/application"
	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
	"github.com/felixgeelhaar/planwright/pkg/domain/graph"
	"github.com/felixgeelhaar/planwright/pkg/domain/plan"
	"github.com/felixgeelhaar/planwright/pkg/storage"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var formatErr *plan.FormatError
	if errors.As(err, &formatErr) {
		return NewCLIError(
			formatErr.Error(),
			"Fix the decomposition payload; no partial repair is attempted",
			err,
		)
	}

	var refErr *graph.UnknownReferenceError
	if errors.As(err, &refErr) {
		hint := fmt.Sprintf("Add task '%s' to the plan or drop the dependency from '%s'", refErr.ReferencedID, refErr.TaskID)
		if refErr.ReferencedID == "" {
			hint = fmt.Sprintf("Add task '%s' to the plan or drop its dependency record", refErr.TaskID)
		}
		return NewCLIError(refErr.Error(), hint, err)
	}

	var cycleErr *graph.CycleError
	if errors.As(err, &cycleErr) {
		return NewCLIError(
			cycleErr.Error(),
			fmt.Sprintf("Break the dependency cycle through task '%s'", cycleErr.TaskID),
			err,
		)
	}

	var lifecycleErr *execution.LifecycleError
	if errors.As(err, &lifecycleErr) {
		return NewCLIError(
			lifecycleErr.Error(),
			fmt.Sprintf("Check the recorded feedback for task '%s'; its lifecycle does not allow this report", lifecycleErr.TaskID),
			err,
		)
	}

	var conflictErr *application.ConflictError
	if errors.As(err, &conflictErr) {
		return NewCLIError(
			conflictErr.Error(),
			"Wait for the in-flight adaptation to finish, then retry",
			err,
		)
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return NewCLIError("workspace artifact not found", "Run 'planwright init' and 'planwright plan decompose' first", err)
	}

	return err
}
