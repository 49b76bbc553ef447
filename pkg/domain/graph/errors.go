package graph

import (
	"errors"
	"fmt"
)

// Graph construction and scheduling errors.
var (
	// ErrUnknownTaskReference indicates a dependency edge naming a task that
	// is not part of the plan.
	ErrUnknownTaskReference = errors.New("unknown task reference")
	// ErrCircularDependency indicates a cycle in the dependency graph.
	ErrCircularDependency = errors.New("circular dependency detected")
)

// UnknownReferenceError names the dangling edge that made the graph invalid.
// ReferencedID is empty when a dependency record names a task the plan does
// not contain at all.
type UnknownReferenceError struct {
	TaskID       string
	ReferencedID string
}

func (e *UnknownReferenceError) Error() string {
	if e.ReferencedID == "" {
		return fmt.Sprintf("dependency record names unknown task %s", e.TaskID)
	}
	return fmt.Sprintf("task %s depends on unknown task %s", e.TaskID, e.ReferencedID)
}

// Is allows errors.Is to work with UnknownReferenceError.
func (e *UnknownReferenceError) Is(target error) bool {
	return target == ErrUnknownTaskReference
}

// CycleError names a task that is part of a dependency cycle.
type CycleError struct {
	TaskID string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency involving task %s", e.TaskID)
}

// Is allows errors.Is to work with CycleError.
func (e *CycleError) Is(target error) bool {
	return target == ErrCircularDependency
}
