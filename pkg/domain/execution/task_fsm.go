package execution

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// ErrLifecycleViolation indicates feedback that is out of order for the
// task's execution lifecycle, such as a block report for a task already
// reported completed.
var ErrLifecycleViolation = errors.New("feedback violates task lifecycle")

// LifecycleError names the task, its current lifecycle state and the
// rejected feedback status.
type LifecycleError struct {
	TaskID string
	State  string
	Status FeedbackStatus
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("task %s is %s and cannot accept %q feedback", e.TaskID, e.State, e.Status)
}

// Is allows errors.Is to work with LifecycleError.
func (e *LifecycleError) Is(target error) bool {
	return target == ErrLifecycleViolation
}

// State constants for statekit integration. Kept as untyped strings for
// statekit.StateID compatibility; StatePending is the implicit starting
// state for every scheduled task, the rest mirror FeedbackStatus values.
const (
	StatePending    = "pending"
	StateInProgress = "in_progress"
	StateCompleted  = "completed"
	StateFailed     = "failed"
	StateBlocked    = "blocked"
)

// Events accepted by the task state machine.
const (
	EventStart    = "start"
	EventComplete = "complete"
	EventFail     = "fail"
	EventBlock    = "block"
	EventUnblock  = "unblock"
	EventRetry    = "retry"
)

// TaskContext carries state data.
type TaskContext struct {
	TaskID string
}

// TaskStateMachine tracks the execution lifecycle of one task as feedback
// arrives. It rejects out-of-order feedback (a completion for a task that
// never started, progress on a failed task, and so on).
type TaskStateMachine struct {
	interpreter *statekit.Interpreter[TaskContext]
}

// NewTaskStateMachine builds the lifecycle machine for a task, starting at
// the given state.
func NewTaskStateMachine(initialState string, taskID string) (*TaskStateMachine, error) {
	builder := statekit.NewMachine[TaskContext]("task-execution").
		WithInitial(statekit.StateID(initialState)).
		WithContext(TaskContext{TaskID: taskID})

	builder.State(StatePending).
		On(EventStart).Target(StateInProgress).
		On(EventBlock).Target(StateBlocked).
		Done()

	builder.State(StateInProgress).
		On(EventComplete).Target(StateCompleted).
		On(EventFail).Target(StateFailed).
		On(EventBlock).Target(StateBlocked).
		Done()

	builder.State(StateBlocked).
		On(EventUnblock).Target(StatePending).
		Done()

	builder.State(StateFailed).
		On(EventRetry).Target(StatePending).
		Done()

	builder.State(StateCompleted).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &TaskStateMachine{interpreter: interpreter}, nil
}

// Transition attempts to apply an event to the task.
func (sm *TaskStateMachine) Transition(event string) error {
	before := sm.Current()
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := sm.Current()

	if before != after {
		return nil
	}
	return fmt.Errorf("the event '%s' is not allowed while the task is in the '%s' state", event, before)
}

// Current returns the current state value.
func (sm *TaskStateMachine) Current() string {
	return string(sm.interpreter.State().Value)
}

// IsTerminal reports whether the task has reached a state with no outgoing
// transitions.
func (sm *TaskStateMachine) IsTerminal() bool {
	return sm.Current() == StateCompleted
}

// eventFor maps an observed feedback status to the machine event that would
// move the task there from its current state. Blocked and failed tasks must
// pass through their recovery events first.
func eventFor(status FeedbackStatus) string {
	switch status {
	case StatusInProgress:
		return EventStart
	case StatusCompleted:
		return EventComplete
	case StatusFailed:
		return EventFail
	case StatusBlocked:
		return EventBlock
	default:
		return ""
	}
}

// ApplyFeedback advances the machine to the observed status, inserting the
// start transition when the executor skips straight from pending to a
// terminal report and the unblock transition when a previously blocked task
// reports again. Feedback repeating the current state is a no-op.
func (sm *TaskStateMachine) ApplyFeedback(status FeedbackStatus) error {
	event := eventFor(status)
	if event == "" {
		return fmt.Errorf("unknown feedback status %q for task", status)
	}
	if sm.Current() == string(status) {
		return nil
	}
	if sm.Current() == StateBlocked {
		if err := sm.Transition(EventUnblock); err != nil {
			return err
		}
	}
	if sm.Current() == StatePending && (status == StatusCompleted || status == StatusFailed) {
		if err := sm.Transition(EventStart); err != nil {
			return err
		}
	}
	return sm.Transition(event)
}

// ReplayHistory rebuilds the lifecycle machine for a task from its recorded
// feedback. Entries for other tasks are ignored; entries that no longer
// transition are skipped so a stale journal cannot wedge the machine.
func ReplayHistory(taskID string, history []Feedback) (*TaskStateMachine, error) {
	sm, err := NewTaskStateMachine(StatePending, taskID)
	if err != nil {
		return nil, err
	}
	for _, fb := range history {
		if fb.TaskID != taskID {
			continue
		}
		_ = sm.ApplyFeedback(fb.Status)
	}
	return sm, nil
}
