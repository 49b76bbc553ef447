package execution_test

import (
	"testing"

	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
)

func newMachine(t *testing.T, initial string) *execution.TaskStateMachine {
	t.Helper()
	sm, err := execution.NewTaskStateMachine(initial, "t1")
	if err != nil {
		t.Fatalf("NewTaskStateMachine() error = %v", err)
	}
	return sm
}

func TestTaskStateMachine_HappyPath(t *testing.T) {
	sm := newMachine(t, execution.StatePending)

	if sm.Current() != execution.StatePending {
		t.Fatalf("initial state = %q, want %q", sm.Current(), execution.StatePending)
	}
	if err := sm.Transition(execution.EventStart); err != nil {
		t.Fatalf("start: %v", err)
	}
	if sm.Current() != execution.StateInProgress {
		t.Fatalf("state = %q, want %q", sm.Current(), execution.StateInProgress)
	}
	if err := sm.Transition(execution.EventComplete); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !sm.IsTerminal() {
		t.Error("completed task should be terminal")
	}
}

func TestTaskStateMachine_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		event   string
	}{
		{name: "complete before start", initial: execution.StatePending, event: execution.EventComplete},
		{name: "fail before start", initial: execution.StatePending, event: execution.EventFail},
		{name: "start a completed task", initial: execution.StateCompleted, event: execution.EventStart},
		{name: "complete a blocked task", initial: execution.StateBlocked, event: execution.EventComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := newMachine(t, tt.initial)
			if err := sm.Transition(tt.event); err == nil {
				t.Errorf("Transition(%q) from %q succeeded, want error", tt.event, tt.initial)
			}
			if sm.Current() != tt.initial {
				t.Errorf("state moved to %q on rejected event", sm.Current())
			}
		})
	}
}

func TestTaskStateMachine_RecoveryPaths(t *testing.T) {
	// Blocked tasks unblock back to pending.
	sm := newMachine(t, execution.StateBlocked)
	if err := sm.Transition(execution.EventUnblock); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if sm.Current() != execution.StatePending {
		t.Errorf("state = %q, want %q", sm.Current(), execution.StatePending)
	}

	// Failed tasks retry back to pending.
	sm = newMachine(t, execution.StateFailed)
	if err := sm.Transition(execution.EventRetry); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if sm.Current() != execution.StatePending {
		t.Errorf("state = %q, want %q", sm.Current(), execution.StatePending)
	}
}

func TestApplyFeedback_InsertsImplicitStart(t *testing.T) {
	sm := newMachine(t, execution.StatePending)

	if err := sm.ApplyFeedback(execution.StatusCompleted); err != nil {
		t.Fatalf("ApplyFeedback(completed) error = %v", err)
	}
	if sm.Current() != execution.StateCompleted {
		t.Errorf("state = %q, want %q", sm.Current(), execution.StateCompleted)
	}

	sm = newMachine(t, execution.StatePending)
	if err := sm.ApplyFeedback(execution.StatusFailed); err != nil {
		t.Fatalf("ApplyFeedback(failed) error = %v", err)
	}
	if sm.Current() != execution.StateFailed {
		t.Errorf("state = %q, want %q", sm.Current(), execution.StateFailed)
	}
}

func TestApplyFeedback_RepeatedStatusIsNoop(t *testing.T) {
	sm := newMachine(t, execution.StateInProgress)

	// Progress updates may repeat while the task runs.
	if err := sm.ApplyFeedback(execution.StatusInProgress); err != nil {
		t.Fatalf("ApplyFeedback(in_progress) error = %v", err)
	}
	if sm.Current() != execution.StateInProgress {
		t.Errorf("state = %q, want %q", sm.Current(), execution.StateInProgress)
	}
}

func TestApplyFeedback_BlockedTaskRecoversImplicitly(t *testing.T) {
	sm := newMachine(t, execution.StateBlocked)

	if err := sm.ApplyFeedback(execution.StatusCompleted); err != nil {
		t.Fatalf("ApplyFeedback(completed) error = %v", err)
	}
	if sm.Current() != execution.StateCompleted {
		t.Errorf("state = %q, want %q", sm.Current(), execution.StateCompleted)
	}
}

func TestReplayHistory(t *testing.T) {
	history := []execution.Feedback{
		{TaskID: "t1", Status: execution.StatusInProgress},
		{TaskID: "other", Status: execution.StatusFailed},
		{TaskID: "t1", Status: execution.StatusCompleted},
	}

	sm, err := execution.ReplayHistory("t1", history)
	if err != nil {
		t.Fatalf("ReplayHistory() error = %v", err)
	}
	if sm.Current() != execution.StateCompleted {
		t.Errorf("state = %q, want %q", sm.Current(), execution.StateCompleted)
	}

	// Feedback the completed task can no longer accept is rejected.
	if err := sm.ApplyFeedback(execution.StatusBlocked); err == nil {
		t.Error("blocked report on a completed task accepted, want rejection")
	}

	// A task with no recorded feedback starts pending.
	sm, err = execution.ReplayHistory("fresh", history)
	if err != nil {
		t.Fatalf("ReplayHistory() error = %v", err)
	}
	if sm.Current() != execution.StatePending {
		t.Errorf("state = %q, want %q", sm.Current(), execution.StatePending)
	}
}

func TestApplyFeedback_RejectsOutOfOrder(t *testing.T) {
	sm := newMachine(t, execution.StateFailed)

	if err := sm.ApplyFeedback(execution.StatusInProgress); err == nil {
		t.Error("progress on a failed task accepted, want rejection")
	}
	if err := sm.ApplyFeedback(execution.FeedbackStatus("nonsense")); err == nil {
		t.Error("unknown status accepted, want rejection")
	}
}
