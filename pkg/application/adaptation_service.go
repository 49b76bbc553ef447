package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/planwright/pkg/domain/events"
	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
	"github.com/felixgeelhaar/planwright/pkg/domain/schedule"
)

// Adaptation errors.
var (
	// ErrAdaptationConflict indicates a concurrent adaptation was attempted
	// against the same plan id. The caller should retry after the in-flight
	// adaptation finishes.
	ErrAdaptationConflict = errors.New("adaptation already in flight for plan")
	// ErrPlanMismatch indicates feedback referenced an execution plan id that
	// is not the current one.
	ErrPlanMismatch = errors.New("execution plan id does not match current plan")
)

// ConflictError names the plan for which a concurrent adaptation was rejected.
type ConflictError struct {
	PlanID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("adaptation already in flight for plan %s; retry after it completes", e.PlanID)
}

// Is allows errors.Is to work with ConflictError.
func (e *ConflictError) Is(target error) bool {
	return target == ErrAdaptationConflict
}

// AdaptationService applies executor feedback to the current execution plan.
// Adaptations are serialized per plan id: a second call for a plan that is
// mid-adaptation fails fast with ConflictError instead of interleaving.
type AdaptationService struct {
	adapter    *execution.Adapter
	repo       Repository
	dispatcher *events.Dispatcher
	logger     *slog.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewAdaptationService creates an AdaptationService.
func NewAdaptationService(repo Repository, dispatcher *events.Dispatcher, logger *slog.Logger) *AdaptationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdaptationService{
		adapter:    execution.NewAdapter(),
		repo:       repo,
		dispatcher: dispatcher,
		logger:     logger,
		inFlight:   make(map[string]bool),
	}
}

// Apply records the feedback and adapts the identified plan. When planID is
// empty the current plan is used. Feedback must respect the task's execution
// lifecycle; a report the state machine rejects is refused before it reaches
// the journal. The adapted plan replaces the current one and carries a
// freshly generated id.
func (s *AdaptationService) Apply(ctx context.Context, planID string, fb execution.Feedback) (*schedule.ExecutionPlan, error) {
	current, err := s.repo.LoadExecutionPlan()
	if err != nil {
		return nil, err
	}
	if planID == "" {
		planID = current.ID
	}
	if current.ID != planID {
		return nil, fmt.Errorf("%w: have %s, got %s", ErrPlanMismatch, current.ID, planID)
	}

	if err := s.acquire(planID); err != nil {
		return nil, err
	}
	defer s.release(planID)

	if err := s.checkLifecycle(fb); err != nil {
		return nil, err
	}

	if err := s.repo.AppendFeedback(fb); err != nil {
		return nil, fmt.Errorf("record feedback: %w", err)
	}
	if s.dispatcher != nil {
		if err := s.dispatcher.Dispatch(ctx, events.NewFeedbackReceived(planID, fb)); err != nil {
			s.logger.Warn("event dispatch failed", "error", err)
		}
	}

	adaptation, err := s.adapter.Adapt(current, fb)
	if err != nil {
		return nil, err
	}
	if adaptation.Strategy == execution.StrategyNone {
		return current, nil
	}

	if err := s.repo.SaveExecutionPlan(adaptation.Plan); err != nil {
		return nil, fmt.Errorf("save adapted plan: %w", err)
	}

	s.logger.Info("plan adapted",
		"strategy", string(adaptation.Strategy),
		"previous_id", current.ID,
		"new_id", adaptation.Plan.ID,
		"version", adaptation.Plan.PlanVersion,
		"orphaned", len(adaptation.Plan.OrphanedTasks))
	if s.dispatcher != nil {
		event := events.NewPlanAdapted(current.ID, adaptation.Plan.ID, string(adaptation.Strategy), adaptation.Plan.PlanVersion)
		if err := s.dispatcher.Dispatch(ctx, event); err != nil {
			s.logger.Warn("event dispatch failed", "error", err)
		}
	}
	return adaptation.Plan, nil
}

// checkLifecycle replays the task's recorded feedback through its state
// machine and rejects feedback the lifecycle does not allow, before anything
// lands in the journal.
func (s *AdaptationService) checkLifecycle(fb execution.Feedback) error {
	history, err := s.repo.LoadFeedback()
	if err != nil {
		return fmt.Errorf("load feedback journal: %w", err)
	}
	sm, err := execution.ReplayHistory(fb.TaskID, history)
	if err != nil {
		return err
	}
	if err := sm.ApplyFeedback(fb.Status); err != nil {
		s.logger.Warn("feedback rejected", "task", fb.TaskID, "state", sm.Current(), "status", string(fb.Status))
		return &execution.LifecycleError{TaskID: fb.TaskID, State: sm.Current(), Status: fb.Status}
	}
	return nil
}

func (s *AdaptationService) acquire(planID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[planID] {
		return &ConflictError{PlanID: planID}
	}
	s.inFlight[planID] = true
	return nil
}

func (s *AdaptationService) release(planID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, planID)
}
