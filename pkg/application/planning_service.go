package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/planwright/pkg/domain/events"
	"github.com/felixgeelhaar/planwright/pkg/domain/plan"
	"github.com/felixgeelhaar/planwright/pkg/domain/reasoning"
	"github.com/felixgeelhaar/planwright/pkg/domain/schedule"
)

// PlanningService runs the decomposition pipeline: reasoning call,
// validation, compilation into an execution plan.
type PlanningService struct {
	provider   reasoning.Provider
	validator  *plan.Validator
	compiler   *schedule.Compiler
	repo       Repository
	dispatcher *events.Dispatcher
	logger     *slog.Logger
}

// NewPlanningService creates a PlanningService with its collaborators.
func NewPlanningService(provider reasoning.Provider, compiler *schedule.Compiler, repo Repository, dispatcher *events.Dispatcher, logger *slog.Logger) *PlanningService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanningService{
		provider:   provider,
		validator:  plan.NewValidator(),
		compiler:   compiler,
		repo:       repo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// DecomposeGoal asks the reasoning collaborator to break the goal down and
// validates the untrusted payload into a TaskPlan. A provider failure is
// surfaced directly; resilience belongs to the provider wrapper, not here.
func (s *PlanningService) DecomposeGoal(ctx context.Context, goalText string, capabilities []string) (*plan.TaskPlan, error) {
	if goalText == "" {
		return nil, fmt.Errorf("goal text cannot be empty")
	}

	resp, err := s.provider.Decompose(ctx, reasoning.DecompositionRequest{
		GoalText:            goalText,
		ContextCapabilities: capabilities,
	})
	if err != nil {
		return nil, fmt.Errorf("decomposition failed: %w", err)
	}

	p, err := s.validator.Validate(resp.Payload)
	if err != nil {
		return nil, err
	}
	if p.MainGoal == "" {
		p.MainGoal = goalText
	}

	if err := s.repo.SaveTaskPlan(p); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}

	s.logger.Info("goal decomposed", "goal_id", p.GoalID, "sub_goals", len(p.SubGoals), "tasks", len(p.Tasks()))
	if s.dispatcher != nil {
		if err := s.dispatcher.Dispatch(ctx, events.NewPlanValidated(p.GoalID, p.Version)); err != nil {
			s.logger.Warn("event dispatch failed", "error", err)
		}
	}
	return p, nil
}

// ValidatePayload validates a raw decomposition without calling the
// reasoning collaborator. Used when the payload comes from a file.
func (s *PlanningService) ValidatePayload(raw []byte) (*plan.TaskPlan, error) {
	p, err := s.validator.Validate(raw)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveTaskPlan(p); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	return p, nil
}

// CompilePlan derives the scheduling artifact for a task plan and persists
// it as the current execution plan.
func (s *PlanningService) CompilePlan(ctx context.Context, p *plan.TaskPlan) (*schedule.ExecutionPlan, error) {
	ep, err := s.compiler.Compile(p)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveExecutionPlan(ep); err != nil {
		return nil, fmt.Errorf("save execution plan: %w", err)
	}

	s.logger.Info("plan compiled",
		"execution_plan_id", ep.ID,
		"tasks", len(ep.ExecutionOrder),
		"parallel_groups", len(ep.ParallelGroups),
		"estimated_duration", ep.EstimatedDuration)
	if s.dispatcher != nil {
		if err := s.dispatcher.Dispatch(ctx, events.NewPlanCompiled(ep.ID, len(ep.ExecutionOrder), len(ep.ParallelGroups))); err != nil {
			s.logger.Warn("event dispatch failed", "error", err)
		}
	}
	return ep, nil
}
