package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/planwright/pkg/domain/events"
	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
	"github.com/felixgeelhaar/planwright/pkg/domain/insight"
)

// ReflectionService summarizes completed runs and hands the insights to the
// memory boundary (any handler registered for run.reflected).
type ReflectionService struct {
	reflector  *insight.Reflector
	repo       Repository
	dispatcher *events.Dispatcher
	logger     *slog.Logger
}

// NewReflectionService creates a ReflectionService.
func NewReflectionService(repo Repository, dispatcher *events.Dispatcher, logger *slog.Logger) *ReflectionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReflectionService{
		reflector:  insight.NewReflector(),
		repo:       repo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Reflect analyzes the run results, persists the insights and notifies the
// insight store.
func (s *ReflectionService) Reflect(ctx context.Context, res execution.Results) (*insight.PerformanceInsights, error) {
	if res.PlanID == "" {
		return nil, fmt.Errorf("results must reference a plan id")
	}

	ins := s.reflector.Reflect(res)

	if err := s.repo.SaveInsights(&ins); err != nil {
		return nil, fmt.Errorf("save insights: %w", err)
	}

	s.logger.Info("run reflected",
		"plan_id", ins.PlanID,
		"strengths", len(ins.Strengths),
		"weaknesses", len(ins.Weaknesses),
		"confidence", ins.ConfidenceScore)
	if s.dispatcher != nil {
		if err := s.dispatcher.Dispatch(ctx, events.NewRunReflected(ins)); err != nil {
			s.logger.Warn("event dispatch failed", "error", err)
		}
	}
	return &ins, nil
}
