// Package events defines the engine's domain events and a synchronous
// dispatcher. The insight-store boundary subscribes here.
package events

import (
	"time"

	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
	"github.com/felixgeelhaar/planwright/pkg/domain/insight"
)

// Event types emitted by the engine.
const (
	TypePlanValidated    = "plan.validated"
	TypePlanCompiled     = "plan.compiled"
	TypeFeedbackReceived = "feedback.received"
	TypePlanAdapted      = "plan.adapted"
	TypeRunReflected     = "run.reflected"
)

// DomainEvent is the base interface for all engine events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Type      string    `json:"type"`
	Aggregate string    `json:"aggregate_id"`
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

func newBase(eventType, aggregateID string) BaseEvent {
	return BaseEvent{Type: eventType, Aggregate: aggregateID, Timestamp: time.Now()}
}

// PlanValidated fires when a raw decomposition passes validation.
type PlanValidated struct {
	BaseEvent
	GoalID  string `json:"goal_id"`
	Version int    `json:"version"`
}

// NewPlanValidated creates a PlanValidated event.
func NewPlanValidated(goalID string, version int) PlanValidated {
	return PlanValidated{BaseEvent: newBase(TypePlanValidated, goalID), GoalID: goalID, Version: version}
}

// PlanCompiled fires when an execution plan is derived from a task plan.
type PlanCompiled struct {
	BaseEvent
	ExecutionPlanID string `json:"execution_plan_id"`
	TaskCount       int    `json:"task_count"`
	GroupCount      int    `json:"group_count"`
}

// NewPlanCompiled creates a PlanCompiled event.
func NewPlanCompiled(planID string, taskCount, groupCount int) PlanCompiled {
	return PlanCompiled{
		BaseEvent:       newBase(TypePlanCompiled, planID),
		ExecutionPlanID: planID,
		TaskCount:       taskCount,
		GroupCount:      groupCount,
	}
}

// FeedbackReceived fires for every feedback item handed to the adapter.
type FeedbackReceived struct {
	BaseEvent
	Feedback execution.Feedback `json:"feedback"`
}

// NewFeedbackReceived creates a FeedbackReceived event keyed by plan id.
func NewFeedbackReceived(planID string, fb execution.Feedback) FeedbackReceived {
	return FeedbackReceived{BaseEvent: newBase(TypeFeedbackReceived, planID), Feedback: fb}
}

// PlanAdapted fires when adaptation produced a new execution plan.
type PlanAdapted struct {
	BaseEvent
	PreviousID string `json:"previous_id"`
	NewID      string `json:"new_id"`
	Strategy   string `json:"strategy"`
	Version    int    `json:"version"`
}

// NewPlanAdapted creates a PlanAdapted event.
func NewPlanAdapted(previousID, newID, strategy string, version int) PlanAdapted {
	return PlanAdapted{
		BaseEvent:  newBase(TypePlanAdapted, newID),
		PreviousID: previousID,
		NewID:      newID,
		Strategy:   strategy,
		Version:    version,
	}
}

// RunReflected fires when a completed run has been summarized.
type RunReflected struct {
	BaseEvent
	Insights insight.PerformanceInsights `json:"insights"`
}

// NewRunReflected creates a RunReflected event keyed by plan id.
func NewRunReflected(ins insight.PerformanceInsights) RunReflected {
	return RunReflected{BaseEvent: newBase(TypeRunReflected, ins.PlanID), Insights: ins}
}
