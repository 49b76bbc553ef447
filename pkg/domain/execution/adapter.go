package execution

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/planwright/pkg/domain/schedule"
)

// Adaptation errors.
var (
	// ErrTaskNotInPlan indicates feedback for a task the plan does not contain.
	ErrTaskNotInPlan = errors.New("task not in execution plan")
)

// Strategy is the adaptation applied in response to a piece of feedback.
type Strategy string

const (
	// StrategyReplan removes a failed task and re-flags stranded dependents.
	StrategyReplan Strategy = "replan"
	// StrategyReorder moves a blocked task to the end of the order.
	StrategyReorder Strategy = "reorder"
	// StrategyAdjustEstimates rescales plan-wide estimates from observed
	// actuals without touching the order.
	StrategyAdjustEstimates Strategy = "adjust_estimates"
	// StrategyNone leaves the plan untouched.
	StrategyNone Strategy = "none"
)

// severity buckets for feedback classification.
type severity int

const (
	severityNone severity = iota
	severityLow
	severityMedium
	severityHigh
)

func classify(fb Feedback) severity {
	switch fb.Status {
	case StatusFailed:
		return severityHigh
	case StatusBlocked:
		return severityMedium
	case StatusCompleted, StatusInProgress:
		if fb.ActualDuration > 0 {
			return severityLow
		}
		return severityNone
	default:
		return severityNone
	}
}

// Adaptation is the outcome of one adaptation cycle.
type Adaptation struct {
	Strategy Strategy
	Plan     *schedule.ExecutionPlan
}

// Adapter mutates an execution plan in response to executor feedback. All
// methods derive a fresh plan value; callers must serialize invocations per
// plan id (see application.AdaptationService).
type Adapter struct{}

// NewAdapter creates a new Adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Adapt applies the strategy selected by the feedback's severity and returns
// the adapted plan. Any adaptation produces a plan with a freshly generated
// id and a bumped authoritative version; feedback that needs no adaptation
// returns the input plan unchanged.
func (a *Adapter) Adapt(ep *schedule.ExecutionPlan, fb Feedback) (*Adaptation, error) {
	if !fb.Status.IsValid() {
		return nil, fmt.Errorf("invalid feedback status %q for task %s", fb.Status, fb.TaskID)
	}
	if !ep.ContainsTask(fb.TaskID) {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotInPlan, fb.TaskID)
	}

	switch classify(fb) {
	case severityHigh:
		next := a.replan(ep, fb.TaskID)
		a.adjustEstimates(next, fb)
		return &Adaptation{Strategy: StrategyReplan, Plan: next}, nil
	case severityMedium:
		next := a.reorder(ep, fb.TaskID)
		return &Adaptation{Strategy: StrategyReorder, Plan: next}, nil
	case severityLow:
		next := a.clone(ep)
		a.adjustEstimates(next, fb)
		return &Adaptation{Strategy: StrategyAdjustEstimates, Plan: next}, nil
	default:
		return &Adaptation{Strategy: StrategyNone, Plan: ep}, nil
	}
}

// replan removes the failed task from the execution order and from any
// parallel group it was part of. Downstream dependents are kept in place;
// each task whose dependency set now references a task missing from the
// order is recorded in OrphanedTasks so the executor can decide whether it
// can still proceed.
func (a *Adapter) replan(ep *schedule.ExecutionPlan, failedID string) *schedule.ExecutionPlan {
	next := a.clone(ep)

	order := make([]string, 0, len(next.ExecutionOrder))
	for _, id := range next.ExecutionOrder {
		if id != failedID {
			order = append(order, id)
		}
	}
	next.ExecutionOrder = order

	var groups [][]string
	for _, group := range next.ParallelGroups {
		kept := make([]string, 0, len(group))
		for _, id := range group {
			if id != failedID {
				kept = append(kept, id)
			}
		}
		if len(kept) > 1 {
			groups = append(groups, kept)
		}
	}
	next.ParallelGroups = groups

	delete(next.ResourceAllocation, failedID)
	next.OrphanedTasks = a.findOrphans(next)
	return next
}

// findOrphans returns tasks in the order whose declared dependencies
// reference a task no longer present in the order.
func (a *Adapter) findOrphans(ep *schedule.ExecutionPlan) []string {
	if ep.Plan == nil {
		return nil
	}
	present := make(map[string]bool, len(ep.ExecutionOrder))
	for _, id := range ep.ExecutionOrder {
		present[id] = true
	}

	declared := make(map[string]map[string]bool)
	for _, t := range ep.Plan.Tasks() {
		deps := make(map[string]bool, len(t.DependsOn))
		for _, dep := range t.DependsOn {
			deps[dep] = true
		}
		declared[t.ID] = deps
	}
	for _, rec := range ep.Plan.Dependencies {
		if declared[rec.TaskID] == nil {
			declared[rec.TaskID] = make(map[string]bool)
		}
		for _, dep := range rec.DependsOn {
			declared[rec.TaskID][dep] = true
		}
	}

	var orphans []string
	for _, id := range ep.ExecutionOrder {
		for dep := range declared[id] {
			if !present[dep] {
				orphans = append(orphans, id)
				break
			}
		}
	}
	return orphans
}

// reorder moves the blocked task to the end of the execution order.
func (a *Adapter) reorder(ep *schedule.ExecutionPlan, blockedID string) *schedule.ExecutionPlan {
	next := a.clone(ep)

	order := make([]string, 0, len(next.ExecutionOrder))
	for _, id := range next.ExecutionOrder {
		if id != blockedID {
			order = append(order, id)
		}
	}
	next.ExecutionOrder = append(order, blockedID)
	return next
}

// adjustEstimates applies a single linear correction to the whole plan: the
// observed duration is compared against the average per-task estimate and
// the plan's duration and cost are rescaled by that factor.
func (a *Adapter) adjustEstimates(ep *schedule.ExecutionPlan, fb Feedback) {
	if fb.ActualDuration <= 0 || len(ep.ExecutionOrder) == 0 || ep.EstimatedDuration <= 0 {
		return
	}
	average := ep.EstimatedDuration / float64(len(ep.ExecutionOrder))
	factor := fb.ActualDuration / average
	ep.EstimatedDuration *= factor
	ep.EstimatedCost *= factor
}

// clone copies the plan with a fresh id, a bumped authoritative version and
// a new creation timestamp. The underlying TaskPlan version is the single
// counter; the execution plan mirrors it.
func (a *Adapter) clone(ep *schedule.ExecutionPlan) *schedule.ExecutionPlan {
	next := *ep
	next.ID = uuid.NewString()
	next.CreatedAt = time.Now()

	next.ExecutionOrder = append([]string(nil), ep.ExecutionOrder...)
	next.ParallelGroups = make([][]string, len(ep.ParallelGroups))
	for i, group := range ep.ParallelGroups {
		next.ParallelGroups[i] = append([]string(nil), group...)
	}
	next.ResourceAllocation = make(map[string]schedule.ResourceRequirement, len(ep.ResourceAllocation))
	for id, req := range ep.ResourceAllocation {
		next.ResourceAllocation[id] = req
	}
	next.Checkpoints = append([]schedule.Checkpoint(nil), ep.Checkpoints...)
	next.FallbackStrategies = append([]schedule.FallbackStrategy(nil), ep.FallbackStrategies...)
	next.OrphanedTasks = append([]string(nil), ep.OrphanedTasks...)

	if ep.Plan != nil {
		next.PlanVersion = ep.Plan.BumpVersion()
	} else {
		next.PlanVersion = ep.PlanVersion + 1
	}
	return &next
}
