package schedule

import (
	"github.com/felixgeelhaar/planwright/pkg/domain/plan"
)

// DefaultUnitCost is the flat per-task placeholder cost used when no cost
// model collaborator is configured.
const DefaultUnitCost = 10.0

// CostModel supplies real per-task cost in place of the flat placeholder.
// Implementations typically sit in front of an external estimation service.
type CostModel interface {
	TaskCost(t plan.Task) float64
}

// Estimator derives per-task resource requirements and aggregate
// duration/cost estimates for an execution plan.
type Estimator struct {
	unitCost float64
	model    CostModel
}

// NewEstimator creates an Estimator with the flat placeholder cost.
func NewEstimator() *Estimator {
	return &Estimator{unitCost: DefaultUnitCost}
}

// WithUnitCost overrides the flat per-task cost.
func (e *Estimator) WithUnitCost(cost float64) *Estimator {
	e.unitCost = cost
	return e
}

// WithCostModel attaches an external cost model. When set it takes
// precedence over the flat unit cost.
func (e *Estimator) WithCostModel(m CostModel) *Estimator {
	e.model = m
	return e
}

// Allocate builds the per-task resource allocation. Atomic tasks need a
// single agent; composite tasks need coordinated multi-agent execution.
func (e *Estimator) Allocate(tasks []plan.Task) map[string]ResourceRequirement {
	alloc := make(map[string]ResourceRequirement, len(tasks))
	for _, t := range tasks {
		rt := ResourceSingleAgent
		if t.Kind == plan.KindComposite {
			rt = ResourceMultiAgent
		}
		alloc[t.ID] = ResourceRequirement{
			RequiredCapabilities: t.RequiredCapabilities,
			EstimatedDuration:    t.EstimatedDuration,
			Priority:             t.Priority,
			ResourceType:         rt,
		}
	}
	return alloc
}

// TotalDuration estimates the wall-clock duration in minutes: tasks outside
// any parallel group contribute their full duration, each parallel group
// contributes only its slowest member.
func (e *Estimator) TotalDuration(tasks []plan.Task, groups [][]string) float64 {
	grouped := make(map[string]bool)
	for _, group := range groups {
		for _, id := range group {
			grouped[id] = true
		}
	}

	durations := make(map[string]float64, len(tasks))
	for _, t := range tasks {
		durations[t.ID] = t.EstimatedDuration
	}

	var total float64
	for _, t := range tasks {
		if !grouped[t.ID] {
			total += t.EstimatedDuration
		}
	}
	for _, group := range groups {
		var slowest float64
		for _, id := range group {
			if durations[id] > slowest {
				slowest = durations[id]
			}
		}
		total += slowest
	}
	return total
}

// TotalCost sums the per-task cost over all tasks.
func (e *Estimator) TotalCost(tasks []plan.Task) float64 {
	var total float64
	for _, t := range tasks {
		if e.model != nil {
			total += e.model.TaskCost(t)
			continue
		}
		total += e.unitCost
	}
	return total
}
