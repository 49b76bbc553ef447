package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/planwright/pkg/domain/graph"
	"github.com/felixgeelhaar/planwright/pkg/domain/plan"
)

// Compiler turns a validated TaskPlan into an ExecutionPlan: dependency
// graph, topological execution order, parallel groups, resource allocation
// and safeguards, in that order. All stages are pure; compile the same plan
// twice and you get the same order and groups (only the plan id differs).
type Compiler struct {
	grouping   graph.GroupingStrategy
	estimator  *Estimator
	safeguards *SafeguardGenerator
}

// NewCompiler creates a Compiler with the greedy grouping strategy and the
// default estimator.
func NewCompiler() *Compiler {
	return &Compiler{
		grouping:   graph.GreedyGrouping{},
		estimator:  NewEstimator(),
		safeguards: NewSafeguardGenerator(),
	}
}

// WithGrouping substitutes the parallel grouping strategy.
func (c *Compiler) WithGrouping(s graph.GroupingStrategy) *Compiler {
	c.grouping = s
	return c
}

// WithEstimator substitutes the estimator.
func (c *Compiler) WithEstimator(e *Estimator) *Compiler {
	c.estimator = e
	return c
}

// Compile derives the scheduling artifact for a plan. It fails if the plan
// references unknown tasks or contains a dependency cycle.
func (c *Compiler) Compile(p *plan.TaskPlan) (*ExecutionPlan, error) {
	g, err := graph.Build(p)
	if err != nil {
		return nil, err
	}

	order, err := g.Sort()
	if err != nil {
		return nil, err
	}

	groups := c.grouping.Partition(g)

	tasks := p.Tasks()
	byID := make(map[string]plan.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	return &ExecutionPlan{
		ID:                 uuid.NewString(),
		Plan:               p,
		PlanVersion:        p.Version,
		ExecutionOrder:     order,
		ParallelGroups:     groups,
		ResourceAllocation: c.estimator.Allocate(tasks),
		Checkpoints:        c.safeguards.Checkpoints(order, byID),
		FallbackStrategies: c.safeguards.Fallbacks(tasks),
		EstimatedCost:      c.estimator.TotalCost(tasks),
		EstimatedDuration:  c.estimator.TotalDuration(tasks, groups),
		CreatedAt:          time.Now(),
	}, nil
}
