// Package application wires the planning, adaptation and reflection
// services. Services are explicitly constructed with their collaborators;
// there are no package-level singletons.
package application

import (
	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
	"github.com/felixgeelhaar/planwright/pkg/domain/insight"
	"github.com/felixgeelhaar/planwright/pkg/domain/plan"
	"github.com/felixgeelhaar/planwright/pkg/domain/schedule"
)

// Repository is the persistence boundary the services depend on. Both the
// filesystem workspace and the in-memory repository satisfy it.
type Repository interface {
	SaveTaskPlan(p *plan.TaskPlan) error
	LoadTaskPlan() (*plan.TaskPlan, error)
	SaveExecutionPlan(ep *schedule.ExecutionPlan) error
	LoadExecutionPlan() (*schedule.ExecutionPlan, error)
	AppendFeedback(fb execution.Feedback) error
	LoadFeedback() ([]execution.Feedback, error)
	SaveInsights(ins *insight.PerformanceInsights) error
	LoadInsights() (*insight.PerformanceInsights, error)
}
