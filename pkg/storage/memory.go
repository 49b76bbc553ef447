package storage

import (
	"fmt"
	"sync"

	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
	"github.com/felixgeelhaar/planwright/pkg/domain/insight"
	"github.com/felixgeelhaar/planwright/pkg/domain/plan"
	"github.com/felixgeelhaar/planwright/pkg/domain/schedule"
)

// MemoryRepository keeps planning artifacts in memory. It backs tests and
// embedded use where no workspace directory exists.
type MemoryRepository struct {
	mu       sync.RWMutex
	taskPlan *plan.TaskPlan
	execPlan *schedule.ExecutionPlan
	feedback []execution.Feedback
	insights *insight.PerformanceInsights
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) SaveTaskPlan(p *plan.TaskPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taskPlan = p
	return nil
}

func (r *MemoryRepository) LoadTaskPlan() (*plan.TaskPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.taskPlan == nil {
		return nil, fmt.Errorf("%w: task plan", ErrNotFound)
	}
	return r.taskPlan, nil
}

func (r *MemoryRepository) SaveExecutionPlan(ep *schedule.ExecutionPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.execPlan = ep
	return nil
}

func (r *MemoryRepository) LoadExecutionPlan() (*schedule.ExecutionPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.execPlan == nil {
		return nil, fmt.Errorf("%w: execution plan", ErrNotFound)
	}
	return r.execPlan, nil
}

func (r *MemoryRepository) AppendFeedback(fb execution.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedback = append(r.feedback, fb)
	return nil
}

func (r *MemoryRepository) LoadFeedback() ([]execution.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]execution.Feedback, len(r.feedback))
	copy(out, r.feedback)
	return out, nil
}

func (r *MemoryRepository) SaveInsights(ins *insight.PerformanceInsights) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insights = ins
	return nil
}

func (r *MemoryRepository) LoadInsights() (*insight.PerformanceInsights, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.insights == nil {
		return nil, fmt.Errorf("%w: insights", ErrNotFound)
	}
	return r.insights, nil
}
