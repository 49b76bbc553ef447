// Package schedule compiles a validated task plan into a scheduling-ready
// execution plan: a total execution order, parallel groups, resource
// allocations, checkpoints and fallback strategies.
package schedule

import (
	"time"

	"github.com/felixgeelhaar/planwright/pkg/domain/plan"
)

// ResourceType indicates what kind of executor a task needs.
type ResourceType string

const (
	ResourceSingleAgent ResourceType = "single_agent"
	ResourceMultiAgent  ResourceType = "multi_agent"
)

// CheckpointAction is what the executor does when a checkpoint fires.
type CheckpointAction string

const (
	ActionContinue CheckpointAction = "continue"
	ActionPause    CheckpointAction = "pause"
	ActionReplan   CheckpointAction = "replan"
	ActionEscalate CheckpointAction = "escalate"
)

// Checkpoint conditions.
const (
	ConditionTaskCompletion = "task_completion"
	ConditionProgressReview = "progress_review"
)

// Checkpoint is a control point attached to a task in the execution order.
type Checkpoint struct {
	ID        string           `json:"id" yaml:"id"`
	TaskID    string           `json:"task_id" yaml:"task_id"`
	Condition string           `json:"condition" yaml:"condition"`
	Action    CheckpointAction `json:"action" yaml:"action"`
}

// FallbackAction is the policy an executor applies when a task fails.
type FallbackAction string

const (
	FallbackRetry             FallbackAction = "retry"
	FallbackAlternative       FallbackAction = "alternative_approach"
	FallbackHumanIntervention FallbackAction = "human_intervention"
	FallbackAbort             FallbackAction = "abort"
)

// Fallback trigger conditions.
const (
	ConditionTaskFailure = "task_failure"
)

// FallbackStrategy describes what to do when a task's trigger condition is
// met. Parameters are policy-specific (maxRetries/backoffMs for retry,
// escalationLevel for human intervention). The engine only attaches these;
// the external executor enforces them.
type FallbackStrategy struct {
	TriggerID  string         `json:"trigger_id" yaml:"trigger_id"`
	Condition  string         `json:"condition" yaml:"condition"`
	Action     FallbackAction `json:"action" yaml:"action"`
	Parameters map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// ResourceRequirement is the per-task entry of the resource allocation.
type ResourceRequirement struct {
	RequiredCapabilities []string          `json:"required_capabilities,omitempty" yaml:"required_capabilities,omitempty"`
	EstimatedDuration    float64           `json:"estimated_duration" yaml:"estimated_duration"`
	Priority             plan.TaskPriority `json:"priority" yaml:"priority"`
	ResourceType         ResourceType      `json:"resource_type" yaml:"resource_type"`
}

// ExecutionPlan is the scheduling artifact derived from a TaskPlan. It is
// re-created with a fresh ID on every adaptation; PlanVersion mirrors the
// authoritative TaskPlan version at the time of derivation.
type ExecutionPlan struct {
	ID                 string                         `json:"id" yaml:"id"`
	Plan               *plan.TaskPlan                 `json:"plan" yaml:"plan"`
	PlanVersion        int                            `json:"plan_version" yaml:"plan_version"`
	ExecutionOrder     []string                       `json:"execution_order" yaml:"execution_order"`
	ParallelGroups     [][]string                     `json:"parallel_groups,omitempty" yaml:"parallel_groups,omitempty"`
	ResourceAllocation map[string]ResourceRequirement `json:"resource_allocation" yaml:"resource_allocation"`
	Checkpoints        []Checkpoint                   `json:"checkpoints,omitempty" yaml:"checkpoints,omitempty"`
	FallbackStrategies []FallbackStrategy             `json:"fallback_strategies,omitempty" yaml:"fallback_strategies,omitempty"`
	EstimatedCost      float64                        `json:"estimated_cost" yaml:"estimated_cost"`
	EstimatedDuration  float64                        `json:"estimated_duration" yaml:"estimated_duration"`
	// OrphanedTasks lists tasks whose dependencies can no longer complete
	// after a replan removed a failed task. They stay in the execution order
	// so the executor can decide whether to proceed, but they are flagged.
	OrphanedTasks []string  `json:"orphaned_tasks,omitempty" yaml:"orphaned_tasks,omitempty"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

// InGroup reports whether the task is a member of any parallel group.
func (ep *ExecutionPlan) InGroup(taskID string) bool {
	for _, group := range ep.ParallelGroups {
		for _, id := range group {
			if id == taskID {
				return true
			}
		}
	}
	return false
}

// ContainsTask reports whether the task is part of the execution order.
func (ep *ExecutionPlan) ContainsTask(taskID string) bool {
	for _, id := range ep.ExecutionOrder {
		if id == taskID {
			return true
		}
	}
	return false
}
