// Package execution models the feedback loop between an external executor
// and the planning engine, and adapts plans as that feedback arrives.
package execution

// FeedbackStatus is the observed outcome of a single task.
type FeedbackStatus string

const (
	StatusCompleted  FeedbackStatus = "completed"
	StatusFailed     FeedbackStatus = "failed"
	StatusBlocked    FeedbackStatus = "blocked"
	StatusInProgress FeedbackStatus = "in_progress"
)

// IsValid checks if the feedback status is valid.
func (s FeedbackStatus) IsValid() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusBlocked, StatusInProgress:
		return true
	default:
		return false
	}
}

// Feedback is a per-task observation reported by the executor.
type Feedback struct {
	TaskID         string         `json:"task_id" yaml:"task_id"`
	Status         FeedbackStatus `json:"status" yaml:"status"`
	ActualDuration float64        `json:"actual_duration,omitempty" yaml:"actual_duration,omitempty"` // minutes
	ActualCost     float64        `json:"actual_cost,omitempty" yaml:"actual_cost,omitempty"`
	Quality        float64        `json:"quality,omitempty" yaml:"quality,omitempty"` // 0..1
	Issues         []string       `json:"issues,omitempty" yaml:"issues,omitempty"`
	Suggestions    []string       `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// OverallStatus summarizes how a whole run ended.
type OverallStatus string

const (
	RunCompleted OverallStatus = "completed"
	RunFailed    OverallStatus = "failed"
	RunPartial   OverallStatus = "partial"
)

// Results summarizes a completed run for reflection.
type Results struct {
	PlanID         string        `json:"plan_id" yaml:"plan_id"`
	OverallStatus  OverallStatus `json:"overall_status" yaml:"overall_status"`
	CompletedTasks []string      `json:"completed_tasks,omitempty" yaml:"completed_tasks,omitempty"`
	FailedTasks    []string      `json:"failed_tasks,omitempty" yaml:"failed_tasks,omitempty"`
	TotalDuration  float64       `json:"total_duration" yaml:"total_duration"` // minutes
	TotalCost      float64       `json:"total_cost" yaml:"total_cost"`
	QualityScore   float64       `json:"quality_score" yaml:"quality_score"` // 0..1
	Lessons        []string      `json:"lessons,omitempty" yaml:"lessons,omitempty"`
}
