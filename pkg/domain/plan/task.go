package plan

// TaskKind distinguishes atomic units of work from composite ones.
type TaskKind string

const (
	KindAtomic    TaskKind = "atomic"
	KindComposite TaskKind = "composite"
)

// IsValid checks if the task kind is valid.
func (k TaskKind) IsValid() bool {
	return k == KindAtomic || k == KindComposite
}

// TaskPriority represents the urgency of a task.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// IsValid checks if the priority is valid.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// Task is the smallest schedulable unit of work.
type Task struct {
	ID                   string       `json:"id" yaml:"id"`
	Name                 string       `json:"name" yaml:"name"`
	Description          string       `json:"description,omitempty" yaml:"description,omitempty"`
	Kind                 TaskKind     `json:"kind" yaml:"kind"`
	EstimatedDuration    float64      `json:"estimated_duration" yaml:"estimated_duration"` // minutes
	RequiredCapabilities []string     `json:"required_capabilities,omitempty" yaml:"required_capabilities,omitempty"`
	DependsOn            []string     `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	Priority             TaskPriority `json:"priority" yaml:"priority"`
	SuccessCriteria      []string     `json:"success_criteria,omitempty" yaml:"success_criteria,omitempty"`
}

// SubGoal groups tasks under one intent. Scheduling operates on the
// flattened task set; subgoals are organizational only.
type SubGoal struct {
	ID                string   `json:"id" yaml:"id"`
	Description       string   `json:"description" yaml:"description"`
	Tasks             []Task   `json:"tasks" yaml:"tasks"`
	DependsOn         []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	EstimatedDuration float64  `json:"estimated_duration,omitempty" yaml:"estimated_duration,omitempty"`
	SuccessCriteria   []string `json:"success_criteria,omitempty" yaml:"success_criteria,omitempty"`
}
