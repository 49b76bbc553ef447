package plan

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// DependencyType represents the nature of a dependency edge.
type DependencyType string

const (
	DependencySequential  DependencyType = "sequential"
	DependencyParallel    DependencyType = "parallel"
	DependencyConditional DependencyType = "conditional"
)

// IsValid checks if the dependency type is valid.
func (dt DependencyType) IsValid() bool {
	switch dt {
	case DependencySequential, DependencyParallel, DependencyConditional:
		return true
	default:
		return false
	}
}

// TaskDependency is a standalone dependency record. Decompositions may carry
// edges both here and on Task.DependsOn; graph construction merges the two
// sets (union) so neither source silently wins.
type TaskDependency struct {
	TaskID    string         `json:"task_id" yaml:"task_id"`
	DependsOn []string       `json:"depends_on" yaml:"depends_on"`
	Type      DependencyType `json:"dependency_type,omitempty" yaml:"dependency_type,omitempty"`
}

// TaskPlan is a validated decomposition of a goal into subgoals and tasks.
type TaskPlan struct {
	GoalID               string           `json:"goal_id" yaml:"goal_id"`
	MainGoal             string           `json:"main_goal" yaml:"main_goal"`
	SubGoals             []SubGoal        `json:"sub_goals" yaml:"sub_goals"`
	Dependencies         []TaskDependency `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	EstimatedDuration    float64          `json:"estimated_duration" yaml:"estimated_duration"` // minutes
	RequiredCapabilities []string         `json:"required_capabilities,omitempty" yaml:"required_capabilities,omitempty"`
	SuccessCriteria      []string         `json:"success_criteria,omitempty" yaml:"success_criteria,omitempty"`
	CreatedAt            time.Time        `json:"created_at" yaml:"created_at"`
	Version              int              `json:"version" yaml:"version"`
}

// Tasks returns every task in the plan, flattened across subgoals in
// declaration order. That order is the deterministic tie-breaker for
// scheduling and grouping.
func (p *TaskPlan) Tasks() []Task {
	var tasks []Task
	for _, sg := range p.SubGoals {
		tasks = append(tasks, sg.Tasks...)
	}
	return tasks
}

// Task returns the task with the given id, if present.
func (p *TaskPlan) Task(id string) (Task, bool) {
	for _, sg := range p.SubGoals {
		for _, t := range sg.Tasks {
			if t.ID == id {
				return t, true
			}
		}
	}
	return Task{}, false
}

// TaskIDs returns all task ids in flattened declaration order.
func (p *TaskPlan) TaskIDs() []string {
	tasks := p.Tasks()
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

// BumpVersion increments the authoritative plan version. Every mutation of
// the plan or of a derived execution plan goes through this counter.
func (p *TaskPlan) BumpVersion() int {
	p.Version++
	return p.Version
}

// Hash returns a deterministic hash of the plan structure.
func (p *TaskPlan) Hash() string {
	h := sha256.New()
	h.Write([]byte(p.GoalID))
	for _, sg := range p.SubGoals {
		h.Write([]byte(sg.ID))
		for _, t := range sg.Tasks {
			h.Write([]byte(t.ID))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
