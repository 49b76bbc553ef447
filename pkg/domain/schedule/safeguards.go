package schedule

import (
	"github.com/google/uuid"

	"github.com/felixgeelhaar/planwright/pkg/domain/plan"
)

// SafeguardGenerator attaches checkpoints and fallback strategies to a
// compiled plan.
type SafeguardGenerator struct{}

// NewSafeguardGenerator creates a new SafeguardGenerator.
func NewSafeguardGenerator() *SafeguardGenerator {
	return &SafeguardGenerator{}
}

// Checkpoints generates control points for the execution order. Every
// critical task is paused for review on completion. Orders longer than two
// tasks also get a progress review at the midpoint task, independent of
// priority.
func (g *SafeguardGenerator) Checkpoints(order []string, tasks map[string]plan.Task) []Checkpoint {
	var cps []Checkpoint
	for _, id := range order {
		if tasks[id].Priority == plan.PriorityCritical {
			cps = append(cps, Checkpoint{
				ID:        uuid.NewString(),
				TaskID:    id,
				Condition: ConditionTaskCompletion,
				Action:    ActionPause,
			})
		}
	}
	if len(order) > 2 {
		cps = append(cps, Checkpoint{
			ID:        uuid.NewString(),
			TaskID:    order[len(order)/2],
			Condition: ConditionProgressReview,
			Action:    ActionContinue,
		})
	}
	return cps
}

// Fallbacks generates a failure policy per task: critical tasks escalate to
// a human immediately, everything else retries with backoff.
func (g *SafeguardGenerator) Fallbacks(tasks []plan.Task) []FallbackStrategy {
	var fbs []FallbackStrategy
	for _, t := range tasks {
		if t.Priority == plan.PriorityCritical {
			fbs = append(fbs, FallbackStrategy{
				TriggerID: t.ID,
				Condition: ConditionTaskFailure,
				Action:    FallbackHumanIntervention,
				Parameters: map[string]any{
					"escalationLevel": "immediate",
				},
			})
			continue
		}
		fbs = append(fbs, FallbackStrategy{
			TriggerID: t.ID,
			Condition: ConditionTaskFailure,
			Action:    FallbackRetry,
			Parameters: map[string]any{
				"maxRetries": 3,
				"backoffMs":  5000,
			},
		})
	}
	return fbs
}
