package execution_test

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
	"github.com/felixgeelhaar/planwright/pkg/domain/plan"
	"github.com/felixgeelhaar/planwright/pkg/domain/schedule"
)

// fixturePlan compiles a four task plan with b depending on a.
func fixturePlan(t *testing.T) *schedule.ExecutionPlan {
	t.Helper()
	p := &plan.TaskPlan{
		GoalID: "goal-1",
		SubGoals: []plan.SubGoal{{
			ID:          "sg",
			Description: "d",
			Tasks: []plan.Task{
				{ID: "a", Name: "a", Kind: plan.KindAtomic, EstimatedDuration: 10, Priority: plan.PriorityMedium},
				{ID: "b", Name: "b", Kind: plan.KindAtomic, EstimatedDuration: 20, Priority: plan.PriorityMedium, DependsOn: []string{"a"}},
				{ID: "c", Name: "c", Kind: plan.KindAtomic, EstimatedDuration: 5, Priority: plan.PriorityMedium},
				{ID: "d", Name: "d", Kind: plan.KindAtomic, EstimatedDuration: 5, Priority: plan.PriorityMedium},
			},
		}},
		Version: 1,
	}
	ep, err := schedule.NewCompiler().Compile(p)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return ep
}

func TestAdapt_FailedTaskTriggersReplan(t *testing.T) {
	ep := fixturePlan(t)
	beforeID := ep.ID

	adaptation, err := execution.NewAdapter().Adapt(ep, execution.Feedback{
		TaskID: "a",
		Status: execution.StatusFailed,
	})
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}

	if adaptation.Strategy != execution.StrategyReplan {
		t.Errorf("Strategy = %q, want %q", adaptation.Strategy, execution.StrategyReplan)
	}
	next := adaptation.Plan
	if next.ID == beforeID {
		t.Error("adapted plan kept the previous id")
	}
	if next.ContainsTask("a") {
		t.Errorf("failed task still in order: %v", next.ExecutionOrder)
	}
	if _, ok := next.ResourceAllocation["a"]; ok {
		t.Error("failed task still has a resource allocation")
	}
	for _, group := range next.ParallelGroups {
		for _, id := range group {
			if id == "a" {
				t.Errorf("failed task still in a parallel group: %v", next.ParallelGroups)
			}
		}
	}
}

func TestAdapt_ReplanFlagsOrphanedDependents(t *testing.T) {
	ep := fixturePlan(t)

	adaptation, err := execution.NewAdapter().Adapt(ep, execution.Feedback{
		TaskID: "a",
		Status: execution.StatusFailed,
	})
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}

	// b depends on a, which is gone; the plan keeps b but flags it.
	next := adaptation.Plan
	if !next.ContainsTask("b") {
		t.Errorf("dependent b was removed: %v", next.ExecutionOrder)
	}
	found := false
	for _, id := range next.OrphanedTasks {
		if id == "b" {
			found = true
		}
	}
	if !found {
		t.Errorf("OrphanedTasks = %v, want b flagged", next.OrphanedTasks)
	}
}

func TestAdapt_BlockedTaskMovesToEnd(t *testing.T) {
	ep := fixturePlan(t)

	adaptation, err := execution.NewAdapter().Adapt(ep, execution.Feedback{
		TaskID: "a",
		Status: execution.StatusBlocked,
	})
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}

	if adaptation.Strategy != execution.StrategyReorder {
		t.Errorf("Strategy = %q, want %q", adaptation.Strategy, execution.StrategyReorder)
	}
	order := adaptation.Plan.ExecutionOrder
	if len(order) != 4 {
		t.Fatalf("order = %v, want all four tasks kept", order)
	}
	if order[len(order)-1] != "a" {
		t.Errorf("order = %v, want blocked task last", order)
	}
}

func TestAdapt_ActualDurationRescalesEstimates(t *testing.T) {
	ep := fixturePlan(t)
	ep.EstimatedDuration = 40 // average of 10 per task over four tasks
	ep.EstimatedCost = 40

	adaptation, err := execution.NewAdapter().Adapt(ep, execution.Feedback{
		TaskID:         "c",
		Status:         execution.StatusCompleted,
		ActualDuration: 20, // twice the average estimate
	})
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}

	if adaptation.Strategy != execution.StrategyAdjustEstimates {
		t.Errorf("Strategy = %q, want %q", adaptation.Strategy, execution.StrategyAdjustEstimates)
	}
	next := adaptation.Plan
	if next.EstimatedDuration != 80 {
		t.Errorf("EstimatedDuration = %v, want 80", next.EstimatedDuration)
	}
	if next.EstimatedCost != 80 {
		t.Errorf("EstimatedCost = %v, want 80", next.EstimatedCost)
	}
	if len(next.ExecutionOrder) != len(ep.ExecutionOrder) {
		t.Errorf("order changed: %v", next.ExecutionOrder)
	}
}

func TestAdapt_CompletionWithoutDurationIsNoop(t *testing.T) {
	ep := fixturePlan(t)
	version := ep.PlanVersion

	adaptation, err := execution.NewAdapter().Adapt(ep, execution.Feedback{
		TaskID: "c",
		Status: execution.StatusCompleted,
	})
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}

	if adaptation.Strategy != execution.StrategyNone {
		t.Errorf("Strategy = %q, want %q", adaptation.Strategy, execution.StrategyNone)
	}
	if adaptation.Plan != ep {
		t.Error("noop adaptation should return the input plan")
	}
	if adaptation.Plan.PlanVersion != version {
		t.Errorf("PlanVersion = %d, want unchanged %d", adaptation.Plan.PlanVersion, version)
	}
}

func TestAdapt_VersionIncreasesPerAdaptation(t *testing.T) {
	ep := fixturePlan(t)
	v0 := ep.PlanVersion

	first, err := execution.NewAdapter().Adapt(ep, execution.Feedback{
		TaskID: "c", Status: execution.StatusBlocked,
	})
	if err != nil {
		t.Fatalf("first Adapt() error = %v", err)
	}
	if first.Plan.PlanVersion != v0+1 {
		t.Errorf("version after first adaptation = %d, want %d", first.Plan.PlanVersion, v0+1)
	}

	second, err := execution.NewAdapter().Adapt(first.Plan, execution.Feedback{
		TaskID: "d", Status: execution.StatusBlocked,
	})
	if err != nil {
		t.Fatalf("second Adapt() error = %v", err)
	}
	if second.Plan.PlanVersion != v0+2 {
		t.Errorf("version after second adaptation = %d, want %d", second.Plan.PlanVersion, v0+2)
	}
}

func TestAdapt_RejectsBadInput(t *testing.T) {
	ep := fixturePlan(t)
	adapter := execution.NewAdapter()

	_, err := adapter.Adapt(ep, execution.Feedback{TaskID: "ghost", Status: execution.StatusFailed})
	if !errors.Is(err, execution.ErrTaskNotInPlan) {
		t.Errorf("unknown task error = %v, want ErrTaskNotInPlan", err)
	}

	_, err = adapter.Adapt(ep, execution.Feedback{TaskID: "a", Status: "exploded"})
	if err == nil {
		t.Error("invalid status accepted")
	}
}

func TestAdapt_DoesNotMutateInput(t *testing.T) {
	ep := fixturePlan(t)
	orderBefore := append([]string(nil), ep.ExecutionOrder...)

	if _, err := execution.NewAdapter().Adapt(ep, execution.Feedback{
		TaskID: "a", Status: execution.StatusFailed,
	}); err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}

	if len(ep.ExecutionOrder) != len(orderBefore) {
		t.Fatalf("input order mutated: %v", ep.ExecutionOrder)
	}
	for i := range orderBefore {
		if ep.ExecutionOrder[i] != orderBefore[i] {
			t.Errorf("input order mutated at %d: %v", i, ep.ExecutionOrder)
		}
	}
}
