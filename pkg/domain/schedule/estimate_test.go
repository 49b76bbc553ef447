package schedule_test

import (
	"testing"

	"github.com/felixgeelhaar/planwright/pkg/domain/plan"
	"github.com/felixgeelhaar/planwright/pkg/domain/schedule"
)

func TestEstimator_Allocate(t *testing.T) {
	tasks := []plan.Task{
		{ID: "t1", Kind: plan.KindAtomic, EstimatedDuration: 30, Priority: plan.PriorityHigh, RequiredCapabilities: []string{"code"}},
		{ID: "t2", Kind: plan.KindComposite, EstimatedDuration: 90, Priority: plan.PriorityMedium},
	}

	alloc := schedule.NewEstimator().Allocate(tasks)
	if len(alloc) != 2 {
		t.Fatalf("allocation has %d entries, want 2", len(alloc))
	}

	if alloc["t1"].ResourceType != schedule.ResourceSingleAgent {
		t.Errorf("t1 resource = %q, want %q", alloc["t1"].ResourceType, schedule.ResourceSingleAgent)
	}
	if alloc["t2"].ResourceType != schedule.ResourceMultiAgent {
		t.Errorf("t2 resource = %q, want %q", alloc["t2"].ResourceType, schedule.ResourceMultiAgent)
	}
	if alloc["t1"].EstimatedDuration != 30 {
		t.Errorf("t1 duration = %v, want 30", alloc["t1"].EstimatedDuration)
	}
	if alloc["t1"].Priority != plan.PriorityHigh {
		t.Errorf("t1 priority = %q, want %q", alloc["t1"].Priority, plan.PriorityHigh)
	}
}

func TestEstimator_TotalDuration(t *testing.T) {
	// A takes 10, B depends on A and takes 20, C is independent and takes 5.
	// A and C run in parallel (max 10), then B runs for 20. Total is 30.
	tasks := []plan.Task{
		{ID: "a", EstimatedDuration: 10},
		{ID: "b", EstimatedDuration: 20, DependsOn: []string{"a"}},
		{ID: "c", EstimatedDuration: 5},
	}
	groups := [][]string{{"a", "c"}}

	if got := schedule.NewEstimator().TotalDuration(tasks, groups); got != 30 {
		t.Errorf("TotalDuration = %v, want 30", got)
	}
}

func TestEstimator_TotalDurationNoGroups(t *testing.T) {
	tasks := []plan.Task{
		{ID: "a", EstimatedDuration: 10},
		{ID: "b", EstimatedDuration: 20},
	}

	if got := schedule.NewEstimator().TotalDuration(tasks, nil); got != 30 {
		t.Errorf("TotalDuration = %v, want 30", got)
	}
}

type fixedCost float64

func (f fixedCost) TaskCost(plan.Task) float64 { return float64(f) }

func TestEstimator_TotalCost(t *testing.T) {
	tasks := []plan.Task{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	if got := schedule.NewEstimator().TotalCost(tasks); got != 3*schedule.DefaultUnitCost {
		t.Errorf("default TotalCost = %v, want %v", got, 3*schedule.DefaultUnitCost)
	}
	if got := schedule.NewEstimator().WithUnitCost(2.5).TotalCost(tasks); got != 7.5 {
		t.Errorf("unit cost TotalCost = %v, want 7.5", got)
	}
	if got := schedule.NewEstimator().WithCostModel(fixedCost(4)).TotalCost(tasks); got != 12 {
		t.Errorf("model TotalCost = %v, want 12", got)
	}
}
