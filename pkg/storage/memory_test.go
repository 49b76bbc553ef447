package storage

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
	"github.com/felixgeelhaar/planwright/pkg/domain/insight"
	"github.com/felixgeelhaar/planwright/pkg/domain/plan"
	"github.com/felixgeelhaar/planwright/pkg/domain/schedule"
)

func TestMemoryRepository_RoundTrips(t *testing.T) {
	repo := NewMemoryRepository()

	if _, err := repo.LoadTaskPlan(); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadTaskPlan error = %v, want ErrNotFound", err)
	}
	if _, err := repo.LoadExecutionPlan(); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadExecutionPlan error = %v, want ErrNotFound", err)
	}
	if _, err := repo.LoadInsights(); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadInsights error = %v, want ErrNotFound", err)
	}

	if err := repo.SaveTaskPlan(&plan.TaskPlan{GoalID: "g1", Version: 1}); err != nil {
		t.Fatal(err)
	}
	p, err := repo.LoadTaskPlan()
	if err != nil || p.GoalID != "g1" {
		t.Errorf("LoadTaskPlan = %+v, %v", p, err)
	}

	if err := repo.SaveExecutionPlan(&schedule.ExecutionPlan{ID: "ep1"}); err != nil {
		t.Fatal(err)
	}
	ep, err := repo.LoadExecutionPlan()
	if err != nil || ep.ID != "ep1" {
		t.Errorf("LoadExecutionPlan = %+v, %v", ep, err)
	}

	if err := repo.SaveInsights(&insight.PerformanceInsights{PlanID: "ep1"}); err != nil {
		t.Fatal(err)
	}
	ins, err := repo.LoadInsights()
	if err != nil || ins.PlanID != "ep1" {
		t.Errorf("LoadInsights = %+v, %v", ins, err)
	}
}

func TestMemoryRepository_FeedbackJournalIsCopied(t *testing.T) {
	repo := NewMemoryRepository()

	if err := repo.AppendFeedback(execution.Feedback{TaskID: "t1", Status: execution.StatusCompleted}); err != nil {
		t.Fatal(err)
	}
	first, err := repo.LoadFeedback()
	if err != nil {
		t.Fatal(err)
	}
	first[0].TaskID = "mutated"

	second, err := repo.LoadFeedback()
	if err != nil {
		t.Fatal(err)
	}
	if second[0].TaskID != "t1" {
		t.Error("journal was mutated through a loaded copy")
	}
}
