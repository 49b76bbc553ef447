package application_test

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/planwright/pkg/application"
	"github.com/felixgeelhaar/planwright/pkg/domain/events"
	"github.com/felixgeelhaar/planwright/pkg/domain/execution"
	"github.com/felixgeelhaar/planwright/pkg/storage"
)

func TestReflectionService_Reflect(t *testing.T) {
	repo := storage.NewMemoryRepository()
	dispatcher := events.NewDispatcher()

	var reflected int
	dispatcher.Register("count", func(ctx context.Context, e events.DomainEvent) error {
		reflected++
		return nil
	}, events.TypeRunReflected)

	svc := application.NewReflectionService(repo, dispatcher, quietLogger())

	ins, err := svc.Reflect(context.Background(), execution.Results{
		PlanID:         "ep-1",
		OverallStatus:  execution.RunCompleted,
		CompletedTasks: []string{"t1", "t2", "t3"},
		TotalDuration:  90,
		QualityScore:   0.9,
	})
	if err != nil {
		t.Fatalf("Reflect() error = %v", err)
	}

	if ins.PlanID != "ep-1" {
		t.Errorf("PlanID = %q, want ep-1", ins.PlanID)
	}
	if len(ins.Strengths) == 0 {
		t.Error("Strengths is empty for a clean run")
	}
	if reflected != 1 {
		t.Errorf("run.reflected fired %d times, want 1", reflected)
	}

	saved, err := repo.LoadInsights()
	if err != nil {
		t.Fatalf("insights were not persisted: %v", err)
	}
	if saved.PlanID != "ep-1" {
		t.Errorf("persisted PlanID = %q, want ep-1", saved.PlanID)
	}
}

func TestReflectionService_RequiresPlanID(t *testing.T) {
	svc := application.NewReflectionService(storage.NewMemoryRepository(), nil, quietLogger())

	if _, err := svc.Reflect(context.Background(), execution.Results{}); err == nil {
		t.Error("results without a plan id accepted")
	}
}
