// Package wiring constructs the application services for a workspace.
package wiring

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/planwright/internal/infrastructure/config"
	"github.com/felixgeelhaar/planwright/pkg/application"
	"github.com/felixgeelhaar/planwright/pkg/domain/events"
	domainreasoning "github.com/felixgeelhaar/planwright/pkg/domain/reasoning"
	"github.com/felixgeelhaar/planwright/pkg/domain/schedule"
	"github.com/felixgeelhaar/planwright/pkg/reasoning"
	"github.com/felixgeelhaar/planwright/pkg/storage"
)

// AppServices bundles the constructed services for the CLI.
type AppServices struct {
	Repo       *storage.FilesystemRepository
	Config     *config.Config
	Dispatcher *events.Dispatcher
	Planning   *application.PlanningService
	Adaptation *application.AdaptationService
	Reflection *application.ReflectionService
}

// BuildAppServices wires the engine for the given workspace root. The
// reasoning provider defaults to nil; decomposition from a goal requires
// one, decomposition from a file does not.
func BuildAppServices(root string, provider domainreasoning.Provider) (*AppServices, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	repo := storage.NewFilesystemRepository(root)
	dispatcher := events.NewDispatcher()
	logger := slog.Default()

	// Audit trail: every engine event lands in the log.
	dispatcher.RegisterWildcard("audit-log", func(ctx context.Context, event events.DomainEvent) error {
		logger.Debug("engine event", "type", event.EventType(), "aggregate", event.AggregateID())
		return nil
	})

	if provider != nil {
		provider = reasoning.NewResilientProvider(provider).
			WithAttempts(cfg.Reasoning.MaxAttempts).
			WithTimeout(time.Duration(cfg.Reasoning.TimeoutSeconds) * time.Second)
	}

	compiler := schedule.NewCompiler().
		WithEstimator(schedule.NewEstimator().WithUnitCost(cfg.Cost.UnitCost))

	return &AppServices{
		Repo:       repo,
		Config:     cfg,
		Dispatcher: dispatcher,
		Planning:   application.NewPlanningService(provider, compiler, repo, dispatcher, logger),
		Adaptation: application.NewAdaptationService(repo, dispatcher, logger),
		Reflection: application.NewReflectionService(repo, dispatcher, logger),
	}, nil
}
