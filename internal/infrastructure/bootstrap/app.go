// Package bootstrap wires repositories, domain services and handlers into a
// ready mediator. The CLI, the sweep daemon and the acceptance tests share it.
package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	catalogLoader "github.com/andrescamacho/colony-go/internal/adapters/catalog"
	"github.com/andrescamacho/colony-go/internal/adapters/metrics"
	"github.com/andrescamacho/colony-go/internal/adapters/persistence"
	"github.com/andrescamacho/colony-go/internal/application/assignment/middleware"
	assignmentServices "github.com/andrescamacho/colony-go/internal/application/assignment/services"
	colonyCommands "github.com/andrescamacho/colony-go/internal/application/colony/commands"
	colonyServices "github.com/andrescamacho/colony-go/internal/application/colony/services"
	"github.com/andrescamacho/colony-go/internal/application/common"
	settlerServices "github.com/andrescamacho/colony-go/internal/application/settler/services"
	"github.com/andrescamacho/colony-go/internal/application/setup"
	"github.com/andrescamacho/colony-go/internal/application/sweep"
	"github.com/andrescamacho/colony-go/internal/domain/catalog"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/internal/domain/world"
	"github.com/andrescamacho/colony-go/internal/infrastructure/config"
)

// App is the composed application
type App struct {
	Mediator common.Mediator
	Sweep    *sweep.Service
	Catalog  *catalog.Tables
	Colonies *persistence.GormColonyRepository
	Clock    shared.Clock
}

type options struct {
	clock          shared.Clock
	catalog        *catalog.Tables
	commandMetrics *metrics.CommandMetricsCollector
}

// Option customizes New
type Option func(*options)

// WithClock replaces the real clock
func WithClock(clock shared.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithCatalog uses the given tables instead of loading game.catalog_path
func WithCatalog(tables *catalog.Tables) Option {
	return func(o *options) { o.catalog = tables }
}

// WithCommandMetrics records per-command duration and outcome
func WithCommandMetrics(collector *metrics.CommandMetricsCollector) Option {
	return func(o *options) { o.commandMetrics = collector }
}

// New builds the application on an open database
func New(cfg *config.Config, db *gorm.DB, opts ...Option) (*App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = shared.NewRealClock()
	}

	tables := o.catalog
	if tables == nil {
		loaded, err := catalogLoader.LoadFile(cfg.Game.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		tables = loaded
	}

	uow := persistence.NewGormUnitOfWork(db)
	colonyRepo := persistence.NewGormColonyRepository(db)
	inventoryRepo := persistence.NewGormInventoryRepository(db)
	settlerRepo := persistence.NewGormSettlerRepository(db)
	assignmentRepo := persistence.NewGormAssignmentRepository(db)
	counterRepo := persistence.NewGormSpiralCounterRepository(db)
	tileRepo := persistence.NewGormMapTileRepository(db)

	model := settler.NewResourceModel(tables, tables)
	recruiter := settlerServices.NewRecruiter(tables, cfg.Game.Seed, cfg.Game.StartingEnergy, cfg.Game.MaxCarrySlots)
	surveyor := colonyServices.NewSurveyor(tileRepo, world.NewTerrainGenerator(cfg.Game.Seed, tables))
	starter := assignmentServices.NewStarter(settlerRepo, assignmentRepo, model)
	completion := assignmentServices.NewCompletionService(
		uow, colonyRepo, inventoryRepo, settlerRepo, assignmentRepo, tables, model, recruiter, surveyor,
	)

	med := common.NewMediator()

	// Metrics wrap the whole pipeline so due resolution is timed with the command
	if o.commandMetrics != nil {
		med.RegisterMiddleware(metrics.PrometheusMiddleware(o.commandMetrics))
	}
	lookup := middleware.NewColonyLookup(uow, colonyRepo, assignmentRepo, settlerRepo)
	med.RegisterMiddleware(middleware.ResolveDueMiddleware(lookup, completion, o.clock))

	registry := setup.NewHandlerRegistry(setup.Dependencies{
		UnitOfWork:  uow,
		Colonies:    colonyRepo,
		Inventories: inventoryRepo,
		Settlers:    settlerRepo,
		Assignments: assignmentRepo,
		Counters:    counterRepo,
		Catalog:     tables,
		Model:       model,
		Recruiter:   recruiter,
		Surveyor:    surveyor,
		Starter:     starter,
		Completion:  completion,
		Placement: colonyCommands.PlacementSettings{
			StepMultiplier: cfg.Game.StepMultiplier,
			MaxRetries:     cfg.Game.MaxPlacementRetries,
			Backoff:        cfg.Game.PlacementBackoff,
			MaxInventory:   cfg.Game.MaxInventory,
		},
		FoodPerSettlerPerDay: cfg.Game.FoodPerSettlerPerDay,
		Clock:                o.clock,
	})
	if err := registry.RegisterAll(med); err != nil {
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	return &App{
		Mediator: med,
		Sweep:    sweep.NewService(med, colonyRepo, cfg.Sweep.RatePerSecond, cfg.Sweep.Burst, o.clock),
		Catalog:  tables,
		Colonies: colonyRepo,
		Clock:    o.clock,
	}, nil
}
