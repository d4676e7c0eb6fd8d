package setup

import (
	"reflect"

	assignmentCommands "github.com/andrescamacho/colony-go/internal/application/assignment/commands"
	assignmentQueries "github.com/andrescamacho/colony-go/internal/application/assignment/queries"
	assignmentServices "github.com/andrescamacho/colony-go/internal/application/assignment/services"
	assignmentTypes "github.com/andrescamacho/colony-go/internal/application/assignment/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
	colonyCommands "github.com/andrescamacho/colony-go/internal/application/colony/commands"
	colonyQueries "github.com/andrescamacho/colony-go/internal/application/colony/queries"
	colonyServices "github.com/andrescamacho/colony-go/internal/application/colony/services"
	colonyTypes "github.com/andrescamacho/colony-go/internal/application/colony/types"
	"github.com/andrescamacho/colony-go/internal/application/mediator"
	settlerCommands "github.com/andrescamacho/colony-go/internal/application/settler/commands"
	settlerQueries "github.com/andrescamacho/colony-go/internal/application/settler/queries"
	settlerServices "github.com/andrescamacho/colony-go/internal/application/settler/services"
	settlerTypes "github.com/andrescamacho/colony-go/internal/application/settler/types"
	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/catalog"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/internal/domain/spiral"
)

// Dependencies are the repositories, services and settings handlers are
// built from
type Dependencies struct {
	UnitOfWork  common.UnitOfWork
	Colonies    colony.Repository
	Inventories colony.InventoryRepository
	Settlers    settler.Repository
	Assignments assignment.Repository
	Counters    spiral.CounterRepository

	Catalog    catalog.Catalog
	Model      *settler.ResourceModel
	Recruiter  *settlerServices.Recruiter
	Surveyor   *colonyServices.Surveyor
	Starter    *assignmentServices.Starter
	Completion *assignmentServices.CompletionService

	Placement            colonyCommands.PlacementSettings
	FoodPerSettlerPerDay float64
	Clock                shared.Clock
}

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	deps     Dependencies
	resolver *common.ColonyResolver
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(deps Dependencies) *HandlerRegistry {
	// Default to real clock if not provided
	if deps.Clock == nil {
		deps.Clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		deps:     deps,
		resolver: common.NewColonyResolver(deps.Colonies),
	}
}

// RegisterAll registers every colony, settler and assignment handler
func (r *HandlerRegistry) RegisterAll(m mediator.Mediator) error {
	if err := r.RegisterColonyHandlers(m); err != nil {
		return err
	}
	if err := r.RegisterSettlerHandlers(m); err != nil {
		return err
	}
	return r.RegisterAssignmentHandlers(m)
}

// RegisterColonyHandlers registers colony creation, onboarding, inventory
// and overview handlers
func (r *HandlerRegistry) RegisterColonyHandlers(m mediator.Mediator) error {
	d := r.deps

	handlers := []struct {
		request interface{}
		handler mediator.RequestHandler
	}{
		{
			&colonyTypes.CreateColonyCommand{},
			colonyCommands.NewCreateColonyHandler(d.UnitOfWork, d.Colonies, d.Inventories, d.Counters, d.Surveyor, d.Placement, d.Clock),
		},
		{
			&colonyTypes.GenerateOnboardingSettlersCommand{},
			colonyCommands.NewGenerateOnboardingSettlersHandler(d.UnitOfWork, d.Colonies, d.Settlers, d.Recruiter, d.Clock),
		},
		{
			&colonyTypes.ChooseOnboardingSettlerCommand{},
			colonyCommands.NewChooseOnboardingSettlerHandler(d.UnitOfWork, d.Colonies, d.Settlers, d.Clock),
		},
		{
			&colonyTypes.DropColonyItemsCommand{},
			colonyCommands.NewDropColonyItemsHandler(d.UnitOfWork, d.Colonies, d.Inventories, d.Clock),
		},
		{
			&colonyTypes.GetColonyOverviewQuery{},
			colonyQueries.NewGetColonyOverviewHandler(d.UnitOfWork, r.resolver, d.Settlers, d.Inventories, d.Model, d.FoodPerSettlerPerDay, d.Clock),
		},
	}

	for _, h := range handlers {
		if err := m.Register(reflect.TypeOf(h.request), h.handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterSettlerHandlers registers settler inventory and listing handlers
func (r *HandlerRegistry) RegisterSettlerHandlers(m mediator.Mediator) error {
	d := r.deps

	if err := mediator.RegisterHandler[*settlerTypes.DropSettlerItemsCommand](
		m, settlerCommands.NewDropSettlerItemsHandler(d.UnitOfWork, d.Settlers),
	); err != nil {
		return err
	}

	return mediator.RegisterHandler[*settlerTypes.ListSettlersQuery](
		m, settlerQueries.NewListSettlersHandler(d.UnitOfWork, d.Settlers, d.Model, d.Clock),
	)
}

// RegisterAssignmentHandlers registers the assignment lifecycle handlers
//
// This method registers:
//   - the start commands for quests, exploration, resting and crafting
//   - CompleteDueAssignmentsCommand, used by the sweep and the due middleware
//   - InformAssignmentCommand and SyncQuestAssignmentsCommand
//   - ListAssignmentsQuery
func (r *HandlerRegistry) RegisterAssignmentHandlers(m mediator.Mediator) error {
	d := r.deps

	handlers := []struct {
		request interface{}
		handler mediator.RequestHandler
	}{
		{
			&assignmentTypes.StartAssignmentCommand{},
			assignmentCommands.NewStartAssignmentHandler(d.UnitOfWork, d.Assignments, d.Settlers, d.Starter, d.Clock),
		},
		{
			&assignmentTypes.StartExplorationCommand{},
			assignmentCommands.NewStartExplorationHandler(d.UnitOfWork, d.Colonies, d.Settlers, d.Catalog, d.Surveyor, d.Starter, d.Clock),
		},
		{
			&assignmentTypes.StartRestingCommand{},
			assignmentCommands.NewStartRestingHandler(d.UnitOfWork, d.Colonies, d.Settlers, d.Starter, d.Clock),
		},
		{
			&assignmentTypes.StartCraftingCommand{},
			assignmentCommands.NewStartCraftingHandler(d.UnitOfWork, d.Colonies, d.Inventories, d.Settlers, d.Catalog, d.Starter, d.Clock),
		},
		{
			&assignmentTypes.CompleteDueAssignmentsCommand{},
			assignmentCommands.NewCompleteDueAssignmentsHandler(d.Completion, d.Clock),
		},
		{
			&assignmentTypes.InformAssignmentCommand{},
			assignmentCommands.NewInformAssignmentHandler(d.UnitOfWork, d.Assignments),
		},
		{
			&assignmentTypes.SyncQuestAssignmentsCommand{},
			assignmentCommands.NewSyncQuestAssignmentsHandler(d.UnitOfWork, d.Colonies, d.Assignments, d.Catalog, d.Clock),
		},
		{
			&assignmentTypes.ListAssignmentsQuery{},
			assignmentQueries.NewListAssignmentsHandler(d.UnitOfWork, d.Assignments),
		},
	}

	for _, h := range handlers {
		if err := m.Register(reflect.TypeOf(h.request), h.handler); err != nil {
			return err
		}
	}
	return nil
}
