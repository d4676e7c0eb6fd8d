package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colony-go/internal/adapters/metrics"
	"github.com/andrescamacho/colony-go/internal/application/assignment/services"
	"github.com/andrescamacho/colony-go/internal/application/assignment/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/catalog"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/pkg/utils"
)

type StartCraftingCommand = types.StartCraftingCommand

// StartCraftingHandler consumes recipe inputs from the colony inventory and
// starts a crafting assignment whose rewards are the recipe outputs
type StartCraftingHandler struct {
	uow         common.UnitOfWork
	colonies    colony.Repository
	inventories colony.InventoryRepository
	settlers    settler.Repository
	recipes     catalog.Recipes
	starter     *services.Starter
	clock       shared.Clock
}

// NewStartCraftingHandler creates a new StartCraftingHandler
func NewStartCraftingHandler(
	uow common.UnitOfWork,
	colonies colony.Repository,
	inventories colony.InventoryRepository,
	settlers settler.Repository,
	recipes catalog.Recipes,
	starter *services.Starter,
	clock shared.Clock,
) *StartCraftingHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &StartCraftingHandler{
		uow:         uow,
		colonies:    colonies,
		inventories: inventories,
		settlers:    settlers,
		recipes:     recipes,
		starter:     starter,
		clock:       clock,
	}
}

// Handle executes the StartCrafting command
func (h *StartCraftingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*StartCraftingCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *StartCraftingCommand")
	}
	if err := validateColonySettler(cmd.ColonyID, cmd.SettlerID); err != nil {
		return nil, err
	}
	if cmd.RecipeID == "" {
		return nil, shared.NewValidationError("recipe_id", "cannot be empty")
	}

	recipe, err := h.recipes.Recipe(cmd.RecipeID)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	var started *assignment.Assignment

	err = h.uow.Do(ctx, func(ctx context.Context) error {
		col, s, err := loadColonySettler(ctx, h.colonies, h.settlers, cmd.ColonyID, cmd.SettlerID)
		if err != nil {
			return err
		}

		inv, err := h.inventories.FindByColony(ctx, col.ID())
		if err != nil {
			return fmt.Errorf("failed to load inventory: %w", err)
		}
		if err := inv.Consume(recipe.Inputs); err != nil {
			return err
		}

		a, err := assignment.New(utils.GenerateID("assignment"), col.ID(), assignment.TypeCrafting, recipe.Name, recipe.DurationMs, recipe.Outputs, nil, now)
		if err != nil {
			return err
		}
		if err := h.starter.Begin(ctx, a, s, true, now); err != nil {
			return err
		}

		if err := h.inventories.Save(ctx, inv); err != nil {
			return fmt.Errorf("failed to save inventory: %w", err)
		}
		col.AddLogEntry(colony.LogCraftingStarted, fmt.Sprintf("%s started crafting %s", s.Name(), recipe.Name), map[string]interface{}{
			"recipe_id":     recipe.ID,
			"assignment_id": a.ID(),
			"settler_id":    s.ID(),
		}, now)
		if err := h.colonies.Save(ctx, col); err != nil {
			return fmt.Errorf("failed to save colony: %w", err)
		}

		started = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordAssignmentStarted(string(started.Type()))

	return &StartAssignmentResponse{Assignment: types.NewAssignmentView(started)}, nil
}
