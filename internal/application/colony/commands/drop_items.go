package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colony-go/internal/application/colony/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

type (
	DropColonyItemsCommand  = types.DropColonyItemsCommand
	DropColonyItemsResponse = types.DropColonyItemsResponse
)

// DropColonyItemsHandler discards items from a colony inventory and logs it
type DropColonyItemsHandler struct {
	uow         common.UnitOfWork
	colonies    colony.Repository
	inventories colony.InventoryRepository
	clock       shared.Clock
}

// NewDropColonyItemsHandler creates a new DropColonyItemsHandler
func NewDropColonyItemsHandler(uow common.UnitOfWork, colonies colony.Repository, inventories colony.InventoryRepository, clock shared.Clock) *DropColonyItemsHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &DropColonyItemsHandler{
		uow:         uow,
		colonies:    colonies,
		inventories: inventories,
		clock:       clock,
	}
}

// Handle executes the DropColonyItems command
func (h *DropColonyItemsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*DropColonyItemsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DropColonyItemsCommand")
	}
	if cmd.ColonyID == "" {
		return nil, shared.NewValidationError("colony_id", "cannot be empty")
	}
	if cmd.ItemID == "" {
		return nil, shared.NewValidationError("item_id", "cannot be empty")
	}
	if cmd.Quantity <= 0 {
		return nil, shared.NewValidationError("quantity", "must be positive")
	}

	now := h.clock.Now()
	var response *DropColonyItemsResponse

	err := h.uow.Do(ctx, func(ctx context.Context) error {
		col, err := h.colonies.FindByID(ctx, cmd.ColonyID)
		if err != nil {
			return err
		}
		inv, err := h.inventories.FindByColony(ctx, col.ID())
		if err != nil {
			return fmt.Errorf("failed to load inventory: %w", err)
		}

		dropped, err := inv.DropItems(cmd.ItemID, cmd.Quantity)
		if err != nil {
			return err
		}
		if err := h.inventories.Save(ctx, inv); err != nil {
			return fmt.Errorf("failed to save inventory: %w", err)
		}

		col.AddLogEntry(colony.LogItemsDropped, fmt.Sprintf("Dropped %d %s", dropped, cmd.ItemID), map[string]interface{}{
			"item_id":  cmd.ItemID,
			"quantity": dropped,
		}, now)
		if err := h.colonies.Save(ctx, col); err != nil {
			return fmt.Errorf("failed to save colony: %w", err)
		}

		response = &DropColonyItemsResponse{Dropped: dropped, Remaining: inv.Quantity(cmd.ItemID)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
