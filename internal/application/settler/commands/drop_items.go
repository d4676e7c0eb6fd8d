package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colony-go/internal/application/common"
	"github.com/andrescamacho/colony-go/internal/application/settler/types"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

type (
	DropSettlerItemsCommand  = types.DropSettlerItemsCommand
	DropSettlerItemsResponse = types.DropSettlerItemsResponse
)

// DropSettlerItemsHandler removes items from a settler's carry
type DropSettlerItemsHandler struct {
	uow      common.UnitOfWork
	settlers settler.Repository
}

// NewDropSettlerItemsHandler creates a new DropSettlerItemsHandler
func NewDropSettlerItemsHandler(uow common.UnitOfWork, settlers settler.Repository) *DropSettlerItemsHandler {
	return &DropSettlerItemsHandler{uow: uow, settlers: settlers}
}

// Handle executes the DropSettlerItems command
func (h *DropSettlerItemsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*DropSettlerItemsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DropSettlerItemsCommand")
	}
	if cmd.SettlerID == "" {
		return nil, shared.NewValidationError("settler_id", "cannot be empty")
	}
	if cmd.ItemID == "" {
		return nil, shared.NewValidationError("item_id", "cannot be empty")
	}
	if cmd.Quantity <= 0 {
		return nil, shared.NewValidationError("quantity", "must be positive")
	}

	var response *DropSettlerItemsResponse
	err := h.uow.Do(ctx, func(ctx context.Context) error {
		s, err := h.settlers.FindByID(ctx, cmd.SettlerID)
		if err != nil {
			return err
		}
		dropped, err := s.DropItems(cmd.ItemID, cmd.Quantity)
		if err != nil {
			return err
		}
		if err := h.settlers.Save(ctx, s); err != nil {
			return fmt.Errorf("failed to save settler: %w", err)
		}
		response = &DropSettlerItemsResponse{Dropped: dropped, Settler: types.NewSettlerView(s)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
