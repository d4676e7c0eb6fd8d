package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colony-go/internal/application/colony/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
	settlerTypes "github.com/andrescamacho/colony-go/internal/application/settler/types"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

type (
	GetColonyOverviewQuery    = types.GetColonyOverviewQuery
	GetColonyOverviewResponse = types.GetColonyOverviewResponse
)

// GetColonyOverviewHandler assembles the colony, its settlers and its
// inventory summary. Settler energy is projected to now and not saved.
type GetColonyOverviewHandler struct {
	uow                  common.UnitOfWork
	resolver             *common.ColonyResolver
	settlers             settler.Repository
	inventories          colony.InventoryRepository
	model                *settler.ResourceModel
	foodPerSettlerPerDay float64
	clock                shared.Clock
}

// NewGetColonyOverviewHandler creates a new GetColonyOverviewHandler
func NewGetColonyOverviewHandler(
	uow common.UnitOfWork,
	resolver *common.ColonyResolver,
	settlers settler.Repository,
	inventories colony.InventoryRepository,
	model *settler.ResourceModel,
	foodPerSettlerPerDay float64,
	clock shared.Clock,
) *GetColonyOverviewHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GetColonyOverviewHandler{
		uow:                  uow,
		resolver:             resolver,
		settlers:             settlers,
		inventories:          inventories,
		model:                model,
		foodPerSettlerPerDay: foodPerSettlerPerDay,
		clock:                clock,
	}
}

// Handle executes the GetColonyOverview query
func (h *GetColonyOverviewHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetColonyOverviewQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetColonyOverviewQuery")
	}

	now := h.clock.Now()
	response := &GetColonyOverviewResponse{}

	err := h.uow.DoReadOnly(ctx, func(ctx context.Context) error {
		col, err := h.resolver.Resolve(ctx, query.ColonyID, query.UserID, query.ServerID)
		if err != nil {
			return err
		}
		response.Colony = types.NewColonyView(col)

		members, err := h.settlers.FindByColony(ctx, col.ID())
		if err != nil {
			return fmt.Errorf("failed to load settlers: %w", err)
		}
		response.Settlers = nil
		for _, s := range members {
			if s.IsCandidate() {
				continue
			}
			h.model.UpdateEnergy(s, now)
			response.Settlers = append(response.Settlers, settlerTypes.NewSettlerView(s))
		}

		inv, err := h.inventories.FindByColony(ctx, col.ID())
		if err != nil {
			return fmt.Errorf("failed to load inventory: %w", err)
		}
		response.Inventory = inv.Items()
		response.Summary = inv.Summarize(col.SettlerCount(), h.foodPerSettlerPerDay)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
