package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colony-go/internal/application/common"
	"github.com/andrescamacho/colony-go/internal/application/settler/types"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

type (
	ListSettlersQuery    = types.ListSettlersQuery
	ListSettlersResponse = types.ListSettlersResponse
)

// ListSettlersHandler lists settlers. Energy is projected to the current
// time without being persisted.
type ListSettlersHandler struct {
	uow      common.UnitOfWork
	settlers settler.Repository
	model    *settler.ResourceModel
	clock    shared.Clock
}

func NewListSettlersHandler(uow common.UnitOfWork, settlers settler.Repository, model *settler.ResourceModel, clock shared.Clock) *ListSettlersHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ListSettlersHandler{uow: uow, settlers: settlers, model: model, clock: clock}
}

// Handle executes the ListSettlers query
func (h *ListSettlersHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListSettlersQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListSettlersQuery")
	}
	if query.ColonyID == "" {
		return nil, shared.NewValidationError("colony_id", "cannot be empty")
	}

	now := h.clock.Now()
	response := &ListSettlersResponse{}
	err := h.uow.DoReadOnly(ctx, func(ctx context.Context) error {
		all, err := h.settlers.FindByColony(ctx, query.ColonyID)
		if err != nil {
			return fmt.Errorf("failed to list settlers: %w", err)
		}
		for _, s := range all {
			if s.IsCandidate() && !query.IncludeCandidates {
				continue
			}
			h.model.UpdateEnergy(s, now)
			response.Settlers = append(response.Settlers, types.NewSettlerView(s))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
