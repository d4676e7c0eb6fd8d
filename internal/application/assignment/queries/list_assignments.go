package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colony-go/internal/application/assignment/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

type (
	ListAssignmentsQuery    = types.ListAssignmentsQuery
	ListAssignmentsResponse = types.ListAssignmentsResponse
)

// ListAssignmentsHandler lists a colony's assignments
type ListAssignmentsHandler struct {
	uow         common.UnitOfWork
	assignments assignment.Repository
}

func NewListAssignmentsHandler(uow common.UnitOfWork, assignments assignment.Repository) *ListAssignmentsHandler {
	return &ListAssignmentsHandler{uow: uow, assignments: assignments}
}

// Handle executes the ListAssignments query
func (h *ListAssignmentsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListAssignmentsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListAssignmentsQuery")
	}
	if query.ColonyID == "" {
		return nil, shared.NewValidationError("colony_id", "cannot be empty")
	}

	response := &ListAssignmentsResponse{}
	err := h.uow.DoReadOnly(ctx, func(ctx context.Context) error {
		all, err := h.assignments.FindByColony(ctx, query.ColonyID)
		if err != nil {
			return fmt.Errorf("failed to list assignments: %w", err)
		}
		for _, a := range all {
			if query.State != "" && string(a.State()) != query.State {
				continue
			}
			response.Assignments = append(response.Assignments, types.NewAssignmentView(a))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
