package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colony-go/internal/application/assignment/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

type (
	InformAssignmentCommand  = types.InformAssignmentCommand
	InformAssignmentResponse = types.InformAssignmentResponse
)

// InformAssignmentHandler marks a completed assignment as seen by the player
type InformAssignmentHandler struct {
	uow         common.UnitOfWork
	assignments assignment.Repository
}

// NewInformAssignmentHandler creates a new InformAssignmentHandler
func NewInformAssignmentHandler(uow common.UnitOfWork, assignments assignment.Repository) *InformAssignmentHandler {
	return &InformAssignmentHandler{
		uow:         uow,
		assignments: assignments,
	}
}

// Handle executes the InformAssignment command
func (h *InformAssignmentHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*InformAssignmentCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *InformAssignmentCommand")
	}
	if cmd.AssignmentID == "" {
		return nil, shared.NewValidationError("assignment_id", "cannot be empty")
	}

	var response *InformAssignmentResponse
	err := h.uow.Do(ctx, func(ctx context.Context) error {
		a, err := h.assignments.FindByID(ctx, cmd.AssignmentID)
		if err != nil {
			return err
		}
		if err := a.Inform(); err != nil {
			return err
		}
		if err := h.assignments.Save(ctx, a); err != nil {
			return fmt.Errorf("failed to save assignment: %w", err)
		}
		response = &InformAssignmentResponse{ID: a.ID(), State: string(a.State())}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
