package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colony-go/internal/application/assignment/services"
	"github.com/andrescamacho/colony-go/internal/application/assignment/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

type (
	CompleteDueAssignmentsCommand  = types.CompleteDueAssignmentsCommand
	CompleteDueAssignmentsResponse = types.CompleteDueAssignmentsResponse
)

// CompleteDueAssignmentsHandler runs the completion pipeline for one colony
type CompleteDueAssignmentsHandler struct {
	completion *services.CompletionService
	clock      shared.Clock
}

// NewCompleteDueAssignmentsHandler creates a new CompleteDueAssignmentsHandler
func NewCompleteDueAssignmentsHandler(completion *services.CompletionService, clock shared.Clock) *CompleteDueAssignmentsHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CompleteDueAssignmentsHandler{
		completion: completion,
		clock:      clock,
	}
}

// Handle executes the CompleteDueAssignments command
func (h *CompleteDueAssignmentsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CompleteDueAssignmentsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CompleteDueAssignmentsCommand")
	}
	if cmd.ColonyID == "" {
		return nil, shared.NewValidationError("colony_id", "cannot be empty")
	}

	now := cmd.Now
	if now.IsZero() {
		now = h.clock.Now()
	}

	result, err := h.completion.CompleteDue(ctx, cmd.ColonyID, now)
	if err != nil {
		return nil, err
	}

	response := &CompleteDueAssignmentsResponse{ColonyID: result.ColonyID}
	for _, c := range result.Completed {
		response.Completed = append(response.Completed, types.CompletedAssignment{
			AssignmentID:   c.AssignmentID,
			Name:           c.Name,
			Type:           string(c.Type),
			SettlerID:      c.SettlerID,
			CompletedAt:    c.CompletedAt,
			Transferred:    c.Transferred,
			Kept:           c.Kept,
			Lost:           c.Lost,
			SettlerFoundID: c.SettlerFoundID,
		})
	}
	return response, nil
}
