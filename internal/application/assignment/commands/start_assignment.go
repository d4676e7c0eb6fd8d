package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrescamacho/colony-go/internal/adapters/metrics"
	"github.com/andrescamacho/colony-go/internal/application/assignment/services"
	"github.com/andrescamacho/colony-go/internal/application/assignment/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// Type aliases for convenience
type (
	StartAssignmentCommand  = types.StartAssignmentCommand
	StartAssignmentResponse = types.StartAssignmentResponse
)

// StartAssignmentHandler starts an available assignment with an idle settler
type StartAssignmentHandler struct {
	uow         common.UnitOfWork
	assignments assignment.Repository
	settlers    settler.Repository
	starter     *services.Starter
	clock       shared.Clock
}

// NewStartAssignmentHandler creates a new StartAssignmentHandler
func NewStartAssignmentHandler(
	uow common.UnitOfWork,
	assignments assignment.Repository,
	settlers settler.Repository,
	starter *services.Starter,
	clock shared.Clock,
) *StartAssignmentHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &StartAssignmentHandler{
		uow:         uow,
		assignments: assignments,
		settlers:    settlers,
		starter:     starter,
		clock:       clock,
	}
}

// Handle executes the StartAssignment command
func (h *StartAssignmentHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*StartAssignmentCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *StartAssignmentCommand")
	}
	if cmd.AssignmentID == "" {
		return nil, shared.NewValidationError("assignment_id", "cannot be empty")
	}
	if cmd.SettlerID == "" {
		return nil, shared.NewValidationError("settler_id", "cannot be empty")
	}

	logger := common.LoggerFromContext(ctx)
	now := h.clock.Now()
	var started *assignment.Assignment

	err := h.uow.Do(ctx, func(ctx context.Context) error {
		a, err := h.assignments.FindByID(ctx, cmd.AssignmentID)
		if err != nil {
			return err
		}
		if a.State() != assignment.StateAvailable {
			return &shared.InvalidStateError{Current: string(a.State()), Attempted: "start"}
		}

		s, err := h.settlers.FindByID(ctx, cmd.SettlerID)
		if err != nil {
			return err
		}
		if s.ColonyID() != a.ColonyID() {
			return shared.NewDomainError(shared.ErrSettlerNotInColony, "settler %s", s.ID())
		}

		if len(a.Dependencies()) > 0 {
			all, err := h.assignments.FindByColony(ctx, a.ColonyID())
			if err != nil {
				return fmt.Errorf("failed to load colony assignments: %w", err)
			}
			if missing := a.MissingDependencies(colony.Unlocks(all)); len(missing) > 0 {
				return shared.NewDomainError(shared.ErrDependencyUnmet, "requires %s", strings.Join(missing, ", "))
			}
		}

		if err := h.starter.Begin(ctx, a, s, false, now); err != nil {
			return err
		}
		started = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordAssignmentStarted(string(started.Type()))

	logger.Log("INFO", "Assignment started", map[string]interface{}{
		"assignment_id": started.ID(),
		"settler_id":    cmd.SettlerID,
		"completes_at":  started.CompletedAt(),
	})

	return &StartAssignmentResponse{Assignment: types.NewAssignmentView(started)}, nil
}
