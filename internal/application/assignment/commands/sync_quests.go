package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colony-go/internal/application/assignment/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/catalog"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/pkg/utils"
)

type (
	SyncQuestAssignmentsCommand  = types.SyncQuestAssignmentsCommand
	SyncQuestAssignmentsResponse = types.SyncQuestAssignmentsResponse
)

// SyncQuestAssignmentsHandler creates an available assignment for every quest
// template the colony does not have yet
type SyncQuestAssignmentsHandler struct {
	uow         common.UnitOfWork
	colonies    colony.Repository
	assignments assignment.Repository
	tasks       catalog.Tasks
	clock       shared.Clock
}

// NewSyncQuestAssignmentsHandler creates a new SyncQuestAssignmentsHandler
func NewSyncQuestAssignmentsHandler(
	uow common.UnitOfWork,
	colonies colony.Repository,
	assignments assignment.Repository,
	tasks catalog.Tasks,
	clock shared.Clock,
) *SyncQuestAssignmentsHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &SyncQuestAssignmentsHandler{
		uow:         uow,
		colonies:    colonies,
		assignments: assignments,
		tasks:       tasks,
		clock:       clock,
	}
}

// Handle executes the SyncQuestAssignments command
func (h *SyncQuestAssignmentsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SyncQuestAssignmentsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SyncQuestAssignmentsCommand")
	}
	if cmd.ColonyID == "" {
		return nil, shared.NewValidationError("colony_id", "cannot be empty")
	}

	now := h.clock.Now()
	response := &SyncQuestAssignmentsResponse{}

	err := h.uow.Do(ctx, func(ctx context.Context) error {
		response.Created = nil
		if _, err := h.colonies.FindByID(ctx, cmd.ColonyID); err != nil {
			return err
		}

		for _, def := range h.tasks.Quests() {
			existing, err := h.assignments.FindByColonyAndTask(ctx, cmd.ColonyID, def.ID)
			if err != nil {
				return fmt.Errorf("failed to look up quest %s: %w", def.ID, err)
			}
			if existing != nil {
				continue
			}

			a, err := assignment.NewFromTemplate(utils.GenerateID("assignment"), cmd.ColonyID, def, now)
			if err != nil {
				return err
			}
			if err := h.assignments.Add(ctx, a); err != nil {
				return fmt.Errorf("failed to add quest %s: %w", def.ID, err)
			}
			response.Created = append(response.Created, types.NewAssignmentView(a))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(response.Created) > 0 {
		common.LoggerFromContext(ctx).Log("INFO", "Quest assignments created", map[string]interface{}{
			"colony_id": cmd.ColonyID,
			"created":   len(response.Created),
		})
	}
	return response, nil
}
