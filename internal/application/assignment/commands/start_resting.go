package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/colony-go/internal/adapters/metrics"
	"github.com/andrescamacho/colony-go/internal/application/assignment/services"
	"github.com/andrescamacho/colony-go/internal/application/assignment/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/pkg/utils"
)

// DefaultRestDuration is used when a rest command names no duration
const DefaultRestDuration = time.Hour

type StartRestingCommand = types.StartRestingCommand

// StartRestingHandler puts an idle settler to rest
type StartRestingHandler struct {
	uow      common.UnitOfWork
	colonies colony.Repository
	settlers settler.Repository
	starter  *services.Starter
	clock    shared.Clock
}

// NewStartRestingHandler creates a new StartRestingHandler
func NewStartRestingHandler(
	uow common.UnitOfWork,
	colonies colony.Repository,
	settlers settler.Repository,
	starter *services.Starter,
	clock shared.Clock,
) *StartRestingHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &StartRestingHandler{
		uow:      uow,
		colonies: colonies,
		settlers: settlers,
		starter:  starter,
		clock:    clock,
	}
}

// Handle executes the StartResting command
func (h *StartRestingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*StartRestingCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *StartRestingCommand")
	}
	if err := validateColonySettler(cmd.ColonyID, cmd.SettlerID); err != nil {
		return nil, err
	}
	duration := cmd.Duration
	if duration == 0 {
		duration = DefaultRestDuration
	}
	if duration < 0 {
		return nil, shared.NewValidationError("duration", "must be positive")
	}

	now := h.clock.Now()
	var started *assignment.Assignment

	err := h.uow.Do(ctx, func(ctx context.Context) error {
		col, s, err := loadColonySettler(ctx, h.colonies, h.settlers, cmd.ColonyID, cmd.SettlerID)
		if err != nil {
			return err
		}

		a, err := assignment.New(utils.GenerateID("assignment"), col.ID(), assignment.TypeResting, "Resting", duration.Milliseconds(), nil, nil, now)
		if err != nil {
			return err
		}
		if err := h.starter.Begin(ctx, a, s, true, now); err != nil {
			return err
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
