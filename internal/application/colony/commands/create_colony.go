package commands

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/andrescamacho/colony-go/internal/adapters/metrics"
	"github.com/andrescamacho/colony-go/internal/application/colony/services"
	"github.com/andrescamacho/colony-go/internal/application/colony/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/internal/domain/spiral"
	"github.com/andrescamacho/colony-go/pkg/utils"
)

type (
	CreateColonyCommand  = types.CreateColonyCommand
	CreateColonyResponse = types.CreateColonyResponse
)

// PlacementSettings are the configured defaults for colony placement
type PlacementSettings struct {
	StepMultiplier int
	MaxRetries     int
	Backoff        time.Duration
	MaxInventory   int
}

// CreateColonyHandler founds a colony at the next free spiral index of its
// server. Each attempt draws a fresh index in its own committed unit of
// work, so a rolled back insert never hands the same index out twice.
type CreateColonyHandler struct {
	uow         common.UnitOfWork
	colonies    colony.Repository
	inventories colony.InventoryRepository
	counters    spiral.CounterRepository
	surveyor    *services.Surveyor
	settings    PlacementSettings
	clock       shared.Clock
}

// NewCreateColonyHandler creates a new CreateColonyHandler
func NewCreateColonyHandler(
	uow common.UnitOfWork,
	colonies colony.Repository,
	inventories colony.InventoryRepository,
	counters spiral.CounterRepository,
	surveyor *services.Surveyor,
	settings PlacementSettings,
	clock shared.Clock,
) *CreateColonyHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if settings.StepMultiplier < 1 {
		settings.StepMultiplier = 1
	}
	if settings.MaxRetries < 1 {
		settings.MaxRetries = 1
	}
	return &CreateColonyHandler{
		uow:         uow,
		colonies:    colonies,
		inventories: inventories,
		counters:    counters,
		surveyor:    surveyor,
		settings:    settings,
		clock:       clock,
	}
}

// Handle executes the CreateColony command
func (h *CreateColonyHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CreateColonyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateColonyCommand")
	}
	if cmd.UserID == "" {
		return nil, shared.NewValidationError("user_id", "cannot be empty")
	}
	if cmd.ServerID == "" {
		return nil, shared.NewValidationError("server_id", "cannot be empty")
	}
	if cmd.StepMultiplier < 0 || cmd.MaxRetries < 0 {
		return nil, shared.NewValidationError("placement", "step multiplier and retries cannot be negative")
	}

	step := cmd.StepMultiplier
	if step == 0 {
		step = h.settings.StepMultiplier
	}
	maxRetries := cmd.MaxRetries
	if maxRetries == 0 {
		maxRetries = h.settings.MaxRetries
	}
	name := cmd.Name
	if name == "" {
		name = "New Colony"
	}

	logger := common.LoggerFromContext(ctx)

	for attempt := 1; attempt <= maxRetries; attempt++ {
		var index int
		err := h.uow.Do(ctx, func(ctx context.Context) error {
			var err error
			index, err = h.counters.NextIndex(ctx, cmd.ServerID)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to draw spiral index: %w", err)
		}

		pos, err := spiral.LocationFromIndex(index, step)
		if err != nil {
			return nil, err
		}

		created, err := h.found(ctx, cmd, name, pos)
		if errors.Is(err, shared.ErrDuplicateIndex) {
			metrics.RecordPlacementCollision(cmd.ServerID)
			logger.Log("WARNING", "Spiral index already taken, retrying", map[string]interface{}{
				"server_id":    cmd.ServerID,
				"spiral_index": index,
				"attempt":      attempt,
			})
			if attempt < maxRetries {
				h.clock.Sleep(h.backoff(attempt))
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		metrics.RecordColonyCreated(attempt)
		logger.Log("INFO", "Colony founded", map[string]interface{}{
			"colony_id":    created.ID(),
			"server_id":    cmd.ServerID,
			"spiral_index": index,
			"location":     pos.Location.String(),
		})
		return &CreateColonyResponse{Colony: types.NewColonyView(created), Attempts: attempt}, nil
	}

	return nil, shared.NewDomainError(shared.ErrPlacementExhausted, "server %s after %d attempts", cmd.ServerID, maxRetries)
}

// found inserts the colony, its empty inventory and its homestead tiles in
// one unit of work
func (h *CreateColonyHandler) found(ctx context.Context, cmd *CreateColonyCommand, name string, pos spiral.Position) (*colony.Colony, error) {
	now := h.clock.Now()
	var created *colony.Colony

	err := h.uow.Do(ctx, func(ctx context.Context) error {
		existing, err := h.colonies.FindByUserAndServer(ctx, cmd.UserID, cmd.ServerID)
		if err != nil {
			return fmt.Errorf("failed to check existing colony: %w", err)
		}
		if existing != nil {
			return shared.NewDomainError(shared.ErrColonyAlreadyExists, "user %s on server %s", cmd.UserID, cmd.ServerID)
		}

		placement := colony.Placement{
			Location:  pos.Location,
			Layer:     pos.Layer,
			Position:  pos.PositionInLayer,
			Direction: pos.Direction,
			Index:     pos.Index,
		}
		c, err := colony.NewColony(utils.GenerateID("colony"), cmd.UserID, cmd.ServerID, name, cmd.ServerType, cmd.ServerName, h.settings.MaxInventory, placement, now)
		if err != nil {
			return err
		}
		if err := h.colonies.Create(ctx, c); err != nil {
			return err
		}
		if err := h.inventories.Save(ctx, colony.NewInventory(c.ID())); err != nil {
			return fmt.Errorf("failed to create inventory: %w", err)
		}
		if _, err := h.surveyor.Explore(ctx, c.ID(), pos.Location, now); err != nil {
			return err
		}
		created = c
		return nil
	})
	return created, err
}

// backoff grows linearly with the attempt and adds up to one step of jitter
func (h *CreateColonyHandler) backoff(attempt int) time.Duration {
	base := h.settings.Backoff
	if base <= 0 {
		return 0
	}
	return base*time.Duration(attempt) + time.Duration(rand.Int64N(int64(base)))
}
