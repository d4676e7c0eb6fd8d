package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/colony-go/internal/adapters/metrics"
	"github.com/andrescamacho/colony-go/internal/application/assignment/services"
	"github.com/andrescamacho/colony-go/internal/application/assignment/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
	colonyServices "github.com/andrescamacho/colony-go/internal/application/colony/services"
	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/catalog"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/pkg/utils"
)

// ExplorationLegDuration is the time to explore a tile one ring away from the homestead
const ExplorationLegDuration = 30 * time.Minute

type StartExplorationCommand = types.StartExplorationCommand

// StartExplorationHandler creates an in-progress exploration of one map tile
type StartExplorationHandler struct {
	uow      common.UnitOfWork
	colonies colony.Repository
	settlers settler.Repository
	terrains catalog.Terrains
	surveyor *colonyServices.Surveyor
	starter  *services.Starter
	clock    shared.Clock
}

// NewStartExplorationHandler creates a new StartExplorationHandler
func NewStartExplorationHandler(
	uow common.UnitOfWork,
	colonies colony.Repository,
	settlers settler.Repository,
	terrains catalog.Terrains,
	surveyor *colonyServices.Surveyor,
	starter *services.Starter,
	clock shared.Clock,
) *StartExplorationHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &StartExplorationHandler{
		uow:      uow,
		colonies: colonies,
		settlers: settlers,
		terrains: terrains,
		surveyor: surveyor,
		starter:  starter,
		clock:    clock,
	}
}

// Handle executes the StartExploration command
func (h *StartExplorationHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*StartExplorationCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *StartExplorationCommand")
	}
	if err := validateColonySettler(cmd.ColonyID, cmd.SettlerID); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	loc := shared.NewLocation(cmd.X, cmd.Y)
	var started *assignment.Assignment

	err := h.uow.Do(ctx, func(ctx context.Context) error {
		col, s, err := loadColonySettler(ctx, h.colonies, h.settlers, cmd.ColonyID, cmd.SettlerID)
		if err != nil {
			return err
		}

		tile, err := h.surveyor.Tile(ctx, col.ID(), loc)
		if err != nil {
			return err
		}
		if tile.IsExplored() {
			return shared.NewDomainError(shared.ErrTileAlreadyExplored, "tile %s", loc)
		}

		var loot map[string]int
		if def, err := h.terrains.Terrain(tile.Terrain()); err == nil {
			loot = def.Loot
		}

		distance := loc.ChebyshevDistance(col.Placement().Location)
		if distance < 1 {
			distance = 1
		}
		duration := ExplorationLegDuration * time.Duration(distance)

		a, err := assignment.New(
			utils.GenerateID("assignment"),
			col.ID(),
			assignment.TypeExploration,
			fmt.Sprintf("Explore %s at %s", tile.Terrain(), loc),
			duration.Milliseconds(),
			loot,
			&loc,
			now,
		)
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
