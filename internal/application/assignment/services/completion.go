package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/andrescamacho/colony-go/internal/adapters/metrics"
	"github.com/andrescamacho/colony-go/internal/application/common"
	colonyServices "github.com/andrescamacho/colony-go/internal/application/colony/services"
	settlerServices "github.com/andrescamacho/colony-go/internal/application/settler/services"
	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/catalog"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// CompletedAssignment summarizes one assignment resolved by a completion run
type CompletedAssignment struct {
	AssignmentID   string
	Name           string
	Type           assignment.Type
	SettlerID      string
	CompletedAt    time.Time
	Transferred    map[string]int
	Kept           map[string]int
	Lost           map[string]int
	SettlerFoundID string
}

// CompletionResult is the outcome of resolving a colony's due assignments
type CompletionResult struct {
	ColonyID  string
	Completed []CompletedAssignment
}

// CompletionService resolves due assignments of one colony in a single unit
// of work: the assignment, its settler, the colony inventory, discovered
// settlers, explored tiles and the colony log commit together or not at all.
type CompletionService struct {
	uow         common.UnitOfWork
	colonies    colony.Repository
	inventories colony.InventoryRepository
	settlers    settler.Repository
	assignments assignment.Repository
	tasks       catalog.Tasks
	model       *settler.ResourceModel
	recruiter   *settlerServices.Recruiter
	roller      assignment.Roller
	surveyor    *colonyServices.Surveyor
}

func NewCompletionService(
	uow common.UnitOfWork,
	colonies colony.Repository,
	inventories colony.InventoryRepository,
	settlers settler.Repository,
	assignments assignment.Repository,
	tasks catalog.Tasks,
	model *settler.ResourceModel,
	recruiter *settlerServices.Recruiter,
	surveyor *colonyServices.Surveyor,
) *CompletionService {
	return &CompletionService{
		uow:         uow,
		colonies:    colonies,
		inventories: inventories,
		settlers:    settlers,
		assignments: assignments,
		tasks:       tasks,
		model:       model,
		recruiter:   recruiter,
		roller:      recruiter,
		surveyor:    surveyor,
	}
}

// WithRoller replaces the discovery draw source, which defaults to the recruiter
func (s *CompletionService) WithRoller(r assignment.Roller) *CompletionService {
	s.roller = r
	return s
}

type pendingLog struct {
	logType string
	message string
	meta    map[string]interface{}
	at      time.Time
}

// CompleteDue completes every in-progress assignment of the colony whose
// completion time is <= now, oldest first
func (s *CompletionService) CompleteDue(ctx context.Context, colonyID string, now time.Time) (*CompletionResult, error) {
	logger := common.LoggerFromContext(ctx)
	result := &CompletionResult{ColonyID: colonyID}

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		result.Completed = nil

		due, err := s.assignments.FindDue(ctx, colonyID, now)
		if err != nil {
			return fmt.Errorf("failed to find due assignments: %w", err)
		}
		if len(due) == 0 {
			return nil
		}

		col, err := s.colonies.FindByID(ctx, colonyID)
		if err != nil {
			return err
		}
		inv, err := s.inventories.FindByColony(ctx, colonyID)
		if err != nil {
			return fmt.Errorf("failed to load inventory: %w", err)
		}

		var logs []pendingLog
		for _, a := range due {
			completed, entries, err := s.completeOne(ctx, col, inv, a, now)
			if err != nil {
				return fmt.Errorf("failed to complete assignment %s: %w", a.ID(), err)
			}
			result.Completed = append(result.Completed, completed)
			logs = append(logs, entries...)
		}

		if err := s.inventories.Save(ctx, inv); err != nil {
			return fmt.Errorf("failed to save inventory: %w", err)
		}
		for _, l := range logs {
			col.AddLogEntry(l.logType, l.message, l.meta, l.at)
		}
		if err := s.colonies.Save(ctx, col); err != nil {
			return fmt.Errorf("failed to save colony: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, c := range result.Completed {
		metrics.RecordAssignmentCompleted(string(c.Type))
		for itemID, qty := range c.Lost {
			metrics.RecordItemsLost(itemID, qty)
		}
		if c.SettlerFoundID != "" {
			metrics.RecordSettlerDiscovered(string(c.Type))
		}
	}
	if len(result.Completed) > 0 {
		logger.Log("INFO", "Completed due assignments", map[string]interface{}{
			"colony_id": colonyID,
			"completed": len(result.Completed),
		})
	}
	return result, nil
}

func (s *CompletionService) completeOne(
	ctx context.Context,
	col *colony.Colony,
	inv *colony.Inventory,
	a *assignment.Assignment,
	now time.Time,
) (CompletedAssignment, []pendingLog, error) {
	logger := common.LoggerFromContext(ctx)

	if err := a.Complete(); err != nil {
		return CompletedAssignment{}, nil, err
	}
	completedAt := now
	if a.CompletedAt() != nil {
		completedAt = *a.CompletedAt()
	}

	out := CompletedAssignment{
		AssignmentID: a.ID(),
		Name:         a.Name(),
		Type:         a.Type(),
		SettlerID:    a.SettlerID(),
		CompletedAt:  completedAt,
		Transferred:  map[string]int{},
		Kept:         map[string]int{},
		Lost:         map[string]int{},
	}
	var logs []pendingLog

	st, err := s.settlers.FindByID(ctx, a.SettlerID())
	switch {
	case errors.Is(err, shared.ErrSettlerNotFound):
		logger.Log("WARNING", "Assignment settler no longer exists, rewards dropped", map[string]interface{}{
			"assignment_id": a.ID(),
			"settler_id":    a.SettlerID(),
		})
		st = nil
	case err != nil:
		return out, nil, err
	}

	if st != nil {
		s.model.ChangeStatus(st, settler.StatusIdle, completedAt)

		if a.HasRewards() {
			rewards, err := s.model.GiveRewards(st, a.PlannedRewards())
			if err != nil {
				return out, nil, err
			}
			if rewards.HasOverflow() {
				out.Lost = rewards.Overflow
				logs = append(logs, pendingLog{
					logType: colony.LogLostItems,
					message: fmt.Sprintf("%s could not carry %s", st.Name(), describeItems(rewards.Overflow)),
					meta:    map[string]interface{}{"settler_id": st.ID(), "items": rewards.Overflow},
					at:      completedAt,
				})
			}

			transfer, err := s.model.TransferItemsToColony(st, inv, col.MaxInventory())
			if err != nil {
				return out, nil, err
			}
			for _, c := range transfer.Transferred {
				out.Transferred[c.ItemID] += c.Quantity
			}
			for _, c := range transfer.Remaining {
				out.Kept[c.ItemID] += c.Quantity
			}
		}

		if err := s.settlers.Save(ctx, st); err != nil {
			return out, nil, fmt.Errorf("failed to save settler: %w", err)
		}
	}

	if found, err := s.rollDiscovery(ctx, col, a, completedAt); err != nil {
		return out, nil, err
	} else if found != nil {
		out.SettlerFoundID = found.ID()
		logs = append(logs, pendingLog{
			logType: colony.LogSettlerFound,
			message: fmt.Sprintf("%s was found during %s", found.Name(), a.Name()),
			meta:    map[string]interface{}{"settler_id": found.ID(), "assignment_id": a.ID()},
			at:      completedAt,
		})
	}

	if a.Type() == assignment.TypeExploration && a.Location() != nil {
		if _, err := s.surveyor.Explore(ctx, col.ID(), *a.Location(), completedAt); err != nil {
			return out, nil, err
		}
	}

	if err := s.assignments.Save(ctx, a); err != nil {
		return out, nil, fmt.Errorf("failed to save assignment: %w", err)
	}

	logs = append(logs, pendingLog{
		logType: colony.LogAssignmentCompleted,
		message: fmt.Sprintf("%s completed", a.Name()),
		meta: map[string]interface{}{
			"assignment_id": a.ID(),
			"settler_id":    a.SettlerID(),
			"rewards":       out.Transferred,
		},
		at: completedAt,
	})
	return out, logs, nil
}

// rollDiscovery draws once against the discovery chance and, on success,
// adds a new settler to the colony
func (s *CompletionService) rollDiscovery(ctx context.Context, col *colony.Colony, a *assignment.Assignment, at time.Time) (*settler.Settler, error) {
	var brackets []catalog.DiscoveryBracket
	if a.TaskID() != "" {
		if def, err := s.tasks.Task(a.TaskID()); err == nil {
			brackets = def.SettlerDiscovery
		}
	}

	chance := assignment.DiscoveryChance(a.Type(), brackets, col.SettlerCount())
	if !assignment.RollDiscovery(chance, s.roller) {
		return nil, nil
	}

	found, err := s.recruiter.Recruit(col.ID(), at)
	if err != nil {
		return nil, fmt.Errorf("failed to generate settler: %w", err)
	}
	if err := s.settlers.Add(ctx, found); err != nil {
		return nil, fmt.Errorf("failed to add settler: %w", err)
	}
	col.AddSettler(found.ID())
	a.RecordSettlerFound(found.ID())
	return found, nil
}

// describeItems renders {"stone": 4} as "4 stone"
func describeItems(items map[string]int) string {
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d %s", items[id], id))
	}
	return strings.Join(parts, ", ")
}
