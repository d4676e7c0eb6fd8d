package services

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// Starter moves an available assignment in-progress for a settler. Every
// start path (templated quests, exploration, resting, crafting) goes through
// it so the idle guard and energy gate are applied the same way.
type Starter struct {
	settlers    settler.Repository
	assignments assignment.Repository
	model       *settler.ResourceModel
}

func NewStarter(settlers settler.Repository, assignments assignment.Repository, model *settler.ResourceModel) *Starter {
	return &Starter{
		settlers:    settlers,
		assignments: assignments,
		model:       model,
	}
}

// Begin starts a with s at now. A new assignment (created by the caller
// in-progress flow) is inserted; an existing one is updated. Must run inside
// a unit of work.
func (st *Starter) Begin(ctx context.Context, a *assignment.Assignment, s *settler.Settler, isNew bool, now time.Time) error {
	if !s.IsIdle() {
		return shared.NewDomainError(shared.ErrSettlerNotIdle, "settler %s is %s", s.ID(), s.Status())
	}

	adj := assignment.ComputeAdjustments(s, a.Type(), a.DurationMs())
	status := a.ActivityStatus()
	hours := time.Duration(adj.AdjustedDuration * int64(time.Millisecond)).Hours()

	if !st.model.CanCompleteTask(s, status, hours, now) {
		return &shared.InsufficientEnergyError{
			Required:  st.model.EnergyRequired(status, hours),
			Available: s.Energy(),
		}
	}

	planned := assignment.ScaleRewards(a.PlannedRewards(), adj.LootMultiplier)
	if err := a.Start(s.ID(), adj, planned, now); err != nil {
		return err
	}

	st.model.ChangeStatus(s, status, now)
	if err := st.settlers.SaveIfStatus(ctx, s, settler.StatusIdle); err != nil {
		return err
	}

	if isNew {
		if err := st.assignments.Add(ctx, a); err != nil {
			return fmt.Errorf("failed to add assignment: %w", err)
		}
	} else if err := st.assignments.Save(ctx, a); err != nil {
		return fmt.Errorf("failed to save assignment: %w", err)
	}

	return nil
}
