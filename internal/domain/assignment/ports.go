package assignment

import (
	"context"
	"time"
)

// Repository persists assignments. Assignments are never deleted.
type Repository interface {
	// Add inserts a new assignment; a second assignment for the same
	// (colony, task) pair fails with shared.ErrDuplicateIndex
	Add(ctx context.Context, a *Assignment) error
	FindByID(ctx context.Context, id string) (*Assignment, error)
	FindByColony(ctx context.Context, colonyID string) ([]*Assignment, error)
	FindByColonyAndTask(ctx context.Context, colonyID, taskID string) (*Assignment, error)
	// FindDue returns in-progress assignments whose completion time is <= now,
	// ordered by completion time
	FindDue(ctx context.Context, colonyID string, now time.Time) ([]*Assignment, error)
	Save(ctx context.Context, a *Assignment) error
}
