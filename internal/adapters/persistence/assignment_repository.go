package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// adjustmentsRecord is the stored shape of start-time adjustments
type adjustmentsRecord struct {
	AdjustedDuration int64   `json:"adjusted_duration"`
	EffectiveSpeed   float64 `json:"effective_speed"`
	LootMultiplier   float64 `json:"loot_multiplier"`
}

// GormAssignmentRepository implements assignment.Repository using GORM
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GORM assignment repository
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Add inserts an assignment. A second one for the same (colony, task)
// returns shared.ErrDuplicateIndex.
func (r *GormAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	model, err := r.assignmentToModel(a)
	if err != nil {
		return err
	}
	result := conn(ctx, r.db).Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError(shared.ErrDuplicateIndex, "colony %s already has task %s", a.ColonyID(), a.TaskID())
		}
		return fmt.Errorf("failed to add assignment: %w", result.Error)
	}
	return nil
}

// FindByID retrieves an assignment by ID
func (r *GormAssignmentRepository) FindByID(ctx context.Context, id string) (*assignment.Assignment, error) {
	var model AssignmentModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.ErrAssignmentNotFound, "%s", id)
		}
		return nil, fmt.Errorf("failed to find assignment: %w", result.Error)
	}
	return r.modelToAssignment(&model)
}

// FindByColony lists a colony's assignments, oldest first
func (r *GormAssignmentRepository) FindByColony(ctx context.Context, colonyID string) ([]*assignment.Assignment, error) {
	var models []AssignmentModel
	result := conn(ctx, r.db).Where("colony_id = ?", colonyID).Order("created_at ASC, id ASC").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", result.Error)
	}
	return r.modelsToAssignments(models)
}

// FindByColonyAndTask returns nil, nil when the colony has no assignment for the task
func (r *GormAssignmentRepository) FindByColonyAndTask(ctx context.Context, colonyID, taskID string) (*assignment.Assignment, error) {
	var models []AssignmentModel
	result := conn(ctx, r.db).Where("colony_id = ? AND task_id = ?", colonyID, taskID).Limit(1).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find assignment: %w", result.Error)
	}
	if len(models) == 0 {
		return nil, nil
	}
	return r.modelToAssignment(&models[0])
}

// FindDue returns in-progress assignments due at now, by completion time
func (r *GormAssignmentRepository) FindDue(ctx context.Context, colonyID string, now time.Time) ([]*assignment.Assignment, error) {
	var models []AssignmentModel
	result := conn(ctx, r.db).
		Where("colony_id = ? AND state = ? AND completed_at <= ?", colonyID, string(assignment.StateInProgress), now.UTC()).
		Order("completed_at ASC, id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find due assignments: %w", result.Error)
	}
	return r.modelsToAssignments(models)
}

// Save updates an assignment
func (r *GormAssignmentRepository) Save(ctx context.Context, a *assignment.Assignment) error {
	model, err := r.assignmentToModel(a)
	if err != nil {
		return err
	}
	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save assignment: %w", err)
	}
	return nil
}

func (r *GormAssignmentRepository) modelsToAssignments(models []AssignmentModel) ([]*assignment.Assignment, error) {
	out := make([]*assignment.Assignment, 0, len(models))
	for i := range models {
		a, err := r.modelToAssignment(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *GormAssignmentRepository) assignmentToModel(a *assignment.Assignment) (*AssignmentModel, error) {
	d := a.ToData()

	rewards, err := toJSON(d.PlannedRewards)
	if err != nil {
		return nil, err
	}
	deps, err := toJSON(d.Dependencies)
	if err != nil {
		return nil, err
	}
	unlocks, err := toJSON(d.Unlocks)
	if err != nil {
		return nil, err
	}

	var adjustments string
	if d.Adjustments != nil {
		adjustments, err = toJSON(adjustmentsRecord{
			AdjustedDuration: d.Adjustments.AdjustedDuration,
			EffectiveSpeed:   d.Adjustments.EffectiveSpeed,
			LootMultiplier:   d.Adjustments.LootMultiplier,
		})
		if err != nil {
			return nil, err
		}
	}

	model := &AssignmentModel{
		ID:             d.ID,
		ColonyID:       d.ColonyID,
		Name:           d.Name,
		Type:           string(d.Type),
		State:          string(d.State),
		SettlerID:      d.SettlerID,
		StartedAt:      utcPtr(d.StartedAt),
		CompletedAt:    utcPtr(d.CompletedAt),
		DurationMs:     d.DurationMs,
		PlannedRewards: rewards,
		Adjustments:    adjustments,
		SettlerFoundID: d.SettlerFoundID,
		Dependencies:   deps,
		Unlocks:        unlocks,
		CreatedAt:      d.CreatedAt.UTC(),
	}
	if d.TaskID != "" {
		taskID := d.TaskID
		model.TaskID = &taskID
	}
	if d.Location != nil {
		x, y := d.Location.X, d.Location.Y
		model.LocationX = &x
		model.LocationY = &y
	}
	return model, nil
}

func (r *GormAssignmentRepository) modelToAssignment(model *AssignmentModel) (*assignment.Assignment, error) {
	var rewards map[string]int
	if err := fromJSON(model.PlannedRewards, &rewards); err != nil {
		return nil, err
	}
	var deps, unlocks []string
	if err := fromJSON(model.Dependencies, &deps); err != nil {
		return nil, err
	}
	if err := fromJSON(model.Unlocks, &unlocks); err != nil {
		return nil, err
	}

	var adjustments *assignment.Adjustments
	if model.Adjustments != "" {
		var rec adjustmentsRecord
		if err := fromJSON(model.Adjustments, &rec); err != nil {
			return nil, err
		}
		adjustments = &assignment.Adjustments{
			AdjustedDuration: rec.AdjustedDuration,
			EffectiveSpeed:   rec.EffectiveSpeed,
			LootMultiplier:   rec.LootMultiplier,
		}
	}

	d := assignment.Data{
		ID:             model.ID,
		ColonyID:       model.ColonyID,
		Name:           model.Name,
		Type:           assignment.Type(model.Type),
		State:          assignment.State(model.State),
		SettlerID:      model.SettlerID,
		StartedAt:      model.StartedAt,
		CompletedAt:    model.CompletedAt,
		DurationMs:     model.DurationMs,
		PlannedRewards: rewards,
		Adjustments:    adjustments,
		SettlerFoundID: model.SettlerFoundID,
		Dependencies:   deps,
		Unlocks:        unlocks,
		CreatedAt:      model.CreatedAt,
	}
	if model.TaskID != nil {
		d.TaskID = *model.TaskID
	}
	if model.LocationX != nil && model.LocationY != nil {
		loc := shared.NewLocation(*model.LocationX, *model.LocationY)
		d.Location = &loc
	}
	return assignment.Reconstruct(d), nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
