package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// logRecord is the stored shape of a colony log entry
type logRecord struct {
	Timestamp time.Time              `json:"timestamp"`
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Meta      map[string]interface{} `json:"meta,omitempty"`
}

// GormColonyRepository implements colony.Repository using GORM
type GormColonyRepository struct {
	db *gorm.DB
}

// NewGormColonyRepository creates a new GORM colony repository
func NewGormColonyRepository(db *gorm.DB) *GormColonyRepository {
	return &GormColonyRepository{db: db}
}

// Create inserts a colony. The caller checks the (user, server) pair first,
// so any unique violation here is a taken spiral index.
func (r *GormColonyRepository) Create(ctx context.Context, c *colony.Colony) error {
	model, err := r.colonyToModel(c)
	if err != nil {
		return err
	}

	result := conn(ctx, r.db).Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError(shared.ErrDuplicateIndex, "server %s index %d", model.ServerID, model.SpiralIndex)
		}
		return fmt.Errorf("failed to create colony: %w", result.Error)
	}
	return nil
}

// FindByID retrieves a colony by ID
func (r *GormColonyRepository) FindByID(ctx context.Context, id string) (*colony.Colony, error) {
	var model ColonyModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.ErrColonyNotFound, "%s", id)
		}
		return nil, fmt.Errorf("failed to find colony: %w", result.Error)
	}
	return r.modelToColony(&model)
}

// FindByUserAndServer returns nil, nil when the user has no colony on the server
func (r *GormColonyRepository) FindByUserAndServer(ctx context.Context, userID, serverID string) (*colony.Colony, error) {
	var models []ColonyModel
	result := conn(ctx, r.db).Where("user_id = ? AND server_id = ?", userID, serverID).Limit(1).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find colony: %w", result.Error)
	}
	if len(models) == 0 {
		return nil, nil
	}
	return r.modelToColony(&models[0])
}

// Save updates an existing colony
func (r *GormColonyRepository) Save(ctx context.Context, c *colony.Colony) error {
	model, err := r.colonyToModel(c)
	if err != nil {
		return err
	}
	result := conn(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save colony: %w", result.Error)
	}
	return nil
}

// ListIDs returns every colony id, oldest first
func (r *GormColonyRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	result := conn(ctx, r.db).Model(&ColonyModel{}).Order("created_at ASC, id ASC").Pluck("id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list colonies: %w", result.Error)
	}
	return ids, nil
}

func (r *GormColonyRepository) colonyToModel(c *colony.Colony) (*ColonyModel, error) {
	d := c.ToData()

	settlerIDs, err := toJSON(d.SettlerIDs)
	if err != nil {
		return nil, err
	}

	records := make([]logRecord, 0, len(d.Logs))
	for _, l := range d.Logs {
		records = append(records, logRecord{Timestamp: l.Timestamp.UTC(), Type: l.Type, Message: l.Message, Meta: l.Meta})
	}
	logs, err := toJSON(records)
	if err != nil {
		return nil, err
	}

	return &ColonyModel{
		ID:              d.ID,
		UserID:          d.UserID,
		ServerID:        d.ServerID,
		ServerType:      d.ServerType,
		ServerName:      d.ServerName,
		Name:            d.Name,
		SettlerIDs:      settlerIDs,
		MaxInventory:    d.MaxInventory,
		Logs:            logs,
		HomesteadX:      d.Placement.Location.X,
		HomesteadY:      d.Placement.Location.Y,
		SpiralLayer:     d.Placement.Layer,
		SpiralPosition:  d.Placement.Position,
		SpiralDirection: d.Placement.Direction,
		SpiralIndex:     d.Placement.Index,
		CreatedAt:       d.CreatedAt.UTC(),
	}, nil
}

func (r *GormColonyRepository) modelToColony(model *ColonyModel) (*colony.Colony, error) {
	var settlerIDs []string
	if err := fromJSON(model.SettlerIDs, &settlerIDs); err != nil {
		return nil, err
	}
	var records []logRecord
	if err := fromJSON(model.Logs, &records); err != nil {
		return nil, err
	}

	logs := make([]colony.LogEntry, 0, len(records))
	for _, rec := range records {
		logs = append(logs, colony.LogEntry{Timestamp: rec.Timestamp, Type: rec.Type, Message: rec.Message, Meta: rec.Meta})
	}

	return colony.Reconstruct(colony.Data{
		ID:           model.ID,
		UserID:       model.UserID,
		ServerID:     model.ServerID,
		ServerType:   model.ServerType,
		ServerName:   model.ServerName,
		Name:         model.Name,
		SettlerIDs:   settlerIDs,
		MaxInventory: model.MaxInventory,
		Logs:         logs,
		Placement: colony.Placement{
			Location:  shared.NewLocation(model.HomesteadX, model.HomesteadY),
			Layer:     model.SpiralLayer,
			Position:  model.SpiralPosition,
			Direction: model.SpiralDirection,
			Index:     model.SpiralIndex,
		},
		CreatedAt: model.CreatedAt,
	}), nil
}
