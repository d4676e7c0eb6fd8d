package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/colony-go/internal/domain/catalog"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// traitRecord is the stored shape of a settler trait
type traitRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Target   string `json:"target"`
	Key      string `json:"key"`
	Modifier string `json:"modifier"`
}

// carryRecord is the stored shape of a carry slot
type carryRecord struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// GormSettlerRepository implements settler.Repository using GORM
type GormSettlerRepository struct {
	db *gorm.DB
}

// NewGormSettlerRepository creates a new GORM settler repository
func NewGormSettlerRepository(db *gorm.DB) *GormSettlerRepository {
	return &GormSettlerRepository{db: db}
}

// Add inserts a settler
func (r *GormSettlerRepository) Add(ctx context.Context, s *settler.Settler) error {
	model, err := r.settlerToModel(s)
	if err != nil {
		return err
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add settler: %w", err)
	}
	return nil
}

// FindByID retrieves a settler by ID
func (r *GormSettlerRepository) FindByID(ctx context.Context, id string) (*settler.Settler, error) {
	var model SettlerModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.ErrSettlerNotFound, "%s", id)
		}
		return nil, fmt.Errorf("failed to find settler: %w", result.Error)
	}
	return r.modelToSettler(&model)
}

// FindByColony lists a colony's settlers, oldest first
func (r *GormSettlerRepository) FindByColony(ctx context.Context, colonyID string) ([]*settler.Settler, error) {
	var models []SettlerModel
	result := conn(ctx, r.db).Where("colony_id = ?", colonyID).Order("created_at ASC, id ASC").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list settlers: %w", result.Error)
	}

	settlers := make([]*settler.Settler, 0, len(models))
	for i := range models {
		s, err := r.modelToSettler(&models[i])
		if err != nil {
			return nil, err
		}
		settlers = append(settlers, s)
	}
	return settlers, nil
}

// Save updates a settler unconditionally
func (r *GormSettlerRepository) Save(ctx context.Context, s *settler.Settler) error {
	model, err := r.settlerToModel(s)
	if err != nil {
		return err
	}
	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save settler: %w", err)
	}
	return nil
}

// SaveIfStatus writes the settler only while its stored status is still
// expected. Two starts racing for one idle settler cannot both win.
func (r *GormSettlerRepository) SaveIfStatus(ctx context.Context, s *settler.Settler, expected settler.Status) error {
	model, err := r.settlerToModel(s)
	if err != nil {
		return err
	}

	result := conn(ctx, r.db).
		Model(&SettlerModel{}).
		Where("id = ? AND status = ?", model.ID, string(expected)).
		Select("*").
		Omit("id", "colony_id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save settler: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.ErrSettlerNotIdle, "settler %s is no longer %s", model.ID, expected)
	}
	return nil
}

// Delete removes a settler
func (r *GormSettlerRepository) Delete(ctx context.Context, id string) error {
	if err := conn(ctx, r.db).Where("id = ?", id).Delete(&SettlerModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete settler: %w", err)
	}
	return nil
}

// CountByColony counts a colony's settlers
func (r *GormSettlerRepository) CountByColony(ctx context.Context, colonyID string) (int, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&SettlerModel{}).Where("colony_id = ?", colonyID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count settlers: %w", err)
	}
	return int(count), nil
}

func (r *GormSettlerRepository) settlerToModel(s *settler.Settler) (*SettlerModel, error) {
	d := s.ToData()

	skills, err := toJSON(d.Skills)
	if err != nil {
		return nil, err
	}

	traits := make([]traitRecord, 0, len(d.Traits))
	for _, t := range d.Traits {
		traits = append(traits, traitRecord{ID: t.ID, Name: t.Name, Target: t.Effect.Target, Key: t.Effect.Key, Modifier: t.Effect.Modifier})
	}
	traitsJSON, err := toJSON(traits)
	if err != nil {
		return nil, err
	}

	carry := make([]carryRecord, 0, len(d.Carry))
	for _, c := range d.Carry {
		carry = append(carry, carryRecord{ItemID: c.ItemID, Quantity: c.Quantity})
	}
	carryJSON, err := toJSON(carry)
	if err != nil {
		return nil, err
	}

	return &SettlerModel{
		ID:                d.ID,
		ColonyID:          d.ColonyID,
		Name:              d.Name,
		Strength:          d.Stats.Strength,
		Speed:             d.Stats.Speed,
		Intelligence:      d.Stats.Intelligence,
		Resilience:        d.Stats.Resilience,
		Skills:            skills,
		Traits:            traitsJSON,
		Status:            string(d.Status),
		Energy:            d.Energy,
		EnergyLastUpdated: d.EnergyLastUpdated.UTC(),
		Carry:             carryJSON,
		MaxCarrySlots:     d.MaxCarrySlots,
		CreatedAt:         d.CreatedAt.UTC(),
	}, nil
}

func (r *GormSettlerRepository) modelToSettler(model *SettlerModel) (*settler.Settler, error) {
	skills := map[string]int{}
	if err := fromJSON(model.Skills, &skills); err != nil {
		return nil, err
	}

	var traitRecords []traitRecord
	if err := fromJSON(model.Traits, &traitRecords); err != nil {
		return nil, err
	}
	traits := make([]settler.Trait, 0, len(traitRecords))
	for _, t := range traitRecords {
		traits = append(traits, settler.Trait{
			ID:     t.ID,
			Name:   t.Name,
			Effect: catalog.TraitEffect{Target: t.Target, Key: t.Key, Modifier: t.Modifier},
		})
	}

	var carryRecords []carryRecord
	if err := fromJSON(model.Carry, &carryRecords); err != nil {
		return nil, err
	}
	var carry []settler.CarryItem
	for _, c := range carryRecords {
		carry = append(carry, settler.CarryItem{ItemID: c.ItemID, Quantity: c.Quantity})
	}

	return settler.Reconstruct(settler.Data{
		ID:       model.ID,
		ColonyID: model.ColonyID,
		Name:     model.Name,
		Stats: settler.Stats{
			Strength:     model.Strength,
			Speed:        model.Speed,
			Intelligence: model.Intelligence,
			Resilience:   model.Resilience,
		},
		Skills:            skills,
		Traits:            traits,
		Status:            settler.Status(model.Status),
		Energy:            model.Energy,
		EnergyLastUpdated: model.EnergyLastUpdated,
		CreatedAt:         model.CreatedAt,
		Carry:             carry,
		MaxCarrySlots:     model.MaxCarrySlots,
	}), nil
}
