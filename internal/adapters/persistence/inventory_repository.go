package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/colony-go/internal/domain/colony"
)

// GormInventoryRepository implements colony.InventoryRepository using GORM.
// An inventory is stored as one row per stack and rewritten on save.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GORM inventory repository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByColony returns the colony's inventory, empty when nothing is stored
func (r *GormInventoryRepository) FindByColony(ctx context.Context, colonyID string) (*colony.Inventory, error) {
	var models []InventoryItemModel
	result := conn(ctx, r.db).Where("colony_id = ?", colonyID).Order("position ASC").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", result.Error)
	}

	items := make([]colony.Item, 0, len(models))
	for _, m := range models {
		var props map[string]interface{}
		if err := fromJSON(m.Properties, &props); err != nil {
			return nil, err
		}
		items = append(items, colony.Item{
			ItemID:     m.ItemID,
			Name:       m.Name,
			Icon:       m.Icon,
			Type:       m.Type,
			Quantity:   m.Quantity,
			Properties: props,
		})
	}
	return colony.ReconstructInventory(colonyID, items), nil
}

// Save replaces the stored stacks with the inventory's current ones
func (r *GormInventoryRepository) Save(ctx context.Context, inv *colony.Inventory) error {
	db := conn(ctx, r.db)

	if err := db.Where("colony_id = ?", inv.ColonyID()).Delete(&InventoryItemModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear inventory: %w", err)
	}

	items := inv.Items()
	if len(items) == 0 {
		return nil
	}

	models := make([]InventoryItemModel, 0, len(items))
	for i, it := range items {
		props, err := toJSON(it.Properties)
		if err != nil {
			return err
		}
		models = append(models, InventoryItemModel{
			ColonyID:   inv.ColonyID(),
			ItemID:     it.ItemID,
			Position:   i,
			Name:       it.Name,
			Icon:       it.Icon,
			Type:       it.Type,
			Quantity:   it.Quantity,
			Properties: props,
		})
	}
	if err := db.Create(&models).Error; err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	return nil
}
