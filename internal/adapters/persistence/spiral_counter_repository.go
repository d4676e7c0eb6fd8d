package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSpiralCounterRepository implements spiral.CounterRepository using GORM
type GormSpiralCounterRepository struct {
	db *gorm.DB
}

// NewGormSpiralCounterRepository creates a new GORM spiral counter repository
func NewGormSpiralCounterRepository(db *gorm.DB) *GormSpiralCounterRepository {
	return &GormSpiralCounterRepository{db: db}
}

// NextIndex upserts the server's counter, incrementing it when it exists,
// and returns the value it held before. Call it inside a unit of work so
// the read observes this call's own increment.
func (r *GormSpiralCounterRepository) NextIndex(ctx context.Context, serverID string) (int, error) {
	db := conn(ctx, r.db)

	seed := SpiralCounterModel{ServerID: serverID, NextIndex: 1}
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "server_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"next_index": gorm.Expr("spiral_counters.next_index + 1"),
		}),
	}).Create(&seed)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to increment spiral counter: %w", result.Error)
	}

	var stored SpiralCounterModel
	if err := db.Where("server_id = ?", serverID).First(&stored).Error; err != nil {
		return 0, fmt.Errorf("failed to read spiral counter: %w", err)
	}
	return stored.NextIndex - 1, nil
}
