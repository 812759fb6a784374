package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopifyPulse/domain"
)

type InventoryRepository struct {
	DB *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{
		DB: db,
	}
}

// Upsert refreshes the latest stock signal per SKU.
func (r *InventoryRepository) Upsert(ctx context.Context, levels []domain.InventoryLevel) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if len(levels) == 0 {
		return nil
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}, {Name: "sku"}},
			DoUpdates: clause.AssignmentColumns([]string{"product_name", "units_on_hand", "days_of_stock", "sell_through_rate", "updated_at"}),
		}).
		Create(&levels).Error
	if err != nil {
		return fmt.Errorf("failed to upsert inventory levels: %w", err)
	}

	return nil
}

func (r *InventoryRepository) FindByStore(ctx context.Context, storeID uint) ([]domain.InventoryLevel, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var levels []domain.InventoryLevel

	err := r.DB.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("sku ASC").
		Find(&levels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory levels: %w", err)
	}

	return levels, nil
}
