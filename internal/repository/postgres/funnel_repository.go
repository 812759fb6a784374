package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shopifyPulse/domain"
)

type FunnelRepository struct {
	DB *gorm.DB
}

func NewFunnelRepository(db *gorm.DB) *FunnelRepository {
	return &FunnelRepository{
		DB: db,
	}
}

func (r *FunnelRepository) CreateBatch(ctx context.Context, stages []domain.FunnelStage) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if len(stages) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).CreateInBatches(stages, 100).Error; err != nil {
		return fmt.Errorf("failed to create funnel stages: %w", err)
	}

	return nil
}

func (r *FunnelRepository) FindByStoreAndRange(ctx context.Context, storeID uint, from, to time.Time) ([]domain.FunnelStage, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var stages []domain.FunnelStage

	err := r.DB.WithContext(ctx).
		Where("store_id = ? AND date >= ? AND date < ?", storeID, from, to).
		Order("date ASC, stage_order ASC").
		Find(&stages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find funnel stages: %w", err)
	}

	return stages, nil
}
