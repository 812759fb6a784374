package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shopifyPulse/domain"
)

type MetricRepository struct {
	DB *gorm.DB
}

func NewMetricRepository(db *gorm.DB) *MetricRepository {
	return &MetricRepository{
		DB: db,
	}
}

func (r *MetricRepository) CreateBatch(ctx context.Context, metrics []domain.StoreMetric) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if len(metrics) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).CreateInBatches(metrics, 100).Error; err != nil {
		return fmt.Errorf("failed to create store metrics: %w", err)
	}

	return nil
}

// FindByStoreAndRange returns the daily rows in [from, to), oldest first.
func (r *MetricRepository) FindByStoreAndRange(ctx context.Context, storeID uint, from, to time.Time) ([]domain.StoreMetric, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var metrics []domain.StoreMetric

	err := r.DB.WithContext(ctx).
		Where("store_id = ? AND date >= ? AND date < ?", storeID, from, to).
		Order("date ASC").
		Find(&metrics).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find store metrics: %w", err)
	}

	return metrics, nil
}
