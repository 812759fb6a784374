package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopifyPulse/domain"
)

type CohortRepository struct {
	DB *gorm.DB
}

func NewCohortRepository(db *gorm.DB) *CohortRepository {
	return &CohortRepository{
		DB: db,
	}
}

// Upsert replaces the counts for a store's recency buckets.
func (r *CohortRepository) Upsert(ctx context.Context, cohorts []domain.CustomerCohort) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if len(cohorts) == 0 {
		return nil
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}, {Name: "recency_bucket"}},
			DoUpdates: clause.AssignmentColumns([]string{"customers", "avg_order_value", "updated_at"}),
		}).
		Create(&cohorts).Error
	if err != nil {
		return fmt.Errorf("failed to upsert customer cohorts: %w", err)
	}

	return nil
}

func (r *CohortRepository) FindByStore(ctx context.Context, storeID uint) ([]domain.CustomerCohort, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var cohorts []domain.CustomerCohort

	err := r.DB.WithContext(ctx).
		Where("store_id = ?", storeID).
		Find(&cohorts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find customer cohorts: %w", err)
	}

	return cohorts, nil
}
