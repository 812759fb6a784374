package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shopifyPulse/domain"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{
		DB: db,
	}
}

// ReplaceGenerated swaps out the rule-generated recommendations for a
// store. Dismissed and implemented rows are left untouched so user
// actions survive regeneration.
func (r *RecommendationRepository) ReplaceGenerated(ctx context.Context, storeID uint, recs []domain.Recommendation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("store_id = ? AND generated_by = ? AND dismissed = false AND is_implemented = false", storeID, "rule").
			Delete(&domain.Recommendation{}).Error
		if err != nil {
			return err
		}

		if len(recs) == 0 {
			return nil
		}
		return tx.CreateInBatches(recs, 50).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace recommendations: %w", err)
	}

	return nil
}

func (r *RecommendationRepository) FindByStore(ctx context.Context, storeID uint, includeDismissed bool) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Where("store_id = ?", storeID)
	if !includeDismissed {
		query = query.Where("dismissed = false")
	}

	var recs []domain.Recommendation
	err := query.
		Order("impact_score DESC, created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recommendations: %w", err)
	}

	return recs, nil
}

func (r *RecommendationRepository) FindByID(ctx context.Context, id string) (domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Recommendation{}, fmt.Errorf("context error: %w", err)
	}

	var rec domain.Recommendation

	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recommendation{}, errors.New("recommendation not found")
		}
		return domain.Recommendation{}, fmt.Errorf("failed to find recommendation: %w", err)
	}

	return rec, nil
}

func (r *RecommendationRepository) MarkDismissed(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.Recommendation{}).
		Where("id = ?", id).
		Update("dismissed", true)
	if result.Error != nil {
		return fmt.Errorf("failed to dismiss recommendation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("recommendation not found")
	}

	return nil
}

func (r *RecommendationRepository) MarkImplemented(ctx context.Context, id string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.Recommendation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_implemented": true,
			"implemented_at": at,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark recommendation implemented: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("recommendation not found")
	}

	return nil
}
