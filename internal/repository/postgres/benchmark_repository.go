package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopifyPulse/domain"
)

type BenchmarkRepository struct {
	DB *gorm.DB
}

func NewBenchmarkRepository(db *gorm.DB) *BenchmarkRepository {
	return &BenchmarkRepository{
		DB: db,
	}
}

func (r *BenchmarkRepository) Upsert(ctx context.Context, benchmark *domain.IndustryBenchmark) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "platform"}, {Name: "tier"}},
			DoUpdates: clause.AssignmentColumns([]string{"conversion_rate", "bounce_rate", "aov", "channel_concentration", "updated_at"}),
		}).
		Create(benchmark).Error
	if err != nil {
		return fmt.Errorf("failed to upsert industry benchmark: %w", err)
	}

	return nil
}

func (r *BenchmarkRepository) FindByPlatformAndTier(ctx context.Context, platform, tier string) (domain.IndustryBenchmark, error) {
	if err := ctx.Err(); err != nil {
		return domain.IndustryBenchmark{}, fmt.Errorf("context error: %w", err)
	}

	var benchmark domain.IndustryBenchmark

	err := r.DB.WithContext(ctx).
		Where("platform = ? AND tier = ?", platform, tier).
		First(&benchmark).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IndustryBenchmark{}, errors.New("benchmark not found")
		}
		return domain.IndustryBenchmark{}, fmt.Errorf("failed to find industry benchmark: %w", err)
	}

	return benchmark, nil
}
