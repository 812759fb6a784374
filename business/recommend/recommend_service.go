package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"shopifyPulse/business/insight"
	"shopifyPulse/domain"
	"shopifyPulse/pkg/logger"
)

// RecommendationRepository contract interface
type RecommendationRepository interface {
	ReplaceGenerated(ctx context.Context, storeID uint, recs []domain.Recommendation) error
	FindByStore(ctx context.Context, storeID uint, includeDismissed bool) ([]domain.Recommendation, error)
	FindByID(ctx context.Context, id string) (domain.Recommendation, error)
	MarkDismissed(ctx context.Context, id string) error
	MarkImplemented(ctx context.Context, id string, at time.Time) error
}

// SnapshotProvider supplies the validated metrics the engine scores.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, storeID uint, period string) (*insight.MetricSnapshot, insight.BenchmarkSet, error)
}

// RecommendationCache contract interface. A nil cache disables caching.
type RecommendationCache interface {
	Get(ctx context.Context, key string) ([]domain.Recommendation, bool, error)
	Set(ctx context.Context, key string, recs []domain.Recommendation) error
	InvalidateStore(ctx context.Context, storeID uint) error
}

const alertLimit = 5

type recommendService struct {
	engine    *insight.Engine
	snapshots SnapshotProvider
	recoRepo  RecommendationRepository
	cache     RecommendationCache

	now func() time.Time
}

func NewRecommendService(
	engine *insight.Engine,
	snapshots SnapshotProvider,
	recoRepo RecommendationRepository,
	cache RecommendationCache,
) *recommendService {
	return &recommendService{
		engine:    engine,
		snapshots: snapshots,
		recoRepo:  recoRepo,
		cache:     cache,
		now:       time.Now,
	}
}

// Generate runs the scoring engine over a fresh snapshot and replaces
// the store's previously generated recommendations with the result.
// Dismissed and implemented entries survive regeneration.
func (s *recommendService) Generate(ctx context.Context, storeID uint, period string, limit int) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	cacheKey := fmt.Sprintf("recommendations:%d:%s:%d", storeID, period, limit)
	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, cacheKey)
		if err != nil {
			logger.Warn("recommendation cache read failed", "store_id", storeID, "error", err)
		} else if hit {
			return cached, nil
		}
	}

	snap, benchmarks, err := s.snapshots.Snapshot(ctx, storeID, period)
	if err != nil {
		return nil, err
	}

	ranked, err := s.engine.Generate(ctx, snap, benchmarks, limit)
	if err != nil {
		logger.Error("recommendation engine failed", "store_id", storeID, "error", err)
		return nil, fmt.Errorf("failed to generate recommendations: %w", err)
	}

	recs := make([]domain.Recommendation, 0, len(ranked))
	for _, r := range ranked {
		recs = append(recs, toDomain(storeID, r, s.now()))
	}

	if err := s.recoRepo.ReplaceGenerated(ctx, storeID, recs); err != nil {
		logger.Error("failed to persist recommendations", "store_id", storeID, "error", err)
		return nil, fmt.Errorf("failed to persist recommendations: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, recs); err != nil {
			logger.Warn("recommendation cache write failed", "store_id", storeID, "error", err)
		}
	}

	logger.Info("recommendations generated", "store_id", storeID, "count", len(recs))
	return recs, nil
}

// List returns the persisted recommendations for a store, newest ranking
// first, without the dismissed ones.
func (s *recommendService) List(ctx context.Context, storeID uint) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	return s.recoRepo.FindByStore(ctx, storeID, false)
}

func (s *recommendService) Dismiss(ctx context.Context, id string) error {
	rec, err := s.recoRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("recommendation not found", "id", id, "error", err)
		return err
	}

	if err := s.recoRepo.MarkDismissed(ctx, id); err != nil {
		logger.Error("failed to dismiss recommendation", "id", id, "error", err)
		return fmt.Errorf("failed to dismiss recommendation: %w", err)
	}

	s.invalidate(ctx, rec.StoreID)
	return nil
}

func (s *recommendService) Implement(ctx context.Context, id string) error {
	rec, err := s.recoRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("recommendation not found", "id", id, "error", err)
		return err
	}

	if err := s.recoRepo.MarkImplemented(ctx, id, s.now()); err != nil {
		logger.Error("failed to mark recommendation implemented", "id", id, "error", err)
		return fmt.Errorf("failed to mark recommendation implemented: %w", err)
	}

	s.invalidate(ctx, rec.StoreID)
	return nil
}

// Alerts maps the store's highest-priority recommendations to dashboard
// alerts. Critical items surface as warnings, high ones as opportunities.
func (s *recommendService) Alerts(ctx context.Context, storeID uint) ([]domain.Alert, error) {
	recs, err := s.Generate(ctx, storeID, "30d", alertLimit)
	if err != nil {
		return nil, err
	}

	alerts := make([]domain.Alert, 0, len(recs))
	for _, rec := range recs {
		if rec.Priority != string(insight.PriorityCritical) && rec.Priority != string(insight.PriorityHigh) {
			continue
		}

		alertType := "opportunity"
		if rec.Priority == string(insight.PriorityCritical) {
			alertType = "warning"
		}

		suggestion := ""
		if len(rec.Steps) > 0 {
			suggestion = rec.Steps[0]
		}

		alerts = append(alerts, domain.Alert{
			ID:               rec.ID,
			Type:             alertType,
			Title:            rec.Title,
			Message:          rec.Description,
			Impact:           rec.Priority,
			Suggestion:       suggestion,
			PotentialRevenue: rec.PotentialRevenue,
			CreatedAt:        rec.CreatedAt,
		})
	}
	return alerts, nil
}

func (s *recommendService) invalidate(ctx context.Context, storeID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateStore(ctx, storeID); err != nil {
		logger.Warn("recommendation cache invalidation failed", "store_id", storeID, "error", err)
	}
}

func toDomain(storeID uint, r insight.ScoredRecommendation, createdAt time.Time) domain.Recommendation {
	evidence := make(datatypes.JSONMap, len(r.Evidence))
	for k, v := range r.Evidence {
		evidence[k] = v
	}

	return domain.Recommendation{
		ID:                 uuid.NewString(),
		StoreID:            storeID,
		Title:              r.Title,
		Description:        r.Description,
		Category:           string(r.Category),
		Priority:           string(r.Priority),
		ImpactScore:        r.ImpactScore,
		EffortScore:        r.EffortScore,
		Confidence:         r.Confidence,
		PotentialRevenue:   r.PotentialRevenue,
		ImplementationTime: r.ImplementationTime,
		Steps:              datatypes.NewJSONSlice(r.Steps),
		Evidence:           evidence,
		GeneratedBy:        "rule",
		CreatedAt:          createdAt,
	}
}
