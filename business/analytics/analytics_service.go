package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"shopifyPulse/business/insight"
	"shopifyPulse/domain"
	"shopifyPulse/pkg/logger"
)

// StoreRepository contract interface
type StoreRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Store, error)
}

// MetricRepository contract interface
type MetricRepository interface {
	FindByStoreAndRange(ctx context.Context, storeID uint, from, to time.Time) ([]domain.StoreMetric, error)
}

// FunnelRepository contract interface
type FunnelRepository interface {
	FindByStoreAndRange(ctx context.Context, storeID uint, from, to time.Time) ([]domain.FunnelStage, error)
}

// CohortRepository contract interface
type CohortRepository interface {
	FindByStore(ctx context.Context, storeID uint) ([]domain.CustomerCohort, error)
}

// InventoryRepository contract interface
type InventoryRepository interface {
	FindByStore(ctx context.Context, storeID uint) ([]domain.InventoryLevel, error)
}

// BenchmarkRepository contract interface
type BenchmarkRepository interface {
	FindByPlatformAndTier(ctx context.Context, platform, tier string) (domain.IndustryBenchmark, error)
}

type analyticsService struct {
	storeRepo     StoreRepository
	metricRepo    MetricRepository
	funnelRepo    FunnelRepository
	cohortRepo    CohortRepository
	inventoryRepo InventoryRepository
	benchmarkRepo BenchmarkRepository

	now func() time.Time
}

func NewAnalyticsService(
	storeRepo StoreRepository,
	metricRepo MetricRepository,
	funnelRepo FunnelRepository,
	cohortRepo CohortRepository,
	inventoryRepo InventoryRepository,
	benchmarkRepo BenchmarkRepository,
) *analyticsService {
	return &analyticsService{
		storeRepo:     storeRepo,
		metricRepo:    metricRepo,
		funnelRepo:    funnelRepo,
		cohortRepo:    cohortRepo,
		inventoryRepo: inventoryRepo,
		benchmarkRepo: benchmarkRepo,
		now:           time.Now,
	}
}

// periodDays maps the dashboard period selector to a day count.
func periodDays(period string) (int, error) {
	switch period {
	case "", "30d":
		return 30, nil
	case "7d":
		return 7, nil
	case "90d":
		return 90, nil
	case "1y":
		return 365, nil
	}
	return 0, fmt.Errorf("unknown period %q", period)
}

func normalizePeriod(period string) string {
	if period == "" {
		return "30d"
	}
	return period
}

func (s *analyticsService) DashboardMetrics(ctx context.Context, storeID uint, period string) (*domain.DashboardMetrics, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	days, err := periodDays(period)
	if err != nil {
		return nil, err
	}

	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		logger.Error("failed to find store for dashboard", "store_id", storeID, "error", err)
		return nil, err
	}

	end := s.now()
	start := end.AddDate(0, 0, -days)
	prevStart := start.AddDate(0, 0, -days)

	rows, err := s.metricRepo.FindByStoreAndRange(ctx, storeID, start, end)
	if err != nil {
		logger.Error("failed to load store metrics", "store_id", storeID, "error", err)
		return nil, fmt.Errorf("failed to load store metrics: %w", err)
	}

	prevRows, err := s.metricRepo.FindByStoreAndRange(ctx, storeID, prevStart, start)
	if err != nil {
		logger.Error("failed to load comparison metrics", "store_id", storeID, "error", err)
		return nil, fmt.Errorf("failed to load comparison metrics: %w", err)
	}

	cur := summarize(rows)
	prev := summarize(prevRows)

	summary := domain.DashboardSummary{
		TotalRevenue:     cur.revenue,
		RevenueChange:    pctChange(cur.revenue, prev.revenue),
		TotalOrders:      cur.orders,
		OrdersChange:     pctChange(float64(cur.orders), float64(prev.orders)),
		TotalVisitors:    cur.visitors,
		VisitorsChange:   pctChange(float64(cur.visitors), float64(prev.visitors)),
		ConversionRate:   cur.conversionRate(),
		ConversionChange: pctChange(cur.conversionRate(), prev.conversionRate()),
		AOV:              cur.aov(),
		AOVChange:        pctChange(cur.aov(), prev.aov()),
	}

	trend := make([]domain.RevenuePoint, 0, len(rows))
	for _, row := range rows {
		trend = append(trend, domain.RevenuePoint{
			Date:     row.Date.Format("2006-01-02"),
			Revenue:  row.Revenue,
			Orders:   row.Orders,
			Visitors: row.UniqueVisitors,
		})
	}

	benchmark := s.benchmarkFor(ctx, store)

	out := &domain.DashboardMetrics{
		StoreID:         storeID,
		Period:          normalizePeriod(period),
		Summary:         summary,
		RevenueTrend:    trend,
		TrafficSources:  channelBreakdown(rows),
		DeviceBreakdown: deviceBreakdown(rows),
		Benchmarks: domain.BenchmarkComparison{
			ConversionRate: domain.BenchmarkEntry{Store: cur.conversionRate(), Industry: benchmark.ConversionRate},
			BounceRate:     domain.BenchmarkEntry{Store: cur.bounceRate(), Industry: benchmark.BounceRate},
			AOV:            domain.BenchmarkEntry{Store: cur.aov(), Industry: benchmark.AOV},
		},
	}

	score, err := s.healthScore(ctx, store, cur, summary.RevenueChange, benchmark)
	if err != nil {
		return nil, err
	}
	out.HealthScore = score

	return out, nil
}

func (s *analyticsService) FunnelData(ctx context.Context, storeID uint, period string) (*domain.FunnelView, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	days, err := periodDays(period)
	if err != nil {
		return nil, err
	}

	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		logger.Error("failed to find store for funnel", "store_id", storeID, "error", err)
		return nil, err
	}

	end := s.now()
	rows, err := s.funnelRepo.FindByStoreAndRange(ctx, storeID, end.AddDate(0, 0, -days), end)
	if err != nil {
		logger.Error("failed to load funnel stages", "store_id", storeID, "error", err)
		return nil, fmt.Errorf("failed to load funnel stages: %w", err)
	}

	stages := aggregateFunnel(rows)

	view := &domain.FunnelView{
		StoreID: storeID,
		Period:  normalizePeriod(period),
		Stages:  stages,
	}

	benchmark := s.benchmarkFor(ctx, store)
	view.Overall.IndustryAverage = benchmark.ConversionRate
	if len(stages) > 0 && stages[0].Visitors > 0 {
		last := stages[len(stages)-1]
		view.Overall.VisitToPurchaseRate = float64(last.Conversions) / float64(stages[0].Visitors)
	}

	return view, nil
}

// Snapshot assembles the validated metric snapshot and benchmark set
// consumed by the recommendation engine.
func (s *analyticsService) Snapshot(ctx context.Context, storeID uint, period string) (*insight.MetricSnapshot, insight.BenchmarkSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, insight.BenchmarkSet{}, fmt.Errorf("context error: %w", err)
	}

	days, err := periodDays(period)
	if err != nil {
		return nil, insight.BenchmarkSet{}, err
	}

	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		logger.Error("failed to find store for snapshot", "store_id", storeID, "error", err)
		return nil, insight.BenchmarkSet{}, err
	}

	end := s.now()
	start := end.AddDate(0, 0, -days)

	rows, err := s.metricRepo.FindByStoreAndRange(ctx, storeID, start, end)
	if err != nil {
		return nil, insight.BenchmarkSet{}, fmt.Errorf("failed to load store metrics: %w", err)
	}

	funnelRows, err := s.funnelRepo.FindByStoreAndRange(ctx, storeID, start, end)
	if err != nil {
		return nil, insight.BenchmarkSet{}, fmt.Errorf("failed to load funnel stages: %w", err)
	}

	cohorts, err := s.cohortRepo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, insight.BenchmarkSet{}, fmt.Errorf("failed to load customer cohorts: %w", err)
	}

	levels, err := s.inventoryRepo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, insight.BenchmarkSet{}, fmt.Errorf("failed to load inventory levels: %w", err)
	}

	cur := summarize(rows)

	snap := insight.MetricSnapshot{
		Period:             insight.Period{Start: start, End: end},
		Traffic:            buildTraffic(rows, cur),
		Funnel:             buildFunnel(funnelRows, cur),
		ConversionByDevice: deviceConversions(rows),
		AvgOrderValue:      cur.aov(),
		Customers:          buildCustomers(cohorts),
		Inventory:          buildInventory(levels),
		DaysOfData:         len(rows),
	}

	snap.TrailingRevenue30d, err = s.trailingRevenue(ctx, storeID, end)
	if err != nil {
		return nil, insight.BenchmarkSet{}, err
	}

	validated, err := insight.NewMetricSnapshot(snap)
	if err != nil {
		logger.Error("metric snapshot failed validation", "store_id", storeID, "error", err)
		return nil, insight.BenchmarkSet{}, fmt.Errorf("metric snapshot invalid: %w", err)
	}

	benchmark := s.benchmarkFor(ctx, store)

	return validated, insight.BenchmarkSet{
		BounceRate:           benchmark.BounceRate,
		ChannelConcentration: benchmark.ChannelConcentration,
		ConversionRate:       benchmark.ConversionRate,
	}, nil
}

// HealthScore recomputes the composite health score over the last 30 days.
func (s *analyticsService) HealthScore(ctx context.Context, storeID uint) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return 0, err
	}

	end := s.now()
	start := end.AddDate(0, 0, -30)

	rows, err := s.metricRepo.FindByStoreAndRange(ctx, storeID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to load store metrics: %w", err)
	}
	prevRows, err := s.metricRepo.FindByStoreAndRange(ctx, storeID, start.AddDate(0, 0, -30), start)
	if err != nil {
		return 0, fmt.Errorf("failed to load comparison metrics: %w", err)
	}

	cur := summarize(rows)
	prev := summarize(prevRows)

	return s.healthScore(ctx, store, cur, pctChange(cur.revenue, prev.revenue), s.benchmarkFor(ctx, store))
}

func (s *analyticsService) trailingRevenue(ctx context.Context, storeID uint, end time.Time) (float64, error) {
	rows, err := s.metricRepo.FindByStoreAndRange(ctx, storeID, end.AddDate(0, 0, -30), end)
	if err != nil {
		return 0, fmt.Errorf("failed to load trailing revenue: %w", err)
	}
	total := 0.0
	for _, row := range rows {
		total += row.Revenue
	}
	return total, nil
}

// benchmarkFor tolerates a missing benchmark row. The dashboard then
// shows zero industry values instead of failing the whole request.
func (s *analyticsService) benchmarkFor(ctx context.Context, store domain.Store) domain.IndustryBenchmark {
	benchmark, err := s.benchmarkRepo.FindByPlatformAndTier(ctx, store.Platform, store.Tier)
	if err != nil {
		logger.Warn("no industry benchmark for store",
			"store_id", store.ID, "platform", store.Platform, "tier", store.Tier)
		return domain.IndustryBenchmark{}
	}
	return benchmark
}

func aggregateFunnel(rows []domain.FunnelStage) []domain.FunnelStageView {
	type acc struct {
		order         int
		visitors      int
		conversions   int
		benchmarkSum  float64
		percentileSum int
		days          int
	}

	byStage := map[string]*acc{}
	for _, row := range rows {
		a, ok := byStage[row.StageName]
		if !ok {
			a = &acc{order: row.StageOrder}
			byStage[row.StageName] = a
		}
		a.visitors += row.Visitors
		a.conversions += row.Conversions
		a.benchmarkSum += row.IndustryBenchmark
		a.percentileSum += row.PercentileRank
		a.days++
	}

	names := make([]string, 0, len(byStage))
	for name := range byStage {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return byStage[names[i]].order < byStage[names[j]].order
	})

	out := make([]domain.FunnelStageView, 0, len(names))
	for _, name := range names {
		a := byStage[name]
		view := domain.FunnelStageView{
			Name:        name,
			Visitors:    a.visitors,
			Conversions: a.conversions,
		}
		if a.visitors > 0 {
			view.ConversionRate = float64(a.conversions) / float64(a.visitors)
			view.DropoffRate = 1 - view.ConversionRate
		}
		if a.days > 0 {
			view.IndustryBenchmark = a.benchmarkSum / float64(a.days)
			view.Percentile = a.percentileSum / a.days
		}
		view.Status = stageStatus(view.ConversionRate, view.IndustryBenchmark)
		out = append(out, view)
	}
	return out
}

func stageStatus(rate, benchmark float64) string {
	if benchmark <= 0 {
		return "normal"
	}
	switch {
	case rate >= benchmark:
		return "good"
	case rate >= 0.9*benchmark:
		return "normal"
	case rate >= 0.75*benchmark:
		return "warning"
	default:
		return "critical"
	}
}
