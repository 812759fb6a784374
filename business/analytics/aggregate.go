package analytics

import (
	"context"
	"encoding/json"
	"math"

	"shopifyPulse/business/insight"
	"shopifyPulse/domain"
)

// totals accumulates the per-day metric rows for one window.
type totals struct {
	revenue    float64
	orders     int
	visitors   int
	sessions   int
	checkouts  int
	addToCarts int
	bounceSum  float64 // session-weighted
}

func summarize(rows []domain.StoreMetric) totals {
	var t totals
	for _, row := range rows {
		t.revenue += row.Revenue
		t.orders += row.Orders
		t.visitors += row.UniqueVisitors
		t.sessions += row.Sessions
		t.checkouts += row.Checkouts
		t.addToCarts += row.AddToCarts
		t.bounceSum += row.BounceRate * float64(row.Sessions)
	}
	return t
}

func (t totals) conversionRate() float64 {
	if t.visitors == 0 {
		return 0
	}
	return float64(t.orders) / float64(t.visitors)
}

func (t totals) aov() float64 {
	if t.orders == 0 {
		return 0
	}
	return t.revenue / float64(t.orders)
}

func (t totals) bounceRate() float64 {
	if t.sessions == 0 {
		return 0
	}
	return t.bounceSum / float64(t.sessions)
}

// pctChange returns the percentage change from prev to cur. A zero
// previous window reports no change rather than infinity.
func pctChange(cur, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}

// breakdownEntry reads one {"share": x, "conversion": y} object out of a
// jsonb column. Numbers arrive as float64 or json.Number depending on
// the decoder.
func breakdownEntry(v any) (share, conversion float64) {
	m, ok := v.(map[string]any)
	if !ok {
		return 0, 0
	}
	return toFloat(m["share"]), toFloat(m["conversion"])
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

type sliceAcc struct {
	visitors      float64
	conversionSum float64 // visitor-weighted
}

func accumulateBreakdown(rows []domain.StoreMetric, pick func(domain.StoreMetric) map[string]any) (map[string]*sliceAcc, float64) {
	byKey := map[string]*sliceAcc{}
	total := 0.0
	for _, row := range rows {
		for key, v := range pick(row) {
			share, conversion := breakdownEntry(v)
			visitors := share * float64(row.UniqueVisitors)

			a, ok := byKey[key]
			if !ok {
				a = &sliceAcc{}
				byKey[key] = a
			}
			a.visitors += visitors
			a.conversionSum += conversion * visitors
			total += visitors
		}
	}
	return byKey, total
}

func channelBreakdown(rows []domain.StoreMetric) map[string]domain.ChannelStats {
	byChannel, total := accumulateBreakdown(rows, func(m domain.StoreMetric) map[string]any { return m.TrafficSources })

	out := make(map[string]domain.ChannelStats, len(byChannel))
	for channel, a := range byChannel {
		stats := domain.ChannelStats{Visitors: int(math.Round(a.visitors))}
		if total > 0 {
			stats.Share = a.visitors / total
		}
		if a.visitors > 0 {
			stats.Conversion = a.conversionSum / a.visitors
		}
		out[channel] = stats
	}
	return out
}

func deviceBreakdown(rows []domain.StoreMetric) map[string]domain.DeviceStats {
	byDevice, total := accumulateBreakdown(rows, func(m domain.StoreMetric) map[string]any { return m.DeviceBreakdown })

	out := make(map[string]domain.DeviceStats, len(byDevice))
	for device, a := range byDevice {
		stats := domain.DeviceStats{Visitors: int(math.Round(a.visitors))}
		if total > 0 {
			stats.Share = a.visitors / total
		}
		if a.visitors > 0 {
			stats.Conversion = a.conversionSum / a.visitors
		}
		out[device] = stats
	}
	return out
}

func deviceConversions(rows []domain.StoreMetric) map[string]float64 {
	byDevice, _ := accumulateBreakdown(rows, func(m domain.StoreMetric) map[string]any { return m.DeviceBreakdown })

	out := make(map[string]float64, len(byDevice))
	for device, a := range byDevice {
		if a.visitors > 0 {
			out[device] = a.conversionSum / a.visitors
		}
	}
	return out
}

// buildTraffic normalizes channel shares so they sum to exactly 1.0
// before snapshot validation.
func buildTraffic(rows []domain.StoreMetric, cur totals) insight.Traffic {
	byChannel, total := accumulateBreakdown(rows, func(m domain.StoreMetric) map[string]any { return m.TrafficSources })

	sources := make(map[string]float64, len(byChannel))
	if total > 0 {
		for channel, a := range byChannel {
			sources[channel] = a.visitors / total
		}
	}

	return insight.Traffic{
		Visits:     cur.visitors,
		Sessions:   cur.sessions,
		BounceRate: cur.bounceRate(),
		Sources:    sources,
	}
}

// buildFunnel aggregates the stored stage rows; without them it derives
// a four-stage funnel from the daily totals.
func buildFunnel(rows []domain.FunnelStage, cur totals) []insight.FunnelStage {
	if len(rows) == 0 {
		return []insight.FunnelStage{
			{Name: insight.StageVisit, Count: cur.visitors},
			{Name: insight.StageAddToCart, Count: cur.addToCarts},
			{Name: insight.StageCheckout, Count: cur.checkouts},
			{Name: insight.StagePurchase, Count: cur.orders},
		}
	}

	views := aggregateFunnel(rows)
	out := make([]insight.FunnelStage, 0, len(views))
	for _, v := range views {
		out = append(out, insight.FunnelStage{Name: v.Name, Count: v.Visitors})
	}
	return out
}

func buildCustomers(cohorts []domain.CustomerCohort) insight.Customers {
	c := insight.Customers{RecencyBuckets: make(map[string]int, len(cohorts))}
	for _, cohort := range cohorts {
		c.RecencyBuckets[cohort.RecencyBucket] = cohort.Customers
		c.Total += cohort.Customers
		if cohort.RecencyBucket == insight.BucketOver90 {
			c.LapsedAvgOrderValue = cohort.AvgOrderValue
		}
	}
	return c
}

func buildInventory(levels []domain.InventoryLevel) map[string]insight.InventorySignal {
	out := make(map[string]insight.InventorySignal, len(levels))
	for _, level := range levels {
		out[level.SKU] = insight.InventorySignal{
			DaysOfStock:     level.DaysOfStock,
			SellThroughRate: level.SellThroughRate,
		}
	}
	return out
}

// Health score component weights and inventory thresholds.
const (
	weightConversion = 0.30
	weightGrowth     = 0.25
	weightRetention  = 0.20
	weightSite       = 0.15
	weightInventory  = 0.10

	healthyDaysOfStock = 14
	healthySellThrough = 0.20
)

func (s *analyticsService) healthScore(ctx context.Context, store domain.Store, cur totals, revenueChange float64, benchmark domain.IndustryBenchmark) (int, error) {
	cohorts, err := s.cohortRepo.FindByStore(ctx, store.ID)
	if err != nil {
		return 0, err
	}
	levels, err := s.inventoryRepo.FindByStore(ctx, store.ID)
	if err != nil {
		return 0, err
	}

	// Each component lands in [0,1]; missing data scores neutral.
	conversion := 0.5
	if benchmark.ConversionRate > 0 {
		conversion = clampUnit(cur.conversionRate() / benchmark.ConversionRate)
	}

	// +20% revenue growth saturates the component, -20% zeroes it.
	growth := clampUnit(0.5 + revenueChange/40)

	retention := 0.5
	customers := buildCustomers(cohorts)
	if customers.Total > 0 {
		lapsed := float64(customers.RecencyBuckets[insight.BucketOver90]) / float64(customers.Total)
		retention = clampUnit(1 - 2*lapsed)
	}

	site := 0.5
	if benchmark.BounceRate > 0 && cur.bounceRate() > 0 {
		site = clampUnit(benchmark.BounceRate / cur.bounceRate())
	}

	inventory := 0.5
	if len(levels) > 0 {
		healthy := 0
		for _, level := range levels {
			if level.DaysOfStock >= healthyDaysOfStock && level.SellThroughRate >= healthySellThrough {
				healthy++
			}
		}
		inventory = float64(healthy) / float64(len(levels))
	}

	score := weightConversion*conversion +
		weightGrowth*growth +
		weightRetention*retention +
		weightSite*site +
		weightInventory*inventory

	return int(math.Round(score * 100)), nil
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
