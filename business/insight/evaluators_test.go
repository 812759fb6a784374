package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSnapshot(t *testing.T, s MetricSnapshot) *MetricSnapshot {
	t.Helper()
	snap, err := NewMetricSnapshot(s)
	require.NoError(t, err)
	return snap
}

func TestConversionEvaluatorAbandonment(t *testing.T) {
	cfg := DefaultConfig()
	ev := ConversionEvaluator{cfg: cfg}

	t.Run("at_threshold_is_silent", func(t *testing.T) {
		s := baseSnapshot()
		// 35% drop-off exactly: purchases = 65% of checkouts.
		s.Funnel[4].Count = 2633 // 4050 * 0.65, rounded up
		snap := mustSnapshot(t, s)

		for _, f := range ev.Evaluate(snap, BenchmarkSet{}) {
			assert.NotEqual(t, "funnel:checkout", f.PrimaryMetric)
		}
	})

	t.Run("spike_produces_finding", func(t *testing.T) {
		s := baseSnapshot()
		s.Funnel[4].Count = 2430 // 40% drop-off
		snap := mustSnapshot(t, s)

		findings := ev.Evaluate(snap, BenchmarkSet{})
		require.NotEmpty(t, findings)

		f := findings[0]
		assert.Equal(t, CategoryConversion, f.Category)
		assert.Equal(t, "funnel:checkout", f.PrimaryMetric)
		assert.InDelta(t, 0.40, f.Evidence["checkout_dropoff_rate"], 0.001)
		// Abandoned checkouts valued at AOV.
		assert.InDelta(t, float64(4050-2430)*78, f.PotentialRevenue, 0.01)
		assert.Contains(t, f.Evidence, EvidenceTrailingRevenue)
		assert.Contains(t, f.Evidence, EvidenceDaysOfData)
	})
}

func TestConversionEvaluatorDeviceGap(t *testing.T) {
	cfg := DefaultConfig()
	ev := ConversionEvaluator{cfg: cfg}

	s := baseSnapshot()
	s.ConversionByDevice["mobile"] = 0.045 // ~27% below desktop
	snap := mustSnapshot(t, s)

	findings := ev.Evaluate(snap, BenchmarkSet{})
	require.Len(t, findings, 1)
	assert.Equal(t, "conversion:device_gap", findings[0].PrimaryMetric)
	assert.Greater(t, findings[0].PotentialRevenue, 0.0)
}

func TestRetentionEvaluator(t *testing.T) {
	cfg := DefaultConfig()
	ev := RetentionEvaluator{cfg: cfg}

	t.Run("no_lapsed_customers_no_finding", func(t *testing.T) {
		s := baseSnapshot()
		s.Customers.RecencyBuckets[BucketOver90] = 0
		snap := mustSnapshot(t, s)

		assert.Empty(t, ev.Evaluate(snap, BenchmarkSet{}))
	})

	t.Run("below_fraction_no_finding", func(t *testing.T) {
		// 400 of 5000 is 8%, under the 10% default.
		snap := mustSnapshot(t, baseSnapshot())
		assert.Empty(t, ev.Evaluate(snap, BenchmarkSet{}))
	})

	t.Run("lapsed_share_above_fraction", func(t *testing.T) {
		s := baseSnapshot()
		s.Customers.RecencyBuckets[BucketOver90] = 1200
		snap := mustSnapshot(t, s)

		findings := ev.Evaluate(snap, BenchmarkSet{})
		require.Len(t, findings, 1)

		f := findings[0]
		assert.Equal(t, CategoryRetention, f.Category)
		// Sized by cohort AOV and the recovery rate.
		assert.InDelta(t, 1200*145*cfg.WinbackRecoveryRate, f.PotentialRevenue, 0.01)
	})
}

func TestTrafficEvaluator(t *testing.T) {
	cfg := DefaultConfig()
	ev := TrafficEvaluator{cfg: cfg}

	t.Run("silent_without_benchmarks", func(t *testing.T) {
		s := baseSnapshot()
		s.Traffic.BounceRate = 0.9
		snap := mustSnapshot(t, s)

		assert.Empty(t, ev.Evaluate(snap, BenchmarkSet{}))
	})

	t.Run("bounce_rate_above_benchmark", func(t *testing.T) {
		s := baseSnapshot()
		s.Traffic.BounceRate = 0.62
		snap := mustSnapshot(t, s)

		findings := ev.Evaluate(snap, BenchmarkSet{BounceRate: 0.45})
		require.Len(t, findings, 1)
		assert.Equal(t, "traffic:bounce_rate", findings[0].PrimaryMetric)
	})

	t.Run("channel_concentration", func(t *testing.T) {
		s := baseSnapshot()
		s.Traffic.Sources = map[string]float64{
			"paid":    0.75,
			"organic": 0.25,
		}
		snap := mustSnapshot(t, s)

		findings := ev.Evaluate(snap, BenchmarkSet{ChannelConcentration: 0.60})
		require.Len(t, findings, 1)

		f := findings[0]
		assert.Equal(t, "traffic:channel:paid", f.PrimaryMetric)
		// No direct revenue estimate for a resilience risk.
		assert.Zero(t, f.PotentialRevenue)
	})
}

func TestInventoryEvaluator(t *testing.T) {
	cfg := DefaultConfig()
	ev := InventoryEvaluator{cfg: cfg}

	s := baseSnapshot()
	s.Inventory = map[string]InventorySignal{
		"SKU-9001": {DaysOfStock: 5, SellThroughRate: 0.85},  // stockout risk
		"SKU-1042": {DaysOfStock: 120, SellThroughRate: 0.05}, // dead stock
		"SKU-5500": {DaysOfStock: 45, SellThroughRate: 0.60},  // healthy
	}
	snap := mustSnapshot(t, s)

	findings := ev.Evaluate(snap, BenchmarkSet{})
	require.Len(t, findings, 2)

	// SKUs are visited in sorted order.
	assert.Equal(t, "sku:SKU-1042", findings[0].PrimaryMetric)
	assert.Contains(t, findings[0].Title, "dead stock")
	assert.Equal(t, "sku:SKU-9001", findings[1].PrimaryMetric)
	assert.Contains(t, findings[1].Title, "Reorder")
	assert.Greater(t, findings[1].PotentialRevenue, 0.0)
}

func TestEvaluatorsDoNotMutateSnapshot(t *testing.T) {
	cfg := DefaultConfig()

	s := baseSnapshot()
	s.Funnel[4].Count = 2430
	s.Customers.RecencyBuckets[BucketOver90] = 1200
	s.Inventory["SKU-9001"] = InventorySignal{DaysOfStock: 3, SellThroughRate: 0.9}

	snap := mustSnapshot(t, s)
	before := *snap

	bm := BenchmarkSet{BounceRate: 0.30, ChannelConcentration: 0.60}
	for _, ev := range BuiltinEvaluators(cfg) {
		ev.Evaluate(snap, bm)
	}

	assert.Equal(t, before.Funnel, snap.Funnel)
	assert.Equal(t, before.Traffic.Sources, snap.Traffic.Sources)
	assert.Equal(t, before.Customers.RecencyBuckets, snap.Customers.RecencyBuckets)
	assert.Equal(t, before.Inventory, snap.Inventory)
}
