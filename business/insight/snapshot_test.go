package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseSnapshot() MetricSnapshot {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return MetricSnapshot{
		Period: Period{Start: start, End: start.AddDate(0, 0, 30)},
		Traffic: Traffic{
			Visits:     45000,
			Sessions:   52000,
			BounceRate: 0.35,
			Sources: map[string]float64{
				"organic": 0.35,
				"paid":    0.25,
				"social":  0.20,
				"email":   0.15,
				"direct":  0.05,
			},
		},
		Funnel: []FunnelStage{
			{Name: StageVisit, Count: 45000},
			{Name: StageProductView, Count: 22500},
			{Name: StageAddToCart, Count: 6750},
			{Name: StageCheckout, Count: 4050},
			{Name: StagePurchase, Count: 2835},
		},
		ConversionByDevice: map[string]float64{
			"desktop": 0.062,
			"mobile":  0.058,
			"tablet":  0.055,
		},
		AvgOrderValue: 78,
		Customers: Customers{
			Total: 5000,
			RecencyBuckets: map[string]int{
				Bucket0to30:  2000,
				Bucket31to60: 1600,
				Bucket61to90: 1000,
				BucketOver90: 400,
			},
			LapsedAvgOrderValue: 145,
		},
		Inventory: map[string]InventorySignal{
			"SKU-1001": {DaysOfStock: 45, SellThroughRate: 0.60},
		},
		TrailingRevenue30d: 191667,
		DaysOfData:         30,
	}
}

func TestNewMetricSnapshotValid(t *testing.T) {
	snap, err := NewMetricSnapshot(baseSnapshot())
	require.NoError(t, err)
	require.NotNil(t, snap)
}

func TestNewMetricSnapshotInvariants(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*MetricSnapshot)
		wantField string
	}{
		{
			name: "period_end_before_start",
			mutate: func(s *MetricSnapshot) {
				s.Period.End = s.Period.Start.AddDate(0, 0, -1)
			},
			wantField: "period",
		},
		{
			name: "bounce_rate_out_of_range",
			mutate: func(s *MetricSnapshot) {
				s.Traffic.BounceRate = 1.2
			},
			wantField: "traffic.bounce_rate",
		},
		{
			name: "source_shares_do_not_sum_to_one",
			mutate: func(s *MetricSnapshot) {
				s.Traffic.Sources["paid"] = 0.10
			},
			wantField: "traffic.sources",
		},
		{
			name: "funnel_counts_increase",
			mutate: func(s *MetricSnapshot) {
				s.Funnel[3].Count = s.Funnel[2].Count + 100
			},
			wantField: "funnel",
		},
		{
			name: "device_conversion_out_of_range",
			mutate: func(s *MetricSnapshot) {
				s.ConversionByDevice["mobile"] = 1.5
			},
			wantField: "conversion_by_device.mobile",
		},
		{
			name: "sell_through_out_of_range",
			mutate: func(s *MetricSnapshot) {
				s.Inventory["SKU-1001"] = InventorySignal{DaysOfStock: 10, SellThroughRate: 1.3}
			},
			wantField: "inventory.SKU-1001",
		},
		{
			name: "negative_days_of_stock",
			mutate: func(s *MetricSnapshot) {
				s.Inventory["SKU-1001"] = InventorySignal{DaysOfStock: -2, SellThroughRate: 0.5}
			},
			wantField: "inventory.SKU-1001",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := baseSnapshot()
			tc.mutate(&s)

			snap, err := NewMetricSnapshot(s)
			require.Nil(t, snap)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantField, verr.Field)
		})
	}
}

func TestFunnelCount(t *testing.T) {
	snap, err := NewMetricSnapshot(baseSnapshot())
	require.NoError(t, err)

	n, ok := snap.FunnelCount(StageCheckout)
	require.True(t, ok)
	assert.Equal(t, 4050, n)

	_, ok = snap.FunnelCount("Refund")
	assert.False(t, ok)
}

func TestTotalCustomersFallsBackToBuckets(t *testing.T) {
	s := baseSnapshot()
	s.Customers.Total = 0

	snap, err := NewMetricSnapshot(s)
	require.NoError(t, err)
	assert.Equal(t, 5000, snap.TotalCustomers())
}
