package insight

import (
	"fmt"
	"math"
	"time"
)

// Canonical funnel stage names, in order. Funnel counts must be
// non-increasing along this sequence.
const (
	StageVisit       = "Visit"
	StageProductView = "Product View"
	StageAddToCart   = "Add to Cart"
	StageCheckout    = "Checkout"
	StagePurchase    = "Purchase"
)

// Customer recency bucket keys.
const (
	Bucket0to30  = "0-30d"
	Bucket31to60 = "31-60d"
	Bucket61to90 = "61-90d"
	BucketOver90 = "over-90d"
)

const sourceShareTolerance = 0.01

type Period struct {
	Start time.Time
	End   time.Time
}

type Traffic struct {
	Visits     int
	Sessions   int
	BounceRate float64
	// Sources maps channel name to its share of traffic. Shares must
	// sum to 1.0 within tolerance.
	Sources map[string]float64
}

type FunnelStage struct {
	Name  string
	Count int
}

type Customers struct {
	Total int
	// RecencyBuckets maps bucket key to customer count.
	RecencyBuckets map[string]int
	// LapsedAvgOrderValue is the average historical order value of the
	// over-90d cohort, used to size win-back findings.
	LapsedAvgOrderValue float64
}

type InventorySignal struct {
	DaysOfStock     float64
	SellThroughRate float64
}

// BenchmarkSet carries industry or peer-store comparison values. It is
// supplied by the caller and consumed by the traffic evaluator only.
type BenchmarkSet struct {
	BounceRate           float64
	ChannelConcentration float64 // healthy upper bound for a single channel's share
	ConversionRate       float64
}

// MetricSnapshot is the normalized read-only view of a store's metrics
// for one evaluation cycle. Build it with NewMetricSnapshot and do not
// mutate it afterwards.
type MetricSnapshot struct {
	Period             Period
	Traffic            Traffic
	Funnel             []FunnelStage
	ConversionByDevice map[string]float64
	AvgOrderValue      float64
	Customers          Customers
	Inventory          map[string]InventorySignal

	// Scoring baselines. Evaluators stamp these into finding evidence.
	TrailingRevenue30d float64
	DaysOfData         int
}

// NewMetricSnapshot validates the snapshot invariants and returns a
// private copy. A *ValidationError names the first violated field.
func NewMetricSnapshot(s MetricSnapshot) (*MetricSnapshot, error) {
	if !s.Period.End.After(s.Period.Start) {
		return nil, &ValidationError{Field: "period", Reason: "end must be after start"}
	}

	if s.Traffic.BounceRate < 0 || s.Traffic.BounceRate > 1 {
		return nil, &ValidationError{Field: "traffic.bounce_rate", Reason: "must be in [0,1]"}
	}

	if len(s.Traffic.Sources) > 0 {
		sum := 0.0
		for channel, share := range s.Traffic.Sources {
			if share < 0 {
				return nil, &ValidationError{
					Field:  "traffic.sources." + channel,
					Reason: "share must be non-negative",
				}
			}
			sum += share
		}
		if math.Abs(sum-1.0) > sourceShareTolerance {
			return nil, &ValidationError{
				Field:  "traffic.sources",
				Reason: fmt.Sprintf("shares sum to %.4f, want 1.0 +/- %.2f", sum, sourceShareTolerance),
			}
		}
	}

	for i := 1; i < len(s.Funnel); i++ {
		if s.Funnel[i].Count > s.Funnel[i-1].Count {
			return nil, &ValidationError{
				Field: "funnel",
				Reason: fmt.Sprintf("stage %q count %d exceeds preceding stage %q count %d",
					s.Funnel[i].Name, s.Funnel[i].Count, s.Funnel[i-1].Name, s.Funnel[i-1].Count),
			}
		}
		if s.Funnel[i].Count < 0 {
			return nil, &ValidationError{Field: "funnel", Reason: "stage counts must be non-negative"}
		}
	}

	for device, rate := range s.ConversionByDevice {
		if rate < 0 || rate > 1 {
			return nil, &ValidationError{
				Field:  "conversion_by_device." + device,
				Reason: "must be in [0,1]",
			}
		}
	}

	for sku, sig := range s.Inventory {
		if sig.SellThroughRate < 0 || sig.SellThroughRate > 1 {
			return nil, &ValidationError{
				Field:  "inventory." + sku,
				Reason: "sell-through rate must be in [0,1]",
			}
		}
		if sig.DaysOfStock < 0 {
			return nil, &ValidationError{
				Field:  "inventory." + sku,
				Reason: "days of stock must be non-negative",
			}
		}
	}

	if s.TrailingRevenue30d < 0 {
		return nil, &ValidationError{Field: "trailing_revenue_30d", Reason: "must be non-negative"}
	}
	if s.DaysOfData < 0 {
		return nil, &ValidationError{Field: "days_of_data", Reason: "must be non-negative"}
	}

	return &s, nil
}

// FunnelCount returns the count for a named stage.
func (s *MetricSnapshot) FunnelCount(name string) (int, bool) {
	for _, stage := range s.Funnel {
		if stage.Name == name {
			return stage.Count, true
		}
	}
	return 0, false
}

// TotalCustomers falls back to summing the recency buckets when the
// explicit total is absent.
func (s *MetricSnapshot) TotalCustomers() int {
	if s.Customers.Total > 0 {
		return s.Customers.Total
	}
	sum := 0
	for _, n := range s.Customers.RecencyBuckets {
		sum += n
	}
	return sum
}

// baselineEvidence is merged into every finding so the scorer can
// normalize revenue and derive confidence.
func (s *MetricSnapshot) baselineEvidence() map[string]float64 {
	return map[string]float64{
		EvidenceTrailingRevenue: s.TrailingRevenue30d,
		EvidenceDaysOfData:      float64(s.DaysOfData),
	}
}
