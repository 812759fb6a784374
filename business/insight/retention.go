package insight

import "fmt"

// RetentionEvaluator flags a win-back opportunity when too large a share
// of the customer base has gone quiet for more than 90 days.
type RetentionEvaluator struct {
	cfg Config
}

func (RetentionEvaluator) Name() string { return "retention" }

func (e RetentionEvaluator) Evaluate(snap *MetricSnapshot, _ BenchmarkSet) []Finding {
	lapsed := snap.Customers.RecencyBuckets[BucketOver90]
	if lapsed == 0 {
		return nil
	}

	total := snap.TotalCustomers()
	if total == 0 {
		return nil
	}

	lapsedFrac := float64(lapsed) / float64(total)
	if lapsedFrac <= e.cfg.WinbackFraction {
		return nil
	}

	// Size the opportunity by the lapsed cohort's historical order value
	// and the expected campaign recovery rate.
	aov := snap.Customers.LapsedAvgOrderValue
	if aov == 0 {
		aov = snap.AvgOrderValue
	}
	potential := float64(lapsed) * aov * e.cfg.WinbackRecoveryRate

	severity := clamp01(0.4 + lapsedFrac)

	f := Finding{
		Category: CategoryRetention,
		Title:    "Launch win-back email campaign",
		Description: fmt.Sprintf(
			"%d customers (%.0f%% of your base) have not purchased in over 90 days. They previously spent $%.0f per order on average.",
			lapsed, lapsedFrac*100, aov),
		Severity:         severity,
		PrimaryMetric:    "customers:lapsed_over_90d",
		PotentialRevenue: potential,
		Steps: []string{
			"Segment customers by last purchase date",
			"Create a three-email win-back sequence",
			"Offer a discount in the final email",
			"Set up an automated trigger",
		},
	}

	return []Finding{newFinding(snap, f, map[string]float64{
		"lapsed_customers":       float64(lapsed),
		"total_customers":        float64(total),
		"lapsed_fraction":        lapsedFrac,
		"lapsed_avg_order_value": aov,
	})}
}
