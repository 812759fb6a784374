package insight

import "fmt"

// ConversionEvaluator flags checkout-abandonment spikes and
// mobile-vs-desktop conversion gaps.
type ConversionEvaluator struct {
	cfg Config
}

func (ConversionEvaluator) Name() string { return "conversion" }

func (e ConversionEvaluator) Evaluate(snap *MetricSnapshot, _ BenchmarkSet) []Finding {
	findings := make([]Finding, 0, 2)

	if f, ok := e.checkoutAbandonment(snap); ok {
		findings = append(findings, f)
	}
	if f, ok := e.deviceGap(snap); ok {
		findings = append(findings, f)
	}

	return findings
}

func (e ConversionEvaluator) checkoutAbandonment(snap *MetricSnapshot) (Finding, bool) {
	checkouts, ok := snap.FunnelCount(StageCheckout)
	if !ok || checkouts == 0 {
		return Finding{}, false
	}
	purchases, ok := snap.FunnelCount(StagePurchase)
	if !ok {
		return Finding{}, false
	}

	dropoff := 1 - float64(purchases)/float64(checkouts)
	if dropoff <= e.cfg.CheckoutAbandonThreshold {
		return Finding{}, false
	}

	// Revenue currently abandoned at checkout over the period.
	abandoned := checkouts - purchases
	atRisk := float64(abandoned) * snap.AvgOrderValue

	severity := clamp01(0.7 + (dropoff-e.cfg.CheckoutAbandonThreshold)/(1-e.cfg.CheckoutAbandonThreshold))

	f := Finding{
		Category: CategoryConversion,
		Title:    "Fix checkout abandonment spike",
		Description: fmt.Sprintf(
			"%.0f%% of shoppers who start checkout never complete their purchase (%d of %d). Unexpected shipping costs and long forms are the usual causes.",
			dropoff*100, abandoned, checkouts),
		Severity:         severity,
		PrimaryMetric:    "funnel:checkout",
		PotentialRevenue: atRisk,
		Steps: []string{
			"Show shipping costs before the checkout step",
			"Enable a free shipping threshold banner on the cart page",
			"Simplify checkout form fields",
		},
	}

	return newFinding(snap, f, map[string]float64{
		"checkout_dropoff_rate": dropoff,
		"checkouts":             float64(checkouts),
		"purchases":             float64(purchases),
	}), true
}

func (e ConversionEvaluator) deviceGap(snap *MetricSnapshot) (Finding, bool) {
	desktop, okD := snap.ConversionByDevice["desktop"]
	mobile, okM := snap.ConversionByDevice["mobile"]
	if !okD || !okM || desktop <= 0 {
		return Finding{}, false
	}

	gap := (desktop - mobile) / desktop
	if gap <= e.cfg.DeviceGapThreshold {
		return Finding{}, false
	}

	// Uplift if mobile converted like desktop, assuming the configured
	// mobile revenue share.
	potential := snap.TrailingRevenue30d * gap * e.cfg.MobileRevenueShare
	severity := clamp01(0.5 + (gap-e.cfg.DeviceGapThreshold)*2)

	f := Finding{
		Category: CategoryConversion,
		Title:    "Optimize mobile product pages",
		Description: fmt.Sprintf(
			"Mobile visitors convert %.0f%% lower than desktop (%.1f%% vs %.1f%%). Slow images and below-the-fold CTAs are the common culprits.",
			gap*100, mobile*100, desktop*100),
		Severity:         severity,
		PrimaryMetric:    "conversion:device_gap",
		PotentialRevenue: potential,
		Steps: []string{
			"Compress product images and enable lazy loading",
			"Move the add-to-cart CTA above the fold",
			"Add a sticky add-to-cart button on mobile",
		},
	}

	return newFinding(snap, f, map[string]float64{
		"mobile_conversion_rate":  mobile,
		"desktop_conversion_rate": desktop,
		"relative_gap":            gap,
	}), true
}
