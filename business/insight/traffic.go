package insight

import "fmt"

// TrafficEvaluator compares bounce rate and channel concentration
// against the supplied benchmarks. It is the only evaluator that reads
// the BenchmarkSet.
type TrafficEvaluator struct {
	cfg Config
}

func (TrafficEvaluator) Name() string { return "traffic" }

func (e TrafficEvaluator) Evaluate(snap *MetricSnapshot, benchmarks BenchmarkSet) []Finding {
	findings := make([]Finding, 0, 2)

	if f, ok := e.bounceRate(snap, benchmarks); ok {
		findings = append(findings, f)
	}
	if f, ok := e.channelConcentration(snap, benchmarks); ok {
		findings = append(findings, f)
	}

	return findings
}

func (e TrafficEvaluator) bounceRate(snap *MetricSnapshot, benchmarks BenchmarkSet) (Finding, bool) {
	if benchmarks.BounceRate <= 0 {
		return Finding{}, false
	}

	bounce := snap.Traffic.BounceRate
	excess := bounce - benchmarks.BounceRate
	if excess <= e.cfg.BounceRateMargin {
		return Finding{}, false
	}

	severity := clamp01(0.4 + excess/(1-benchmarks.BounceRate))
	potential := snap.TrailingRevenue30d * excess * e.cfg.BounceRevenueFactor

	f := Finding{
		Category: CategoryTraffic,
		Title:    "Reduce landing page bounce rate",
		Description: fmt.Sprintf(
			"Bounce rate is %.0f%% against an industry benchmark of %.0f%%. Visitors are leaving before engaging with any product.",
			bounce*100, benchmarks.BounceRate*100),
		Severity:         severity,
		PrimaryMetric:    "traffic:bounce_rate",
		PotentialRevenue: potential,
		Steps: []string{
			"Audit page load speed on top landing pages",
			"Match ad copy to landing page content",
			"Surface bestsellers above the fold",
		},
	}

	return newFinding(snap, f, map[string]float64{
		"bounce_rate":           bounce,
		"benchmark_bounce_rate": benchmarks.BounceRate,
	}), true
}

func (e TrafficEvaluator) channelConcentration(snap *MetricSnapshot, benchmarks BenchmarkSet) (Finding, bool) {
	if benchmarks.ChannelConcentration <= 0 || len(snap.Traffic.Sources) == 0 {
		return Finding{}, false
	}

	topChannel := ""
	topShare := 0.0
	for channel, share := range snap.Traffic.Sources {
		if share > topShare || (share == topShare && channel < topChannel) {
			topChannel = channel
			topShare = share
		}
	}

	if topShare <= benchmarks.ChannelConcentration {
		return Finding{}, false
	}

	// Concentration is a resilience risk, not a direct revenue loss.
	f := Finding{
		Category: CategoryTraffic,
		Title:    "Diversify traffic sources",
		Description: fmt.Sprintf(
			"%.0f%% of traffic comes from a single channel (%s). A policy or algorithm change there would hit revenue immediately.",
			topShare*100, topChannel),
		Severity:      clamp01(topShare),
		PrimaryMetric: "traffic:channel:" + topChannel,
		Steps: []string{
			"Grow at least one secondary acquisition channel",
			"Shift part of the budget to under-used channels",
			"Build an owned channel via email capture",
		},
	}

	return newFinding(snap, f, map[string]float64{
		"top_channel_share":     topShare,
		"concentration_ceiling": benchmarks.ChannelConcentration,
	}), true
}
