package insight

// Evaluator detects one class of problem in a snapshot. Implementations
// must be pure: no snapshot mutation, and "nothing found" is an empty
// slice, never an error. New evaluators can be registered on the engine
// without touching the existing ones.
type Evaluator interface {
	Name() string
	Evaluate(snap *MetricSnapshot, benchmarks BenchmarkSet) []Finding
}

// BuiltinEvaluators returns the four stock evaluators in their canonical
// order. The order matters: it is the stable tie-break for ranking.
func BuiltinEvaluators(cfg Config) []Evaluator {
	return []Evaluator{
		ConversionEvaluator{cfg: cfg},
		RetentionEvaluator{cfg: cfg},
		TrafficEvaluator{cfg: cfg},
		InventoryEvaluator{cfg: cfg},
	}
}

// newFinding stamps the snapshot's scoring baselines into the finding
// evidence alongside the evaluator-specific values.
func newFinding(snap *MetricSnapshot, f Finding, extra map[string]float64) Finding {
	evidence := snap.baselineEvidence()
	for k, v := range extra {
		evidence[k] = v
	}
	f.Evidence = evidence
	return f
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
