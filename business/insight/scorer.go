package insight

// Score turns a finding into a scored recommendation. Deterministic and
// side-effect free. Returns *DataInsufficientError when the evidence
// payload is missing a scoring baseline; the caller drops the finding.
func (cfg Config) Score(f Finding) (ScoredRecommendation, error) {
	trailing, ok := f.Evidence[EvidenceTrailingRevenue]
	if !ok {
		return ScoredRecommendation{}, &DataInsufficientError{Field: EvidenceTrailingRevenue}
	}
	days, ok := f.Evidence[EvidenceDaysOfData]
	if !ok {
		return ScoredRecommendation{}, &DataInsufficientError{Field: EvidenceDaysOfData}
	}

	revenueRatio := 0.0
	if trailing > 0 {
		revenueRatio = clamp01(f.PotentialRevenue / trailing)
	}

	impact := clamp(clamp01(f.Severity)*cfg.SeverityWeight+revenueRatio*cfg.RevenueWeight, 0, 100)
	effort := clamp(cfg.baseEffort(f.Category)+float64(len(f.Steps))*cfg.StepEffort, 0, 100)

	confidence := clamp01(days / cfg.ConfidenceWindowDays)
	if days < cfg.MinConfidenceDays && confidence > cfg.LowDataConfidenceCap {
		confidence = cfg.LowDataConfidenceCap
	}

	return ScoredRecommendation{
		Finding:            f,
		ImpactScore:        impact,
		EffortScore:        effort,
		Confidence:         confidence,
		Priority:           cfg.priorityFor(impact, effort),
		ImplementationTime: implementationEstimate(effort),
	}, nil
}

// priorityFor buckets impact and effort deterministically. At high
// impact the effort score decides between critical and high: lower
// effort wins the higher bucket.
func (cfg Config) priorityFor(impact, effort float64) Priority {
	switch {
	case impact >= cfg.CriticalImpact && effort <= cfg.CriticalMaxEffort:
		return PriorityCritical
	case impact >= cfg.HighImpact:
		return PriorityHigh
	case impact >= cfg.MediumImpact:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func implementationEstimate(effort float64) string {
	switch {
	case effort < 25:
		return "2-4 hours"
	case effort < 45:
		return "1 day"
	case effort < 70:
		return "2-3 days"
	default:
		return "1 week or more"
	}
}
