package insight

type Category string

const (
	CategoryConversion Category = "conversion"
	CategoryRetention  Category = "retention"
	CategoryRevenue    Category = "revenue"
	CategoryTraffic    Category = "traffic"
	CategoryInventory  Category = "inventory"
)

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

func priorityRank(p Priority) int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// Evidence keys every evaluator stamps onto its findings. The scorer
// requires both; a finding without them cannot be scored.
const (
	EvidenceTrailingRevenue = "trailing_revenue_30d"
	EvidenceDaysOfData      = "days_of_data"
)

// Finding is one detected problem, produced by a single evaluator.
type Finding struct {
	Category    Category
	Title       string
	Description string

	// Severity hint in [0,1], set by the evaluator.
	Severity float64

	// PrimaryMetric identifies the metric that drove the finding
	// (e.g. "funnel:checkout", "sku:SKU-1042"). Findings sharing a
	// primary metric are duplicates.
	PrimaryMetric string

	// Evidence holds the metric values that triggered the finding,
	// including the scoring baselines.
	Evidence map[string]float64

	// PotentialRevenue is the evaluator's sizing of the opportunity.
	// Zero when not estimable.
	PotentialRevenue float64

	Steps []string
}

// ScoredRecommendation is a finding plus the computed scoring fields.
type ScoredRecommendation struct {
	Finding

	ImpactScore        float64
	EffortScore        float64
	Confidence         float64
	Priority           Priority
	ImplementationTime string
}

// RankedList is the final deduplicated, ordered output of the engine.
type RankedList []ScoredRecommendation
