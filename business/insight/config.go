package insight

const (
	defaultCheckoutAbandonThreshold = 0.35
	defaultDeviceGapThreshold       = 0.15
	defaultMobileRevenueShare       = 0.38

	defaultWinbackFraction     = 0.10
	defaultWinbackRecoveryRate = 0.10

	defaultBounceRateMargin     = 0.10
	defaultBounceRevenueFactor  = 1.0
	defaultStockoutRevenueShare = 0.15

	defaultDeadStockSellThrough = 0.20
	defaultReorderDaysOfStock   = 14.0

	defaultSeverityWeight = 60.0
	defaultRevenueWeight  = 40.0
	defaultStepEffort     = 5.0

	defaultConfidenceWindowDays = 30.0
	defaultMinConfidenceDays    = 7.0
	defaultLowDataConfidenceCap = 0.5

	defaultCriticalImpact    = 85.0
	defaultCriticalMaxEffort = 40.0
	defaultHighImpact        = 70.0
	defaultMediumImpact      = 45.0
)

// Config carries every threshold and weight used by the evaluators and
// the scorer. It is passed by value; nothing in this package holds
// mutable shared state.
type Config struct {
	// Conversion evaluator
	CheckoutAbandonThreshold float64 // drop-off between checkout and purchase
	DeviceGapThreshold       float64 // relative mobile-vs-desktop conversion gap
	MobileRevenueShare       float64 // assumed mobile share when sizing the gap

	// Retention evaluator
	WinbackFraction     float64 // lapsed customers as a fraction of total
	WinbackRecoveryRate float64 // fraction of lapsed customers a campaign recovers

	// Traffic evaluator
	BounceRateMargin     float64 // allowed excess over the benchmark bounce rate
	BounceRevenueFactor  float64 // trailing revenue multiplier per point of excess bounce
	StockoutRevenueShare float64 // trailing revenue share at risk from a stockout

	// Inventory evaluator
	DeadStockSellThrough float64
	ReorderDaysOfStock   float64

	// Scorer
	SeverityWeight       float64 // severity contribution to impact, 0-60 by default
	RevenueWeight        float64 // revenue contribution to impact, 0-40 by default
	StepEffort           float64 // effort added per remediation step
	BaseEffort           map[Category]float64
	ConfidenceWindowDays float64
	MinConfidenceDays    float64
	LowDataConfidenceCap float64

	// Priority buckets
	CriticalImpact    float64
	CriticalMaxEffort float64
	HighImpact        float64
	MediumImpact      float64
}

func DefaultConfig() Config {
	return Config{
		CheckoutAbandonThreshold: defaultCheckoutAbandonThreshold,
		DeviceGapThreshold:       defaultDeviceGapThreshold,
		MobileRevenueShare:       defaultMobileRevenueShare,

		WinbackFraction:     defaultWinbackFraction,
		WinbackRecoveryRate: defaultWinbackRecoveryRate,

		BounceRateMargin:     defaultBounceRateMargin,
		BounceRevenueFactor:  defaultBounceRevenueFactor,
		StockoutRevenueShare: defaultStockoutRevenueShare,

		DeadStockSellThrough: defaultDeadStockSellThrough,
		ReorderDaysOfStock:   defaultReorderDaysOfStock,

		SeverityWeight: defaultSeverityWeight,
		RevenueWeight:  defaultRevenueWeight,
		StepEffort:     defaultStepEffort,
		BaseEffort: map[Category]float64{
			CategoryTraffic:    20,
			CategoryRetention:  25,
			CategoryRevenue:    30,
			CategoryInventory:  40,
			CategoryConversion: 45,
		},
		ConfidenceWindowDays: defaultConfidenceWindowDays,
		MinConfidenceDays:    defaultMinConfidenceDays,
		LowDataConfidenceCap: defaultLowDataConfidenceCap,

		CriticalImpact:    defaultCriticalImpact,
		CriticalMaxEffort: defaultCriticalMaxEffort,
		HighImpact:        defaultHighImpact,
		MediumImpact:      defaultMediumImpact,
	}
}

func (cfg Config) baseEffort(cat Category) float64 {
	if v, ok := cfg.BaseEffort[cat]; ok {
		return v
	}
	return 35
}
