package domain

import "time"

// Dashboard payloads returned by the analytics endpoints. Field names track
// what the dashboard front-end consumes.

type DashboardMetrics struct {
	StoreID         uint                    `json:"store_id"`
	Period          string                  `json:"period"`
	Summary         DashboardSummary        `json:"summary"`
	RevenueTrend    []RevenuePoint          `json:"revenue_trend"`
	TrafficSources  map[string]ChannelStats `json:"traffic_sources"`
	DeviceBreakdown map[string]DeviceStats  `json:"device_breakdown"`
	Benchmarks      BenchmarkComparison     `json:"benchmarks"`
	HealthScore     int                     `json:"health_score"`
}

type DashboardSummary struct {
	TotalRevenue     float64 `json:"total_revenue"`
	RevenueChange    float64 `json:"revenue_change"`
	TotalOrders      int     `json:"total_orders"`
	OrdersChange     float64 `json:"orders_change"`
	TotalVisitors    int     `json:"total_visitors"`
	VisitorsChange   float64 `json:"visitors_change"`
	ConversionRate   float64 `json:"conversion_rate"`
	ConversionChange float64 `json:"conversion_change"`
	AOV              float64 `json:"aov"`
	AOVChange        float64 `json:"aov_change"`
}

type RevenuePoint struct {
	Date     string  `json:"date"`
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
	Visitors int     `json:"visitors"`
}

type ChannelStats struct {
	Visitors   int     `json:"visitors"`
	Share      float64 `json:"share"`
	Conversion float64 `json:"conversion"`
}

type DeviceStats struct {
	Visitors   int     `json:"visitors"`
	Share      float64 `json:"share"`
	Conversion float64 `json:"conversion"`
}

type BenchmarkComparison struct {
	ConversionRate BenchmarkEntry `json:"conversion_rate"`
	BounceRate     BenchmarkEntry `json:"bounce_rate"`
	AOV            BenchmarkEntry `json:"aov"`
}

type BenchmarkEntry struct {
	Store    float64 `json:"store"`
	Industry float64 `json:"industry"`
}

type FunnelView struct {
	StoreID uint              `json:"store_id"`
	Period  string            `json:"period"`
	Stages  []FunnelStageView `json:"stages"`
	Overall FunnelOverall     `json:"overall"`
}

type FunnelStageView struct {
	Name              string  `json:"name"`
	Visitors          int     `json:"visitors"`
	Conversions       int     `json:"conversions"`
	ConversionRate    float64 `json:"conversion_rate"`
	DropoffRate       float64 `json:"dropoff_rate"`
	IndustryBenchmark float64 `json:"industry_benchmark"`
	Percentile        int     `json:"percentile"`
	Status            string  `json:"status"` // good, normal, warning, critical
}

type FunnelOverall struct {
	VisitToPurchaseRate float64 `json:"visit_to_purchase_rate"`
	IndustryAverage     float64 `json:"industry_average"`
}

type StoreOverview struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Platform        string     `json:"platform"`
	URL             string     `json:"url"`
	AnnualRevenue   float64    `json:"annual_revenue"`
	MonthlyVisitors int        `json:"monthly_visitors"`
	ConversionRate  float64    `json:"conversion_rate"`
	AOV             float64    `json:"aov"`
	LTV             float64    `json:"ltv"`
	Tier            string     `json:"tier"`
	ConnectedAt     *time.Time `json:"connected_at,omitempty"`
	LastSync        *time.Time `json:"last_sync,omitempty"`
	HealthScore     int        `json:"health_score"`
}

// Alert is a dashboard-facing view of a high-priority recommendation.
type Alert struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"` // warning, opportunity
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	Impact           string    `json:"impact"`
	Suggestion       string    `json:"suggestion"`
	PotentialRevenue float64   `json:"potential_revenue,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
