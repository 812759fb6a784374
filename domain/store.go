package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Store struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"column:name;not null" json:"name"`
	Platform string `gorm:"column:platform;not null" json:"platform"` // shopify, woocommerce
	URL      string `gorm:"column:url" json:"url"`

	// Platform access token, AES-CBC encrypted at rest.
	AccessToken string `gorm:"column:access_token" json:"-"`

	AnnualRevenue   float64 `gorm:"column:annual_revenue;type:numeric" json:"annual_revenue"`
	MonthlyVisitors int     `gorm:"column:monthly_visitors" json:"monthly_visitors"`
	ConversionRate  float64 `gorm:"column:conversion_rate;type:numeric" json:"conversion_rate"`
	AOV             float64 `gorm:"column:aov;type:numeric" json:"aov"`
	LTV             float64 `gorm:"column:ltv;type:numeric" json:"ltv"`

	Tier string `gorm:"column:tier;default:starter" json:"tier"` // starter, growth, scale

	IsActive    bool       `gorm:"column:is_active;default:true" json:"is_active"`
	IsConnected bool       `gorm:"column:is_connected;default:false" json:"is_connected"`
	ConnectedAt *time.Time `gorm:"column:connected_at" json:"connected_at,omitempty"`
	LastSync    *time.Time `gorm:"column:last_sync" json:"last_sync,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Store) TableName() string {
	return "stores"
}

// StoreMetric is one day of traffic and commerce figures for a store.
type StoreMetric struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	StoreID uint      `gorm:"column:store_id;not null;index:idx_store_metrics_store_date" json:"store_id"`
	Date    time.Time `gorm:"column:date;not null;index:idx_store_metrics_store_date" json:"date"`

	Sessions           int     `gorm:"column:sessions;default:0" json:"sessions"`
	UniqueVisitors     int     `gorm:"column:unique_visitors;default:0" json:"unique_visitors"`
	PageViews          int     `gorm:"column:page_views;default:0" json:"page_views"`
	BounceRate         float64 `gorm:"column:bounce_rate;type:numeric" json:"bounce_rate"`
	AvgSessionDuration int     `gorm:"column:avg_session_duration" json:"avg_session_duration"` // seconds

	AddToCarts int     `gorm:"column:add_to_carts;default:0" json:"add_to_carts"`
	Checkouts  int     `gorm:"column:checkouts;default:0" json:"checkouts"`
	Orders     int     `gorm:"column:orders;default:0" json:"orders"`
	Revenue    float64 `gorm:"column:revenue;type:numeric;default:0" json:"revenue"`

	// Keyed by channel/device name, each value an object with "share"
	// and "conversion" fields.
	TrafficSources  datatypes.JSONMap `gorm:"column:traffic_sources;type:jsonb" json:"traffic_sources"`
	DeviceBreakdown datatypes.JSONMap `gorm:"column:device_breakdown;type:jsonb" json:"device_breakdown"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (StoreMetric) TableName() string {
	return "store_metrics"
}

type FunnelStage struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	StoreID uint      `gorm:"column:store_id;not null;index" json:"store_id"`
	Date    time.Time `gorm:"column:date;not null" json:"date"`

	StageName      string  `gorm:"column:stage_name;not null" json:"stage_name"`
	StageOrder     int     `gorm:"column:stage_order;not null" json:"stage_order"`
	Visitors       int     `gorm:"column:visitors;default:0" json:"visitors"`
	Conversions    int     `gorm:"column:conversions;default:0" json:"conversions"`
	Dropoffs       int     `gorm:"column:dropoffs;default:0" json:"dropoffs"`
	ConversionRate float64 `gorm:"column:conversion_rate;type:numeric" json:"conversion_rate"`

	IndustryBenchmark float64 `gorm:"column:industry_benchmark;type:numeric" json:"industry_benchmark"`
	PercentileRank    int     `gorm:"column:percentile_rank" json:"percentile_rank"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (FunnelStage) TableName() string {
	return "funnel_stages"
}

// CustomerCohort groups a store's customers by purchase recency.
type CustomerCohort struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StoreID uint `gorm:"column:store_id;not null;uniqueIndex:idx_cohort_store_bucket" json:"store_id"`

	RecencyBucket string  `gorm:"column:recency_bucket;not null;uniqueIndex:idx_cohort_store_bucket" json:"recency_bucket"` // 0-30d, 31-60d, 61-90d, over-90d
	Customers     int     `gorm:"column:customers;default:0" json:"customers"`
	AvgOrderValue float64 `gorm:"column:avg_order_value;type:numeric" json:"avg_order_value"`

	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CustomerCohort) TableName() string {
	return "customer_cohorts"
}

// InventoryLevel is the latest stock signal for one SKU.
type InventoryLevel struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	StoreID uint   `gorm:"column:store_id;not null;uniqueIndex:idx_inventory_store_sku" json:"store_id"`
	SKU     string `gorm:"column:sku;not null;uniqueIndex:idx_inventory_store_sku" json:"sku"`

	ProductName     string  `gorm:"column:product_name;type:text" json:"product_name"`
	UnitsOnHand     int     `gorm:"column:units_on_hand;default:0" json:"units_on_hand"`
	DaysOfStock     float64 `gorm:"column:days_of_stock;type:numeric" json:"days_of_stock"`
	SellThroughRate float64 `gorm:"column:sell_through_rate;type:numeric" json:"sell_through_rate"`

	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (InventoryLevel) TableName() string {
	return "inventory_levels"
}

// IndustryBenchmark holds peer averages used for comparison on the
// dashboard and by the traffic evaluator.
type IndustryBenchmark struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Platform string `gorm:"column:platform;not null;uniqueIndex:idx_benchmark_platform_tier" json:"platform"`
	Tier     string `gorm:"column:tier;not null;uniqueIndex:idx_benchmark_platform_tier" json:"tier"`

	ConversionRate       float64 `gorm:"column:conversion_rate;type:numeric" json:"conversion_rate"`
	BounceRate           float64 `gorm:"column:bounce_rate;type:numeric" json:"bounce_rate"`
	AOV                  float64 `gorm:"column:aov;type:numeric" json:"aov"`
	ChannelConcentration float64 `gorm:"column:channel_concentration;type:numeric" json:"channel_concentration"`

	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (IndustryBenchmark) TableName() string {
	return "industry_benchmarks"
}
