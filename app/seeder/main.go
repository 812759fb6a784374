package main

import (
	"context"
	"log"
	"math"
	"math/rand"
	"time"

	"gorm.io/datatypes"

	"shopifyPulse/domain"
	psqlRepo "shopifyPulse/internal/repository/postgres"
	"shopifyPulse/pkg/config"
	"shopifyPulse/pkg/database"
	"shopifyPulse/pkg/logger"
	"shopifyPulse/pkg/utils"
)

// Seeds 90 days of demo data for the "UrbanThreads" store. The numbers
// are shaped so the dashboard has visible trends and the recommendation
// engine has something to say: a leaky checkout, a weak mobile funnel
// and a large lapsed cohort.
const (
	seedDays        = 90
	weekendBoost    = 1.3
	dailyGrowth     = 0.002
	baseVisitors    = 1500
	demoAOV         = 78.0
	atcRate         = 0.15
	checkoutRate    = 0.40 // of add-to-carts
	purchaseRate    = 0.58 // of checkouts, a 42% drop-off
	productViewRate = 0.50
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Seeding demo data")

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	storeRepo := psqlRepo.NewStoreRepository(db)
	metricRepo := psqlRepo.NewMetricRepository(db)
	funnelRepo := psqlRepo.NewFunnelRepository(db)
	cohortRepo := psqlRepo.NewCohortRepository(db)
	inventoryRepo := psqlRepo.NewInventoryRepository(db)
	benchmarkRepo := psqlRepo.NewBenchmarkRepository(db)
	userRepo := psqlRepo.NewUserRepository(db)

	if _, err := storeRepo.FindByID(ctx, cfg.App.DemoStoreID); err == nil {
		logger.Info("Demo store already present, nothing to do", "store_id", cfg.App.DemoStoreID)
		return
	}

	store := domain.Store{
		ID:              cfg.App.DemoStoreID,
		Name:            "UrbanThreads",
		Platform:        "shopify",
		URL:             "https://urbanthreads.example.com",
		AnnualRevenue:   2300000,
		MonthlyVisitors: 45000,
		ConversionRate:  0.0348,
		AOV:             demoAOV,
		LTV:             156,
		Tier:            "scale",
		IsActive:        true,
	}
	if err := storeRepo.Create(ctx, &store); err != nil {
		logger.Fatal("Failed to create demo store", "error", err)
	}

	metrics, funnels := buildDailyRows(store.ID, rng)
	if err := metricRepo.CreateBatch(ctx, metrics); err != nil {
		logger.Fatal("Failed to seed store metrics", "error", err)
	}
	if err := funnelRepo.CreateBatch(ctx, funnels); err != nil {
		logger.Fatal("Failed to seed funnel stages", "error", err)
	}

	cohorts := []domain.CustomerCohort{
		{StoreID: store.ID, RecencyBucket: "0-30d", Customers: 1800, AvgOrderValue: 82},
		{StoreID: store.ID, RecencyBucket: "31-60d", Customers: 1100, AvgOrderValue: 79},
		{StoreID: store.ID, RecencyBucket: "61-90d", Customers: 700, AvgOrderValue: 76},
		{StoreID: store.ID, RecencyBucket: "over-90d", Customers: 1400, AvgOrderValue: 145},
	}
	if err := cohortRepo.Upsert(ctx, cohorts); err != nil {
		logger.Fatal("Failed to seed customer cohorts", "error", err)
	}

	levels := []domain.InventoryLevel{
		{StoreID: store.ID, SKU: "UT-TEE-001", ProductName: "Organic Cotton Tee", UnitsOnHand: 820, DaysOfStock: 41, SellThroughRate: 0.58},
		{StoreID: store.ID, SKU: "UT-HOOD-014", ProductName: "Fleece Hoodie", UnitsOnHand: 95, DaysOfStock: 6, SellThroughRate: 0.86},
		{StoreID: store.ID, SKU: "UT-CAP-032", ProductName: "Corduroy Cap", UnitsOnHand: 1240, DaysOfStock: 210, SellThroughRate: 0.07},
		{StoreID: store.ID, SKU: "UT-SOCK-009", ProductName: "Ribbed Socks 3-Pack", UnitsOnHand: 430, DaysOfStock: 28, SellThroughRate: 0.44},
	}
	if err := inventoryRepo.Upsert(ctx, levels); err != nil {
		logger.Fatal("Failed to seed inventory levels", "error", err)
	}

	benchmark := domain.IndustryBenchmark{
		Platform:             "shopify",
		Tier:                 "scale",
		ConversionRate:       0.045,
		BounceRate:           0.45,
		AOV:                  85,
		ChannelConcentration: 0.60,
	}
	if err := benchmarkRepo.Upsert(ctx, &benchmark); err != nil {
		logger.Fatal("Failed to seed industry benchmark", "error", err)
	}

	passwordHash, err := utils.HashPassword("demopass123")
	if err != nil {
		logger.Fatal("Failed to hash demo password", "error", err)
	}
	demoUser := domain.User{
		Email:     "demo@shopifypulse.io",
		Password:  passwordHash,
		FirstName: "Demo",
		LastName:  "Merchant",
		Role:      "admin",
		StoreID:   store.ID,
	}
	if err := userRepo.Create(ctx, &demoUser); err != nil {
		logger.Fatal("Failed to seed demo user", "error", err)
	}

	logger.Info("Demo data seeded",
		"store_id", store.ID,
		"metric_days", len(metrics),
		"funnel_rows", len(funnels),
	)
}

func buildDailyRows(storeID uint, rng *rand.Rand) ([]domain.StoreMetric, []domain.FunnelStage) {
	metrics := make([]domain.StoreMetric, 0, seedDays)
	funnels := make([]domain.FunnelStage, 0, seedDays*5)

	today := time.Now().Truncate(24 * time.Hour)

	for i := seedDays; i > 0; i-- {
		date := today.AddDate(0, 0, -i)

		factor := 1 + dailyGrowth*float64(seedDays-i)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			factor *= weekendBoost
		}
		factor *= 0.9 + rng.Float64()*0.2

		visitors := int(math.Round(baseVisitors * factor))
		sessions := int(math.Round(float64(visitors) * 1.15))
		addToCarts := int(math.Round(float64(visitors) * atcRate))
		checkouts := int(math.Round(float64(addToCarts) * checkoutRate))
		orders := int(math.Round(float64(checkouts) * purchaseRate))
		revenue := float64(orders) * demoAOV * (0.95 + rng.Float64()*0.1)
		bounce := 0.52 * (0.95 + rng.Float64()*0.1)

		metrics = append(metrics, domain.StoreMetric{
			StoreID:            storeID,
			Date:               date,
			Sessions:           sessions,
			UniqueVisitors:     visitors,
			PageViews:          int(math.Round(float64(sessions) * 4.2)),
			BounceRate:         bounce,
			AvgSessionDuration: 150 + rng.Intn(60),
			AddToCarts:         addToCarts,
			Checkouts:          checkouts,
			Orders:             orders,
			Revenue:            revenue,
			TrafficSources: datatypes.JSONMap{
				"organic": map[string]interface{}{"share": 0.35, "conversion": 0.041},
				"paid":    map[string]interface{}{"share": 0.25, "conversion": 0.036},
				"social":  map[string]interface{}{"share": 0.20, "conversion": 0.022},
				"email":   map[string]interface{}{"share": 0.15, "conversion": 0.055},
				"direct":  map[string]interface{}{"share": 0.05, "conversion": 0.047},
			},
			DeviceBreakdown: datatypes.JSONMap{
				"desktop": map[string]interface{}{"share": 0.45, "conversion": 0.062},
				"mobile":  map[string]interface{}{"share": 0.48, "conversion": 0.041},
				"tablet":  map[string]interface{}{"share": 0.07, "conversion": 0.055},
			},
		})

		funnels = append(funnels, dailyFunnel(storeID, date, visitors)...)
	}

	return metrics, funnels
}

func dailyFunnel(storeID uint, date time.Time, visitors int) []domain.FunnelStage {
	stages := []struct {
		name      string
		fraction  float64
		benchmark float64
	}{
		{"Visit", 1.0, 1.0},
		{"Product View", productViewRate, 0.55},
		{"Add to Cart", atcRate, 0.12},
		{"Checkout", atcRate * checkoutRate, 0.45},
		{"Purchase", atcRate * checkoutRate * purchaseRate, 0.65},
	}

	out := make([]domain.FunnelStage, 0, len(stages))
	for idx, stage := range stages {
		stageVisitors := int(math.Round(float64(visitors) * stage.fraction))

		conversions := stageVisitors
		if idx+1 < len(stages) {
			conversions = int(math.Round(float64(visitors) * stages[idx+1].fraction))
		}

		row := domain.FunnelStage{
			StoreID:           storeID,
			Date:              date,
			StageName:         stage.name,
			StageOrder:        idx + 1,
			Visitors:          stageVisitors,
			Conversions:       conversions,
			Dropoffs:          stageVisitors - conversions,
			IndustryBenchmark: stage.benchmark,
			PercentileRank:    35 + idx*5,
		}
		if stageVisitors > 0 {
			row.ConversionRate = float64(conversions) / float64(stageVisitors)
		}
		out = append(out, row)
	}
	return out
}
