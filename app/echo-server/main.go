package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shopifyPulse/app/echo-server/router"
	"shopifyPulse/business/analytics"
	"shopifyPulse/business/insight"
	"shopifyPulse/business/recommend"
	storeService "shopifyPulse/business/store"
	userService "shopifyPulse/business/user"
	"shopifyPulse/internal/middleware"
	psqlRepo "shopifyPulse/internal/repository/postgres"
	redisRepo "shopifyPulse/internal/repository/redis"
	"shopifyPulse/internal/rest"
	"shopifyPulse/pkg/config"
	"shopifyPulse/pkg/database"
	redisdb "shopifyPulse/pkg/database/redis"
	"shopifyPulse/pkg/logger"
	"shopifyPulse/pkg/metrics"
	"shopifyPulse/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting ShopifyPulse", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	storeRepo := psqlRepo.NewStoreRepository(db)
	metricRepo := psqlRepo.NewMetricRepository(db)
	funnelRepo := psqlRepo.NewFunnelRepository(db)
	cohortRepo := psqlRepo.NewCohortRepository(db)
	inventoryRepo := psqlRepo.NewInventoryRepository(db)
	benchmarkRepo := psqlRepo.NewBenchmarkRepository(db)
	recoRepo := psqlRepo.NewRecommendationRepository(db)

	// Optional recommendation cache
	var recoCache recommend.RecommendationCache
	if cfg.Redis.Enabled {
		redisClient, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, running without cache", "error", err)
		} else {
			ttl := time.Duration(cfg.Redis.CacheTTLSec) * time.Second
			recoCache = redisRepo.NewRecommendationCache(redisClient, ttl)
			logger.Info("Recommendation cache enabled", "ttl", ttl)
		}
	}

	// Init service
	analyticsService := analytics.NewAnalyticsService(storeRepo, metricRepo, funnelRepo, cohortRepo, inventoryRepo, benchmarkRepo)
	engine := insight.NewEngine(insight.DefaultConfig())
	recommendService := recommend.NewRecommendService(engine, analyticsService, recoRepo, recoCache)
	usersService := userService.NewUserService(userRepo, validate)
	storesService := storeService.NewStoreService(storeRepo, analyticsService, cfg.App.StoreTokenKey)

	// Init handler
	healthHandler := rest.NewHealthHandler(cfg.App.Name, cfg.App.Version)
	userHandler := rest.NewUserHandler(usersService)
	analyticsHandler := rest.NewAnalyticsHandler(analyticsService, cfg.App.DemoStoreID)
	recommendHandler := rest.NewRecommendHandler(recommendService, cfg.App.DemoStoreID, cfg.App.RecommendationCap)
	storeHandler := rest.NewStoreHandler(storesService, cfg.App.DemoStoreID)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Prometheus scrape endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupHealthRoutes(api, healthHandler)
	router.SetupUserRoutes(api, userHandler)
	router.SetupAnalyticsRoutes(api, analyticsHandler)
	router.SetupRecommendationRoutes(api, recommendHandler)
	router.SetupStoreRoutes(api, storeHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
