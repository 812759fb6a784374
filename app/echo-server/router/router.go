package router

import (
	"github.com/labstack/echo/v4"

	"shopifyPulse/internal/middleware"
	"shopifyPulse/internal/rest"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.GET("/me", handler.Me, middleware.AuthMiddleware())
}

func SetupAnalyticsRoutes(api *echo.Group, handler *rest.AnalyticsHandler) {
	analytics := api.Group("/metrics", middleware.AuthMiddleware())

	analytics.GET("/dashboard", handler.Dashboard)
	analytics.GET("/funnel", handler.Funnel)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendHandler) {
	reco := api.Group("/recommendations", middleware.AuthMiddleware())

	reco.GET("", handler.Get)
	reco.POST("/:id/dismiss", handler.Dismiss)
	reco.POST("/:id/implement", handler.Implement)

	api.GET("/alerts", handler.Alerts, middleware.AuthMiddleware())
}

func SetupStoreRoutes(api *echo.Group, handler *rest.StoreHandler) {
	store := api.Group("/store", middleware.AuthMiddleware())

	store.GET("/overview", handler.Overview)
	store.POST("/connect", handler.Connect, middleware.AdminOnly())
	store.POST("/sync", handler.Sync)
}

func SetupHealthRoutes(api *echo.Group, handler *rest.HealthHandler) {
	api.GET("/health", handler.Health)
}
