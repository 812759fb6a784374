package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shopifyPulse/domain"
	"shopifyPulse/pkg/logger"
	"shopifyPulse/pkg/metrics"
)

type AnalyticsService interface {
	DashboardMetrics(ctx context.Context, storeID uint, period string) (*domain.DashboardMetrics, error)
	FunnelData(ctx context.Context, storeID uint, period string) (*domain.FunnelView, error)
}

type AnalyticsHandler struct {
	analyticsService AnalyticsService
	validator        *validator.Validate
	timeout          time.Duration
	demoStoreID      uint
}

func NewAnalyticsHandler(analyticsService AnalyticsService, demoStoreID uint) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		validator:        validator.New(),
		timeout:          15 * time.Second,
		demoStoreID:      demoStoreID,
	}
}

type AnalyticsQuery struct {
	StoreID uint   `query:"store_id"`
	Period  string `query:"period" validate:"omitempty,oneof=7d 30d 90d 1y"`
}

// storeOrDemo falls back to the seeded demo store when no store_id is
// given, so the dashboard works out of the box.
func (h *AnalyticsHandler) storeOrDemo(q AnalyticsQuery) uint {
	if q.StoreID == 0 {
		return h.demoStoreID
	}
	return q.StoreID
}

func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	metrics.DashboardRequests.Inc()

	var q AnalyticsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	dashboard, err := h.analyticsService.DashboardMetrics(ctx, h.storeOrDemo(q), q.Period)
	if err != nil {
		logger.Error("failed to build dashboard metrics", "error", err)
		if err.Error() == "store not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(dashboard))
}

func (h *AnalyticsHandler) Funnel(c echo.Context) error {
	var q AnalyticsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	funnel, err := h.analyticsService.FunnelData(ctx, h.storeOrDemo(q), q.Period)
	if err != nil {
		logger.Error("failed to build funnel view", "error", err)
		if err.Error() == "store not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(funnel))
}
