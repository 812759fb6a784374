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

type RecommendService interface {
	Generate(ctx context.Context, storeID uint, period string, limit int) ([]domain.Recommendation, error)
	List(ctx context.Context, storeID uint) ([]domain.Recommendation, error)
	Dismiss(ctx context.Context, id string) error
	Implement(ctx context.Context, id string) error
	Alerts(ctx context.Context, storeID uint) ([]domain.Alert, error)
}

type RecommendHandler struct {
	recommendService RecommendService
	validator        *validator.Validate
	timeout          time.Duration
	demoStoreID      uint
	defaultLimit     int
}

func NewRecommendHandler(recommendService RecommendService, demoStoreID uint, defaultLimit int) *RecommendHandler {
	return &RecommendHandler{
		recommendService: recommendService,
		validator:        validator.New(),
		timeout:          15 * time.Second,
		demoStoreID:      demoStoreID,
		defaultLimit:     defaultLimit,
	}
}

type RecommendQuery struct {
	StoreID uint   `query:"store_id"`
	Period  string `query:"period" validate:"omitempty,oneof=7d 30d 90d 1y"`
	Limit   int    `query:"limit" validate:"omitempty,gte=1,lte=50"`
	Saved   bool   `query:"saved"`
}

func (h *RecommendHandler) storeOrDemo(q RecommendQuery) uint {
	if q.StoreID == 0 {
		return h.demoStoreID
	}
	return q.StoreID
}

// Get regenerates recommendations from current metrics. With ?saved=true
// it returns the persisted list instead, keeping user dismissals visible.
func (h *RecommendHandler) Get(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.RecommendationLatency.Observe(time.Since(start).Seconds())
	}()
	metrics.RecommendationRequests.Inc()

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if q.Limit <= 0 {
		q.Limit = h.defaultLimit
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	storeID := h.storeOrDemo(q)

	var (
		recs []domain.Recommendation
		err  error
	)
	if q.Saved {
		recs, err = h.recommendService.List(ctx, storeID)
	} else {
		recs, err = h.recommendService.Generate(ctx, storeID, q.Period, q.Limit)
	}
	if err != nil {
		logger.Error("failed to get recommendations", "store_id", storeID, "error", err)
		if err.Error() == "store not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

func (h *RecommendHandler) Dismiss(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "recommendation id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.recommendService.Dismiss(ctx, id); err != nil {
		if err.Error() == "recommendation not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]string{"id": id, "status": "dismissed"}))
}

func (h *RecommendHandler) Implement(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "recommendation id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.recommendService.Implement(ctx, id); err != nil {
		if err.Error() == "recommendation not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]string{"id": id, "status": "implemented"}))
}

func (h *RecommendHandler) Alerts(c echo.Context) error {
	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	alerts, err := h.recommendService.Alerts(ctx, h.storeOrDemo(q))
	if err != nil {
		logger.Error("failed to build alerts", "error", err)
		if err.Error() == "store not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(alerts))
}
