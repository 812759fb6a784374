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
)

type StoreService interface {
	Overview(ctx context.Context, storeID uint) (*domain.StoreOverview, error)
	Connect(ctx context.Context, storeID uint, platform, url, accessToken string) error
	Sync(ctx context.Context, storeID uint) error
}

type StoreHandler struct {
	storeService StoreService
	validator    *validator.Validate
	timeout      time.Duration
	demoStoreID  uint
}

func NewStoreHandler(storeService StoreService, demoStoreID uint) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		validator:    validator.New(),
		timeout:      15 * time.Second,
		demoStoreID:  demoStoreID,
	}
}

type StoreQuery struct {
	StoreID uint `query:"store_id"`
}

type StoreConnectRequest struct {
	StoreID     uint   `json:"store_id"`
	Platform    string `json:"platform" validate:"required,oneof=shopify woocommerce"`
	URL         string `json:"url" validate:"omitempty,url"`
	AccessToken string `json:"access_token" validate:"required"`
}

func (h *StoreHandler) storeOrDemo(id uint) uint {
	if id == 0 {
		return h.demoStoreID
	}
	return id
}

func (h *StoreHandler) Overview(c echo.Context) error {
	var q StoreQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	overview, err := h.storeService.Overview(ctx, h.storeOrDemo(q.StoreID))
	if err != nil {
		logger.Error("failed to build store overview", "error", err)
		if err.Error() == "store not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(overview))
}

func (h *StoreHandler) Connect(c echo.Context) error {
	var req StoreConnectRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("failed to validate store connect request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	storeID := h.storeOrDemo(req.StoreID)
	if err := h.storeService.Connect(ctx, storeID, req.Platform, req.URL, req.AccessToken); err != nil {
		if err.Error() == "store not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("store connected"))
}

func (h *StoreHandler) Sync(c echo.Context) error {
	var q StoreQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	storeID := h.storeOrDemo(q.StoreID)
	if err := h.storeService.Sync(ctx, storeID); err != nil {
		if err.Error() == "store not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "store is not connected" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"store_id": storeID,
		"status":   "sync recorded",
	}))
}
