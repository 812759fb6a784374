package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	appName string
	version string
}

func NewHealthHandler(appName, version string) *HealthHandler {
	return &HealthHandler{
		appName: appName,
		version: version,
	}
}

func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   h.appName,
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
