package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopifyPulse/pkg/logger"
	jsonres "shopifyPulse/pkg/response"
)

// ErrorHandler is the central echo HTTP error handler. Anything a
// handler does not map itself lands here.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("unhandled request error",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}

	status := "INTERNAL_SERVER_ERROR"
	switch code {
	case http.StatusBadRequest:
		status = "BAD_REQUEST"
	case http.StatusUnauthorized:
		status = "UNAUTHORIZED"
	case http.StatusForbidden:
		status = "FORBIDDEN"
	case http.StatusNotFound:
		status = "NOT_FOUND"
	}

	if err := c.JSON(code, jsonres.Error(status, message, nil)); err != nil {
		logger.Error("failed to write error response", "error", err)
	}
}
