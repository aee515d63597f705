package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"catalog-service/internal/models"
	"catalog-service/internal/services"
)

// respondError maps a service error to the uniform error envelope. The
// configuration case intentionally answers 200 so the dashboard can render
// its "configure an API key" state instead of an error page.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
		code = "VALIDATION_ERROR"
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
		code = "CONFLICT"
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
		code = "NOT_FOUND"
	case errors.Is(err, services.ErrConfiguration):
		status = http.StatusOK
		code = "API_KEY_NOT_CONFIGURED"
	case errors.Is(err, services.ErrExternalService):
		status = http.StatusBadGateway
		code = "PIPELINE_ERROR"
	}

	message := err.Error()
	if code == "INTERNAL_ERROR" {
		// Do not leak internals to clients.
		message = "An internal error occurred"
	}

	c.JSON(status, models.ErrorResponse{
		Success:   false,
		Error:     models.Error{Code: code, Message: message},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// respondBadRequest reports a malformed request body or parameter
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success:   false,
		Error:     models.Error{Code: "VALIDATION_ERROR", Message: message},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
