// Package common holds response helpers shared by the v1 handlers.
package common

import (
	"context"
	"errors"
	"net/http"

	"growstat-backend/internal/services"
	"growstat-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// StatusFor maps a service error to an HTTP status and a client message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		return http.StatusBadRequest, "Invalid argument"
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden, "Forbidden: Admins only"
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, services.ErrStorageUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "Storage is unavailable, try again later"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// RespondError writes the error envelope for err. Server side failures are
// attached to the context so the request logger records them.
func RespondError(c *gin.Context, err error) {
	status, message := StatusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, utils.NewErrorResponse(status, message))
}
