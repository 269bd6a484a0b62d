package middleware

import (
	"net/http"

	"growstat-backend/internal/utils"
	"growstat-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminChecker reports whether a caller belongs to the privileged set.
type AdminChecker interface {
	IsAdmin(callerID string) bool
}

// AdminAuthMiddleware validates that the caller has admin privileges. It
// resolves the caller itself so it can be mounted without CallerMiddleware.
func AdminAuthMiddleware(admins AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, displayName, err := utils.ExtractCaller(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
			c.Abort()
			return
		}

		if !admins.IsAdmin(callerID) {
			logger.Log.Warn("Unauthorized admin access attempt",
				zap.String("caller_id", callerID),
				zap.String("path", c.FullPath()),
				zap.String("request_id", c.GetString(requestIDKey)),
			)
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Forbidden: Admins only"))
			c.Abort()
			return
		}

		c.Set(callerIDKey, callerID)
		c.Set(displayNameKey, displayName)
		c.Next()
	}
}
