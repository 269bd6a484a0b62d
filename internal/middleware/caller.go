package middleware

import (
	"net/http"

	"growstat-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	callerIDKey    = "callerID"
	displayNameKey = "displayName"
)

// CallerMiddleware requires the transport supplied caller identity and
// stores it in the gin context.
func CallerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, displayName, err := utils.ExtractCaller(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
			c.Abort()
			return
		}

		c.Set(callerIDKey, callerID)
		c.Set(displayNameKey, displayName)
		c.Next()
	}
}

// CallerID returns the identity stored by CallerMiddleware.
func CallerID(c *gin.Context) string {
	return c.GetString(callerIDKey)
}

func DisplayName(c *gin.Context) string {
	return c.GetString(displayNameKey)
}
