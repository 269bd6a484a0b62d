package growth

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the caller facing routes. The group must run
// middleware.CallerMiddleware.
func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	router.POST("/grow", h.Grow)
	router.GET("/me", h.Status)
}
