package user

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the admin user routes. The group must run
// middleware.AdminAuthMiddleware.
func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	router.POST("/users/:id/size", h.GiveSize)
	router.PUT("/users/:id/size", h.SetSize)
	router.DELETE("/users/:id", h.DeleteUser)
}
