package commands

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	group := router.Group("/commands")
	{
		group.POST("", h.Dispatch)
		group.GET("/help", h.Help)
	}
}
