package api

import (
	"net/http"
	"time"

	adminUser "growstat-backend/internal/api/v1/admin/user"
	"growstat-backend/internal/api/v1/commands"
	"growstat-backend/internal/api/v1/growth"
	"growstat-backend/internal/api/v1/leaderboard"
	"growstat-backend/internal/command"
	"growstat-backend/internal/middleware"
	"growstat-backend/internal/services"
	"growstat-backend/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Service    *services.Service
	Dispatcher *command.Dispatcher
	// Gatherer backs /metrics; nil skips the route.
	Gatherer       prometheus.Gatherer
	CorsOrigins    []string
	RequestTimeout time.Duration
}

func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	// Configure CORS
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", utils.CallerIDHeader, utils.DisplayNameHeader},
		ExposeHeaders: []string{"Content-Length", "Retry-After", "X-Request-ID"},
		MaxAge:        300 * time.Second,
	}
	if len(deps.CorsOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = deps.CorsOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", healthz(deps.Service))
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// API v1
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Timeout(deps.RequestTimeout))
	{
		commands.RegisterRoutes(v1, commands.NewHandler(deps.Dispatcher))
		leaderboard.RegisterRoutes(v1, leaderboard.NewHandler(deps.Service))

		caller := v1.Group("/")
		caller.Use(middleware.CallerMiddleware())
		{
			growth.RegisterRoutes(caller, growth.NewHandler(deps.Service))
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware(deps.Service))
		{
			adminUser.RegisterRoutes(admin, adminUser.NewHandler(deps.Service))
		}
	}

	return router
}

func healthz(svc *services.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, utils.NewErrorResponse(http.StatusServiceUnavailable, "Storage unavailable"))
			return
		}
		c.JSON(http.StatusOK, utils.NewSuccessResponse("ok", nil))
	}
}
