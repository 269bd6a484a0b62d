package growth

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"growstat-backend/internal/api/v1/common"
	"growstat-backend/internal/middleware"
	"growstat-backend/internal/services"
	"growstat-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Grow(ctx context.Context, callerID, displayName string) (*services.GrowthResult, error)
	Status(ctx context.Context, callerID, displayName string) (*services.StatusResult, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Grow godoc
// @Summary Grow once
// @Description Adds a random increment to the caller's size, at most once per hour.
// @Tags growth
// @Produce json
// @Param X-Caller-ID header string true "Caller id"
// @Param X-Display-Name header string false "Caller display name"
// @Success 200 {object} utils.Response{data=GrowResponse}
// @Failure 429 {object} utils.Response{data=GrowResponse}
// @Failure 503 {object} utils.Response
// @Router /grow [post]
func (h *Handler) Grow(c *gin.Context) {
	res, err := h.svc.Grow(c.Request.Context(), middleware.CallerID(c), middleware.DisplayName(c))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	resp := GrowResponse{
		Allowed:     res.Allowed,
		DisplayName: res.DisplayName,
		Growth:      res.Growth,
		Size:        res.Size,
	}
	if !res.Allowed {
		retryAfter := int(math.Ceil(res.Remaining.Seconds()))
		resp.RemainingMinutes = res.RemainingMinutes
		resp.RemainingSeconds = res.RemainingSeconds
		resp.RetryAfter = retryAfter
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.JSON(http.StatusTooManyRequests, utils.NewResponse(http.StatusTooManyRequests, "Cooldown active", resp))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Grown successfully", resp))
}

// Status godoc
// @Summary Current size
// @Description Returns the caller's size without changing it.
// @Tags growth
// @Produce json
// @Param X-Caller-ID header string true "Caller id"
// @Success 200 {object} utils.Response{data=StatusResponse}
// @Failure 503 {object} utils.Response
// @Router /me [get]
func (h *Handler) Status(c *gin.Context) {
	res, err := h.svc.Status(c.Request.Context(), middleware.CallerID(c), middleware.DisplayName(c))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Status retrieved successfully", StatusResponse{
		DisplayName:  res.DisplayName,
		Size:         res.Size,
		Exists:       res.Exists,
		NextGrowthIn: int(math.Ceil(res.NextGrowthIn.Seconds())),
	}))
}
