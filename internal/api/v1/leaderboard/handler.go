package leaderboard

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"growstat-backend/internal/api/v1/common"
	"growstat-backend/internal/services"
	"growstat-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Leaderboard(ctx context.Context, n int) (*services.Leaderboard, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Get godoc
// @Summary Leaderboard
// @Description Ranks every user by size, largest first.
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Entries to return" default(10)
// @Success 200 {object} utils.Response{data=LeaderboardResponse}
// @Failure 400 {object} utils.Response
// @Failure 503 {object} utils.Response
// @Router /leaderboard [get]
func (h *Handler) Get(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > MaxLimit {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid limit number"))
			return
		}
		limit = parsed
	}

	board, err := h.svc.Leaderboard(c.Request.Context(), limit)
	if errors.Is(err, services.ErrLeaderboardEmpty) {
		c.JSON(http.StatusOK, utils.NewSuccessResponse("Leaderboard is empty", LeaderboardResponse{Entries: []EntryItem{}}))
		return
	}
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Leaderboard retrieved successfully", toResponse(board)))
}
