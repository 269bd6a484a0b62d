package user

import (
	"context"
	"net/http"
	"strings"

	"growstat-backend/internal/api/v1/common"
	"growstat-backend/internal/middleware"
	"growstat-backend/internal/services"
	"growstat-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Give(ctx context.Context, callerID, targetID string, delta float64) (*services.AdminResult, error)
	Set(ctx context.Context, callerID, targetID string, value float64) (*services.AdminResult, error)
	Remove(ctx context.Context, callerID, targetID string) (*services.AdminResult, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// GiveSize godoc
// @Summary Give size
// @Description Adds amount to a user's size, creating the user if needed. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Caller-ID header string true "Admin caller id"
// @Param id path string true "Target user ID"
// @Param body body GiveSizeRequest true "Amount to add"
// @Success 200 {object} utils.Response{data=UserSizeItem}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 503 {object} utils.Response
// @Router /admin/users/{id}/size [post]
func (h *Handler) GiveSize(c *gin.Context) {
	targetID, ok := targetParam(c)
	if !ok {
		return
	}

	var req GiveSizeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	res, err := h.svc.Give(c.Request.Context(), middleware.CallerID(c), targetID, *req.Amount)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Size given successfully", toItem(res)))
}

// SetSize godoc
// @Summary Set size
// @Description Replaces a user's size, creating the user if needed. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Caller-ID header string true "Admin caller id"
// @Param id path string true "Target user ID"
// @Param body body SetSizeRequest true "New size"
// @Success 200 {object} utils.Response{data=UserSizeItem}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 503 {object} utils.Response
// @Router /admin/users/{id}/size [put]
func (h *Handler) SetSize(c *gin.Context) {
	targetID, ok := targetParam(c)
	if !ok {
		return
	}

	var req SetSizeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	res, err := h.svc.Set(c.Request.Context(), middleware.CallerID(c), targetID, *req.Value)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Size set successfully", toItem(res)))
}

// DeleteUser godoc
// @Summary Delete user
// @Description Hard-deletes a user's record. Admin only.
// @Tags admin
// @Produce json
// @Param X-Caller-ID header string true "Admin caller id"
// @Param id path string true "Target user ID"
// @Success 200 {object} utils.Response{data=UserSizeItem}
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 503 {object} utils.Response
// @Router /admin/users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	targetID, ok := targetParam(c)
	if !ok {
		return
	}

	res, err := h.svc.Remove(c.Request.Context(), middleware.CallerID(c), targetID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User deleted successfully", toItem(res)))
}

func targetParam(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" || len(id) > 64 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user ID"))
		return "", false
	}
	return id, true
}
