package commands

import (
	"context"
	"net/http"

	"growstat-backend/internal/command"
	"growstat-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, cmd command.Command) command.Result
}

type Handler struct {
	dispatcher Dispatcher
}

func NewHandler(d Dispatcher) *Handler {
	return &Handler{dispatcher: d}
}

var kindStatus = map[command.Kind]int{
	command.KindSuccess:         http.StatusOK,
	command.KindEmpty:           http.StatusOK,
	command.KindDenied:          http.StatusTooManyRequests,
	command.KindInvalidArgument: http.StatusBadRequest,
	command.KindUnknownCommand:  http.StatusBadRequest,
	command.KindForbidden:       http.StatusForbidden,
	command.KindNotFound:        http.StatusNotFound,
	command.KindUnavailable:     http.StatusServiceUnavailable,
}

// Dispatch godoc
// @Summary Run a chat command
// @Description Entry point for chat transports. The reply text is always in data.text.
// @Tags commands
// @Accept json
// @Produce json
// @Param body body CommandRequest true "Command"
// @Success 200 {object} utils.Response{data=command.Result}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response{data=command.Result}
// @Failure 429 {object} utils.Response{data=command.Result}
// @Router /commands [post]
func (h *Handler) Dispatch(c *gin.Context) {
	var req CommandRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	res := h.dispatcher.Dispatch(c.Request.Context(), command.Command{
		CallerID:    req.CallerID,
		DisplayName: req.DisplayName,
		Name:        req.Command,
		Args:        req.Args,
	})

	status, ok := kindStatus[res.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	c.JSON(status, utils.NewResponse(status, string(res.Kind), res))
}

// Help godoc
// @Summary Command reference
// @Tags commands
// @Produce json
// @Success 200 {object} utils.Response{data=command.Result}
// @Router /commands/help [get]
func (h *Handler) Help(c *gin.Context) {
	res := h.dispatcher.Dispatch(c.Request.Context(), command.Command{Name: command.CmdHelp})
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Help", res))
}
