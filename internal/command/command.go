// Package command turns chat-style commands into service calls and renders
// the outcome as a transport independent Result.
package command

import (
	"context"

	"growstat-backend/internal/services"
)

// Kind classifies a Result so a transport can pick a status code or style.
type Kind string

const (
	KindSuccess         Kind = "success"
	KindDenied          Kind = "denied"
	KindEmpty           Kind = "empty"
	KindNotFound        Kind = "not_found"
	KindInvalidArgument Kind = "invalid_argument"
	KindForbidden       Kind = "forbidden"
	KindUnavailable     Kind = "unavailable"
	KindUnknownCommand  Kind = "unknown_command"
)

// Command is one inbound request. CallerID is trusted as already
// authenticated by the transport.
type Command struct {
	CallerID    string   `json:"caller_id"`
	DisplayName string   `json:"display_name"`
	Name        string   `json:"command"`
	Args        []string `json:"args"`
}

type Result struct {
	Kind    Kind        `json:"kind"`
	Text    string      `json:"text"`
	Payload interface{} `json:"payload,omitempty"`
}

// Service is the subset of *services.Service the dispatcher drives.
type Service interface {
	IsAdmin(callerID string) bool
	Grow(ctx context.Context, callerID, displayName string) (*services.GrowthResult, error)
	Status(ctx context.Context, callerID, displayName string) (*services.StatusResult, error)
	Leaderboard(ctx context.Context, n int) (*services.Leaderboard, error)
	Give(ctx context.Context, callerID, targetID string, delta float64) (*services.AdminResult, error)
	Set(ctx context.Context, callerID, targetID string, value float64) (*services.AdminResult, error)
	Remove(ctx context.Context, callerID, targetID string) (*services.AdminResult, error)
}

// Canonical command names.
const (
	CmdStart       = "start"
	CmdHelp        = "help"
	CmdGrow        = "grow"
	CmdStatus      = "my_status"
	CmdLeaderboard = "leaderboard"
	CmdAdminGive   = "admin_give"
	CmdAdminSet    = "admin_set"
	CmdAdminDelete = "admin_delete"
)

var aliases = map[string]string{
	"sisi":     CmdGrow,
	"mysize":   CmdStatus,
	"me":       CmdStatus,
	"stats":    CmdLeaderboard,
	"top":      CmdLeaderboard,
	"givesize": CmdAdminGive,
	"setsize":  CmdAdminSet,
	"delsize":  CmdAdminDelete,
}
