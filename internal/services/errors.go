package services

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrForbidden is returned before any store access.
	ErrForbidden = errors.New("forbidden: admins only")
	ErrNotFound  = errors.New("user not found")
	// ErrStorageUnavailable wraps the backend error; a failed write is never
	// reported as a success.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrLeaderboardEmpty   = errors.New("leaderboard is empty")
)
