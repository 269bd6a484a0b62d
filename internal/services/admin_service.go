package services

import (
	"context"
	"errors"
	"math"

	"growstat-backend/internal/store"

	"go.uber.org/zap"
)

// AdminResult describes the record an admin action touched. For Remove,
// Size is the size the record had when it was deleted.
type AdminResult struct {
	TargetID     string  `json:"target_id"`
	DisplayName  string  `json:"display_name"`
	Delta        float64 `json:"delta"`
	PreviousSize float64 `json:"previous_size"`
	Size         float64 `json:"size"`
	Created      bool    `json:"created"`
}

// Give adds delta (which may be negative) to the target's size, creating
// the record if needed. The cooldown is not consulted and last_use is left
// alone.
func (s *Service) Give(ctx context.Context, callerID, targetID string, delta float64) (*AdminResult, error) {
	res, err := s.adjustSize(ctx, "give", callerID, targetID, delta, func(current float64) float64 {
		return current + delta
	})
	return res, err
}

// Set replaces the target's size with value.
func (s *Service) Set(ctx context.Context, callerID, targetID string, value float64) (*AdminResult, error) {
	return s.adjustSize(ctx, "set", callerID, targetID, value, func(float64) float64 {
		return value
	})
}

// Remove hard-deletes the target's record. A missing target yields
// ErrNotFound.
func (s *Service) Remove(ctx context.Context, callerID, targetID string) (res *AdminResult, err error) {
	defer func() { s.recordAdmin("remove", err) }()

	if err := s.authorize(callerID); err != nil {
		return nil, err
	}
	if targetID == "" {
		return nil, ErrInvalidArgument
	}

	unlock, err := s.lockUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	rec, found, err := s.loadOrNew(ctx, targetID, "")
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	deleted, err := s.store.Delete(ctx, targetID)
	if err != nil {
		return nil, s.unavailable("delete", err)
	}
	if !deleted {
		return nil, ErrNotFound
	}

	s.log.Info("admin removed user",
		zap.String("admin_id", callerID),
		zap.String("target_id", targetID),
		zap.Float64("size", rec.Size),
	)
	return &AdminResult{
		TargetID:     targetID,
		DisplayName:  rec.DisplayName,
		Delta:        -rec.Size,
		PreviousSize: rec.Size,
		Size:         rec.Size,
	}, nil
}

func (s *Service) adjustSize(ctx context.Context, action, callerID, targetID string, arg float64, next func(float64) float64) (res *AdminResult, err error) {
	defer func() { s.recordAdmin(action, err) }()

	if err := s.authorize(callerID); err != nil {
		return nil, err
	}
	if targetID == "" || !isFinite(arg) {
		return nil, ErrInvalidArgument
	}

	unlock, err := s.lockUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	rec, found, err := s.loadOrNew(ctx, targetID, "")
	if err != nil {
		return nil, err
	}

	newSize := next(rec.Size)
	if !isFinite(newSize) {
		return nil, ErrInvalidArgument
	}

	saved, err := s.store.Upsert(ctx, store.UpsertParams{
		UserID: targetID,
		Size:   &newSize,
	})
	if err != nil {
		return nil, s.unavailable("upsert", err)
	}

	s.log.Info("admin adjusted size",
		zap.String("action", action),
		zap.String("admin_id", callerID),
		zap.String("target_id", targetID),
		zap.Float64("previous_size", rec.Size),
		zap.Float64("size", saved.Size),
	)
	return &AdminResult{
		TargetID:     targetID,
		DisplayName:  saved.DisplayName,
		Delta:        saved.Size - rec.Size,
		PreviousSize: rec.Size,
		Size:         saved.Size,
		Created:      !found,
	}, nil
}

// authorize re-checks the privileged set even though the boundary already
// did. It runs before any store access so a refused caller learns nothing
// about the target.
func (s *Service) authorize(callerID string) error {
	if callerID == "" || !s.IsAdmin(callerID) {
		s.log.Warn("unauthorized admin attempt", zap.String("caller_id", callerID))
		return ErrForbidden
	}
	return nil
}

func (s *Service) recordAdmin(action string, err error) {
	outcome := "success"
	switch {
	case err == nil:
	case errors.Is(err, ErrForbidden):
		outcome = "forbidden"
	case errors.Is(err, ErrInvalidArgument):
		outcome = "invalid_argument"
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	default:
		outcome = "error"
	}
	s.metrics.AdminAction(action, outcome)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
