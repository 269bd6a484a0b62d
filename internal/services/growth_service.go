package services

import (
	"context"
	"math"
	"time"

	"growstat-backend/internal/store"

	"go.uber.org/zap"
)

const (
	MinGrowth = 0.5
	MaxGrowth = 4.0
)

// GrowthResult is what a grow call produced. When Allowed is false only
// DisplayName, Size and the remaining cooldown are set.
type GrowthResult struct {
	Allowed          bool          `json:"allowed"`
	DisplayName      string        `json:"display_name"`
	Growth           float64       `json:"growth"`
	Size             float64       `json:"size"`
	Remaining        time.Duration `json:"-"`
	RemainingMinutes int           `json:"remaining_minutes"`
	RemainingSeconds int           `json:"remaining_seconds"`
}

type StatusResult struct {
	DisplayName      string        `json:"display_name"`
	Size             float64       `json:"size"`
	Exists           bool          `json:"exists"`
	NextGrowthIn     time.Duration `json:"-"`
	RemainingMinutes int           `json:"remaining_minutes"`
	RemainingSeconds int           `json:"remaining_seconds"`
}

// Grow applies one growth action for callerID. The display name is only
// written on the successful branch; a call denied by the cooldown performs
// no write at all.
func (s *Service) Grow(ctx context.Context, callerID, displayName string) (*GrowthResult, error) {
	if callerID == "" {
		return nil, ErrInvalidArgument
	}

	unlock, err := s.lockUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	rec, _, err := s.loadOrNew(ctx, callerID, displayName)
	if err != nil {
		return nil, err
	}
	if displayName == "" {
		displayName = rec.DisplayName
	}

	now := s.clock.Now("grow").UTC()
	decision := CheckCooldown(rec.LastUse, now)
	if !decision.Allowed {
		s.metrics.GrowthDenied()
		return &GrowthResult{
			DisplayName:      displayName,
			Size:             rec.Size,
			Remaining:        decision.Remaining,
			RemainingMinutes: decision.Minutes(),
			RemainingSeconds: decision.Seconds(),
		}, nil
	}

	growth := s.drawGrowth()
	saved, err := s.store.Upsert(ctx, store.UpsertParams{
		UserID:      callerID,
		DisplayName: &displayName,
		Size:        store.Ptr(rec.Size + growth),
		LastUse:     &now,
	})
	if err != nil {
		return nil, s.unavailable("upsert", err)
	}

	s.metrics.GrowthAllowed(growth)
	s.log.Debug("growth applied",
		zap.String("user_id", callerID),
		zap.Float64("growth", growth),
		zap.Float64("size", saved.Size),
	)
	return &GrowthResult{
		Allowed:     true,
		DisplayName: saved.DisplayName,
		Growth:      growth,
		Size:        saved.Size,
	}, nil
}

// Status reports the caller's current size without changing anything.
func (s *Service) Status(ctx context.Context, callerID, displayName string) (*StatusResult, error) {
	if callerID == "" {
		return nil, ErrInvalidArgument
	}

	// Held so a cache fill cannot interleave with a concurrent write.
	unlock, err := s.lockUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	rec, found, err := s.loadOrNew(ctx, callerID, displayName)
	if err != nil {
		return nil, err
	}
	if displayName == "" {
		displayName = rec.DisplayName
	}

	decision := CheckCooldown(rec.LastUse, s.clock.Now("status"))
	return &StatusResult{
		DisplayName:      displayName,
		Size:             rec.Size,
		Exists:           found,
		NextGrowthIn:     decision.Remaining,
		RemainingMinutes: decision.Minutes(),
		RemainingSeconds: decision.Seconds(),
	}, nil
}

// drawGrowth returns a uniform value in [MinGrowth, MaxGrowth) rounded to
// cents. Rounding can land exactly on MaxGrowth, which is pulled back one
// cent to keep the upper bound open.
func (s *Service) drawGrowth() float64 {
	g := MinGrowth + s.rand()*(MaxGrowth-MinGrowth)
	g = math.Round(g*100) / 100
	if g >= MaxGrowth {
		g = MaxGrowth - 0.01
	}
	if g < MinGrowth {
		g = MinGrowth
	}
	return g
}
