// Package store holds the persistence backends for user records. Every
// backend satisfies Store; the services never know which one is running.
package store

import (
	"context"
	"errors"
	"time"

	"growstat-backend/internal/models"
)

var ErrNotFound = errors.New("record not found")

// UpsertParams describes a partial write. Nil fields are left untouched on
// an existing record; on a new one they fall back to the defaults
// (name "Unknown", size 0, no last use).
type UpsertParams struct {
	UserID      string
	DisplayName *string
	Size        *float64
	LastUse     *time.Time
}

type Store interface {
	// Get returns ErrNotFound when the user has no record.
	Get(ctx context.Context, userID string) (*models.UserRecord, error)
	Upsert(ctx context.Context, params UpsertParams) (*models.UserRecord, error)
	// List returns every record in the backend's scan order.
	List(ctx context.Context) ([]models.UserRecord, error)
	// Delete reports whether a record existed.
	Delete(ctx context.Context, userID string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// Apply merges params into an existing record, or into a fresh one when
// existing is nil. Backends without server-side partial updates use it.
func (p UpsertParams) Apply(existing *models.UserRecord) models.UserRecord {
	var rec models.UserRecord
	if existing != nil {
		rec = *existing
	} else {
		rec = models.NewUserRecord(p.UserID, "")
	}
	if p.DisplayName != nil {
		rec.DisplayName = *p.DisplayName
	}
	if p.Size != nil {
		rec.Size = *p.Size
	}
	if p.LastUse != nil {
		t := p.LastUse.UTC()
		rec.LastUse = &t
	}
	return rec
}

// Ptr is a small helper for building UpsertParams.
func Ptr[T any](v T) *T {
	return &v
}
