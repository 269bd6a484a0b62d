package services

import (
	"context"
	"math"
	"testing"
	"time"

	"growstat-backend/internal/models"
	"growstat-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiveIsAdditive(t *testing.T) {
	st := setupTestStore(t)
	svc, _ := newTestService(t, st)
	ctx := context.Background()

	lastUse := testStart.Add(-10 * time.Minute)
	_, err := st.Upsert(ctx, store.UpsertParams{
		UserID:      "77",
		DisplayName: store.Ptr("Lena"),
		Size:        store.Ptr(12.5),
		LastUse:     &lastUse,
	})
	require.NoError(t, err)

	res, err := svc.Give(ctx, adminID, "77", 3.25)
	require.NoError(t, err)
	assert.Equal(t, 12.5, res.PreviousSize)
	assert.InDelta(t, 15.75, res.Size, 1e-9)
	assert.False(t, res.Created)

	res, err = svc.Give(ctx, adminID, "77", -20)
	require.NoError(t, err)
	assert.InDelta(t, -4.25, res.Size, 1e-9)

	rec, err := st.Get(ctx, "77")
	require.NoError(t, err)
	assert.Equal(t, "Lena", rec.DisplayName)
	require.NotNil(t, rec.LastUse)
	assert.True(t, lastUse.Equal(*rec.LastUse), "give must not touch the cooldown")
}

func TestGiveCreatesMissingTarget(t *testing.T) {
	st := setupTestStore(t)
	svc, _ := newTestService(t, st)
	ctx := context.Background()

	res, err := svc.Give(ctx, adminID, "500", 2)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, 2.0, res.Size)
	assert.Equal(t, models.DefaultDisplayName, res.DisplayName)

	rec, err := st.Get(ctx, "500")
	require.NoError(t, err)
	assert.Nil(t, rec.LastUse)

	grown, err := svc.Grow(ctx, "500", "Newcomer")
	require.NoError(t, err)
	assert.True(t, grown.Allowed)
}

func TestSetIsAbsolute(t *testing.T) {
	tests := []struct {
		name  string
		seed  *float64
		value float64
	}{
		{"existing record", store.Ptr(99.99), 3},
		{"missing record", nil, 42.42},
		{"negative value", store.Ptr(5.0), -1},
		{"zero", store.Ptr(5.0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := setupTestStore(t)
			svc, _ := newTestService(t, st)
			ctx := context.Background()

			if tt.seed != nil {
				_, err := st.Upsert(ctx, store.UpsertParams{UserID: "8", Size: tt.seed})
				require.NoError(t, err)
			}

			res, err := svc.Set(ctx, adminID, "8", tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.value, res.Size)
			assert.Equal(t, tt.seed == nil, res.Created)

			rec, err := st.Get(ctx, "8")
			require.NoError(t, err)
			assert.InDelta(t, tt.value, rec.Size, 1e-9)
		})
	}
}

func TestAdminForbiddenTouchesNothing(t *testing.T) {
	tests := []struct {
		name string
		call func(*Service) error
	}{
		{"give", func(s *Service) error {
			_, err := s.Give(context.Background(), "42", "42", 100)
			return err
		}},
		{"set", func(s *Service) error {
			_, err := s.Set(context.Background(), "42", "7", 100)
			return err
		}},
		{"remove", func(s *Service) error {
			_, err := s.Remove(context.Background(), "42", "7")
			return err
		}},
		{"empty caller", func(s *Service) error {
			_, err := s.Give(context.Background(), "", "7", 1)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &failingStore{}
			svc, _ := newTestService(t, st)
			err := tt.call(svc)
			assert.ErrorIs(t, err, ErrForbidden)
			assert.Zero(t, st.calls)
		})
	}
}

func TestAdminInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		call func(*Service) error
	}{
		{"give NaN", func(s *Service) error {
			_, err := s.Give(context.Background(), adminID, "7", math.NaN())
			return err
		}},
		{"set +Inf", func(s *Service) error {
			_, err := s.Set(context.Background(), adminID, "7", math.Inf(1))
			return err
		}},
		{"give empty target", func(s *Service) error {
			_, err := s.Give(context.Background(), adminID, "", 1)
			return err
		}},
		{"remove empty target", func(s *Service) error {
			_, err := s.Remove(context.Background(), adminID, "")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &failingStore{}
			svc, _ := newTestService(t, st)
			assert.ErrorIs(t, tt.call(svc), ErrInvalidArgument)
			assert.Zero(t, st.calls)
		})
	}
}

func TestGiveOverflowIsInvalid(t *testing.T) {
	st := setupTestStore(t)
	svc, _ := newTestService(t, st)
	ctx := context.Background()

	_, err := svc.Set(ctx, adminID, "7", math.MaxFloat64)
	require.NoError(t, err)

	_, err = svc.Give(ctx, adminID, "7", math.MaxFloat64)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRemove(t *testing.T) {
	st := setupTestStore(t)
	svc, clock := newTestService(t, st)
	ctx := context.Background()

	_, err := svc.Remove(ctx, adminID, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	grown, err := svc.Grow(ctx, "61", "Doomed")
	require.NoError(t, err)

	res, err := svc.Remove(ctx, adminID, "61")
	require.NoError(t, err)
	assert.Equal(t, "Doomed", res.DisplayName)
	assert.Equal(t, grown.Size, res.PreviousSize)

	_, err = st.Get(ctx, "61")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Remove(ctx, adminID, "61")
	assert.ErrorIs(t, err, ErrNotFound)

	// A fresh record starts from zero with no cooldown.
	clock.Advance(time.Minute)
	again, err := svc.Grow(ctx, "61", "Doomed")
	require.NoError(t, err)
	assert.True(t, again.Allowed)
	assert.Equal(t, again.Growth, again.Size)
}

func TestAdminStorageUnavailable(t *testing.T) {
	svc, _ := newTestService(t, &failingStore{})
	_, err := svc.Give(context.Background(), adminID, "7", 1)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = svc.Remove(context.Background(), adminID, "7")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
