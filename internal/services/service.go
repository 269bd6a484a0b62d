package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"growstat-backend/internal/metrics"
	"growstat-backend/internal/models"
	"growstat-backend/internal/store"
	"growstat-backend/pkg/logger"

	"github.com/coder/quartz"
	"go.uber.org/zap"
)

const DefaultLeaderboardSize = 10

type Options struct {
	Store store.Store
	// AdminIDs is the static set of callers allowed to run admin actions.
	AdminIDs map[string]struct{}
	// LeaderboardSize is used when Leaderboard is called with n <= 0.
	LeaderboardSize int

	Clock   quartz.Clock
	Rand    func() float64
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// Service runs growth, status, admin and leaderboard operations against a
// record store. All read-modify-write sequences on one user id are
// serialized through a per-key lock.
type Service struct {
	store    store.Store
	admins   map[string]struct{}
	topN     int
	clock    quartz.Clock
	rand     func() float64
	metrics  *metrics.Metrics
	log      *zap.Logger
	keyLocks *keyLocker
}

func NewService(opts Options) *Service {
	s := &Service{
		store:    opts.Store,
		admins:   opts.AdminIDs,
		topN:     opts.LeaderboardSize,
		clock:    opts.Clock,
		rand:     opts.Rand,
		metrics:  opts.Metrics,
		log:      opts.Logger,
		keyLocks: newKeyLocker(),
	}
	if s.admins == nil {
		s.admins = map[string]struct{}{}
	}
	if s.topN <= 0 {
		s.topN = DefaultLeaderboardSize
	}
	if s.clock == nil {
		s.clock = quartz.NewReal()
	}
	if s.rand == nil {
		s.rand = rand.Float64
	}
	if s.log == nil {
		s.log = logger.Named("services")
	}
	return s
}

// IsAdmin reports whether callerID is in the privileged set.
func (s *Service) IsAdmin(callerID string) bool {
	_, ok := s.admins[callerID]
	return ok
}

// Ping checks that the record store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return s.unavailable("ping", err)
	}
	return nil
}

// lockUser takes the per-user lock, giving up when ctx ends.
func (s *Service) lockUser(ctx context.Context, userID string) (func(), error) {
	unlock, err := s.keyLocks.Lock(ctx, userID)
	if err != nil {
		return nil, s.unavailable("lock", err)
	}
	return unlock, nil
}

// loadOrNew returns the stored record, or a fresh unsaved one when the user
// has none. found tells the two apart.
func (s *Service) loadOrNew(ctx context.Context, userID, displayName string) (rec models.UserRecord, found bool, err error) {
	stored, err := s.store.Get(ctx, userID)
	switch {
	case err == nil:
		return *stored, true, nil
	case errors.Is(err, store.ErrNotFound):
		return models.NewUserRecord(userID, displayName), false, nil
	default:
		return models.UserRecord{}, false, s.unavailable("get", err)
	}
}

func (s *Service) unavailable(op string, err error) error {
	s.metrics.StoreError(op)
	s.log.Warn("record store call failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}
