package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"growstat-backend/internal/models"
	"growstat-backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	cacheKeyPrefix = "growstat:cache:user:"
	// bound on cache calls made after the caller's context is gone
	invalidateTimeout = 2 * time.Second
)

// CachedStore puts a redis read-through / write-through cache in front of
// another Store. The wrapped store stays the source of truth: cache
// failures are logged and never fail the call. List always goes to the
// wrapped store.
//
// An entry is never allowed to be older than the wrapped store. Writes drop
// the key before and after touching the store, and a key whose drop failed
// is bypassed on read until a later drop succeeds.
type CachedStore struct {
	Store
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger

	mu      sync.Mutex
	pending map[string]struct{}
}

func NewCachedStore(inner Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{
		Store:   inner,
		rdb:     rdb,
		ttl:     ttl,
		log:     logger.Named("cache"),
		pending: make(map[string]struct{}),
	}
}

func cacheKey(userID string) string {
	return cacheKeyPrefix + userID
}

func (s *CachedStore) Get(ctx context.Context, userID string) (*models.UserRecord, error) {
	if s.isPending(userID) && !s.invalidate(ctx, userID) {
		return s.Store.Get(ctx, userID)
	}

	key := cacheKey(userID)
	if val, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var rec models.UserRecord
		if err := json.Unmarshal([]byte(val), &rec); err == nil {
			return &rec, nil
		}
		s.log.Warn("dropping undecodable cache entry", zap.String("key", key))
		s.invalidate(ctx, userID)
	} else if err != redis.Nil {
		s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	rec, err := s.Store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	// SETNX so a fill racing a write never replaces the newer value.
	if data, err := json.Marshal(rec); err == nil {
		if err := s.rdb.SetNX(ctx, key, data, s.ttl).Err(); err != nil {
			s.log.Warn("cache fill failed", zap.String("key", key), zap.Error(err))
		}
	}
	return rec, nil
}

func (s *CachedStore) Upsert(ctx context.Context, params UpsertParams) (*models.UserRecord, error) {
	s.invalidate(ctx, params.UserID)

	rec, err := s.Store.Upsert(ctx, params)
	if err != nil {
		// The write may or may not have landed; do not trust the cache.
		s.invalidate(ctx, params.UserID)
		return nil, err
	}

	key := cacheKey(params.UserID)
	data, err := json.Marshal(rec)
	if err == nil {
		cctx, cancel := detached(ctx)
		err = s.rdb.Set(cctx, key, data, s.ttl).Err()
		cancel()
	}
	if err != nil {
		s.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		s.invalidate(ctx, params.UserID)
	}
	return rec, nil
}

func (s *CachedStore) Delete(ctx context.Context, userID string) (bool, error) {
	s.invalidate(ctx, userID)
	deleted, err := s.Store.Delete(ctx, userID)
	s.invalidate(ctx, userID)
	return deleted, err
}

func (s *CachedStore) Ping(ctx context.Context) error {
	if err := s.Store.Ping(ctx); err != nil {
		return err
	}
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		// a dead cache degrades performance only
		s.log.Warn("cache ping failed", zap.Error(err))
	}
	return nil
}

func (s *CachedStore) Close() error {
	err := s.Store.Close()
	if cerr := s.rdb.Close(); err == nil {
		err = cerr
	}
	return err
}

// detached outlives a cancelled caller so cleanup still reaches redis.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), invalidateTimeout)
}

// invalidate drops the cached entry and reports whether redis confirmed it.
// A failed drop leaves the user pending so reads skip the cache.
func (s *CachedStore) invalidate(ctx context.Context, userID string) bool {
	cctx, cancel := detached(ctx)
	defer cancel()

	if err := s.rdb.Del(cctx, cacheKey(userID)).Err(); err != nil {
		s.log.Warn("cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
		s.mu.Lock()
		s.pending[userID] = struct{}{}
		s.mu.Unlock()
		return false
	}
	s.mu.Lock()
	delete(s.pending, userID)
	s.mu.Unlock()
	return true
}

func (s *CachedStore) isPending(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[userID]
	return ok
}
