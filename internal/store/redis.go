package store

import (
	"context"
	"sort"
	"strconv"
	"time"

	"growstat-backend/internal/models"

	"github.com/go-redis/redis/v8"
)

const (
	// redisUserKeyPrefix + user id is a hash with display_name, size and
	// last_use fields.
	redisUserKeyPrefix = "growstat:user:"
	// redisIndexKey is a set of every known user id.
	redisIndexKey = "growstat:users"

	fieldDisplayName = "display_name"
	fieldSize        = "size"
	fieldLastUse     = "last_use"
)

// RedisStore keeps one hash per user. Writes go through MULTI/EXEC so a
// record and the index never disagree.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func redisUserKey(userID string) string {
	return redisUserKeyPrefix + userID
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*models.UserRecord, error) {
	fields, err := s.rdb.HGetAll(ctx, redisUserKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	rec := recordFromHash(userID, fields)
	return &rec, nil
}

// Upsert seeds the defaults with HSETNX and overwrites only the given
// fields, all inside one transaction.
func (s *RedisStore) Upsert(ctx context.Context, params UpsertParams) (*models.UserRecord, error) {
	key := redisUserKey(params.UserID)

	var values []interface{}
	if params.DisplayName != nil {
		values = append(values, fieldDisplayName, *params.DisplayName)
	}
	if params.Size != nil {
		values = append(values, fieldSize, formatSize(*params.Size))
	}
	if params.LastUse != nil {
		values = append(values, fieldLastUse, params.LastUse.UTC().Format(time.RFC3339Nano))
	}

	var read *redis.StringStringMapCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, key, fieldDisplayName, models.DefaultDisplayName)
		pipe.HSetNX(ctx, key, fieldSize, formatSize(0))
		if len(values) > 0 {
			pipe.HSet(ctx, key, values...)
		}
		pipe.SAdd(ctx, redisIndexKey, params.UserID)
		read = pipe.HGetAll(ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	rec := recordFromHash(params.UserID, read.Val())
	return &rec, nil
}

func (s *RedisStore) List(ctx context.Context) ([]models.UserRecord, error) {
	ids, err := s.rdb.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	// SMEMBERS order is arbitrary; sort so ties rank the same way each time.
	sort.Strings(ids)

	pipe := s.rdb.Pipeline()
	cmds := make([]*redis.StringStringMapCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, redisUserKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	records := make([]models.UserRecord, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			// index entry without a hash, skip it
			continue
		}
		records = append(records, recordFromHash(ids[i], fields))
	}
	return records, nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string) (bool, error) {
	var del *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, redisUserKey(userID))
		pipe.SRem(ctx, redisIndexKey, userID)
		return nil
	})
	if err != nil {
		return false, err
	}
	return del.Val() > 0, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func recordFromHash(userID string, fields map[string]string) models.UserRecord {
	rec := models.NewUserRecord(userID, fields[fieldDisplayName])
	rec.Size = models.ParseSize(fields[fieldSize])
	if raw, ok := fields[fieldLastUse]; ok {
		rec.LastUse = models.ParseTimestamp(raw)
	}
	return rec
}

func formatSize(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
