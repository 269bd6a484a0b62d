package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"growstat-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgxSchema = `
CREATE TABLE IF NOT EXISTS users (
	user_id      TEXT PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT 'Unknown',
	size         NUMERIC(20,8) NOT NULL DEFAULT 0,
	last_use     TIMESTAMPTZ NULL
)`

// size is selected as text and coerced on our side, the same way a REST
// proxied backend hands it back.
const pgxColumns = `user_id, display_name, size::text, last_use`

const pgxUpsert = `
INSERT INTO users (user_id, display_name, size, last_use)
VALUES ($1, COALESCE($2::text, 'Unknown'), COALESCE($3::numeric, 0), $4::timestamptz)
ON CONFLICT (user_id) DO UPDATE SET
	display_name = COALESCE($2::text, users.display_name),
	size         = COALESCE($3::numeric, users.size),
	last_use     = COALESCE($4::timestamptz, users.last_use)
RETURNING ` + pgxColumns

// PgxStore talks to postgres through a raw pgx pool. Every write is a
// single statement, so there is no partially applied state.
type PgxStore struct {
	pool *pgxpool.Pool
}

func NewPgxStore(pool *pgxpool.Pool) *PgxStore {
	return &PgxStore{pool: pool}
}

// Migrate creates the users table if it does not exist yet.
func (s *PgxStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, pgxSchema); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

func (s *PgxStore) Get(ctx context.Context, userID string) (*models.UserRecord, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+pgxColumns+` FROM users WHERE user_id = $1`, userID)
	rec, err := scanPgxRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (s *PgxStore) Upsert(ctx context.Context, params UpsertParams) (*models.UserRecord, error) {
	var lastUse *time.Time
	if params.LastUse != nil {
		t := params.LastUse.UTC()
		lastUse = &t
	}
	row := s.pool.QueryRow(ctx, pgxUpsert, params.UserID, params.DisplayName, params.Size, lastUse)
	return scanPgxRecord(row)
}

func (s *PgxStore) List(ctx context.Context) ([]models.UserRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+pgxColumns+` FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.UserRecord
	for rows.Next() {
		rec, err := scanPgxRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (s *PgxStore) Delete(ctx context.Context, userID string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PgxStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PgxStore) Close() error {
	s.pool.Close()
	return nil
}

func scanPgxRecord(row pgx.Row) (*models.UserRecord, error) {
	var (
		rec     models.UserRecord
		size    *string
		lastUse *time.Time
	)
	if err := row.Scan(&rec.UserID, &rec.DisplayName, &size, &lastUse); err != nil {
		return nil, err
	}
	if size != nil {
		rec.Size = models.ParseSize(*size)
	}
	rec.LastUse = models.ParseTimestamp(lastUse)
	return &rec, nil
}
