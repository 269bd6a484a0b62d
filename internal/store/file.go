package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"growstat-backend/internal/models"
	"growstat-backend/pkg/logger"

	"go.uber.org/zap"
)

// fileEntry mirrors one value of the users_data.json map. size and last_use
// are loosely typed because hand-edited files hold all sorts of things.
type fileEntry struct {
	Size     interface{} `json:"size"`
	LastUse  interface{} `json:"last_use"`
	Nickname string      `json:"nickname"`
}

// FileStore persists every record in a single JSON document keyed by user
// id. The in-memory copy belongs to the store instance and is rewritten to
// disk (temp file + rename) on every mutation.
type FileStore struct {
	path string

	mu      sync.RWMutex
	records map[string]models.UserRecord
}

// OpenFileStore loads path, starting empty when the file does not exist.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		records: make(map[string]models.UserRecord),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}

	var entries map[string]fileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	for id, e := range entries {
		rec := models.NewUserRecord(id, e.Nickname)
		rec.Size = models.ParseSize(e.Size)
		rec.LastUse = models.ParseTimestamp(e.LastUse)
		s.records[id] = rec
	}
	logger.Log.Info("file store loaded", zap.String("path", path), zap.Int("records", len(s.records)))
	return s, nil
}

func (s *FileStore) Get(ctx context.Context, userID string) (*models.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *FileStore) Upsert(ctx context.Context, params UpsertParams) (*models.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.records[params.UserID]
	var rec models.UserRecord
	if existed {
		rec = params.Apply(&previous)
	} else {
		rec = params.Apply(nil)
	}

	s.records[params.UserID] = rec
	if err := s.flushLocked(); err != nil {
		if existed {
			s.records[params.UserID] = previous
		} else {
			delete(s.records, params.UserID)
		}
		return nil, err
	}
	return &rec, nil
}

// List returns records ordered by user id, since the JSON map itself has no
// order.
func (s *FileStore) List(ctx context.Context) ([]models.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.UserRecord, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UserID < records[j].UserID
	})
	return records, nil
}

func (s *FileStore) Delete(ctx context.Context, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, ok := s.records[userID]
	if !ok {
		return false, nil
	}
	delete(s.records, userID)
	if err := s.flushLocked(); err != nil {
		s.records[userID] = previous
		return false, err
	}
	return true, nil
}

func (s *FileStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) flushLocked() error {
	entries := make(map[string]fileEntry, len(s.records))
	for id, rec := range s.records {
		e := fileEntry{Size: rec.Size, Nickname: rec.DisplayName}
		if rec.LastUse != nil {
			e.LastUse = rec.LastUse.UTC().Format(time.RFC3339Nano)
		}
		entries[id] = e
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to save data: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save data: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to save data: %w", err)
	}
	return nil
}
