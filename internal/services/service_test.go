package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"growstat-backend/internal/models"
	"growstat-backend/internal/store"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const adminID = "1000"

var testStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func setupTestStore(t *testing.T) *store.GormStore {
	t.Helper()
	s := store.NewGormStore(setupTestDB(t))
	require.NoError(t, s.Migrate())
	return s
}

func newTestService(t *testing.T, st store.Store, mutate ...func(*Options)) (*Service, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(testStart)

	opts := Options{
		Store:    st,
		AdminIDs: map[string]struct{}{adminID: {}},
		Clock:    clock,
	}
	for _, m := range mutate {
		m(&opts)
	}
	return NewService(opts), clock
}

// failingStore fails every call and counts how often it was touched.
type failingStore struct {
	calls int
}

var errBackendDown = errors.New("connection refused")

func (f *failingStore) Get(context.Context, string) (*models.UserRecord, error) {
	f.calls++
	return nil, errBackendDown
}

func (f *failingStore) Upsert(context.Context, store.UpsertParams) (*models.UserRecord, error) {
	f.calls++
	return nil, errBackendDown
}

func (f *failingStore) List(context.Context) ([]models.UserRecord, error) {
	f.calls++
	return nil, errBackendDown
}

func (f *failingStore) Delete(context.Context, string) (bool, error) {
	f.calls++
	return false, errBackendDown
}

func (f *failingStore) Ping(context.Context) error {
	f.calls++
	return errBackendDown
}

func (f *failingStore) Close() error { return nil }
