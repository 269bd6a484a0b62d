package store

import (
	"context"
	"errors"
	"fmt"

	"growstat-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps records in the users table of a sqlite or postgres
// database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the users table if needed. Safe to run on every start.
func (s *GormStore) Migrate() error {
	if err := s.db.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, userID string) (*models.UserRecord, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rec := user.Record()
	return &rec, nil
}

// Upsert is a single INSERT .. ON CONFLICT DO UPDATE that only assigns the
// columns present in params, followed by a read inside the same transaction.
func (s *GormStore) Upsert(ctx context.Context, params UpsertParams) (*models.UserRecord, error) {
	fresh := params.Apply(nil)
	row := models.User{
		UserID:      fresh.UserID,
		DisplayName: fresh.DisplayName,
		Size:        models.Numeric(fresh.Size),
		LastUse:     models.NewTimestamp(fresh.LastUse),
	}

	var columns []string
	if params.DisplayName != nil {
		columns = append(columns, "display_name")
	}
	if params.Size != nil {
		columns = append(columns, "size")
	}
	if params.LastUse != nil {
		columns = append(columns, "last_use")
	}

	onConflict := clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}}
	if len(columns) == 0 {
		onConflict.DoNothing = true
	} else {
		onConflict.DoUpdates = clause.AssignmentColumns(append(columns, "updated_at"))
	}

	var saved models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(onConflict).Create(&row).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", params.UserID).First(&saved).Error
	})
	if err != nil {
		return nil, err
	}
	rec := saved.Record()
	return &rec, nil
}

func (s *GormStore) List(ctx context.Context) ([]models.UserRecord, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	records := make([]models.UserRecord, 0, len(users))
	for _, u := range users {
		records = append(records, u.Record())
	}
	return records, nil
}

func (s *GormStore) Delete(ctx context.Context, userID string) (bool, error) {
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.User{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
