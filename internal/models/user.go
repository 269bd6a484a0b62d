package models

import "time"

// DefaultDisplayName is used when a record is created without a name,
// e.g. by an admin action on an id that never used the bot.
const DefaultDisplayName = "Unknown"

// User is the persisted row of the users table.
type User struct {
	ID          uint      `gorm:"primarykey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      string    `gorm:"uniqueIndex;not null;type:varchar(64)"`
	DisplayName string    `gorm:"type:text;not null;default:'Unknown'"`
	Size        Numeric   `gorm:"not null;default:0"`
	LastUse     Timestamp `gorm:"default:null"`
}

func (User) TableName() string {
	return "users"
}

// Record converts the row into the backend-independent record.
func (u User) Record() UserRecord {
	return UserRecord{
		UserID:      u.UserID,
		DisplayName: u.DisplayName,
		Size:        float64(u.Size),
		LastUse:     u.LastUse.Ptr(),
	}
}

// UserRecord is the per-user state every store returns.
type UserRecord struct {
	UserID      string     `json:"user_id"`
	DisplayName string     `json:"display_name"`
	Size        float64    `json:"size"`
	LastUse     *time.Time `json:"last_use"`
}

// NewUserRecord returns the state of a user that has never been stored.
func NewUserRecord(userID, displayName string) UserRecord {
	if displayName == "" {
		displayName = DefaultDisplayName
	}
	return UserRecord{UserID: userID, DisplayName: displayName}
}
