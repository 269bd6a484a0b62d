package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"growstat-backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Numeric is a float column that tolerates backends handing the value back
// as text (postgres numeric, hand-edited sqlite rows). Anything that does
// not parse becomes 0.
type Numeric float64

// Value implements the driver.Valuer interface
func (n Numeric) Value() (driver.Value, error) {
	return float64(n), nil
}

// Scan implements the sql.Scanner interface
func (n *Numeric) Scan(value interface{}) error {
	*n = Numeric(ParseSize(value))
	return nil
}

func (Numeric) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "numeric(20,8)"
	default:
		return "decimal(20,8)"
	}
}

// Timestamp is a nullable UTC instant. Unparsable stored values read back
// as null.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

func NewTimestamp(t *time.Time) Timestamp {
	if t == nil || t.IsZero() {
		return Timestamp{}
	}
	return Timestamp{Time: t.UTC(), Valid: true}
}

func (t Timestamp) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// Value implements the driver.Valuer interface
func (t Timestamp) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}
	return t.Time.UTC(), nil
}

// Scan implements the sql.Scanner interface
func (t *Timestamp) Scan(value interface{}) error {
	*t = NewTimestamp(ParseTimestamp(value))
	return nil
}

func (Timestamp) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "timestamptz"
	default:
		return "datetime"
	}
}

// ParseSize coerces a stored size into a float. It never fails: nil,
// garbage and non-finite values all come back as 0.
func ParseSize(value interface{}) float64 {
	var (
		f   float64
		err error
	)
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case json.Number:
		f, err = v.Float64()
	case []byte:
		f, err = strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		err = fmt.Errorf("unsupported type %T", value)
	}
	if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
		err = fmt.Errorf("non-finite value %v", f)
	}
	if err != nil {
		logger.Log.Debug("size coerced to 0", zap.Any("value", value), zap.Error(err))
		return 0
	}
	return f
}

// Naive layouts are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp coerces a stored last-use value into a UTC instant. It
// returns nil for null, zero and unparsable values.
func ParseTimestamp(value interface{}) *time.Time {
	var raw string
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		if v.IsZero() {
			return nil
		}
		t := v.UTC()
		return &t
	case *time.Time:
		if v == nil {
			return nil
		}
		return ParseTimestamp(*v)
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		logger.Log.Debug("last_use ignored", zap.Any("value", value))
		return nil
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			if t.IsZero() {
				return nil
			}
			t = t.UTC()
			return &t
		}
	}
	logger.Log.Debug("last_use unparsable, treated as absent", zap.String("value", raw))
	return nil
}
