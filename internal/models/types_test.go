package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  float64
	}{
		{"float", 12.5, 12.5},
		{"int64", int64(3), 3},
		{"text", "7.25", 7.25},
		{"padded bytes", []byte(" 1.5 "), 1.5},
		{"json number", json.Number("2.75"), 2.75},
		{"negative", "-4", -4},
		{"garbage", "abc", 0},
		{"empty", "", 0},
		{"nil", nil, 0},
		{"nan", math.NaN(), 0},
		{"inf text", "Inf", 0},
		{"unsupported", struct{}{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSize(tt.value))
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 5, 1, 10, 30, 15, 123456000, time.UTC)

	tests := []struct {
		name  string
		value interface{}
		want  *time.Time
	}{
		{"rfc3339 utc", "2024-05-01T10:30:15.123456Z", &want},
		{"rfc3339 offset", "2024-05-01T13:30:15.123456+03:00", &want},
		{"naive isoformat", "2024-05-01T10:30:15.123456", &want},
		{"sqlite text", "2024-05-01 10:30:15.123456+00:00", &want},
		{"time value", want.In(time.FixedZone("X", 3600)), &want},
		{"bytes", []byte("2024-05-01T10:30:15.123456Z"), &want},
		{"garbage", "yesterday-ish", nil},
		{"empty", "", nil},
		{"nil", nil, nil},
		{"zero time", time.Time{}, nil},
		{"number", 17, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimestamp(tt.value)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestTimestampScanAndValue(t *testing.T) {
	var ts Timestamp
	require.NoError(t, ts.Scan("not a time"))
	assert.False(t, ts.Valid)
	v, err := ts.Value()
	assert.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, ts.Scan("2024-01-02T03:04:05Z"))
	assert.True(t, ts.Valid)
	assert.NotNil(t, ts.Ptr())
}

func TestNumericScan(t *testing.T) {
	var n Numeric
	require.NoError(t, n.Scan([]byte("10.50000000")))
	assert.Equal(t, Numeric(10.5), n)
	require.NoError(t, n.Scan("oops"))
	assert.Equal(t, Numeric(0), n)
}

func TestNewUserRecordDefaultsName(t *testing.T) {
	rec := NewUserRecord("42", "")
	assert.Equal(t, DefaultDisplayName, rec.DisplayName)
	assert.Zero(t, rec.Size)
	assert.Nil(t, rec.LastUse)
}
