package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckCooldown(t *testing.T) {
	now := testStart
	at := func(d time.Duration) *time.Time {
		t := now.Add(-d)
		return &t
	}
	zero := time.Time{}

	tests := []struct {
		name        string
		lastUse     *time.Time
		wantAllowed bool
		wantMinutes int
		wantSeconds int
	}{
		{"never used", nil, true, 0, 0},
		{"zero value", &zero, true, 0, 0},
		{"just now", at(0), false, 60, 0},
		{"one second ago", at(time.Second), false, 59, 59},
		{"fractional second floors", at(1500 * time.Millisecond), false, 59, 58},
		{"half an hour ago", at(30*time.Minute + 15*time.Second), false, 29, 45},
		{"one second left", at(59*time.Minute + 59*time.Second), false, 0, 1},
		{"exactly one hour", at(time.Hour), true, 0, 0},
		{"long ago", at(48 * time.Hour), true, 0, 0},
		{"in the future", at(-10 * time.Minute), false, 60, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CheckCooldown(tt.lastUse, now)
			assert.Equal(t, tt.wantAllowed, d.Allowed)
			assert.Equal(t, tt.wantMinutes, d.Minutes())
			assert.Equal(t, tt.wantSeconds, d.Seconds())
			if d.Allowed {
				assert.Zero(t, d.Remaining)
			}
		})
	}
}

func TestCheckCooldownComparesInUTC(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*3600)
	lastUse := testStart.Add(-10 * time.Minute).In(moscow)

	d := CheckCooldown(&lastUse, testStart)
	assert.False(t, d.Allowed)
	assert.Equal(t, 50*time.Minute, d.Remaining)
}
