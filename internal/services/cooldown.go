package services

import "time"

// Cooldown is the minimum time between two growth actions of one user.
const Cooldown = time.Hour

// CooldownDecision is the outcome of CheckCooldown. Remaining is zero when
// the action is allowed.
type CooldownDecision struct {
	Allowed   bool
	Remaining time.Duration
}

// CheckCooldown decides whether a user whose last growth happened at
// lastUse may grow again at now. A missing or zero lastUse (the form the
// store coerces malformed values to) always allows. A lastUse ahead of now
// counts as now.
func CheckCooldown(lastUse *time.Time, now time.Time) CooldownDecision {
	if lastUse == nil || lastUse.IsZero() {
		return CooldownDecision{Allowed: true}
	}

	elapsed := now.UTC().Sub(lastUse.UTC())
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= Cooldown {
		return CooldownDecision{Allowed: true}
	}
	return CooldownDecision{Remaining: (Cooldown - elapsed).Truncate(time.Second)}
}

func (d CooldownDecision) Minutes() int {
	return int(d.Remaining / time.Minute)
}

func (d CooldownDecision) Seconds() int {
	return int((d.Remaining % time.Minute) / time.Second)
}
