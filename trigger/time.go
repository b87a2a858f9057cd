package trigger

import (
	"fmt"
	"time"
)

// TimeTrigger fires once per day when the wall clock crosses Hour:Minute:Second in the polled time's location.
// Firing is edge triggered: a poll fires only if the target lies after the previous poll and at or before the
// current one. The first poll only records the time, so targets already in the past at startup do not fire.
type TimeTrigger struct {
	Hour   int
	Minute int
	Second int

	lastCheck time.Time
	lastFired time.Time
}

// Poll advances the trigger's bookkeeping to now and reports whether it fired.
func (t *TimeTrigger) Poll(now time.Time) bool {
	prev := t.lastCheck
	if prev.IsZero() || now.After(prev) {
		t.lastCheck = now
	}
	if prev.IsZero() || !now.After(prev) {
		return false
	}

	target := t.on(now)
	if target.After(now) {
		target = t.on(now.AddDate(0, 0, -1))
	}
	if !target.After(prev) {
		return false
	}
	if !t.lastFired.IsZero() && t.lastFired.Equal(target) {
		return false
	}
	t.lastFired = target
	return true
}

// Next returns the next time the trigger will fire after now.
func (t *TimeTrigger) Next(now time.Time) time.Time {
	target := t.on(now)
	if !target.After(now) {
		target = t.on(now.AddDate(0, 0, 1))
	}
	return target
}

func (t *TimeTrigger) on(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, t.Second, 0, day.Location())
}

func (t *TimeTrigger) Validate() error {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 || t.Second < 0 || t.Second > 59 {
		return fmt.Errorf("invalid time of day %s", t.Clock())
	}
	return nil
}

func (t TimeTrigger) Equal(o TimeTrigger) bool {
	return t.Hour == o.Hour && t.Minute == o.Minute && t.Second == o.Second
}

// Clock formats the target as HH:MM:SS.
func (t TimeTrigger) Clock() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t TimeTrigger) String() string {
	return "time " + t.Clock()
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into a time trigger.
func ParseClock(s string) (Trigger, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			tr := Time(parsed.Hour(), parsed.Minute(), parsed.Second())
			return tr, nil
		}
	}
	return Trigger{}, fmt.Errorf("invalid time of day %q, want HH:MM or HH:MM:SS", s)
}
