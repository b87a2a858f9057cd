package fade

import (
	"time"

	"k8s.io/utils/clock"
)

// Crossfade is a time-bounded transition between two cues. All fields are fixed at construction and progress is
// derived from the clock on every call, so a Crossfade can be read from any number of goroutines without locking.
type Crossfade struct {
	FromCueID uint32
	ToCueID   uint32

	clock     clock.PassiveClock
	startTime time.Time
	duration  time.Duration
	curve     Curve
}

// NewCrossfade starts a crossfade at the clock's current time. A negative duration is treated as zero.
func NewCrossfade(clk clock.PassiveClock, fromCueID, toCueID uint32, duration time.Duration, curve Curve) *Crossfade {
	if duration < 0 {
		duration = 0
	}
	return &Crossfade{
		FromCueID: fromCueID,
		ToCueID:   toCueID,
		clock:     clk,
		startTime: clk.Now(),
		duration:  duration,
		curve:     curve,
	}
}

func (x *Crossfade) StartTime() time.Time {
	return x.startTime
}

func (x *Crossfade) Duration() time.Duration {
	return x.duration
}

func (x *Crossfade) Curve() Curve {
	return x.curve
}

// EndTime is the instant at which the crossfade completes.
func (x *Crossfade) EndTime() time.Time {
	return x.startTime.Add(x.duration)
}

// Elapsed returns the time since the crossfade started, never negative.
func (x *Crossfade) Elapsed() time.Duration {
	elapsed := x.clock.Since(x.startTime)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Remaining returns the time until completion, zero once complete.
func (x *Crossfade) Remaining() time.Duration {
	if r := x.duration - x.Elapsed(); r > 0 {
		return r
	}
	return 0
}

// IsComplete reports whether the full duration has elapsed.
func (x *Crossfade) IsComplete() bool {
	return x.Elapsed() >= x.duration
}

// LinearProgress returns the unshaped fraction of the duration that has elapsed.
func (x *Crossfade) LinearProgress() float64 {
	elapsed := x.Elapsed()
	if elapsed >= x.duration {
		return 1.0
	}
	return float64(elapsed) / float64(x.duration)
}

// Progress returns the curve-shaped progress. It is exactly 1.0 once the duration has elapsed so interpolated values
// never overshoot their target.
func (x *Crossfade) Progress() float64 {
	elapsed := x.Elapsed()
	if elapsed >= x.duration {
		return 1.0
	}
	return x.curve.Apply(float64(elapsed) / float64(x.duration))
}
