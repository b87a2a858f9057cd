package rhythm

import (
	"math"
	"time"
)

// PulsesPerQuarterNote is the MIDI beat clock resolution.
const PulsesPerQuarterNote = 24

const (
	// smoothing is the weight given to each new pulse interval.
	smoothing = 0.1
	// maxPulseGap is the longest pause between pulses still treated as the same clock, about 2.5 bpm.
	maxPulseGap = time.Second
)

// MidiClock estimates tempo from MIDI timing clock pulses. Pulse intervals are exponentially smoothed so a jittery
// clock source does not make the tempo wobble. It is not safe for concurrent use.
type MidiClock struct {
	running   bool
	lastPulse time.Time
	interval  float64 // smoothed seconds per pulse, 0 until measured
	pulses    int
}

// NewMidiClock creates a clock that accepts pulses before any start message, since many sources never send one.
func NewMidiClock() *MidiClock {
	return &MidiClock{running: true}
}

// Start handles a MIDI start message: counting restarts from the first beat.
func (c *MidiClock) Start() {
	c.reset()
	c.running = true
}

// Continue handles a MIDI continue message, keeping the tempo estimate.
func (c *MidiClock) Continue() {
	c.running = true
	c.lastPulse = time.Time{}
}

// Stop handles a MIDI stop message. Pulses are ignored until Start or Continue.
func (c *MidiClock) Stop() {
	c.reset()
	c.running = false
}

func (c *MidiClock) reset() {
	c.lastPulse = time.Time{}
	c.interval = 0
	c.pulses = 0
}

// Running reports whether pulses are being counted.
func (c *MidiClock) Running() bool {
	return c.running
}

// Pulse records a timing clock pulse received at. On every quarter note boundary it returns the smoothed tempo
// and true.
func (c *MidiClock) Pulse(at time.Time) (float64, bool) {
	if !c.running {
		return 0, false
	}

	if !c.lastPulse.IsZero() {
		gap := at.Sub(c.lastPulse)
		switch {
		case gap <= 0:
			return 0, false
		case gap > maxPulseGap:
			// the source paused; start measuring again
			c.interval = 0
			c.pulses = 0
		case c.interval == 0:
			c.interval = gap.Seconds()
		default:
			c.interval += smoothing * (gap.Seconds() - c.interval)
		}
	}
	c.lastPulse = at
	c.pulses++

	if c.pulses%PulsesPerQuarterNote != 0 {
		return 0, false
	}
	return c.Tempo()
}

// Tempo returns the current estimate in beats per minute.
func (c *MidiClock) Tempo() (float64, bool) {
	if c.interval <= 0 {
		return 0, false
	}
	bpm := 60 / (c.interval * PulsesPerQuarterNote)
	return math.Round(bpm*100) / 100, true
}
