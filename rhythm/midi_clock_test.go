package rhythm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedPulses(c *MidiClock, from time.Time, n int, interval time.Duration) (time.Time, []float64) {
	var tempos []float64
	at := from
	for i := 0; i < n; i++ {
		if bpm, ok := c.Pulse(at); ok {
			tempos = append(tempos, bpm)
		}
		at = at.Add(interval)
	}
	return at, tempos
}

func TestMidiClockSteadyTempo(t *testing.T) {
	t.Parallel()

	c := NewMidiClock()
	// 125 bpm is 20ms per pulse
	_, tempos := feedPulses(c, time.Unix(0, 0), 4*PulsesPerQuarterNote, 20*time.Millisecond)

	require.Len(t, tempos, 4)
	for _, bpm := range tempos {
		assert.InDelta(t, 125.0, bpm, 0.01)
	}
}

func TestMidiClockSmoothsJitter(t *testing.T) {
	t.Parallel()

	c := NewMidiClock()
	at, _ := feedPulses(c, time.Unix(0, 0), 2*PulsesPerQuarterNote, 20*time.Millisecond)

	// one late pulse barely moves the estimate
	_, ok := c.Pulse(at.Add(10 * time.Millisecond))
	require.False(t, ok)
	bpm, ok := c.Tempo()
	require.True(t, ok)
	assert.InDelta(t, 125.0, bpm, 10)
	assert.Less(t, bpm, 125.0)
}

func TestMidiClockStop(t *testing.T) {
	t.Parallel()

	c := NewMidiClock()
	at, _ := feedPulses(c, time.Unix(0, 0), PulsesPerQuarterNote, 20*time.Millisecond)

	c.Stop()
	assert.False(t, c.Running())
	_, ok := c.Tempo()
	assert.False(t, ok)

	_, tempos := feedPulses(c, at, PulsesPerQuarterNote, 20*time.Millisecond)
	assert.Empty(t, tempos)

	c.Start()
	_, tempos = feedPulses(c, at, PulsesPerQuarterNote, 25*time.Millisecond)
	require.Len(t, tempos, 1)
	assert.InDelta(t, 100.0, tempos[0], 0.01)
}

func TestMidiClockLongGapRestartsMeasurement(t *testing.T) {
	t.Parallel()

	c := NewMidiClock()
	at, _ := feedPulses(c, time.Unix(0, 0), 10, 20*time.Millisecond)

	_, tempos := feedPulses(c, at.Add(5*time.Second), PulsesPerQuarterNote, 25*time.Millisecond)
	require.Len(t, tempos, 1)
	assert.InDelta(t, 100.0, tempos[0], 0.01)
}
