package rhythm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	testingclock "k8s.io/utils/clock/testing"
)

func TestMetronome(t *testing.T) {
	t.Parallel()

	clk := testingclock.NewFakePassiveClock(time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC))

	// Create a new metronome with a default of 120 bpm
	m := NewMetronome(clk)

	// The beat interval should be every 500ms
	assert.Equal(t, 500.0, m.GetBeatInterval())

	// Try to change the tempo
	m.SetTempo(128.0)

	// The beat interval should change to  be
	assert.Equal(t, 468.75, m.GetBeatInterval())
}

func TestMetronomeIgnoresInvalidTempo(t *testing.T) {
	t.Parallel()

	m := NewMetronome(testingclock.NewFakePassiveClock(time.Now()))
	m.SetTempo(0)
	m.SetTempo(-10)
	assert.Equal(t, 120.0, m.GetTempo())
}

func TestMetronomeSnapshot(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	clk := testingclock.NewFakePassiveClock(start)
	m := NewMetronome(clk)

	s := m.GetSnapshot(0)
	assert.Equal(t, 1, s.Beat)
	assert.Equal(t, "1.1.1", s.Marker())
	assert.True(t, s.IsDownBeat())

	// 120 bpm: beat five is the first beat of bar two
	clk.SetTime(start.Add(2*time.Second + 250*time.Millisecond))
	s = m.GetSnapshot(0)
	assert.Equal(t, 5, s.Beat)
	assert.InDelta(t, 0.5, s.BeatPhase, 1e-9)
	assert.Equal(t, 2, s.Bar())
	assert.Equal(t, "1.2.1", s.Marker())

	// bar twelve sits in the second phrase
	assert.Equal(t, 2, m.GetSnapshot(20*time.Second).Phrase())
}

func TestMetronomeTempoChangeKeepsBeat(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	clk := testingclock.NewFakePassiveClock(start)
	m := NewMetronome(clk)

	clk.SetTime(start.Add(2*time.Second + 250*time.Millisecond))
	before := m.GetSnapshot(0)
	m.SetTempo(150)
	after := m.GetSnapshot(0)

	assert.Equal(t, before.Beat, after.Beat)
	assert.InDelta(t, before.BeatPhase, after.BeatPhase, 0.01)
}

func TestMetronomeResetTimeline(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	clk := testingclock.NewFakePassiveClock(start)
	m := NewMetronome(clk)

	clk.SetTime(start.Add(10 * time.Second))
	m.ResetTimeline()
	assert.Equal(t, 1, m.GetSnapshot(0).Beat)
}
