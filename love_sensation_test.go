package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/robmorgan/lumen/cuelist"
	"github.com/robmorgan/lumen/show"
	"github.com/robmorgan/lumen/trigger"
)

func TestLoveSensationShow(t *testing.T) {
	t.Parallel()

	clk := testingclock.NewFakeClock(time.Date(2023, 6, 1, 21, 0, 0, 0, time.UTC))
	cl, err := loveSensationShow(clk)
	require.NoError(t, err)
	assert.Equal(t, 4, cl.Len())
	assert.Empty(t, cl.TriggerConflicts())

	require.NoError(t, cl.Next())
	assert.Equal(t, uint32(1), cl.TargetCueID())

	// the kick drum pad starts the red wash
	d, err := cl.HandleEvent(trigger.MIDIEventOf(trigger.MIDIEvent{Message: trigger.NoteOn, Channel: 0, Number: 36, Value: 100}))
	require.NoError(t, err)
	require.True(t, d.Matched)
	assert.Equal(t, uint32(2), d.CueID)
	assert.Equal(t, cuelist.StatusTransitioning, cl.Status())

	clk.Step(3 * time.Second)
	cl.Tick()
	state := cl.CurrentState()
	assert.Equal(t, "#ff0000", state.Paints[washPaint].Tint)
	assert.True(t, state.Effects[pulseEffect].Enabled)

	// auto-follow lands on the drop five seconds after the fade
	clk.Step(5 * time.Second)
	cl.Tick()
	assert.Equal(t, uint32(3), cl.TargetCueID())
}

func TestLoveSensationShowSaves(t *testing.T) {
	t.Parallel()

	clk := testingclock.NewFakePassiveClock(time.Date(2023, 6, 1, 21, 0, 0, 0, time.UTC))
	cl, err := loveSensationShow(clk)
	require.NoError(t, err)

	data, err := show.Encode(cl)
	require.NoError(t, err)
	decoded, err := show.Decode(data, clk)
	require.NoError(t, err)
	assert.Equal(t, cl.Cues(), decoded.Cues())
}
