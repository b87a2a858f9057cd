package fixture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/robmorgan/lumen/config"
	"github.com/robmorgan/lumen/cuelist"
	"github.com/robmorgan/lumen/profile"
)

func houseDimmer(t *testing.T) *Fixture {
	t.Helper()

	fix, err := NewFixture(config.PatchedLayer{Name: "house", Layer: 0, Universe: 1, Address: 1, Profile: "dimmer"})
	require.NoError(t, err)
	return fix
}

func renderDMX(fix *Fixture, cl *cuelist.CueList) byte {
	cl.Tick()
	fix.Apply(cl.CurrentState(), 0)
	return fix.Channels[profile.ChannelTypeIntensity].DMX()
}

func TestLayerLeftAloneByNextCueHolds(t *testing.T) {
	t.Parallel()

	clk := testingclock.NewFakeClock(time.Date(2023, 6, 1, 20, 0, 0, 0, time.UTC))
	cl := cuelist.NewCueList("main", clk)
	require.NoError(t, cl.AddCue(cuelist.NewCue(1, "Both").
		AddLayerState(0, cuelist.DefaultLayerState()).
		AddLayerState(1, cuelist.DefaultLayerState())))
	require.NoError(t, cl.AddCue(cuelist.NewCue(2, "Wash only").
		WithFadeDuration(3*time.Second).
		AddLayerState(1, cuelist.LayerState{Opacity: 0.2, Visible: true, Scale: 1})))

	fix := houseDimmer(t)
	require.NoError(t, cl.Next())
	assert.Equal(t, byte(255), renderDMX(fix, cl))

	require.NoError(t, cl.Next())
	clk.Step(2999 * time.Millisecond)
	assert.Equal(t, byte(255), renderDMX(fix, cl))

	clk.Step(time.Millisecond)
	assert.Equal(t, byte(255), renderDMX(fix, cl))
	assert.Equal(t, cuelist.StatusActive, cl.Status())

	clk.Step(time.Second)
	assert.Equal(t, byte(255), renderDMX(fix, cl))
}

func TestLayerNewToNextCueFadesIn(t *testing.T) {
	t.Parallel()

	clk := testingclock.NewFakeClock(time.Date(2023, 6, 1, 20, 0, 0, 0, time.UTC))
	cl := cuelist.NewCueList("main", clk)
	require.NoError(t, cl.AddCue(cuelist.NewCue(1, "Wash only").
		AddLayerState(1, cuelist.DefaultLayerState())))
	require.NoError(t, cl.AddCue(cuelist.NewCue(2, "Both").
		WithFadeDuration(3*time.Second).
		AddLayerState(0, cuelist.DefaultLayerState()).
		AddLayerState(1, cuelist.DefaultLayerState())))

	fix := houseDimmer(t)
	require.NoError(t, cl.Next())
	assert.Equal(t, byte(0), renderDMX(fix, cl))

	require.NoError(t, cl.Next())
	assert.Equal(t, byte(0), renderDMX(fix, cl))

	clk.Step(1500 * time.Millisecond)
	assert.Equal(t, byte(128), renderDMX(fix, cl))

	clk.Step(1500 * time.Millisecond)
	assert.Equal(t, byte(255), renderDMX(fix, cl))
}
