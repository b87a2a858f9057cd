package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robmorgan/lumen/config"
	"github.com/robmorgan/lumen/cuelist"
	"github.com/robmorgan/lumen/effect"
	"github.com/robmorgan/lumen/profile"
)

func paintID(id uint32) *uint32 {
	return &id
}

func stateWith(opacity float32, visible bool) cuelist.State {
	s := cuelist.NewState()
	l := cuelist.DefaultLayerState()
	l.Opacity = opacity
	l.Visible = visible
	s.Layers[0] = l
	return s
}

func TestNewFixture(t *testing.T) {
	t.Parallel()

	fix, err := NewFixture(config.PatchedLayer{Name: "par", Layer: 0, Universe: 1, Address: 138, Profile: "shehds-par"})
	require.NoError(t, err)
	assert.Equal(t, 7, fix.GetChannelCount())
	assert.Equal(t, 1, fix.Channels[profile.ChannelTypeIntensity].Offset)

	_, err = NewFixture(config.PatchedLayer{Name: "bad", Universe: 1, Address: 1, Profile: "laser"})
	assert.Error(t, err)
	_, err = NewFixture(config.PatchedLayer{Name: "edge", Universe: 1, Address: 510, Profile: "shehds-par"})
	assert.Error(t, err)
}

func TestApplyIntensity(t *testing.T) {
	t.Parallel()

	fix, err := NewFixture(config.PatchedLayer{Name: "house", Layer: 0, Universe: 1, Address: 1, Profile: "dimmer"})
	require.NoError(t, err)

	fix.Apply(stateWith(0.5, true), 0)
	intensity, err := fix.GetIntensity()
	require.NoError(t, err)
	assert.Equal(t, 0.5, intensity)
	assert.Equal(t, byte(128), fix.Channels[profile.ChannelTypeIntensity].DMX())
	require.True(t, fix.NeedsUpdate())

	fix.HasUpdated()
	fix.Apply(stateWith(0.5, true), 0)
	assert.False(t, fix.NeedsUpdate())

	// invisible layers are dark whatever their opacity
	fix.Apply(stateWith(1, false), 0)
	intensity, _ = fix.GetIntensity()
	assert.Equal(t, 0.0, intensity)

	// the master scales everything
	s := stateWith(1, true)
	s.Global = &cuelist.GlobalState{MasterOpacity: 0.25, Speed: 1}
	fix.Apply(s, 0)
	intensity, _ = fix.GetIntensity()
	assert.Equal(t, 0.25, intensity)

	// a state that leaves the layer and master alone keeps the last values
	fix.Apply(cuelist.NewState(), 0)
	intensity, _ = fix.GetIntensity()
	assert.Equal(t, 0.25, intensity)
}

func TestApplyPaintColour(t *testing.T) {
	t.Parallel()

	par, err := NewFixture(config.PatchedLayer{Name: "par", Layer: 0, Paint: paintID(2), Universe: 1, Address: 1, Profile: "shehds-par"})
	require.NoError(t, err)
	rgb, err := NewFixture(config.PatchedLayer{Name: "strip", Layer: 0, Paint: paintID(2), Universe: 1, Address: 20, Profile: "rgb"})
	require.NoError(t, err)

	s := stateWith(1, true)
	s.Paints[2] = cuelist.PaintState{Opacity: 0.5, Speed: 1, Tint: "#ff0000"}
	par.Apply(s, 0)
	rgb.Apply(s, 0)

	intensity, _ := par.GetIntensity()
	assert.Equal(t, 0.5, intensity)
	assert.Equal(t, byte(255), par.Channels[profile.ChannelTypeRed].DMX())
	assert.Equal(t, byte(0), par.Channels[profile.ChannelTypeGreen].DMX())

	_, err = rgb.GetIntensity()
	assert.Error(t, err)
	assert.Equal(t, byte(128), rgb.Channels[profile.ChannelTypeRed].DMX())
	assert.Equal(t, byte(0), rgb.Channels[profile.ChannelTypeBlue].DMX())
}

func TestApplyEffects(t *testing.T) {
	t.Parallel()

	fix, err := NewFixture(config.PatchedLayer{Name: "house", Layer: 0, Universe: 1, Address: 1, Profile: "dimmer"})
	require.NoError(t, err)
	fix.BindEffect(7, effect.NewOscillator(effect.Square, 1))

	s := stateWith(1, true)

	// slot not in the state: no modulation
	fix.Apply(s, 0.75)
	intensity, _ := fix.GetIntensity()
	assert.Equal(t, 1.0, intensity)

	s.Effects[7] = cuelist.EffectState{Enabled: true, Amount: 0.5, Speed: 1}
	fix.Apply(s, 0.25)
	intensity, _ = fix.GetIntensity()
	assert.Equal(t, 1.0, intensity)

	fix.Apply(s, 0.75)
	intensity, _ = fix.GetIntensity()
	assert.InDelta(t, 0.5, intensity, 1e-6)

	// double speed moves beat 0.375 into the low half
	s.Effects[7] = cuelist.EffectState{Enabled: true, Amount: 1, Speed: 2}
	fix.Apply(s, 0.375)
	intensity, _ = fix.GetIntensity()
	assert.InDelta(t, 0.0, intensity, 1e-6)

	s.Effects[7] = cuelist.EffectState{Enabled: false, Amount: 1, Speed: 1}
	fix.Apply(s, 0.75)
	intensity, _ = fix.GetIntensity()
	assert.Equal(t, 1.0, intensity)
}
