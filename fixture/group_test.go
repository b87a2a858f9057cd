package fixture

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robmorgan/lumen/config"
	"github.com/robmorgan/lumen/effect"
)

func TestFixtureInMultipleGroups(t *testing.T) {
	t.Parallel()

	fix, err := NewFixture(config.PatchedLayer{Name: "par", Layer: 0, Universe: 1, Address: 138, Profile: "dimmer"})
	require.NoError(t, err)

	// add the fixture to two fixture groups
	fg1 := NewGroup()
	fg2 := NewGroup()
	fg1.AddFixture("fix1", fix)
	fg2.AddFixture("left_par", fix)

	// set a value
	fix1, err := fg1.GetFixture("fix1")
	require.NoError(t, err)
	fix1.Apply(stateWith(0.65, true), 0)

	// check its correct in the other fixture group
	par, err := fg2.GetFixture("left_par")
	require.NoError(t, err)
	intensity, _ := par.GetIntensity()
	require.InDelta(t, 0.65, intensity, 1e-6)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	fix1, _ := NewFixture(config.PatchedLayer{Name: "fix1", Universe: 1, Address: 1, Profile: "dimmer"})
	fix2, _ := NewFixture(config.PatchedLayer{Name: "fix2", Universe: 1, Address: 10, Profile: "dimmer"})
	fix3, _ := NewFixture(config.PatchedLayer{Name: "fix2", Universe: 2, Address: 20, Profile: "dimmer"})

	// add the fixtures to three separate groups
	fg1 := NewGroup()
	fg2 := NewGroup()
	fg3 := NewGroup()
	fg1.AddFixture("fix1", fix1)
	fg2.AddFixture("fix2", fix2)
	fg3.AddFixture("fix2", fix3) // name collision (will replace)

	// merge them over the first group
	fg := fg1.Merge(fg2, fg3)

	// check everything is correct
	require.True(t, fg.HasFixture("fix1"))
	require.True(t, fg.HasFixture("fix2"))
	require.Equal(t, 2, fg.Count())

	fix, err := fg.GetFixture("fix2")
	require.NoError(t, err)
	require.Equal(t, 2, fix.Universe)
	require.Equal(t, 20, fix.Address)

	_, err = fg.GetFixture("fix3")
	require.Error(t, err)
}

func TestNewGroupFromPatch(t *testing.T) {
	t.Parallel()

	fg, err := NewGroupFromPatch(config.NewConfig().Patch, config.NewConfig().Effects)
	require.NoError(t, err)
	require.True(t, fg.HasFixtures())
	require.True(t, fg.HasFixture("house_lights"))

	_, err = NewGroupFromPatch([]config.PatchedLayer{
		{Name: "a", Universe: 1, Address: 1, Profile: "dimmer"},
		{Name: "a", Universe: 1, Address: 2, Profile: "dimmer"},
	}, nil)
	require.Error(t, err)

	_, err = NewGroupFromPatch([]config.PatchedLayer{
		{Name: "a", Universe: 1, Address: 1, Profile: "dimmer", Effects: []uint32{3}},
	}, []config.EffectSlot{{ID: 0, Shape: "sine", Beats: 1}})
	require.Error(t, err)

	fg, err = NewGroupFromPatch([]config.PatchedLayer{
		{Name: "a", Universe: 1, Address: 1, Profile: "dimmer", Effects: []uint32{0}},
	}, []config.EffectSlot{{ID: 0, Shape: "square", Beats: 2}})
	require.NoError(t, err)
	fix, err := fg.GetFixture("a")
	require.NoError(t, err)
	require.Equal(t, effect.NewOscillator(effect.Square, 2), fix.Effects[0])
}
