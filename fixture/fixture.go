package fixture

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/robmorgan/lumen/config"
	"github.com/robmorgan/lumen/cuelist"
	"github.com/robmorgan/lumen/effect"
	"github.com/robmorgan/lumen/profile"
)

// Fixture is a patched DMX device that follows one layer. The layer's opacity, scaled by the master, drives
// intensity. When the fixture follows a paint, the paint's opacity also scales intensity and its tint sets the
// colour channels.
type Fixture struct {
	Name string

	// The DMX universe and starting address
	Universe int
	Address  int

	Layer uint32
	Paint *uint32

	// The fixture channels, by type
	Channels map[string]*Channel

	// Effects modulate intensity while a cue has the matching effect slot enabled.
	Effects map[uint32]effect.Oscillator

	// last values seen for the parts of the state this fixture follows
	level            float64
	master           float64
	speed            float64
	paintLevel       float64
	red, green, blue float64
	effects          map[uint32]cuelist.EffectState

	needsUpdate bool
}

// NewFixture builds a fixture from a patch entry and its profile.
func NewFixture(patch config.PatchedLayer) (*Fixture, error) {
	prof, err := profile.Lookup(patch.Profile)
	if err != nil {
		return nil, err
	}
	if patch.Address < 1 || patch.Address+prof.Footprint()-1 > universeSize {
		return nil, fmt.Errorf("fixture %s does not fit at address %d", patch.Name, patch.Address)
	}

	f := &Fixture{
		Name:     patch.Name,
		Universe: patch.Universe,
		Address:  patch.Address,
		Layer:    patch.Layer,
		Channels: make(map[string]*Channel, len(prof.Channels)),
		Effects:  make(map[uint32]effect.Oscillator),

		master:     1,
		speed:      1,
		paintLevel: 1,
		red:        1,
		green:      1,
		blue:       1,
		effects:    make(map[uint32]cuelist.EffectState),
	}
	if patch.Paint != nil {
		p := *patch.Paint
		f.Paint = &p
	}
	for typ, offset := range prof.Channels {
		f.Channels[typ] = &Channel{Type: typ, Offset: offset}
	}
	return f, nil
}

// GetChannelCount returns the number of channels the fixture uses.
func (f *Fixture) GetChannelCount() int {
	return len(f.Channels)
}

func (f *Fixture) set(typ string, value float64) {
	if c, ok := f.Channels[typ]; ok && c.setValue(value) {
		f.needsUpdate = true
	}
}

// GetIntensity returns the intensity channel value.
func (f *Fixture) GetIntensity() (float64, error) {
	c, ok := f.Channels[profile.ChannelTypeIntensity]
	if !ok {
		return 0, fmt.Errorf("fixture %s has no intensity channel", f.Name)
	}
	return c.Value, nil
}

// NeedsUpdate reports whether a channel changed since the last HasUpdated.
func (f *Fixture) NeedsUpdate() bool {
	return f.needsUpdate
}

func (f *Fixture) HasUpdated() {
	f.needsUpdate = false
}

// BindEffect attaches an oscillator to the effect slot id.
func (f *Fixture) BindEffect(id uint32, osc effect.Oscillator) {
	f.Effects[id] = osc
}

// Apply sets the fixture's channels from a blended state. beat is the metronome position in beats and drives any
// enabled effects.
//
// A layer, paint, global or effect slot absent from state is not controlled by the cue on stage, so the fixture
// keeps the last value it saw for it.
func (f *Fixture) Apply(state cuelist.State, beat float64) {
	f.track(state)

	intensity := f.level * f.master * f.paintLevel
	for id, osc := range f.Effects {
		es, ok := f.effects[id]
		if !ok || !es.Enabled {
			continue
		}
		intensity = effect.Modulate(intensity, osc.Value(beat*f.speed*float64(es.Speed)), float64(es.Amount))
	}

	r, g, b := f.red, f.green, f.blue
	if _, ok := f.Channels[profile.ChannelTypeIntensity]; ok {
		f.set(profile.ChannelTypeIntensity, intensity)
	} else {
		// no dimmer: fold intensity into the colour
		r, g, b = r*intensity, g*intensity, b*intensity
	}
	f.set(profile.ChannelTypeRed, r)
	f.set(profile.ChannelTypeGreen, g)
	f.set(profile.ChannelTypeBlue, b)
}

// track records the parts of state that concern this fixture.
func (f *Fixture) track(state cuelist.State) {
	if l, ok := state.Layers[f.Layer]; ok {
		f.level = 0
		if l.Visible {
			f.level = float64(l.Opacity)
		}
	}
	if state.Global != nil {
		f.master = float64(state.Global.MasterOpacity)
		f.speed = float64(state.Global.Speed)
	}
	if f.Paint != nil {
		if p, ok := state.Paints[*f.Paint]; ok {
			f.paintLevel = float64(p.Opacity)
			if c, err := colorful.Hex(p.Tint); err == nil {
				c = c.Clamped()
				f.red, f.green, f.blue = c.R, c.G, c.B
			}
		}
	}
	for id := range f.Effects {
		if es, ok := state.Effects[id]; ok {
			f.effects[id] = es
		}
	}
}
