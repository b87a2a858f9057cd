package config

// PatchedLayer maps a layer onto a DMX device. The layer's opacity drives intensity; when Paint is set the paint's
// tint drives the colour channels.
type PatchedLayer struct {
	Name     string  `yaml:"name"`
	Layer    uint32  `yaml:"layer"`
	Paint    *uint32 `yaml:"paint,omitempty"`
	Universe int     `yaml:"universe"`
	Address  int     `yaml:"address"`
	Profile  string  `yaml:"profile"`

	// Effects lists the effect slots that modulate this fixture's intensity.
	Effects []uint32 `yaml:"effects,omitempty"`
}

// EffectSlot binds an effect ID used by cues to a beat-synced oscillator.
type EffectSlot struct {
	ID    uint32  `yaml:"id"`
	Shape string  `yaml:"shape"`
	Beats float64 `yaml:"beats"`
}

// DefaultEffects is a one-beat pulse on slot 0 and a one-bar ramp on slot 1.
func DefaultEffects() []EffectSlot {
	return []EffectSlot{
		{ID: 0, Shape: "sine", Beats: 1},
		{ID: 1, Shape: "sawtooth-up", Beats: 4},
	}
}

func PatchLayers() []PatchedLayer {
	s := make([]PatchedLayer, 0)

	s = append(s, patchHouseLights()...)
	s = append(s, patchStageWash()...)

	return s
}

func patchHouseLights() []PatchedLayer {
	return []PatchedLayer{
		{
			Name:     "house_lights",
			Layer:    0,
			Universe: 1,
			Address:  1,
			Profile:  "dimmer",
		},
	}
}

func patchStageWash() []PatchedLayer {
	paint := uint32(0)
	return []PatchedLayer{
		// left wash par
		{
			Name:     "left_wash_par",
			Layer:    1,
			Paint:    &paint,
			Universe: 1,
			Address:  10,
			Profile:  "shehds-par",
			Effects:  []uint32{0, 1},
		},
		// right wash par
		{
			Name:     "right_wash_par",
			Layer:    1,
			Paint:    &paint,
			Universe: 1,
			Address:  18,
			Profile:  "shehds-par",
			Effects:  []uint32{0, 1},
		},
	}
}
