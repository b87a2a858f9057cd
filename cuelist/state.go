package cuelist

import (
	"github.com/robmorgan/lumen/fade"
)

// Vec2 is a layer position.
type Vec2 = fade.Vec2

// LayerState is the per-layer parameter snapshot a cue controls.
type LayerState struct {
	// Opacity is in [0,1].
	Opacity  float32
	Visible  bool
	Position Vec2
	// Rotation is in degrees.
	Rotation float32
	Scale    float32
}

// DefaultLayerState is a fully visible, untransformed layer.
func DefaultLayerState() LayerState {
	return LayerState{Opacity: 1.0, Visible: true, Scale: 1.0}
}

// EffectState is the snapshot of one effect slot.
type EffectState struct {
	Enabled bool
	// Amount is the wet/dry mix in [0,1].
	Amount float32
	Speed  float32
}

func DefaultEffectState() EffectState {
	return EffectState{Enabled: true, Amount: 1.0, Speed: 1.0}
}

// PaintState is the snapshot of one media source (video, image, generator).
type PaintState struct {
	Opacity float32
	// Speed is the playback rate, 1.0 is normal speed.
	Speed float32
	// Tint is a #rrggbb color multiplied over the source.
	Tint string
}

func DefaultPaintState() PaintState {
	return PaintState{Opacity: 1.0, Speed: 1.0, Tint: "#ffffff"}
}

// GlobalState holds master parameters.
type GlobalState struct {
	MasterOpacity float32
	Speed         float32
}

func DefaultGlobalState() GlobalState {
	return GlobalState{MasterOpacity: 1.0, Speed: 1.0}
}

// State is a full parameter snapshot. Keys absent from a map are not controlled; Global is nil when uncontrolled.
type State struct {
	Layers  map[uint32]LayerState
	Effects map[uint32]EffectState
	Paints  map[uint32]PaintState
	Global  *GlobalState
}

// NewState returns an empty snapshot with allocated maps.
func NewState() State {
	return State{
		Layers:  make(map[uint32]LayerState),
		Effects: make(map[uint32]EffectState),
		Paints:  make(map[uint32]PaintState),
	}
}

// Clone returns a deep copy of the snapshot.
func (s State) Clone() State {
	out := State{
		Layers:  make(map[uint32]LayerState, len(s.Layers)),
		Effects: make(map[uint32]EffectState, len(s.Effects)),
		Paints:  make(map[uint32]PaintState, len(s.Paints)),
	}
	for k, v := range s.Layers {
		out.Layers[k] = v
	}
	for k, v := range s.Effects {
		out.Effects[k] = v
	}
	for k, v := range s.Paints {
		out.Paints[k] = v
	}
	if s.Global != nil {
		g := *s.Global
		out.Global = &g
	}
	return out
}

// IsEmpty reports whether the snapshot controls nothing.
func (s State) IsEmpty() bool {
	return len(s.Layers) == 0 && len(s.Effects) == 0 && len(s.Paints) == 0 && s.Global == nil
}

// Overlay returns a copy of s with every key top controls replaced by top's value.
func (s State) Overlay(top State) State {
	out := s.Clone()
	for k, v := range top.Layers {
		out.Layers[k] = v
	}
	for k, v := range top.Effects {
		out.Effects[k] = v
	}
	for k, v := range top.Paints {
		out.Paints[k] = v
	}
	if top.Global != nil {
		g := *top.Global
		out.Global = &g
	}
	return out
}
