package cuelist

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/robmorgan/lumen/fade"
)

// Blend interpolates between two snapshots at the given shaped progress.
//
// Every key present in either snapshot is emitted. A key controlled by only one side keeps that side's value.
// Booleans are not interpolated: until progress reaches 1 a layer or effect is on if either side has it on, so a
// layer fading out stays visible for the whole fade and a layer fading in shows from the start; at 1 the "to"
// value applies.
func Blend(from, to State, progress float64) State {
	if progress >= 1 {
		return to.Clone()
	}
	if progress < 0 {
		progress = 0
	}

	out := NewState()
	for id, f := range from.Layers {
		if t, ok := to.Layers[id]; ok {
			out.Layers[id] = blendLayer(f, t, progress)
		} else {
			out.Layers[id] = f
		}
	}
	for id, t := range to.Layers {
		if _, ok := from.Layers[id]; !ok {
			out.Layers[id] = t
		}
	}

	for id, f := range from.Effects {
		if t, ok := to.Effects[id]; ok {
			out.Effects[id] = blendEffect(f, t, progress)
		} else {
			out.Effects[id] = f
		}
	}
	for id, t := range to.Effects {
		if _, ok := from.Effects[id]; !ok {
			out.Effects[id] = t
		}
	}

	for id, f := range from.Paints {
		if t, ok := to.Paints[id]; ok {
			out.Paints[id] = blendPaint(f, t, progress)
		} else {
			out.Paints[id] = f
		}
	}
	for id, t := range to.Paints {
		if _, ok := from.Paints[id]; !ok {
			out.Paints[id] = t
		}
	}

	switch {
	case from.Global != nil && to.Global != nil:
		g := GlobalState{
			MasterOpacity: fade.Interpolate(from.Global.MasterOpacity, to.Global.MasterOpacity, progress),
			Speed:         fade.Interpolate(from.Global.Speed, to.Global.Speed, progress),
		}
		out.Global = &g
	case from.Global != nil:
		g := *from.Global
		out.Global = &g
	case to.Global != nil:
		g := *to.Global
		out.Global = &g
	}

	return out
}

func blendLayer(from, to LayerState, progress float64) LayerState {
	return LayerState{
		Opacity:  fade.Interpolate(from.Opacity, to.Opacity, progress),
		Visible:  from.Visible || to.Visible,
		Position: fade.InterpolateVec2(from.Position, to.Position, progress),
		Rotation: fade.Interpolate(from.Rotation, to.Rotation, progress),
		Scale:    fade.Interpolate(from.Scale, to.Scale, progress),
	}
}

func blendEffect(from, to EffectState, progress float64) EffectState {
	return EffectState{
		Enabled: from.Enabled || to.Enabled,
		Amount:  fade.Interpolate(from.Amount, to.Amount, progress),
		Speed:   fade.Interpolate(from.Speed, to.Speed, progress),
	}
}

func blendPaint(from, to PaintState, progress float64) PaintState {
	return PaintState{
		Opacity: fade.Interpolate(from.Opacity, to.Opacity, progress),
		Speed:   fade.Interpolate(from.Speed, to.Speed, progress),
		Tint:    blendTint(from.Tint, to.Tint, progress),
	}
}

// blendTint mixes two hex colors in RGB space. An unparsable side snaps to the other.
func blendTint(from, to string, progress float64) string {
	if from == to {
		return to
	}
	fc, ferr := colorful.Hex(from)
	tc, terr := colorful.Hex(to)
	switch {
	case ferr != nil:
		return to
	case terr != nil:
		return from
	}
	return fc.BlendRgb(tc, progress).Clamped().Hex()
}
