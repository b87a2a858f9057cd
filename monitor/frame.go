package monitor

import (
	"strconv"
	"time"

	"github.com/robmorgan/lumen/cuelist"
)

// frame is the JSON document sent to viewers.
type frame struct {
	T         int64            `json:"t"`
	FrameID   uint64           `json:"frame_id"`
	Status    string           `json:"status"`
	Current   *uint32          `json:"current_cue,omitempty"`
	Target    *uint32          `json:"target_cue,omitempty"`
	Progress  float64          `json:"progress"`
	Remaining float64          `json:"remaining_s"`
	Tempo     float64          `json:"tempo"`
	Marker    string           `json:"marker"`
	Layers    map[string]layer `json:"layers"`
	Effects   map[string]fx    `json:"effects"`
	Paints    map[string]paint `json:"paints"`
	Global    *global          `json:"global,omitempty"`
}

type layer struct {
	Opacity  float32    `json:"opacity"`
	Visible  bool       `json:"visible"`
	Position [2]float32 `json:"position"`
	Rotation float32    `json:"rotation"`
	Scale    float32    `json:"scale"`
}

type fx struct {
	Enabled bool    `json:"enabled"`
	Amount  float32 `json:"amount"`
	Speed   float32 `json:"speed"`
}

type paint struct {
	Opacity float32 `json:"opacity"`
	Speed   float32 `json:"speed"`
	Tint    string  `json:"tint"`
}

type global struct {
	MasterOpacity float32 `json:"master_opacity"`
	Speed         float32 `json:"speed"`
}

func key(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}

func newFrame(id uint64, now time.Time, state cuelist.State, view cuelist.View) frame {
	f := frame{
		T:         now.UnixNano(),
		FrameID:   id,
		Status:    view.Status.String(),
		Progress:  view.Progress,
		Remaining: view.Remaining.Seconds(),
		Tempo:     view.Tempo,
		Marker:    view.Marker,
		Layers:    make(map[string]layer, len(state.Layers)),
		Effects:   make(map[string]fx, len(state.Effects)),
		Paints:    make(map[string]paint, len(state.Paints)),
	}
	if view.HasCurrent {
		current, target := view.CurrentCueID, view.TargetCueID
		f.Current = &current
		f.Target = &target
	}

	for id, l := range state.Layers {
		f.Layers[key(id)] = layer{
			Opacity:  l.Opacity,
			Visible:  l.Visible,
			Position: [2]float32{l.Position.X, l.Position.Y},
			Rotation: l.Rotation,
			Scale:    l.Scale,
		}
	}
	for id, e := range state.Effects {
		f.Effects[key(id)] = fx{Enabled: e.Enabled, Amount: e.Amount, Speed: e.Speed}
	}
	for id, p := range state.Paints {
		f.Paints[key(id)] = paint{Opacity: p.Opacity, Speed: p.Speed, Tint: p.Tint}
	}
	if state.Global != nil {
		f.Global = &global{MasterOpacity: state.Global.MasterOpacity, Speed: state.Global.Speed}
	}
	return f
}
