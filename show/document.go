package show

import (
	"fmt"
	"time"

	"github.com/robmorgan/lumen/cuelist"
	"github.com/robmorgan/lumen/fade"
	"github.com/robmorgan/lumen/trigger"
)

// The types below are the on-disk form of a show. They keep the file human-diffable: durations as "3s", curves and
// MIDI messages by name, one tagged entry per trigger.

type document struct {
	Name string `yaml:"name"`
	Cues []cue  `yaml:"cues"`
}

type cue struct {
	ID         uint32                `yaml:"id"`
	Name       string                `yaml:"name"`
	Fade       string                `yaml:"fade,omitempty"`
	Curve      string                `yaml:"curve,omitempty"`
	AutoFollow string                `yaml:"auto_follow,omitempty"`
	Layers     map[uint32]layerState `yaml:"layers,omitempty"`
	Effects    map[uint32]effect     `yaml:"effects,omitempty"`
	Paints     map[uint32]paint      `yaml:"paints,omitempty"`
	Global     *global               `yaml:"global,omitempty"`
	Triggers   []triggerEntry        `yaml:"triggers,omitempty"`
}

type layerState struct {
	Opacity  float32    `yaml:"opacity"`
	Visible  bool       `yaml:"visible"`
	Position [2]float32 `yaml:"position,flow"`
	Rotation float32    `yaml:"rotation"`
	Scale    float32    `yaml:"scale"`
}

type effect struct {
	Enabled bool    `yaml:"enabled"`
	Amount  float32 `yaml:"amount"`
	Speed   float32 `yaml:"speed"`
}

type paint struct {
	Opacity float32 `yaml:"opacity"`
	Speed   float32 `yaml:"speed"`
	Tint    string  `yaml:"tint"`
}

type global struct {
	MasterOpacity float32 `yaml:"master_opacity"`
	Speed         float32 `yaml:"speed"`
}

// triggerEntry holds exactly one of its fields.
type triggerEntry struct {
	MIDI *midiTrigger `yaml:"midi,omitempty"`
	OSC  *oscTrigger  `yaml:"osc,omitempty"`
	Time string       `yaml:"time,omitempty"`
}

type midiTrigger struct {
	Message   string `yaml:"message"`
	Channel   uint8  `yaml:"channel"`
	Number    uint8  `yaml:"number"`
	Threshold *uint8 `yaml:"threshold,omitempty"`
}

type oscTrigger struct {
	Address string   `yaml:"address"`
	Args    []oscArg `yaml:"args,omitempty"`
}

type oscArg struct {
	Index  int     `yaml:"index"`
	Op     string  `yaml:"op"`
	Number float64 `yaml:"number,omitempty"`
	Text   string  `yaml:"text,omitempty"`
}

func fromCue(c *cuelist.Cue) cue {
	out := cue{
		ID:    c.ID,
		Name:  c.Name,
		Curve: c.FadeCurve.String(),
	}
	if c.FadeDuration > 0 {
		out.Fade = c.FadeDuration.String()
	}
	if c.AutoFollow != nil {
		out.AutoFollow = c.AutoFollow.String()
	}

	if len(c.Layers) > 0 {
		out.Layers = make(map[uint32]layerState, len(c.Layers))
		for id, l := range c.Layers {
			out.Layers[id] = layerState{
				Opacity:  l.Opacity,
				Visible:  l.Visible,
				Position: [2]float32{l.Position.X, l.Position.Y},
				Rotation: l.Rotation,
				Scale:    l.Scale,
			}
		}
	}
	if len(c.Effects) > 0 {
		out.Effects = make(map[uint32]effect, len(c.Effects))
		for id, e := range c.Effects {
			out.Effects[id] = effect{Enabled: e.Enabled, Amount: e.Amount, Speed: e.Speed}
		}
	}
	if len(c.Paints) > 0 {
		out.Paints = make(map[uint32]paint, len(c.Paints))
		for id, p := range c.Paints {
			out.Paints[id] = paint{Opacity: p.Opacity, Speed: p.Speed, Tint: p.Tint}
		}
	}
	if c.Global != nil {
		out.Global = &global{MasterOpacity: c.Global.MasterOpacity, Speed: c.Global.Speed}
	}

	for _, t := range c.Triggers {
		out.Triggers = append(out.Triggers, fromTrigger(t))
	}
	return out
}

func fromTrigger(t trigger.Trigger) triggerEntry {
	switch t.Kind {
	case trigger.KindMIDI:
		m := &midiTrigger{Message: t.MIDI.Message.String(), Channel: t.MIDI.Channel, Number: t.MIDI.Number}
		if t.MIDI.Threshold != nil {
			v := *t.MIDI.Threshold
			m.Threshold = &v
		}
		return triggerEntry{MIDI: m}
	case trigger.KindOSC:
		o := &oscTrigger{Address: t.OSC.Address}
		for _, a := range t.OSC.Args {
			o.Args = append(o.Args, oscArg{Index: a.Index, Op: a.Op.String(), Number: a.Number, Text: a.Text})
		}
		return triggerEntry{OSC: o}
	case trigger.KindTime:
		return triggerEntry{Time: t.Time.Clock()}
	}
	return triggerEntry{}
}

func (c cue) toCue() (*cuelist.Cue, error) {
	out := cuelist.NewCue(c.ID, c.Name)

	if c.Fade != "" {
		d, err := time.ParseDuration(c.Fade)
		if err != nil {
			return nil, fmt.Errorf("cue %d: fade: %w", c.ID, err)
		}
		out.WithFadeDuration(d)
	}
	curve, err := fade.ParseCurve(c.Curve)
	if err != nil {
		return nil, fmt.Errorf("cue %d: %w", c.ID, err)
	}
	out.WithFadeCurve(curve)
	if c.AutoFollow != "" {
		d, err := time.ParseDuration(c.AutoFollow)
		if err != nil {
			return nil, fmt.Errorf("cue %d: auto_follow: %w", c.ID, err)
		}
		out.WithAutoFollow(d)
	}

	for id, l := range c.Layers {
		out.AddLayerState(id, cuelist.LayerState{
			Opacity:  l.Opacity,
			Visible:  l.Visible,
			Position: cuelist.Vec2{X: l.Position[0], Y: l.Position[1]},
			Rotation: l.Rotation,
			Scale:    l.Scale,
		})
	}
	for id, e := range c.Effects {
		out.AddEffectState(id, cuelist.EffectState{Enabled: e.Enabled, Amount: e.Amount, Speed: e.Speed})
	}
	for id, p := range c.Paints {
		out.AddPaintState(id, cuelist.PaintState{Opacity: p.Opacity, Speed: p.Speed, Tint: p.Tint})
	}
	if c.Global != nil {
		out.SetGlobalState(cuelist.GlobalState{MasterOpacity: c.Global.MasterOpacity, Speed: c.Global.Speed})
	}

	for i, te := range c.Triggers {
		t, err := te.toTrigger()
		if err != nil {
			return nil, fmt.Errorf("cue %d: trigger %d: %w", c.ID, i, err)
		}
		out.AddTrigger(t)
	}
	return out, nil
}

func (te triggerEntry) toTrigger() (trigger.Trigger, error) {
	set := 0
	if te.MIDI != nil {
		set++
	}
	if te.OSC != nil {
		set++
	}
	if te.Time != "" {
		set++
	}
	if set != 1 {
		return trigger.Trigger{}, fmt.Errorf("expected exactly one of midi, osc or time, got %d", set)
	}

	switch {
	case te.MIDI != nil:
		kind, err := trigger.ParseMessageKind(te.MIDI.Message)
		if err != nil {
			return trigger.Trigger{}, err
		}
		m := trigger.MIDITrigger{Message: kind, Channel: te.MIDI.Channel, Number: te.MIDI.Number}
		if te.MIDI.Threshold != nil {
			m.Threshold = trigger.Threshold(*te.MIDI.Threshold)
		}
		return trigger.MIDI(m), nil
	case te.OSC != nil:
		o := trigger.OSCTrigger{Address: te.OSC.Address}
		for _, a := range te.OSC.Args {
			op, err := trigger.ParseArgOp(a.Op)
			if err != nil {
				return trigger.Trigger{}, err
			}
			o.Args = append(o.Args, trigger.ArgConstraint{Index: a.Index, Op: op, Number: a.Number, Text: a.Text})
		}
		return trigger.OSC(o), nil
	}
	return trigger.ParseClock(te.Time)
}
