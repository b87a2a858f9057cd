package main

import (
	"time"

	"k8s.io/utils/clock"

	"github.com/robmorgan/lumen/cuelist"
	"github.com/robmorgan/lumen/fade"
	"github.com/robmorgan/lumen/trigger"
)

const (
	houseLayer = 0
	washLayer  = 1
	washPaint  = 0

	pulseEffect = 0
)

// loveSensationShow builds the demo cue list used when no show file exists yet. It drives the default patch: house
// lights on layer 0 and the wash pars on layer 1 coloured by paint 0 and pulsed by effect 0.
func loveSensationShow(clk clock.PassiveClock) (*cuelist.CueList, error) {
	cl := cuelist.NewCueList("love sensation", clk)

	// Cue #1: house lights up, wash dark
	preset := cuelist.NewCue(1, "Preset").
		AddLayerState(houseLayer, cuelist.DefaultLayerState()).
		AddLayerState(washLayer, cuelist.LayerState{Opacity: 0, Visible: false, Scale: 1}).
		SetGlobalState(cuelist.DefaultGlobalState())

	// Cue #2: house out, red wash
	intro := cuelist.NewCue(2, "Love Sensation").
		WithFadeDuration(3*time.Second).
		WithFadeCurve(fade.EaseInOut).
		WithAutoFollow(5*time.Second).
		AddLayerState(houseLayer, cuelist.LayerState{Opacity: 0, Visible: false, Scale: 1}).
		AddLayerState(washLayer, cuelist.DefaultLayerState()).
		AddPaintState(washPaint, cuelist.PaintState{Opacity: 1, Speed: 1, Tint: "#ff0000"}).
		AddEffectState(pulseEffect, cuelist.EffectState{Enabled: true, Amount: 0.4, Speed: 1}).
		AddTrigger(trigger.MIDI(trigger.MIDITrigger{Message: trigger.NoteOn, Channel: 0, Number: 36}))

	// Cue #3: snap the wash to white
	drop := cuelist.NewCue(3, "Drop").
		WithFadeDuration(30*time.Millisecond).
		AddLayerState(washLayer, cuelist.DefaultLayerState()).
		AddPaintState(washPaint, cuelist.DefaultPaintState()).
		AddEffectState(pulseEffect, cuelist.EffectState{Enabled: false, Amount: 0, Speed: 1}).
		AddTrigger(trigger.MIDI(trigger.MIDITrigger{Message: trigger.NoteOn, Channel: 0, Number: 37}))

	// Cue #4: slow fade to black
	blackout := cuelist.NewCue(4, "Blackout").
		WithFadeDuration(2*time.Second).
		WithFadeCurve(fade.EaseOut).
		AddLayerState(houseLayer, cuelist.LayerState{Opacity: 0, Visible: false, Scale: 1}).
		AddLayerState(washLayer, cuelist.LayerState{Opacity: 0, Visible: false, Scale: 1}).
		AddTrigger(trigger.OSC(trigger.OSCTrigger{Address: "/lumen/blackout"}))

	for _, c := range []*cuelist.Cue{preset, intro, drop, blackout} {
		if err := cl.AddCue(c); err != nil {
			return nil, err
		}
	}
	return cl, nil
}
