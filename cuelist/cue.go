package cuelist

import (
	"time"

	"github.com/robmorgan/lumen/fade"
	"github.com/robmorgan/lumen/trigger"
)

// I've borrowed heavily from: http://www.stagelightingprimer.com/index.html?slfs-control.html&2

// Cue is a named snapshot of the parameters it controls. Layers, effects and paints absent from the maps are left
// untouched when the cue plays.
type Cue struct {
	// ID is unique within a cue list. Show order is insertion order, not ID order.
	ID uint32

	// The name or label associated with the cue
	Name string

	Layers  map[uint32]LayerState
	Effects map[uint32]EffectState
	Paints  map[uint32]PaintState
	Global  *GlobalState

	// A cue's "time" is a measure of how long it takes the cue to complete, once it has been executed. It applies
	// when this cue is the target of a transition and can be overridden per GO.
	FadeDuration time.Duration

	// FadeCurve shapes the transition into this cue.
	FadeCurve fade.Curve

	// Follow: putting a follow time on a cue causes the list to GO to the next cue automatically this long after
	// the cue has completed. Nil means no follow.
	AutoFollow *time.Duration

	// Triggers are the external events that GO to this cue.
	Triggers []trigger.Trigger
}

// NewCue creates an empty cue with a linear, instant fade.
func NewCue(id uint32, name string) *Cue {
	return &Cue{
		ID:      id,
		Name:    name,
		Layers:  make(map[uint32]LayerState),
		Effects: make(map[uint32]EffectState),
		Paints:  make(map[uint32]PaintState),
	}
}

// WithFadeDuration sets the default transition length. Negative durations are clamped to zero.
func (c *Cue) WithFadeDuration(d time.Duration) *Cue {
	if d < 0 {
		d = 0
	}
	c.FadeDuration = d
	return c
}

func (c *Cue) WithFadeCurve(curve fade.Curve) *Cue {
	c.FadeCurve = curve
	return c
}

// WithAutoFollow makes the list advance to the next cue d after this cue becomes fully active.
func (c *Cue) WithAutoFollow(d time.Duration) *Cue {
	if d < 0 {
		d = 0
	}
	c.AutoFollow = &d
	return c
}

// WithoutAutoFollow clears the follow time.
func (c *Cue) WithoutAutoFollow() *Cue {
	c.AutoFollow = nil
	return c
}

// AddLayerState inserts or overwrites the state for layerID. The layer is not checked against any registry.
func (c *Cue) AddLayerState(layerID uint32, state LayerState) *Cue {
	if c.Layers == nil {
		c.Layers = make(map[uint32]LayerState)
	}
	c.Layers[layerID] = state
	return c
}

func (c *Cue) AddEffectState(effectID uint32, state EffectState) *Cue {
	if c.Effects == nil {
		c.Effects = make(map[uint32]EffectState)
	}
	c.Effects[effectID] = state
	return c
}

func (c *Cue) AddPaintState(paintID uint32, state PaintState) *Cue {
	if c.Paints == nil {
		c.Paints = make(map[uint32]PaintState)
	}
	c.Paints[paintID] = state
	return c
}

func (c *Cue) SetGlobalState(state GlobalState) *Cue {
	c.Global = &state
	return c
}

func (c *Cue) AddTrigger(t trigger.Trigger) *Cue {
	c.Triggers = append(c.Triggers, t)
	return c
}

// Snapshot returns a copy of the parameters this cue controls.
func (c *Cue) Snapshot() State {
	return State{
		Layers:  c.Layers,
		Effects: c.Effects,
		Paints:  c.Paints,
		Global:  c.Global,
	}.Clone()
}

// Clone returns a deep copy of the cue, including trigger bookkeeping.
func (c *Cue) Clone() *Cue {
	s := c.Snapshot()
	out := &Cue{
		ID:           c.ID,
		Name:         c.Name,
		Layers:       s.Layers,
		Effects:      s.Effects,
		Paints:       s.Paints,
		Global:       s.Global,
		FadeDuration: c.FadeDuration,
		FadeCurve:    c.FadeCurve,
	}
	if c.AutoFollow != nil {
		d := *c.AutoFollow
		out.AutoFollow = &d
	}
	if len(c.Triggers) > 0 {
		out.Triggers = make([]trigger.Trigger, len(c.Triggers))
		for i, t := range c.Triggers {
			out.Triggers[i] = t.Clone()
		}
	}
	return out
}
