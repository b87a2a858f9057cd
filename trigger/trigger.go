package trigger

import "fmt"

// Kind identifies the variant held by a Trigger or an Event.
type Kind int

const (
	KindMIDI Kind = iota
	KindOSC
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindMIDI:
		return "midi"
	case KindOSC:
		return "osc"
	case KindTime:
		return "time"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Trigger is a matcher that activates its owning cue. Exactly one of MIDI, OSC or Time is set, selected by Kind.
type Trigger struct {
	Kind Kind
	MIDI *MIDITrigger
	OSC  *OSCTrigger
	Time *TimeTrigger
}

// MIDI builds a MIDI trigger.
func MIDI(t MIDITrigger) Trigger {
	return Trigger{Kind: KindMIDI, MIDI: &t}
}

// OSC builds an OSC trigger.
func OSC(t OSCTrigger) Trigger {
	return Trigger{Kind: KindOSC, OSC: &t}
}

// Time builds a time-of-day trigger.
func Time(hour, minute, second int) Trigger {
	return Trigger{Kind: KindTime, Time: &TimeTrigger{Hour: hour, Minute: minute, Second: second}}
}

// Matches reports whether ev activates the owning cue. Time triggers update their firing bookkeeping, so every
// time trigger must see every time event for edge detection to work.
func (t Trigger) Matches(ev Event) bool {
	if t.Kind != ev.Kind {
		return false
	}
	switch t.Kind {
	case KindMIDI:
		return t.MIDI != nil && t.MIDI.Matches(ev.MIDI)
	case KindOSC:
		return t.OSC != nil && t.OSC.Matches(ev.OSC)
	case KindTime:
		return t.Time != nil && t.Time.Poll(ev.At)
	}
	return false
}

// Validate checks the trigger holds the variant its Kind names and that the variant is well formed.
func (t Trigger) Validate() error {
	switch t.Kind {
	case KindMIDI:
		if t.MIDI == nil {
			return fmt.Errorf("midi trigger has no midi matcher")
		}
		return t.MIDI.Validate()
	case KindOSC:
		if t.OSC == nil {
			return fmt.Errorf("osc trigger has no osc matcher")
		}
		return t.OSC.Validate()
	case KindTime:
		if t.Time == nil {
			return fmt.Errorf("time trigger has no time matcher")
		}
		return t.Time.Validate()
	}
	return fmt.Errorf("unknown trigger kind %d", int(t.Kind))
}

// Clone returns a deep copy, including time trigger bookkeeping.
func (t Trigger) Clone() Trigger {
	out := Trigger{Kind: t.Kind}
	if t.MIDI != nil {
		m := *t.MIDI
		if m.Threshold != nil {
			threshold := *m.Threshold
			m.Threshold = &threshold
		}
		out.MIDI = &m
	}
	if t.OSC != nil {
		o := *t.OSC
		o.Args = append([]ArgConstraint(nil), t.OSC.Args...)
		out.OSC = &o
	}
	if t.Time != nil {
		tt := *t.Time
		out.Time = &tt
	}
	return out
}

// Equal compares trigger configuration, ignoring runtime bookkeeping.
func (t Trigger) Equal(o Trigger) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindMIDI:
		return t.MIDI != nil && o.MIDI != nil && t.MIDI.Equal(*o.MIDI)
	case KindOSC:
		return t.OSC != nil && o.OSC != nil && t.OSC.Equal(*o.OSC)
	case KindTime:
		return t.Time != nil && o.Time != nil && t.Time.Equal(*o.Time)
	}
	return false
}

func (t Trigger) String() string {
	switch t.Kind {
	case KindMIDI:
		if t.MIDI != nil {
			return t.MIDI.String()
		}
	case KindOSC:
		if t.OSC != nil {
			return t.OSC.String()
		}
	case KindTime:
		if t.Time != nil {
			return t.Time.String()
		}
	}
	return "invalid trigger"
}
