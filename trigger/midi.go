package trigger

import (
	"fmt"
	"strings"
)

// MessageKind is the MIDI channel message type a trigger listens for.
type MessageKind int

const (
	NoteOn MessageKind = iota
	NoteOff
	ControlChange
	ProgramChange
)

var messageKindNames = map[MessageKind]string{
	NoteOn:        "note-on",
	NoteOff:       "note-off",
	ControlChange: "control-change",
	ProgramChange: "program-change",
}

func (k MessageKind) String() string {
	if name, ok := messageKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("message(%d)", int(k))
}

// ParseMessageKind is the inverse of MessageKind.String.
func ParseMessageKind(name string) (MessageKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range messageKindNames {
		if n == name {
			return k, nil
		}
	}
	return NoteOn, fmt.Errorf("unknown midi message kind %q", name)
}

// MIDIEvent is a parsed MIDI channel message. Channels are zero based (0-15). Number is the note, controller or
// program; Value is the velocity or controller value.
type MIDIEvent struct {
	Message MessageKind
	Channel uint8
	Number  uint8
	Value   uint8
}

func (e MIDIEvent) String() string {
	return fmt.Sprintf("%s ch=%d num=%d val=%d", e.Message, e.Channel, e.Number, e.Value)
}

// MIDITrigger matches a message kind, channel and note/controller number. When Threshold is set the event value must
// be at least Threshold. Program changes carry no value so the threshold is ignored for them.
type MIDITrigger struct {
	Message   MessageKind
	Channel   uint8
	Number    uint8
	Threshold *uint8
}

func (t *MIDITrigger) Matches(ev MIDIEvent) bool {
	if ev.Message != t.Message || ev.Channel != t.Channel || ev.Number != t.Number {
		return false
	}
	if t.Threshold != nil && t.Message != ProgramChange {
		return ev.Value >= *t.Threshold
	}
	return true
}

func (t *MIDITrigger) Validate() error {
	if _, ok := messageKindNames[t.Message]; !ok {
		return fmt.Errorf("unknown midi message kind %d", int(t.Message))
	}
	if t.Channel > 15 {
		return fmt.Errorf("midi channel %d out of range 0-15", t.Channel)
	}
	if t.Number > 127 {
		return fmt.Errorf("midi number %d out of range 0-127", t.Number)
	}
	if t.Threshold != nil && *t.Threshold > 127 {
		return fmt.Errorf("midi threshold %d out of range 0-127", *t.Threshold)
	}
	return nil
}

func (t MIDITrigger) Equal(o MIDITrigger) bool {
	if t.Message != o.Message || t.Channel != o.Channel || t.Number != o.Number {
		return false
	}
	if t.Threshold == nil || o.Threshold == nil {
		return t.Threshold == nil && o.Threshold == nil
	}
	return *t.Threshold == *o.Threshold
}

func (t MIDITrigger) String() string {
	s := fmt.Sprintf("midi %s ch=%d num=%d", t.Message, t.Channel, t.Number)
	if t.Threshold != nil {
		s += fmt.Sprintf(" >=%d", *t.Threshold)
	}
	return s
}

// Threshold is a helper for building MIDITrigger literals.
func Threshold(v uint8) *uint8 {
	return &v
}
