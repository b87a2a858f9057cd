package trigger

import (
	"time"

	"github.com/hypebeast/go-osc/osc"
	"gitlab.com/gomidi/midi/v2"
)

// Event is an already-parsed external event offered to the triggers of a cue list.
type Event struct {
	Kind Kind
	MIDI MIDIEvent
	OSC  OSCEvent
	At   time.Time
}

// MIDIEventFromMessage decodes a channel message. ok is false for messages no trigger can match (clock, sysex...).
func MIDIEventFromMessage(msg midi.Message) (ev Event, ok bool) {
	var channel, number, value uint8
	switch {
	case msg.GetNoteStart(&channel, &number, &value):
		ev.MIDI = MIDIEvent{Message: NoteOn, Channel: channel, Number: number, Value: value}
	case msg.GetNoteOff(&channel, &number, &value):
		ev.MIDI = MIDIEvent{Message: NoteOff, Channel: channel, Number: number, Value: value}
	case msg.GetNoteEnd(&channel, &number):
		// note on with zero velocity
		ev.MIDI = MIDIEvent{Message: NoteOff, Channel: channel, Number: number}
	case msg.GetControlChange(&channel, &number, &value):
		ev.MIDI = MIDIEvent{Message: ControlChange, Channel: channel, Number: number, Value: value}
	case msg.GetProgramChange(&channel, &number):
		ev.MIDI = MIDIEvent{Message: ProgramChange, Channel: channel, Number: number}
	default:
		return Event{}, false
	}
	ev.Kind = KindMIDI
	return ev, true
}

// MIDIEventOf wraps an already decoded MIDI event.
func MIDIEventOf(m MIDIEvent) Event {
	return Event{Kind: KindMIDI, MIDI: m}
}

// OSCEventFromMessage copies the address and arguments of an OSC message.
func OSCEventFromMessage(msg *osc.Message) Event {
	return Event{
		Kind: KindOSC,
		OSC: OSCEvent{
			Address: msg.Address,
			Args:    append([]interface{}(nil), msg.Arguments...),
		},
	}
}

// OSCEventOf builds an OSC event from an address and arguments.
func OSCEventOf(address string, args ...interface{}) Event {
	return Event{Kind: KindOSC, OSC: OSCEvent{Address: address, Args: args}}
}

// TimeEvent is a wall-clock tick evaluated by time triggers.
func TimeEvent(now time.Time) Event {
	return Event{Kind: KindTime, At: now}
}

func (e Event) String() string {
	switch e.Kind {
	case KindMIDI:
		return e.MIDI.String()
	case KindOSC:
		return e.OSC.String()
	case KindTime:
		return "time " + e.At.Format("15:04:05")
	}
	return e.Kind.String()
}
