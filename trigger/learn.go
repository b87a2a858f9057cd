package trigger

// Learner holds the learn-mode state. While active, the next MIDI or OSC event is turned into a trigger for the
// target cue instead of being dispatched. It is not safe for concurrent use; the owner serialises access.
type Learner struct {
	active bool
	cueID  uint32
}

// Activate arms learn mode for cueID, replacing any previous target.
func (l *Learner) Activate(cueID uint32) {
	l.active = true
	l.cueID = cueID
}

func (l *Learner) Deactivate() {
	l.active = false
}

// Active returns the target cue and whether learn mode is armed.
func (l *Learner) Active() (uint32, bool) {
	return l.cueID, l.active
}

// Capture converts ev into a trigger for the target cue and disarms learn mode. Time events are never captured.
func (l *Learner) Capture(ev Event) (Trigger, uint32, bool) {
	if !l.active {
		return Trigger{}, 0, false
	}

	var t Trigger
	switch ev.Kind {
	case KindMIDI:
		m := MIDITrigger{Message: ev.MIDI.Message, Channel: ev.MIDI.Channel, Number: ev.MIDI.Number}
		if m.Message == ControlChange {
			// ignore the release of a momentary controller
			m.Threshold = Threshold(1)
		}
		t = MIDI(m)
	case KindOSC:
		t = OSC(OSCTrigger{Address: ev.OSC.Address})
	default:
		return Trigger{}, 0, false
	}

	l.active = false
	return t, l.cueID, true
}
