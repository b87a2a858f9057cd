package cuelist

import (
	"context"
	"sync"
	"time"

	"github.com/hypebeast/go-osc/osc"
	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2"
	"k8s.io/utils/clock"

	"github.com/robmorgan/lumen/engine"
	"github.com/robmorgan/lumen/logger"
	"github.com/robmorgan/lumen/rhythm"
	"github.com/robmorgan/lumen/trigger"
)

// Sink receives every rendered frame. The state is shared between sinks and must be treated as read-only.
// Implementations must not block the frame loop.
type Sink interface {
	SendFrame(state State, view View)
}

// MasterManager is the control surface consoles, transports and outputs talk to.
type MasterManager interface {
	GotoCue(id uint32, override *time.Duration) error
	Next() error
	Previous() error
	AddCue(c *Cue) error
	UpdateCue(c *Cue) error
	RemoveCue(id uint32) error
	CurrentState() State
	View() View
	HandleEvent(ev trigger.Event) (Dispatch, error)
	HandleMIDI(msg midi.Message) (Dispatch, error)
	HandleOSC(msg *osc.Message) (Dispatch, error)
	Learn(cueID uint32) error
	CancelLearn()
	ProcessForever(ctx context.Context, wg *sync.WaitGroup, sinks ...Sink)
}

// Master owns the cue list and is the only context that touches it. Every call takes the same lock, so triggers,
// operator input and the frame loop are applied in arrival order.
type Master struct {
	mu        sync.Mutex
	clock     clock.WithTicker
	cueList   *CueList
	learner   trigger.Learner
	midiClock *rhythm.MidiClock
	metronome *rhythm.Metronome
	fps       int
}

var _ MasterManager = (*Master)(nil)

// InitializeMaster wraps cl. The cue list should measure time with the same clock.
func InitializeMaster(clk clock.WithTicker, cl *CueList, fps int) *Master {
	return &Master{
		clock:     clk,
		cueList:   cl,
		midiClock: rhythm.NewMidiClock(),
		metronome: rhythm.NewMetronome(clk),
		fps:       fps,
	}
}

// WithCueList runs fn with exclusive access to the cue list, for bulk reads such as saving the show.
func (m *Master) WithCueList(fn func(cl *CueList) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m.cueList)
}

func (m *Master) GotoCue(id uint32, override *time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cueList.GotoCue(id, override)
}

// Next is the operator's GO.
func (m *Master) Next() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cueList.Next()
}

// Previous is the operator's BACK.
func (m *Master) Previous() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cueList.Previous()
}

func (m *Master) AddCue(c *Cue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cueList.AddCue(c)
}

func (m *Master) UpdateCue(c *Cue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cueList.UpdateCue(c)
}

func (m *Master) RemoveCue(id uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cueList.RemoveCue(id)
}

func (m *Master) CurrentState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cueList.CurrentState()
}

// View returns the playback picture shown by the console and the monitor.
func (m *Master) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewLocked()
}

func (m *Master) viewLocked() View {
	v := m.cueList.view()
	v.LearnCueID, v.Learning = m.learner.Active()
	snap := m.metronome.GetSnapshot(0)
	v.Tempo = snap.Tempo
	v.Marker = snap.Marker()
	v.Beats = float64(snap.Beat-1) + snap.BeatPhase
	return v
}

// Tempo returns the metronome tempo in beats per minute.
func (m *Master) Tempo() float64 {
	return m.metronome.GetTempo()
}

// Learn arms learn mode: the next MIDI or OSC event becomes a trigger on cueID instead of being dispatched.
func (m *Master) Learn(cueID uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.cueList.Cue(cueID); err != nil {
		return err
	}
	m.learner.Activate(cueID)
	logger.GetProjectLogger().WithFields(logrus.Fields{"cue_id": cueID}).Info("Learn mode armed")
	return nil
}

func (m *Master) CancelLearn() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.learner.Deactivate()
}

// Learning returns the cue learn mode is armed for.
func (m *Master) Learning() (uint32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.learner.Active()
}

// HandleEvent learns or dispatches one parsed event.
func (m *Master) HandleEvent(ev trigger.Event) (Dispatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handleEventLocked(ev)
}

func (m *Master) handleEventLocked(ev trigger.Event) (Dispatch, error) {
	if ev.At.IsZero() {
		ev.At = m.clock.Now()
	}

	t, cueID, ok := m.learner.Capture(ev)
	if !ok {
		return m.cueList.HandleEvent(ev)
	}

	c, err := m.cueList.Cue(cueID)
	if err != nil {
		return Dispatch{}, err
	}
	c.AddTrigger(t)
	if err := m.cueList.UpdateCue(c); err != nil {
		return Dispatch{}, err
	}
	logger.GetProjectLogger().WithFields(logrus.Fields{"cue_id": cueID, "trigger": t.String()}).Info("Learned trigger")
	return Dispatch{}, nil
}

// HandleMIDI feeds beat clock messages to the tempo tracker and everything else to the triggers.
func (m *Master) HandleMIDI(msg midi.Message) (Dispatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case msg.Is(midi.TimingClockMsg):
		if bpm, ok := m.midiClock.Pulse(m.clock.Now()); ok {
			m.metronome.SetTempo(bpm)
		}
		return Dispatch{}, nil
	case msg.Is(midi.StartMsg):
		m.midiClock.Start()
		m.metronome.ResetTimeline()
		return Dispatch{}, nil
	case msg.Is(midi.ContinueMsg):
		m.midiClock.Continue()
		return Dispatch{}, nil
	case msg.Is(midi.StopMsg):
		m.midiClock.Stop()
		return Dispatch{}, nil
	}

	ev, ok := trigger.MIDIEventFromMessage(msg)
	if !ok {
		return Dispatch{}, nil
	}
	return m.handleEventLocked(ev)
}

func (m *Master) HandleOSC(msg *osc.Message) (Dispatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handleEventLocked(trigger.OSCEventFromMessage(msg))
}

// ProcessForever runs the frame loop until ctx is done.
func (m *Master) ProcessForever(ctx context.Context, wg *sync.WaitGroup, sinks ...Sink) {
	logger := logger.GetProjectLogger()
	logger.WithFields(logrus.Fields{"cue_list": m.cueList.Name, "fps": m.fps, "sinks": len(sinks)}).Info("Processing cue list...")

	loop := engine.New(m.clock, m.fps, func(float64) {
		m.ProcessFrame(sinks...)
	})

	wg.Add(1)
	go func() {
		defer wg.Done()
		loop.Run(ctx)
	}()
}

// ProcessFrame advances playback once and hands the blended state to every sink.
func (m *Master) ProcessFrame(sinks ...Sink) {
	m.mu.Lock()
	m.cueList.Tick()
	state := m.cueList.CurrentState()
	view := m.viewLocked()
	m.mu.Unlock()

	for _, s := range sinks {
		s.SendFrame(state, view)
	}
}
