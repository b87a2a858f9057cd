package cuelist

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hypebeast/go-osc/osc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/robmorgan/lumen/rhythm"
	"github.com/robmorgan/lumen/trigger"
)

type recordingSink struct {
	mu     sync.Mutex
	frames []State
	views  []View
}

func (s *recordingSink) SendFrame(state State, view View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, state)
	s.views = append(s.views, view)
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func newMaster(t *testing.T) (*Master, *testingclock.FakeClock) {
	t.Helper()

	cl, clk := newOpeningMain(t)
	return InitializeMaster(clk, cl, 40), clk
}

func TestMasterLearnMode(t *testing.T) {
	t.Parallel()

	m, _ := newMaster(t)
	require.NoError(t, m.GotoCue(0, nil))
	require.NoError(t, m.Learn(1))
	cueID, ok := m.Learning()
	require.True(t, ok)
	assert.Equal(t, uint32(1), cueID)
	assert.True(t, m.View().Learning)

	// captured, not dispatched
	d, err := m.HandleMIDI(midi.NoteOn(2, 64, 90))
	require.NoError(t, err)
	assert.False(t, d.Matched)
	assert.Equal(t, StatusActive, m.View().Status)
	_, ok = m.Learning()
	assert.False(t, ok)

	var learned []string
	for _, c := range m.View().Cues {
		if c.ID == 1 {
			learned = c.Triggers
		}
	}
	assert.Equal(t, []string{"midi note-on ch=2 num=64"}, learned)

	d, err = m.HandleMIDI(midi.NoteOn(2, 64, 10))
	require.NoError(t, err)
	assert.True(t, d.Matched)
	assert.Equal(t, uint32(1), m.View().TargetCueID)
}

func TestMasterLearnUnknownCue(t *testing.T) {
	t.Parallel()

	m, _ := newMaster(t)
	assert.True(t, IsKind(m.Learn(9), CueNotFound))
	_, ok := m.Learning()
	assert.False(t, ok)

	require.NoError(t, m.Learn(0))
	m.CancelLearn()
	_, ok = m.Learning()
	assert.False(t, ok)
}

func TestMasterHandleOSC(t *testing.T) {
	t.Parallel()

	m, _ := newMaster(t)
	c, err := m.cueList.Cue(1)
	require.NoError(t, err)
	require.NoError(t, m.UpdateCue(c.AddTrigger(trigger.OSC(trigger.OSCTrigger{
		Address: "/lumen/cue/*",
		Args:    []trigger.ArgConstraint{{Index: 0, Op: trigger.ArgAtLeast, Number: 0.5}},
	}))))

	d, err := m.HandleOSC(osc.NewMessage("/lumen/cue/main", float32(0.2)))
	require.NoError(t, err)
	assert.False(t, d.Matched)

	d, err = m.HandleOSC(osc.NewMessage("/lumen/cue/main", float32(1)))
	require.NoError(t, err)
	assert.True(t, d.Matched)
	assert.Equal(t, StatusActive, m.View().Status)
	assert.Equal(t, uint32(1), m.View().CurrentCueID)
}

func TestMasterMidiClockSetsTempo(t *testing.T) {
	t.Parallel()

	m, clk := newMaster(t)
	_, err := m.HandleMIDI(midi.Start())
	require.NoError(t, err)
	for i := 0; i < 2*rhythm.PulsesPerQuarterNote; i++ {
		_, err := m.HandleMIDI(midi.TimingClock())
		require.NoError(t, err)
		clk.Step(20 * time.Millisecond)
	}
	assert.InDelta(t, 125.0, m.Tempo(), 0.01)
	assert.InDelta(t, 125.0, m.View().Tempo, 0.01)
}

func TestMasterProcessForever(t *testing.T) {
	t.Parallel()

	m, clk := newMaster(t)
	require.NoError(t, m.GotoCue(0, nil))
	require.NoError(t, m.Next())

	sink := &recordingSink{}
	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	m.ProcessForever(ctx, wg, sink)

	require.Eventually(t, clk.HasWaiters, time.Second, time.Millisecond)
	clk.Step(25 * time.Millisecond)
	require.Eventually(t, func() bool { return sink.count() >= 1 }, time.Second, time.Millisecond)

	clk.Step(3 * time.Second)
	require.Eventually(t, func() bool { return sink.count() >= 2 }, time.Second, time.Millisecond)

	cancel()
	wg.Wait()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	last := sink.views[len(sink.views)-1]
	assert.Equal(t, StatusActive, last.Status)
	assert.Equal(t, uint32(1), last.CurrentCueID)
	assert.Equal(t, float32(0.5), sink.frames[len(sink.frames)-1].Layers[0].Opacity)
}
