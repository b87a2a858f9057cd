package rhythm

import (
	"fmt"
	"math"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Metronome keeps a musical timeline: a tempo anchored at a start time, carved into beats, bars and phrases.
// Originally based on https://github.com/Deep-Symmetry/electro/blob/main/src/main/java/org/deepsymmetry/electro/Metronome.java#L449
type Metronome struct {
	mu            sync.Mutex
	clock         clock.PassiveClock
	startTime     time.Time
	tempo         float64
	beatsPerBar   int
	barsPerPhrase int
}

// NewMetronome creates a new Metronome at 120 bpm in 4/4 with eight bar phrases.
func NewMetronome(clk clock.PassiveClock) *Metronome {
	return &Metronome{
		clock:         clk,
		startTime:     clk.Now(),
		tempo:         120.0,
		beatsPerBar:   4,
		barsPerPhrase: 8,
	}
}

func (m *Metronome) GetTempo() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tempo
}

// SetTempo sets a new tempo for the Metronome. The start time will be adjusted so that the current beat and phase are
// unaffected by the tempo change.
func (m *Metronome) SetTempo(bpm float64) {
	if bpm <= 0 || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	instant := m.clock.Now()
	interval := beatsToMilliseconds(1, m.tempo)
	beat := markerNumber(instant, m.startTime, interval)
	phase := markerPhase(instant, m.startTime, interval)
	newInterval := beatsToMilliseconds(1, bpm)
	m.startTime = instant.Add(-time.Duration(math.Round(newInterval*(phase+float64(beat)-1)) * float64(time.Millisecond)))
	m.tempo = bpm
}

// ResetTimeline moves the origin to now, so the next beat counted is beat one. Used when a MIDI clock starts.
func (m *Metronome) ResetTimeline() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startTime = m.clock.Now()
}

// GetBeatInterval returns the number of milliseconds a beat lasts.
func (m *Metronome) GetBeatInterval() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return beatsToMilliseconds(1, m.tempo)
}

// GetSnapshot captures the timeline at now plus addedDuration.
func (m *Metronome) GetSnapshot(addedDuration time.Duration) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	instant := m.clock.Now().Add(addedDuration)
	interval := beatsToMilliseconds(1, m.tempo)
	return Snapshot{
		Tempo:         m.tempo,
		Beat:          markerNumber(instant, m.startTime, interval),
		BeatPhase:     markerPhase(instant, m.startTime, interval),
		beatsPerBar:   m.beatsPerBar,
		barsPerPhrase: m.barsPerPhrase,
	}
}

// Snapshot is the metronome's timeline sampled at a single instant.
type Snapshot struct {
	Tempo     float64
	Beat      int
	BeatPhase float64

	beatsPerBar   int
	barsPerPhrase int
}

// Bar is the one-based bar number.
func (s Snapshot) Bar() int {
	return (s.Beat-1)/s.beatsPerBar + 1
}

// Phrase is the one-based phrase number.
func (s Snapshot) Phrase() int {
	return (s.Bar()-1)/s.barsPerPhrase + 1
}

// BeatWithinBar is the one-based beat number inside its bar.
func (s Snapshot) BeatWithinBar() int {
	return (s.Beat-1)%s.beatsPerBar + 1
}

// BarWithinPhrase is the one-based bar number inside its phrase.
func (s Snapshot) BarWithinPhrase() int {
	return (s.Bar()-1)%s.barsPerPhrase + 1
}

func (s Snapshot) IsDownBeat() bool {
	return s.BeatWithinBar() == 1
}

// Marker renders the snapshot as "phrase.bar.beat".
func (s Snapshot) Marker() string {
	return fmt.Sprintf("%d.%d.%d", s.Phrase(), s.BarWithinPhrase(), s.BeatWithinBar())
}

// beatsToMilliseconds calculates milliseconds for given beats and tempo
func beatsToMilliseconds(beats int, tempo float64) float64 {
	return (60000.0 / tempo) * float64(beats)
}

// markerNumber calculates the marker number
func markerNumber(instant, start time.Time, interval float64) int {
	return int(math.Floor(instant.Sub(start).Seconds()*1000/interval)) + 1
}

// markerPhase calculates the phase of a marker
func markerPhase(instant, start time.Time, interval float64) float64 {
	ratio := instant.Sub(start).Seconds() * 1000 / interval
	return ratio - math.Floor(ratio)
}
