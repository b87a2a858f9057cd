package cuelist

import (
	"fmt"
	"time"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"github.com/robmorgan/lumen/fade"
	"github.com/robmorgan/lumen/logger"
	"github.com/robmorgan/lumen/trigger"
)

// Status is the playback state of a cue list.
type Status int

const (
	// StatusIdle means no cue has been activated yet.
	StatusIdle Status = iota
	// StatusActive means a cue is fully current and nothing is fading.
	StatusActive
	// StatusTransitioning means a crossfade is in flight.
	StatusTransitioning
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusActive:
		return "active"
	case StatusTransitioning:
		return "transitioning"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// CueList is an ordered sequence of cues plus the playback state that moves between them. Show order is insertion
// order. A CueList is not safe for concurrent use; Master serialises access to one.
type CueList struct {
	Name string

	clock  clock.PassiveClock
	cues   []*Cue
	status Status

	// currentID is the last cue that became fully active. Meaningless while idle.
	currentID uint32

	// crossfade and its endpoint snapshots, deep-copied when the fade starts so editing a cue mid-fade does not move
	// the blend under the reader.
	crossfade *fade.Crossfade
	fromState State
	toState   State

	// tracked holds the last value output for every key any cue has controlled. A cue leaves the keys it does not
	// control where they were, so fades start from here rather than from the previous cue alone.
	tracked State

	// followAt is the armed auto-follow deadline, nil when nothing is armed.
	followAt *time.Time
}

// NewCueList creates an empty, idle cue list.
func NewCueList(name string, clk clock.PassiveClock) *CueList {
	return &CueList{
		Name:  name,
		clock: clk,
	}
}

// Clock returns the clock the list measures fades against.
func (cl *CueList) Clock() clock.PassiveClock {
	return cl.clock
}

func (cl *CueList) indexOf(id uint32) int {
	for i, c := range cl.cues {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func validateCue(c *Cue) error {
	for i, t := range c.Triggers {
		if err := t.Validate(); err != nil {
			return errors.WithStackTrace(&Error{Kind: InvalidCue, CueID: c.ID, Detail: fmt.Sprintf("trigger %d: %s", i, err)})
		}
	}
	return nil
}

// AddCue appends a copy of c to the end of the show.
func (cl *CueList) AddCue(c *Cue) error {
	if cl.indexOf(c.ID) >= 0 {
		return newError(DuplicateID, c.ID)
	}
	if err := validateCue(c); err != nil {
		return err
	}

	cp := c.Clone()
	if cp.FadeDuration < 0 {
		cp.FadeDuration = 0
	}
	cl.cues = append(cl.cues, cp)

	logger.GetProjectLogger().WithFields(logrus.Fields{"cue_id": c.ID, "cue_name": c.Name, "cue_list": cl.Name}).Debug("Added cue")
	return nil
}

// UpdateCue replaces the stored cue that has c's id, keeping its position in the show. A fade already running
// towards or away from the cue keeps the values it started with.
func (cl *CueList) UpdateCue(c *Cue) error {
	i := cl.indexOf(c.ID)
	if i < 0 {
		return newError(CueNotFound, c.ID)
	}
	if err := validateCue(c); err != nil {
		return err
	}

	cp := c.Clone()
	if cp.FadeDuration < 0 {
		cp.FadeDuration = 0
	}
	cl.cues[i] = cp
	return nil
}

// RemoveCue deletes a cue that is neither current nor an end of the running crossfade.
func (cl *CueList) RemoveCue(id uint32) error {
	i := cl.indexOf(id)
	if i < 0 {
		return newError(CueNotFound, id)
	}
	if cl.inUse(id) {
		return newError(CueInUse, id)
	}

	cl.cues = append(cl.cues[:i], cl.cues[i+1:]...)
	logger.GetProjectLogger().WithFields(logrus.Fields{"cue_id": id, "cue_list": cl.Name}).Debug("Removed cue")
	return nil
}

func (cl *CueList) inUse(id uint32) bool {
	if cl.status != StatusIdle && cl.currentID == id {
		return true
	}
	if cl.crossfade != nil && (cl.crossfade.FromCueID == id || cl.crossfade.ToCueID == id) {
		return true
	}
	return false
}

// NextID returns an id no cue uses yet: one past the highest id, or 0 for an empty list.
func (cl *CueList) NextID() uint32 {
	if len(cl.cues) == 0 {
		return 0
	}
	var highest uint32
	for _, c := range cl.cues {
		if c.ID > highest {
			highest = c.ID
		}
	}
	return highest + 1
}

// GotoCue makes id the target of playback. An idle list jumps straight to it. Otherwise a crossfade starts from
// whatever is on stage right now, replacing any fade in flight. override, when set, replaces the cue's own fade time.
func (cl *CueList) GotoCue(id uint32, override *time.Duration) error {
	i := cl.indexOf(id)
	if i < 0 {
		return newError(CueNotFound, id)
	}
	target := cl.cues[i]
	cl.followAt = nil

	logger := logger.GetProjectLogger()
	if cl.status == StatusIdle {
		cl.currentID = id
		cl.status = StatusActive
		cl.armFollow(target, cl.clock.Now())
		logger.WithFields(logrus.Fields{"cue_id": id, "cue_name": target.Name, "cue_list": cl.Name}).Info("Cue active")
		return nil
	}

	duration := target.FadeDuration
	if override != nil {
		duration = *override
	}

	// blend from the instantaneous value so a retarget never pops
	to := target.Snapshot()
	from := cl.trackedFrom(to)
	fromID := cl.TargetCueID()

	cl.fromState = from
	cl.toState = to
	cl.crossfade = fade.NewCrossfade(cl.clock, fromID, id, duration, target.FadeCurve)
	cl.status = StatusTransitioning

	logger.WithFields(logrus.Fields{
		"from_cue_id": fromID,
		"cue_id":      id,
		"cue_name":    target.Name,
		"duration":    cl.crossfade.Duration(),
		"curve":       target.FadeCurve,
	}).Info("Crossfade started")
	return nil
}

// trackedFrom folds what is on stage into the tracked values and returns the starting point of a fade to "to".
// Layers and paints the target controls that nothing has set yet start at zero opacity, and effects at zero
// amount, so they fade in instead of snapping.
func (cl *CueList) trackedFrom(to State) State {
	cl.tracked = cl.tracked.Overlay(cl.CurrentState())

	from := cl.tracked.Clone()
	for id, l := range to.Layers {
		if _, ok := from.Layers[id]; !ok {
			l.Opacity = 0
			from.Layers[id] = l
		}
	}
	for id, e := range to.Effects {
		if _, ok := from.Effects[id]; !ok {
			e.Amount = 0
			from.Effects[id] = e
		}
	}
	for id, p := range to.Paints {
		if _, ok := from.Paints[id]; !ok {
			p.Opacity = 0
			from.Paints[id] = p
		}
	}
	return from
}

// Next goes to the cue after the target cue. An idle list goes to the first cue.
func (cl *CueList) Next() error {
	if cl.status == StatusIdle {
		if len(cl.cues) == 0 {
			return newError(NoCueAtEnd, 0)
		}
		return cl.GotoCue(cl.cues[0].ID, nil)
	}

	target := cl.TargetCueID()
	i := cl.indexOf(target)
	if i < 0 || i+1 >= len(cl.cues) {
		return newError(NoCueAtEnd, target)
	}
	return cl.GotoCue(cl.cues[i+1].ID, nil)
}

// Previous goes to the cue before the target cue.
func (cl *CueList) Previous() error {
	if cl.status == StatusIdle {
		return newError(NoCueAtStart, 0)
	}

	target := cl.TargetCueID()
	i := cl.indexOf(target)
	if i <= 0 {
		return newError(NoCueAtStart, target)
	}
	return cl.GotoCue(cl.cues[i-1].ID, nil)
}

// CurrentState returns the parameters on stage at this instant. It never mutates the list.
func (cl *CueList) CurrentState() State {
	switch cl.status {
	case StatusActive:
		if i := cl.indexOf(cl.currentID); i >= 0 {
			return cl.cues[i].Snapshot()
		}
		return NewState()
	case StatusTransitioning:
		return Blend(cl.fromState, cl.toState, cl.crossfade.Progress())
	}
	return NewState()
}

// Tick advances playback: it finalizes a finished crossfade, fires a due auto-follow and polls time triggers.
// Call it once per frame.
func (cl *CueList) Tick() {
	logger := logger.GetProjectLogger()

	if cl.status == StatusTransitioning && cl.crossfade.IsComplete() {
		x := cl.crossfade
		cl.currentID = x.ToCueID
		cl.crossfade = nil
		cl.fromState = State{}
		cl.toState = State{}
		cl.status = StatusActive

		if i := cl.indexOf(x.ToCueID); i >= 0 {
			cl.armFollow(cl.cues[i], x.EndTime())
		}
		logger.WithFields(logrus.Fields{"cue_id": x.ToCueID, "cue_list": cl.Name}).Info("Crossfade complete")
	}

	if cl.followAt != nil && !cl.clock.Now().Before(*cl.followAt) {
		cl.followAt = nil
		if err := cl.Next(); err != nil {
			if IsKind(err, NoCueAtEnd) {
				logger.WithFields(logrus.Fields{"cue_id": cl.currentID, "cue_list": cl.Name}).Info("Auto-follow reached the end of the cue list")
			} else {
				logger.WithError(err).Error("Auto-follow failed")
			}
		}
	}

	if _, err := cl.HandleEvent(trigger.TimeEvent(cl.clock.Now())); err != nil {
		logger.WithError(err).Error("Time trigger failed")
	}
}

func (cl *CueList) armFollow(c *Cue, activeAt time.Time) {
	if c.AutoFollow == nil {
		cl.followAt = nil
		return
	}
	at := activeAt.Add(*c.AutoFollow)
	cl.followAt = &at
}

// Status returns the playback state.
func (cl *CueList) Status() Status {
	return cl.status
}

// CurrentCueID returns the last cue that became fully active, false while idle.
func (cl *CueList) CurrentCueID() (uint32, bool) {
	if cl.status == StatusIdle {
		return 0, false
	}
	return cl.currentID, true
}

// TargetCueID is where playback is heading: the crossfade destination while fading, else the current cue.
func (cl *CueList) TargetCueID() uint32 {
	if cl.crossfade != nil {
		return cl.crossfade.ToCueID
	}
	return cl.currentID
}

// Crossfade returns the running crossfade or nil. Crossfades are immutable, so the result is safe to keep.
func (cl *CueList) Crossfade() *fade.Crossfade {
	return cl.crossfade
}

// FollowDue returns when the armed auto-follow fires.
func (cl *CueList) FollowDue() (time.Time, bool) {
	if cl.followAt == nil {
		return time.Time{}, false
	}
	return *cl.followAt, true
}

// Cues returns copies of every cue in show order.
func (cl *CueList) Cues() []*Cue {
	out := make([]*Cue, len(cl.cues))
	for i, c := range cl.cues {
		out[i] = c.Clone()
	}
	return out
}

// Cue returns a copy of the cue with the given id.
func (cl *CueList) Cue(id uint32) (*Cue, error) {
	i := cl.indexOf(id)
	if i < 0 {
		return nil, newError(CueNotFound, id)
	}
	return cl.cues[i].Clone(), nil
}

func (cl *CueList) Len() int {
	return len(cl.cues)
}
