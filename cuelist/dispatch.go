package cuelist

import (
	"github.com/sirupsen/logrus"

	"github.com/robmorgan/lumen/logger"
	"github.com/robmorgan/lumen/trigger"
)

// Dispatch is the outcome of matching one event against every trigger in a cue list.
type Dispatch struct {
	// CueID is the winning cue, valid when Matched is set.
	CueID   uint32
	Matched bool
	// Ignored lists other cues whose triggers also matched. A non-empty list is an authoring error.
	Ignored []uint32
}

// Ambiguous reports whether more than one cue claimed the event.
func (d Dispatch) Ambiguous() bool {
	return len(d.Ignored) > 0
}

// Resolve matches ev against every trigger of every cue. The first matching cue in show order wins. Every trigger
// is evaluated, even after a match, so time triggers keep their edge bookkeeping current.
func (cl *CueList) Resolve(ev trigger.Event) Dispatch {
	var d Dispatch
	for _, c := range cl.cues {
		hit := false
		for i := range c.Triggers {
			if c.Triggers[i].Matches(ev) {
				hit = true
			}
		}
		if !hit {
			continue
		}
		if !d.Matched {
			d.CueID = c.ID
			d.Matched = true
		} else {
			d.Ignored = append(d.Ignored, c.ID)
		}
	}

	if d.Ambiguous() {
		logger.GetProjectLogger().WithFields(logrus.Fields{
			"event":       ev.String(),
			"cue_id":      d.CueID,
			"ignored_ids": d.Ignored,
			"cue_list":    cl.Name,
		}).Warn("Event matched triggers on more than one cue")
	}
	return d
}

// HandleEvent resolves ev and goes to the winning cue with its own fade time.
func (cl *CueList) HandleEvent(ev trigger.Event) (Dispatch, error) {
	d := cl.Resolve(ev)
	if !d.Matched {
		return d, nil
	}

	logger.GetProjectLogger().WithFields(logrus.Fields{"event": ev.String(), "cue_id": d.CueID}).Info("Trigger fired")
	return d, cl.GotoCue(d.CueID, nil)
}

// Conflict is a trigger defined identically on more than one cue.
type Conflict struct {
	Trigger trigger.Trigger
	CueIDs  []uint32
}

// TriggerConflicts lists triggers that appear on more than one cue. Only the first such cue in show order can ever
// fire from them.
func (cl *CueList) TriggerConflicts() []Conflict {
	var out []Conflict
	for ci, c := range cl.cues {
		for _, t := range c.Triggers {
			if seenBefore(cl.cues[:ci], t) {
				continue
			}
			ids := []uint32{c.ID}
			for _, other := range cl.cues[ci+1:] {
				for _, ot := range other.Triggers {
					if t.Equal(ot) {
						ids = append(ids, other.ID)
						break
					}
				}
			}
			if len(ids) > 1 && !conflictListed(out, t) {
				out = append(out, Conflict{Trigger: t.Clone(), CueIDs: ids})
			}
		}
	}
	return out
}

func seenBefore(cues []*Cue, t trigger.Trigger) bool {
	for _, c := range cues {
		for _, ot := range c.Triggers {
			if t.Equal(ot) {
				return true
			}
		}
	}
	return false
}

func conflictListed(conflicts []Conflict, t trigger.Trigger) bool {
	for _, c := range conflicts {
		if c.Trigger.Equal(t) {
			return true
		}
	}
	return false
}
