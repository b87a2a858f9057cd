package cuelist

import "time"

// CueSummary is the display form of a cue.
type CueSummary struct {
	ID           uint32
	Name         string
	FadeDuration time.Duration
	AutoFollow   *time.Duration
	Triggers     []string
}

// View is a read-only picture of playback for consoles and monitors.
type View struct {
	Name   string
	Status Status

	CurrentCueID uint32
	HasCurrent   bool
	TargetCueID  uint32

	// FromCueID, Progress and Remaining describe the running crossfade. Progress is unshaped time progress.
	FromCueID uint32
	Progress  float64
	Remaining time.Duration

	FollowDue time.Time
	Following bool

	Learning   bool
	LearnCueID uint32

	Tempo  float64
	Marker string
	// Beats is the metronome position in beats since the timeline was reset.
	Beats float64

	Cues []CueSummary
}

func (cl *CueList) view() View {
	v := View{
		Name:   cl.Name,
		Status: cl.status,
	}
	v.CurrentCueID, v.HasCurrent = cl.CurrentCueID()
	if v.HasCurrent {
		v.TargetCueID = cl.TargetCueID()
	}
	if x := cl.crossfade; x != nil {
		v.FromCueID = x.FromCueID
		v.Progress = x.LinearProgress()
		v.Remaining = x.Remaining()
	}
	v.FollowDue, v.Following = cl.FollowDue()

	v.Cues = make([]CueSummary, len(cl.cues))
	for i, c := range cl.cues {
		s := CueSummary{ID: c.ID, Name: c.Name, FadeDuration: c.FadeDuration}
		if c.AutoFollow != nil {
			d := *c.AutoFollow
			s.AutoFollow = &d
		}
		for _, t := range c.Triggers {
			s.Triggers = append(s.Triggers, t.String())
		}
		v.Cues[i] = s
	}
	return v
}
