package tracker

import (
	"time"

	"github.com/alexanderramin/studyclock/internal/domain"
)

// State is a copy of the tracker's observable state.
type State struct {
	Phase          domain.Phase
	SessionID      string
	Subject        string
	StudySegments  []domain.Segment
	BreakSegments  []domain.Segment
	ActiveStudy    *domain.Segment
	ActiveBreak    *domain.Segment
	Elapsed        time.Duration
	DisplaySeconds int
	Generation     uint64
	Busy           bool
	Summary        *Summary
}

// ActiveSegment returns whichever segment is open, or nil.
func (s State) ActiveSegment() *domain.Segment {
	if s.ActiveStudy != nil {
		return s.ActiveStudy
	}
	return s.ActiveBreak
}

// Snapshot returns the current state. Elapsed is measured against the clock
// and excludes paused time.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := State{
		Phase:          t.phase,
		StudySegments:  append([]domain.Segment(nil), t.study...),
		BreakSegments:  append([]domain.Segment(nil), t.breaks...),
		DisplaySeconds: t.display,
		Generation:     t.generation,
		Busy:           t.busy,
		Summary:        t.summary,
	}
	if t.session != nil {
		st.SessionID = t.session.ID
		st.Subject = t.session.Subject
	}
	if t.active != nil {
		seg := *t.active
		if seg.Kind == domain.SegmentBreak {
			st.ActiveBreak = &seg
		} else {
			st.ActiveStudy = &seg
		}
		switch {
		case t.phase.Paused():
			st.Elapsed = t.banked
		case t.phase.Running():
			st.Elapsed = t.clock.Now().Sub(seg.StartTime)
		}
	}
	return st
}

// Phase returns the current phase.
func (t *Tracker) Phase() domain.Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

// Generation identifies the current display-tick loop.
func (t *Tracker) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.generation
}
