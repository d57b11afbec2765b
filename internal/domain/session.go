package domain

import (
	"fmt"
	"time"
)

// Segment is a contiguous timed interval of study or break activity.
// EndTime is nil exactly while the segment is the active one of its kind.
type Segment struct {
	ID            string
	Kind          SegmentKind
	StartTime     time.Time
	EndTime       *time.Time
	Duration      time.Duration
	SegmentNumber int
}

// Active reports whether the segment has not been finalized yet.
func (s *Segment) Active() bool {
	return s.EndTime == nil
}

// Finalize closes the segment at the given instant and derives its duration.
func (s *Segment) Finalize(at time.Time) error {
	if !s.Active() {
		return fmt.Errorf("%s segment #%d already finalized", s.Kind, s.SegmentNumber)
	}
	if at.Before(s.StartTime) {
		return fmt.Errorf("%s segment #%d cannot end before it starts", s.Kind, s.SegmentNumber)
	}
	end := at
	s.EndTime = &end
	s.Duration = end.Sub(s.StartTime)
	return nil
}

// StudySession is one complete use of the study timer.
type StudySession struct {
	ID            string
	UserID        string
	Subject       string
	StartTime     time.Time
	EndTime       *time.Time
	TotalDuration time.Duration
	FocusScore    int
	Productivity  int
	TimeOfDay     TimeOfDay
	StudySegments []Segment
	BreakSegments []Segment
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StudyTime sums the durations of all study segments.
func (s *StudySession) StudyTime() time.Duration {
	return sumDurations(s.StudySegments)
}

// BreakTime sums the durations of all break segments.
func (s *StudySession) BreakTime() time.Duration {
	return sumDurations(s.BreakSegments)
}

// Finished reports whether a focus score has been recorded for the session.
func (s *StudySession) Finished() bool {
	return s.FocusScore > 0 && s.EndTime != nil
}

func sumDurations(segs []Segment) time.Duration {
	var total time.Duration
	for _, seg := range segs {
		total += seg.Duration
	}
	return total
}
