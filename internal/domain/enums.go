package domain

type SegmentKind string

const (
	SegmentStudy SegmentKind = "study"
	SegmentBreak SegmentKind = "break"
)

type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// TimeOfDayOrder is the canonical iteration order for time-of-day buckets.
// Analytics relies on morning coming first when breaking ties.
var TimeOfDayOrder = []TimeOfDay{Morning, Afternoon, Evening, Night}

// ValidTimeOfDay reports whether s names one of the four buckets.
func ValidTimeOfDay(s string) bool {
	switch TimeOfDay(s) {
	case Morning, Afternoon, Evening, Night:
		return true
	}
	return false
}

// Phase is the tracker's current mode.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseStudying    Phase = "studying"
	PhaseOnBreak     Phase = "on_break"
	PhasePausedStudy Phase = "paused_study"
	PhasePausedBreak Phase = "paused_break"
	PhaseEnded       Phase = "ended"
	PhaseSubmitted   Phase = "submitted"
)

// Running reports whether a segment clock is ticking in this phase.
func (p Phase) Running() bool {
	return p == PhaseStudying || p == PhaseOnBreak
}

// Paused reports whether the phase holds an open segment whose clock is stopped.
func (p Phase) Paused() bool {
	return p == PhasePausedStudy || p == PhasePausedBreak
}
