package domain

import "time"

// Prediction is the remote advisor's suggested study rhythm.
type Prediction struct {
	Duration   time.Duration
	BreakTime  time.Duration
	Confidence float64
}

// Feedback is textual coaching about a user's study history.
type Feedback struct {
	Summary             string
	Strengths           []string
	AreasForImprovement []string
	Recommendations     []string
	Fallback            bool
}

// AnalyticsSnapshot aggregates a user's finished sessions. It is recomputed
// on demand and never stored.
type AnalyticsSnapshot struct {
	BestTimeOfDay            TimeOfDay
	RecommendedStudyDuration time.Duration
	RecommendedBreakDuration time.Duration
	NextStudyDuration        time.Duration
	NextBreakDuration        time.Duration
	ProductivityScore        float64
	FocusScore               float64
	TotalStudyTime           time.Duration
	AverageSessionDuration   time.Duration
	Confidence               float64
	SessionCount             int
	Sessions                 []*StudySession
}
