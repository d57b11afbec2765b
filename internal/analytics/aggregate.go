package analytics

import (
	"math"
	"time"

	"github.com/alexanderramin/studyclock/internal/domain"
)

const (
	// ProductiveThreshold is the minimum productivity (1-100 scale) for a
	// session to count toward recommended durations.
	ProductiveThreshold = 80

	DefaultStudyDuration = 25 * time.Minute
	DefaultBreakDuration = 5 * time.Minute

	// OverrideConfidence is the confidence above which a remote prediction
	// replaces the locally computed recommendations.
	OverrideConfidence = 0.7
	// FallbackConfidence is the confidence at or below which the next
	// durations drop back to the fixed defaults.
	FallbackConfidence = 0.3
)

// Aggregate computes an analytics snapshot over a user's sessions. Sessions
// without a focus score or end time are ignored. pred may be nil.
func Aggregate(sessions []*domain.StudySession, pred *domain.Prediction) domain.AnalyticsSnapshot {
	finished := make([]*domain.StudySession, 0, len(sessions))
	for _, s := range sessions {
		if s != nil && s.Finished() {
			finished = append(finished, s)
		}
	}

	snap := domain.AnalyticsSnapshot{
		BestTimeOfDay: BestTimeOfDay(finished),
		SessionCount:  len(finished),
		Sessions:      finished,
	}
	snap.RecommendedStudyDuration = recommendStudy(finished, snap.BestTimeOfDay)
	snap.RecommendedBreakDuration = recommendBreak(finished)

	if pred != nil {
		snap.Confidence = pred.Confidence
		if pred.Confidence > OverrideConfidence {
			snap.RecommendedStudyDuration = roundToMinutes(pred.Duration)
			snap.RecommendedBreakDuration = roundToMinutes(pred.BreakTime)
		}
	}

	snap.NextStudyDuration, snap.NextBreakDuration = NextDurations(snap)

	if len(finished) == 0 {
		return snap
	}

	var productivity, focus float64
	for _, s := range finished {
		productivity += float64(s.Productivity)
		focus += float64(s.FocusScore)
		snap.TotalStudyTime += s.StudyTime()
	}
	n := float64(len(finished))
	snap.ProductivityScore = productivity / n
	snap.FocusScore = focus / n
	snap.AverageSessionDuration = time.Duration(float64(snap.TotalStudyTime) / n)
	return snap
}

// NextDurations picks the durations to suggest for the next session. A low
// confidence falls back to the fixed defaults whatever the local history says.
func NextDurations(snap domain.AnalyticsSnapshot) (study, brk time.Duration) {
	if snap.Confidence <= FallbackConfidence {
		return DefaultStudyDuration, DefaultBreakDuration
	}
	return snap.RecommendedStudyDuration, snap.RecommendedBreakDuration
}

// BestTimeOfDay returns the bucket with the highest mean productivity.
// Buckets are compared in canonical order with a strict greater-than, so
// ties and empty input resolve to morning.
func BestTimeOfDay(sessions []*domain.StudySession) domain.TimeOfDay {
	sums := make(map[domain.TimeOfDay]float64)
	counts := make(map[domain.TimeOfDay]int)
	for _, s := range sessions {
		sums[s.TimeOfDay] += float64(s.Productivity)
		counts[s.TimeOfDay]++
	}

	best := domain.Morning
	bestMean := 0.0
	for _, tod := range domain.TimeOfDayOrder {
		if counts[tod] == 0 {
			continue
		}
		mean := sums[tod] / float64(counts[tod])
		if mean > bestMean {
			best = tod
			bestMean = mean
		}
	}
	return best
}

func recommendStudy(sessions []*domain.StudySession, best domain.TimeOfDay) time.Duration {
	var total time.Duration
	var n int
	for _, s := range sessions {
		if s.TimeOfDay != best || s.Productivity < ProductiveThreshold {
			continue
		}
		total += s.StudyTime()
		n++
	}
	if n == 0 {
		return DefaultStudyDuration
	}
	return clampMin(roundToMinutes(total/time.Duration(n)), DefaultStudyDuration)
}

func recommendBreak(sessions []*domain.StudySession) time.Duration {
	var total time.Duration
	var n int
	for _, s := range sessions {
		if s.Productivity < ProductiveThreshold {
			continue
		}
		total += s.BreakTime()
		n++
	}
	if n == 0 {
		return DefaultBreakDuration
	}
	return clampMin(roundToMinutes(total/time.Duration(n)), DefaultBreakDuration)
}

func roundToMinutes(d time.Duration) time.Duration {
	return time.Duration(math.Round(d.Minutes())) * time.Minute
}

func clampMin(d, floor time.Duration) time.Duration {
	if d < floor {
		return floor
	}
	return d
}
