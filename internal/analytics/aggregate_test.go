package analytics

import (
	"testing"
	"time"

	"github.com/alexanderramin/studyclock/internal/domain"
	"github.com/alexanderramin/studyclock/internal/testutil"
	"github.com/stretchr/testify/assert"
)

var (
	morningStart   = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	afternoonStart = time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)
	eveningStart   = time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC)
)

func session(start time.Time, score int, study time.Duration, breaks ...time.Duration) *domain.StudySession {
	opts := []testutil.SessionOption{
		testutil.WithStartTime(start),
		testutil.WithStudyBlocks(study),
		testutil.WithScores(score, score),
	}
	if len(breaks) > 0 {
		opts = append(opts, testutil.WithBreakBlocks(breaks...))
	}
	return testutil.NewTestSession("u1", opts...)
}

func TestAggregate_Empty(t *testing.T) {
	snap := Aggregate(nil, nil)

	assert.Equal(t, domain.Morning, snap.BestTimeOfDay)
	assert.Equal(t, 25*time.Minute, snap.RecommendedStudyDuration)
	assert.Equal(t, 5*time.Minute, snap.RecommendedBreakDuration)
	assert.Equal(t, 25*time.Minute, snap.NextStudyDuration)
	assert.Equal(t, 5*time.Minute, snap.NextBreakDuration)
	assert.Zero(t, snap.ProductivityScore)
	assert.Zero(t, snap.FocusScore)
	assert.Zero(t, snap.TotalStudyTime)
	assert.Zero(t, snap.AverageSessionDuration)
	assert.Zero(t, snap.SessionCount)
}

func TestAggregate_NoProductiveSessionsDefaultsTo25(t *testing.T) {
	sessions := []*domain.StudySession{
		session(morningStart, 40, 50*time.Minute, 15*time.Minute),
		session(morningStart, 79, 60*time.Minute),
	}
	snap := Aggregate(sessions, nil)
	assert.Equal(t, 25*time.Minute, snap.RecommendedStudyDuration)
	assert.Equal(t, 5*time.Minute, snap.RecommendedBreakDuration)
}

func TestAggregate_OneQualifyingSessionOf1800s(t *testing.T) {
	sessions := []*domain.StudySession{
		session(morningStart, 90, 1800*time.Second),
	}
	snap := Aggregate(sessions, nil)
	assert.Equal(t, 30*time.Minute, snap.RecommendedStudyDuration)
}

func TestAggregate_ShortSessionsClampToMinimum(t *testing.T) {
	sessions := []*domain.StudySession{
		session(morningStart, 95, 10*time.Minute, 2*time.Minute),
	}
	snap := Aggregate(sessions, nil)
	assert.Equal(t, 25*time.Minute, snap.RecommendedStudyDuration)
	assert.Equal(t, 5*time.Minute, snap.RecommendedBreakDuration)
}

func TestAggregate_BreakUsesAllBuckets(t *testing.T) {
	sessions := []*domain.StudySession{
		session(morningStart, 90, 40*time.Minute, 8*time.Minute),
		session(eveningStart, 85, 40*time.Minute, 12*time.Minute),
	}
	snap := Aggregate(sessions, nil)
	assert.Equal(t, domain.Morning, snap.BestTimeOfDay)
	assert.Equal(t, 40*time.Minute, snap.RecommendedStudyDuration)
	assert.Equal(t, 10*time.Minute, snap.RecommendedBreakDuration)
}

func TestAggregate_StudyRecommendationOnlyFromBestBucket(t *testing.T) {
	sessions := []*domain.StudySession{
		session(afternoonStart, 95, 50*time.Minute),
		session(morningStart, 85, 90*time.Minute),
	}
	snap := Aggregate(sessions, nil)
	assert.Equal(t, domain.Afternoon, snap.BestTimeOfDay)
	assert.Equal(t, 50*time.Minute, snap.RecommendedStudyDuration)
}

func TestBestTimeOfDay_TieResolvesToMorning(t *testing.T) {
	sessions := []*domain.StudySession{
		session(eveningStart, 70, 30*time.Minute),
		session(morningStart, 70, 30*time.Minute),
	}
	assert.Equal(t, domain.Morning, BestTimeOfDay(sessions))
}

func TestBestTimeOfDay_TieBetweenLaterBucketsKeepsCanonicalOrder(t *testing.T) {
	sessions := []*domain.StudySession{
		session(eveningStart, 70, 30*time.Minute),
		session(afternoonStart, 70, 30*time.Minute),
	}
	assert.Equal(t, domain.Afternoon, BestTimeOfDay(sessions))
}

func TestAggregate_HighConfidencePredictionOverrides(t *testing.T) {
	sessions := []*domain.StudySession{
		session(morningStart, 90, 40*time.Minute, 10*time.Minute),
	}
	pred := &domain.Prediction{Duration: 2700 * time.Second, BreakTime: 420 * time.Second, Confidence: 0.85}

	snap := Aggregate(sessions, pred)
	assert.Equal(t, 45*time.Minute, snap.RecommendedStudyDuration)
	assert.Equal(t, 7*time.Minute, snap.RecommendedBreakDuration)
	assert.Equal(t, 45*time.Minute, snap.NextStudyDuration)
	assert.Equal(t, 7*time.Minute, snap.NextBreakDuration)
	assert.InDelta(t, 0.85, snap.Confidence, 1e-9)
}

func TestAggregate_ConfidenceAtThresholdDoesNotOverride(t *testing.T) {
	sessions := []*domain.StudySession{
		session(morningStart, 90, 40*time.Minute, 10*time.Minute),
	}
	pred := &domain.Prediction{Duration: time.Hour, BreakTime: 20 * time.Minute, Confidence: 0.7}

	snap := Aggregate(sessions, pred)
	assert.Equal(t, 40*time.Minute, snap.RecommendedStudyDuration)
	assert.Equal(t, 10*time.Minute, snap.RecommendedBreakDuration)
	assert.Equal(t, 40*time.Minute, snap.NextStudyDuration)
	assert.Equal(t, 10*time.Minute, snap.NextBreakDuration)
}

func TestAggregate_LowConfidenceFallsBackForNextDurations(t *testing.T) {
	sessions := []*domain.StudySession{
		session(morningStart, 90, 40*time.Minute, 10*time.Minute),
	}
	pred := &domain.Prediction{Duration: time.Hour, BreakTime: 20 * time.Minute, Confidence: 0.3}

	snap := Aggregate(sessions, pred)
	assert.Equal(t, 40*time.Minute, snap.RecommendedStudyDuration)
	assert.Equal(t, 25*time.Minute, snap.NextStudyDuration)
	assert.Equal(t, 5*time.Minute, snap.NextBreakDuration)
}

func TestAggregate_Averages(t *testing.T) {
	sessions := []*domain.StudySession{
		session(morningStart, 60, 20*time.Minute),
		session(afternoonStart, 100, 40*time.Minute),
		testutil.NewTestSession("u1", testutil.Unfinished()),
	}
	snap := Aggregate(sessions, nil)

	assert.Equal(t, 2, snap.SessionCount)
	assert.Len(t, snap.Sessions, 2)
	assert.InDelta(t, 80, snap.ProductivityScore, 1e-9)
	assert.InDelta(t, 80, snap.FocusScore, 1e-9)
	assert.Equal(t, time.Hour, snap.TotalStudyTime)
	assert.Equal(t, 30*time.Minute, snap.AverageSessionDuration)
}
