package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestSegmentFinalize_DerivesDuration(t *testing.T) {
	seg := &Segment{Kind: SegmentStudy, StartTime: testNow, SegmentNumber: 1}
	require.True(t, seg.Active())

	require.NoError(t, seg.Finalize(testNow.Add(90*time.Second)))

	assert.False(t, seg.Active())
	require.NotNil(t, seg.EndTime)
	assert.Equal(t, 90*time.Second, seg.Duration)
	assert.Equal(t, seg.EndTime.Sub(seg.StartTime), seg.Duration)
}

func TestSegmentFinalize_Twice(t *testing.T) {
	seg := &Segment{Kind: SegmentBreak, StartTime: testNow, SegmentNumber: 2}
	require.NoError(t, seg.Finalize(testNow.Add(time.Minute)))

	err := seg.Finalize(testNow.Add(2 * time.Minute))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already finalized")
	assert.Equal(t, time.Minute, seg.Duration, "duration should not change")
}

func TestSegmentFinalize_BeforeStart(t *testing.T) {
	seg := &Segment{Kind: SegmentStudy, StartTime: testNow, SegmentNumber: 1}
	err := seg.Finalize(testNow.Add(-time.Second))
	require.Error(t, err)
	assert.True(t, seg.Active())
}

func TestStudySession_Totals(t *testing.T) {
	s := &StudySession{
		StudySegments: []Segment{{Duration: 10 * time.Second}, {Duration: 8 * time.Second}},
		BreakSegments: []Segment{{Duration: 5 * time.Second}},
	}
	assert.Equal(t, 18*time.Second, s.StudyTime())
	assert.Equal(t, 5*time.Second, s.BreakTime())
}

func TestStudySession_Finished(t *testing.T) {
	end := testNow
	assert.False(t, (&StudySession{}).Finished())
	assert.False(t, (&StudySession{FocusScore: 80}).Finished())
	assert.True(t, (&StudySession{FocusScore: 80, EndTime: &end}).Finished())
}

func TestPhase_RunningAndPaused(t *testing.T) {
	assert.True(t, PhaseStudying.Running())
	assert.True(t, PhaseOnBreak.Running())
	assert.False(t, PhasePausedStudy.Running())
	assert.True(t, PhasePausedBreak.Paused())
	assert.False(t, PhaseIdle.Paused())
	assert.False(t, PhaseEnded.Running())
}

func TestUser_Authenticated(t *testing.T) {
	var nilUser *User
	assert.False(t, nilUser.Authenticated())
	assert.False(t, (&User{}).Authenticated())
	assert.True(t, (&User{ID: "u1"}).Authenticated())
}
