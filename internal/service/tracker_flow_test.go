package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/studyclock/internal/domain"
	"github.com/alexanderramin/studyclock/internal/repository"
	"github.com/alexanderramin/studyclock/internal/testutil"
	"github.com/alexanderramin/studyclock/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

// TestTrackerFlow_PersistsThroughStore drives a whole session through the
// tracker into SQLite and reads it back through analytics.
func TestTrackerFlow_PersistsThroughStore(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser()
	require.NoError(t, repository.NewSQLiteUserRepo(database).Create(ctx, user))

	store := NewSessionStore(repository.NewSQLiteStudySessionRepo(database), testutil.NewTestUoW(database))
	stub := &stubAdvisor{
		pred: &domain.Prediction{Duration: 30 * time.Minute, BreakTime: 5 * time.Minute, Confidence: 0.5},
		fb:   &domain.Feedback{Summary: "Nice start."},
	}
	insights := NewAnalyticsService(store, stub)

	clock := &stepClock{now: time.Date(2025, 6, 2, 19, 0, 0, 0, time.Local)}
	tr := tracker.New(clock, store, insights)

	require.NoError(t, tr.Start(ctx, user, "Physics"))
	id := tr.Snapshot().SessionID
	require.NotEmpty(t, id)

	provisional, err := store.GetSession(ctx, user, id)
	require.NoError(t, err)
	assert.Empty(t, provisional.StudySegments)
	assert.False(t, provisional.Finished())

	clock.now = clock.now.Add(10 * time.Second)
	require.NoError(t, tr.Toggle(ctx, user))
	clock.now = clock.now.Add(5 * time.Second)
	require.NoError(t, tr.Toggle(ctx, user))
	clock.now = clock.now.Add(8 * time.Second)
	require.NoError(t, tr.End(user))
	require.NoError(t, tr.SubmitScore(ctx, user, 85))

	saved, err := store.GetSession(ctx, user, id)
	require.NoError(t, err)
	assert.Equal(t, 18*time.Second, saved.TotalDuration)
	assert.Equal(t, 85, saved.FocusScore)
	assert.Equal(t, domain.Evening, saved.TimeOfDay)
	assert.Equal(t, "Physics", saved.Subject)
	require.Len(t, saved.StudySegments, 2)
	require.Len(t, saved.BreakSegments, 1)
	assert.Equal(t, 2, saved.Version)

	st := tr.Snapshot()
	require.Equal(t, domain.PhaseSubmitted, st.Phase)
	require.NotNil(t, st.Summary.Analytics)
	assert.Equal(t, 1, st.Summary.Analytics.SessionCount)
	assert.Equal(t, domain.Evening, st.Summary.Analytics.BestTimeOfDay)
	assert.Equal(t, "Nice start.", st.Summary.Feedback.Summary)

	require.NoError(t, tr.Acknowledge())
	assert.Equal(t, domain.PhaseIdle, tr.Phase())
}
