package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/studyclock/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeStore struct {
	createErr error
	updateErr error
	creates   int
	updates   []*domain.StudySession
}

func (s *fakeStore) CreateSession(_ context.Context, _ *domain.User, _ *domain.StudySession) (string, error) {
	s.creates++
	if s.createErr != nil {
		return "", s.createErr
	}
	return "sess-1", nil
}

func (s *fakeStore) UpdateSession(_ context.Context, _ *domain.User, id string, sess *domain.StudySession) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	cp := *sess
	cp.ID = id
	s.updates = append(s.updates, &cp)
	return nil
}

type fakeInsights struct {
	calls int
	err   error
}

func (f *fakeInsights) Refresh(context.Context, *domain.User) (domain.AnalyticsSnapshot, domain.Feedback, error) {
	f.calls++
	fb := domain.Feedback{Summary: "keep going", Fallback: true}
	if f.err != nil {
		return domain.AnalyticsSnapshot{}, fb, f.err
	}
	return domain.AnalyticsSnapshot{SessionCount: 1}, fb, nil
}

var student = &domain.User{ID: "user-1", Email: "s@example.com"}

func newTestTracker() (*Tracker, *fakeClock, *fakeStore, *fakeInsights) {
	clock := newFakeClock()
	store := &fakeStore{}
	insights := &fakeInsights{}
	return New(clock, store, insights), clock, store, insights
}

func assertMutualExclusion(t *testing.T, tr *Tracker) {
	t.Helper()
	st := tr.Snapshot()
	assert.False(t, st.ActiveStudy != nil && st.ActiveBreak != nil, "study and break active together")
	switch st.Phase {
	case domain.PhaseStudying, domain.PhasePausedStudy:
		assert.NotNil(t, st.ActiveStudy)
	case domain.PhaseOnBreak, domain.PhasePausedBreak:
		assert.NotNil(t, st.ActiveBreak)
	default:
		assert.Nil(t, st.ActiveSegment())
	}
}

func TestTracker_FullScenario(t *testing.T) {
	tr, clock, store, insights := newTestTracker()
	ctx := context.Background()

	require.NoError(t, tr.Start(ctx, student, "Calculus"))
	assertMutualExclusion(t, tr)
	clock.Advance(10 * time.Second)
	require.NoError(t, tr.Toggle(ctx, student))
	assertMutualExclusion(t, tr)
	clock.Advance(5 * time.Second)
	require.NoError(t, tr.Toggle(ctx, student))
	assertMutualExclusion(t, tr)
	clock.Advance(8 * time.Second)
	require.NoError(t, tr.End(student))
	assertMutualExclusion(t, tr)
	require.NoError(t, tr.SubmitScore(ctx, student, 85))

	require.Len(t, store.updates, 1)
	saved := store.updates[0]
	require.Len(t, saved.StudySegments, 2)
	assert.Equal(t, 10*time.Second, saved.StudySegments[0].Duration)
	assert.Equal(t, 1, saved.StudySegments[0].SegmentNumber)
	assert.Equal(t, 8*time.Second, saved.StudySegments[1].Duration)
	assert.Equal(t, 2, saved.StudySegments[1].SegmentNumber)
	require.Len(t, saved.BreakSegments, 1)
	assert.Equal(t, 5*time.Second, saved.BreakSegments[0].Duration)
	assert.Equal(t, 1, saved.BreakSegments[0].SegmentNumber)
	assert.Equal(t, 18*time.Second, saved.TotalDuration)
	assert.Equal(t, 85, saved.FocusScore)
	assert.Equal(t, 85, saved.Productivity)
	assert.Equal(t, "sess-1", saved.ID)
	assert.Equal(t, "Calculus", saved.Subject)
	assert.Equal(t, domain.Morning, saved.TimeOfDay)

	for _, seg := range append(saved.StudySegments, saved.BreakSegments...) {
		require.NotNil(t, seg.EndTime)
		assert.Equal(t, seg.EndTime.Sub(seg.StartTime), seg.Duration)
	}

	st := tr.Snapshot()
	assert.Equal(t, domain.PhaseSubmitted, st.Phase)
	require.NotNil(t, st.Summary)
	assert.Equal(t, 18*time.Second, st.Summary.StudyTime)
	assert.Equal(t, 5*time.Second, st.Summary.BreakTime)
	assert.NotNil(t, st.Summary.Analytics)
	assert.Equal(t, 1, insights.calls)

	require.NoError(t, tr.Acknowledge())
	st = tr.Snapshot()
	assert.Equal(t, domain.PhaseIdle, st.Phase)
	assert.Empty(t, st.StudySegments)
	assert.Empty(t, st.BreakSegments)
	assert.Nil(t, st.Summary)
}

func TestTracker_ToggleTwiceReturnsToStudying(t *testing.T) {
	tr, clock, _, _ := newTestTracker()
	ctx := context.Background()

	require.NoError(t, tr.Start(ctx, student, ""))
	clock.Advance(time.Minute)
	require.NoError(t, tr.Toggle(ctx, student))
	assert.Equal(t, domain.PhaseOnBreak, tr.Phase())
	clock.Advance(time.Minute)
	require.NoError(t, tr.Toggle(ctx, student))
	assert.Equal(t, domain.PhaseStudying, tr.Phase())

	st := tr.Snapshot()
	assert.Len(t, st.BreakSegments, 1)
	assert.Len(t, st.StudySegments, 1)
	require.NotNil(t, st.ActiveStudy)
	assert.Equal(t, 2, st.ActiveStudy.SegmentNumber)
}

func TestTracker_ToggleFromIdleStarts(t *testing.T) {
	tr, _, store, _ := newTestTracker()

	require.NoError(t, tr.Toggle(context.Background(), student))
	assert.Equal(t, domain.PhaseStudying, tr.Phase())
	assert.Equal(t, 1, store.creates)
}

func TestTracker_PauseExcludesPausedInterval(t *testing.T) {
	tr, clock, store, _ := newTestTracker()
	ctx := context.Background()

	require.NoError(t, tr.Start(ctx, student, ""))
	clock.Advance(20 * time.Second)
	require.NoError(t, tr.Pause(student))
	assert.Equal(t, domain.PhasePausedStudy, tr.Phase())
	assertMutualExclusion(t, tr)
	assert.Equal(t, 20*time.Second, tr.Snapshot().Elapsed)

	clock.Advance(time.Hour)
	require.NoError(t, tr.Toggle(ctx, student))
	assert.Equal(t, domain.PhaseStudying, tr.Phase())
	clock.Advance(10 * time.Second)
	require.NoError(t, tr.End(student))
	require.NoError(t, tr.SubmitScore(ctx, student, 70))

	saved := store.updates[0]
	require.Len(t, saved.StudySegments, 1)
	assert.Equal(t, 30*time.Second, saved.StudySegments[0].Duration)
	assert.Equal(t, saved.StudySegments[0].EndTime.Sub(saved.StudySegments[0].StartTime), saved.StudySegments[0].Duration)
}

func TestTracker_PauseBreakResumesBreak(t *testing.T) {
	tr, clock, _, _ := newTestTracker()
	ctx := context.Background()

	require.NoError(t, tr.Start(ctx, student, ""))
	clock.Advance(time.Minute)
	require.NoError(t, tr.Toggle(ctx, student))
	require.NoError(t, tr.Pause(student))
	assert.Equal(t, domain.PhasePausedBreak, tr.Phase())

	require.NoError(t, tr.Toggle(ctx, student))
	assert.Equal(t, domain.PhaseOnBreak, tr.Phase())
	st := tr.Snapshot()
	require.NotNil(t, st.ActiveBreak)
	assert.Equal(t, 1, st.ActiveBreak.SegmentNumber)
}

func TestTracker_EndWhilePausedUsesPauseInstant(t *testing.T) {
	tr, clock, store, _ := newTestTracker()
	ctx := context.Background()

	require.NoError(t, tr.Start(ctx, student, ""))
	clock.Advance(15 * time.Second)
	require.NoError(t, tr.Pause(student))
	clock.Advance(10 * time.Minute)
	require.NoError(t, tr.End(student))
	require.NoError(t, tr.SubmitScore(ctx, student, 50))

	assert.Equal(t, 15*time.Second, store.updates[0].TotalDuration)
}

func TestTracker_EndFromIdleDiscards(t *testing.T) {
	tr, _, store, _ := newTestTracker()

	require.NoError(t, tr.End(student))
	assert.Equal(t, domain.PhaseIdle, tr.Phase())
	assert.Zero(t, store.creates)
	assert.Empty(t, store.updates)
}

func TestTracker_SubmitScoreBoundaries(t *testing.T) {
	ctx := context.Background()

	for _, bad := range []int{0, 101, -5} {
		tr, clock, store, _ := newTestTracker()
		require.NoError(t, tr.Start(ctx, student, ""))
		clock.Advance(time.Minute)
		require.NoError(t, tr.End(student))
		before := tr.Snapshot()

		err := tr.SubmitScore(ctx, student, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidScore, "score %d", bad)
		after := tr.Snapshot()
		assert.Equal(t, domain.PhaseEnded, after.Phase)
		assert.Equal(t, before.StudySegments, after.StudySegments)
		assert.Empty(t, store.updates)
	}

	for _, good := range []int{1, 100} {
		tr, clock, store, _ := newTestTracker()
		require.NoError(t, tr.Start(ctx, student, ""))
		clock.Advance(time.Minute)
		require.NoError(t, tr.End(student))
		require.NoError(t, tr.SubmitScore(ctx, student, good), "score %d", good)
		assert.Equal(t, good, store.updates[0].FocusScore)
	}
}

func TestTracker_SubmitScoreTextRejectsNonNumeric(t *testing.T) {
	tr, clock, store, _ := newTestTracker()
	ctx := context.Background()
	require.NoError(t, tr.Start(ctx, student, ""))
	clock.Advance(time.Minute)
	require.NoError(t, tr.End(student))

	for _, input := range []string{"", "abc", "4.5", "85%"} {
		err := tr.SubmitScoreText(ctx, student, input)
		assert.ErrorIs(t, err, domain.ErrInvalidScore, "input %q", input)
	}
	assert.Empty(t, store.updates)
	assert.Equal(t, domain.PhaseEnded, tr.Phase())

	require.NoError(t, tr.SubmitScoreText(ctx, student, " 42 "))
	assert.Equal(t, 42, store.updates[0].FocusScore)
}

func TestTracker_StartFailureStaysIdle(t *testing.T) {
	tr, _, store, _ := newTestTracker()
	store.createErr = errors.New("network down")

	err := tr.Start(context.Background(), student, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network down")
	st := tr.Snapshot()
	assert.Equal(t, domain.PhaseIdle, st.Phase)
	assert.Nil(t, st.ActiveSegment())
	assert.False(t, st.Busy)

	store.createErr = nil
	require.NoError(t, tr.Start(context.Background(), student, ""))
	assert.Equal(t, domain.PhaseStudying, tr.Phase())
}

func TestTracker_SubmitFailureKeepsEnded(t *testing.T) {
	tr, clock, store, insights := newTestTracker()
	ctx := context.Background()
	require.NoError(t, tr.Start(ctx, student, ""))
	clock.Advance(time.Minute)
	require.NoError(t, tr.End(student))

	store.updateErr = errors.New("write failed")
	require.Error(t, tr.SubmitScore(ctx, student, 60))
	st := tr.Snapshot()
	assert.Equal(t, domain.PhaseEnded, st.Phase)
	assert.Len(t, st.StudySegments, 1)
	assert.Zero(t, insights.calls)

	store.updateErr = nil
	require.NoError(t, tr.SubmitScore(ctx, student, 60))
	assert.Equal(t, domain.PhaseSubmitted, tr.Phase())
}

func TestTracker_RefreshFailureStillSubmits(t *testing.T) {
	tr, clock, _, insights := newTestTracker()
	insights.err = errors.New("history unavailable")
	ctx := context.Background()
	require.NoError(t, tr.Start(ctx, student, ""))
	clock.Advance(time.Minute)
	require.NoError(t, tr.End(student))

	require.NoError(t, tr.SubmitScore(ctx, student, 60))
	st := tr.Snapshot()
	assert.Equal(t, domain.PhaseSubmitted, st.Phase)
	assert.Nil(t, st.Summary.Analytics)
	assert.Error(t, st.Summary.RefreshErr)
	assert.Equal(t, "keep going", st.Summary.Feedback.Summary)
}

func TestTracker_RequiresUser(t *testing.T) {
	tr, _, store, _ := newTestTracker()
	ctx := context.Background()

	assert.ErrorIs(t, tr.Start(ctx, nil, ""), domain.ErrAuthRequired)
	assert.ErrorIs(t, tr.Toggle(ctx, &domain.User{}), domain.ErrAuthRequired)
	assert.ErrorIs(t, tr.Pause(nil), domain.ErrAuthRequired)
	assert.ErrorIs(t, tr.End(nil), domain.ErrAuthRequired)
	assert.ErrorIs(t, tr.SubmitScore(ctx, nil, 50), domain.ErrAuthRequired)
	assert.Zero(t, store.creates)
}

func TestTracker_InvalidTransitions(t *testing.T) {
	tr, clock, _, _ := newTestTracker()
	ctx := context.Background()

	assert.ErrorIs(t, tr.Pause(student), ErrInvalidTransition)
	assert.ErrorIs(t, tr.SubmitScore(ctx, student, 50), ErrInvalidTransition)
	assert.ErrorIs(t, tr.Acknowledge(), ErrInvalidTransition)

	require.NoError(t, tr.Start(ctx, student, ""))
	assert.ErrorIs(t, tr.Start(ctx, student, ""), ErrInvalidTransition)
	require.NoError(t, tr.Pause(student))
	assert.ErrorIs(t, tr.Pause(student), ErrInvalidTransition)

	clock.Advance(time.Second)
	require.NoError(t, tr.End(student))
	assert.ErrorIs(t, tr.Toggle(ctx, student), ErrInvalidTransition)
	assert.ErrorIs(t, tr.End(student), ErrInvalidTransition)
	assert.Equal(t, domain.PhaseEnded, tr.Phase())
}

func TestTracker_TickOnlyCountsCurrentGeneration(t *testing.T) {
	tr, clock, _, _ := newTestTracker()
	ctx := context.Background()

	require.NoError(t, tr.Start(ctx, student, ""))
	gen := tr.Generation()
	assert.True(t, tr.Tick(gen))
	assert.True(t, tr.Tick(gen))
	assert.Equal(t, 2, tr.Snapshot().DisplaySeconds)

	require.NoError(t, tr.Toggle(ctx, student))
	assert.False(t, tr.Tick(gen), "tick from the study loop must be dropped on break")
	assert.Equal(t, 0, tr.Snapshot().DisplaySeconds)

	require.NoError(t, tr.Pause(student))
	assert.False(t, tr.Tick(tr.Generation()), "paused clocks do not tick")

	// Ticks never feed into durations.
	for i := 0; i < 100; i++ {
		tr.Tick(tr.Generation())
	}
	clock.Advance(time.Second)
	require.NoError(t, tr.End(student))
	st := tr.Snapshot()
	require.Len(t, st.BreakSegments, 1)
	assert.Zero(t, st.BreakSegments[0].Duration)
}

func TestTracker_ResetClearsEverything(t *testing.T) {
	tr, clock, store, _ := newTestTracker()
	ctx := context.Background()

	require.NoError(t, tr.Start(ctx, student, ""))
	clock.Advance(time.Minute)
	require.NoError(t, tr.Toggle(ctx, student))
	gen := tr.Generation()

	tr.Reset()
	st := tr.Snapshot()
	assert.Equal(t, domain.PhaseIdle, st.Phase)
	assert.Empty(t, st.StudySegments)
	assert.Nil(t, st.ActiveSegment())
	assert.Empty(t, st.SessionID)
	assert.False(t, tr.Tick(gen))
	assert.Equal(t, 1, store.creates, "reset does not touch persisted data")
}

type blockingStore struct {
	fakeStore
	release chan struct{}
	entered chan struct{}
}

func (s *blockingStore) CreateSession(ctx context.Context, u *domain.User, sess *domain.StudySession) (string, error) {
	close(s.entered)
	<-s.release
	return s.fakeStore.CreateSession(ctx, u, sess)
}

func TestTracker_BusyDuringStoreCall(t *testing.T) {
	store := &blockingStore{release: make(chan struct{}), entered: make(chan struct{})}
	tr := New(newFakeClock(), store, nil)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- tr.Start(ctx, student, "") }()
	<-store.entered

	assert.True(t, tr.Snapshot().Busy)
	assert.ErrorIs(t, tr.End(student), ErrBusy)
	assert.ErrorIs(t, tr.Toggle(ctx, student), ErrBusy)

	close(store.release)
	require.NoError(t, <-done)
	assert.Equal(t, domain.PhaseStudying, tr.Phase())
}

func TestTracker_ResetDuringStartDropsResult(t *testing.T) {
	store := &blockingStore{release: make(chan struct{}), entered: make(chan struct{})}
	tr := New(newFakeClock(), store, nil)

	done := make(chan error, 1)
	go func() { done <- tr.Start(context.Background(), student, "") }()
	<-store.entered
	tr.Reset()
	close(store.release)

	require.NoError(t, <-done)
	assert.Equal(t, domain.PhaseIdle, tr.Phase())
	assert.Nil(t, tr.Snapshot().ActiveSegment())
}
