package tracker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/studyclock/internal/domain"
	"github.com/google/uuid"
)

// Clock supplies wall-clock instants. Segment durations are always derived
// from Clock readings, never from the display tick.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// SessionStore persists sessions on behalf of the tracker.
type SessionStore interface {
	CreateSession(ctx context.Context, user *domain.User, s *domain.StudySession) (string, error)
	UpdateSession(ctx context.Context, user *domain.User, id string, s *domain.StudySession) error
}

// Insights recomputes analytics and fetches feedback after a submission.
// Implementations degrade to fallbacks and only fail when history cannot
// be read at all.
type Insights interface {
	Refresh(ctx context.Context, user *domain.User) (domain.AnalyticsSnapshot, domain.Feedback, error)
}

// Summary is what the user sees after a session has been submitted.
type Summary struct {
	Session    *domain.StudySession
	StudyTime  time.Duration
	BreakTime  time.Duration
	Analytics  *domain.AnalyticsSnapshot
	Feedback   domain.Feedback
	RefreshErr error
}

// Tracker is the study-timer state machine. It owns the segments of the
// session in progress and hands finished sessions to the store.
//
// The mutex is never held across store or insight calls.
type Tracker struct {
	clock    Clock
	store    SessionStore
	insights Insights

	mu         sync.Mutex
	phase      domain.Phase
	session    *domain.StudySession
	study      []domain.Segment
	breaks     []domain.Segment
	active     *domain.Segment
	banked     time.Duration
	pausedAt   time.Time
	endedAt    time.Time
	display    int
	generation uint64
	busy       bool
	summary    *Summary
}

// New creates an idle tracker. insights may be nil, in which case the
// summary carries no analytics or feedback.
func New(clock Clock, store SessionStore, insights Insights) *Tracker {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Tracker{
		clock:    clock,
		store:    store,
		insights: insights,
		phase:    domain.PhaseIdle,
	}
}

// Start creates the provisional session in the store and opens study
// segment #1. On store failure the tracker stays idle.
func (t *Tracker) Start(ctx context.Context, user *domain.User, subject string) error {
	if !user.Authenticated() {
		return domain.ErrAuthRequired
	}

	t.mu.Lock()
	if err := t.guard(opStart); err != nil {
		t.mu.Unlock()
		return err
	}
	now := t.clock.Now()
	draft := &domain.StudySession{
		UserID:        user.ID,
		Subject:       strings.TrimSpace(subject),
		StartTime:     now,
		TimeOfDay:     domain.BucketTimeOfDay(now),
		StudySegments: []domain.Segment{},
		BreakSegments: []domain.Segment{},
	}
	gen := t.generation
	t.busy = true
	t.mu.Unlock()

	id, err := t.store.CreateSession(ctx, user, draft)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.busy = false
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	if gen != t.generation {
		// Reset while the store call was in flight.
		return nil
	}
	draft.ID = id
	t.session = draft
	t.openSegment(domain.SegmentStudy, now)
	t.enter(domain.PhaseStudying)
	return nil
}

// Toggle is the single start/pause control. It alternates between study and
// break, resumes a paused segment, or starts a session from idle.
func (t *Tracker) Toggle(ctx context.Context, user *domain.User) error {
	if !user.Authenticated() {
		return domain.ErrAuthRequired
	}

	t.mu.Lock()
	if err := t.guard(opToggle); err != nil {
		t.mu.Unlock()
		return err
	}
	if t.phase == domain.PhaseIdle {
		t.mu.Unlock()
		return t.Start(ctx, user, "")
	}
	defer t.mu.Unlock()

	now := t.clock.Now()
	switch t.phase {
	case domain.PhaseStudying:
		if err := t.closeActive(now); err != nil {
			return err
		}
		t.openSegment(domain.SegmentBreak, now)
		t.enter(domain.PhaseOnBreak)
	case domain.PhaseOnBreak:
		if err := t.closeActive(now); err != nil {
			return err
		}
		t.openSegment(domain.SegmentStudy, now)
		t.enter(domain.PhaseStudying)
	case domain.PhasePausedStudy, domain.PhasePausedBreak:
		t.resume(now)
	}
	return nil
}

// Pause stops the clock of the active segment without finalizing it.
func (t *Tracker) Pause(user *domain.User) error {
	if !user.Authenticated() {
		return domain.ErrAuthRequired
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.guard(opPause); err != nil {
		return err
	}

	now := t.clock.Now()
	t.banked = now.Sub(t.active.StartTime)
	t.pausedAt = now
	if t.phase == domain.PhaseStudying {
		t.enter(domain.PhasePausedStudy)
	} else {
		t.enter(domain.PhasePausedBreak)
	}
	return nil
}

// End finalizes the active segment and waits for a focus score. Ending an
// idle tracker discards the session without touching the store.
func (t *Tracker) End(user *domain.User) error {
	if !user.Authenticated() {
		return domain.ErrAuthRequired
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.guard(opEnd); err != nil {
		return err
	}

	if t.phase == domain.PhaseIdle || t.segmentCount() == 0 {
		t.clear()
		return nil
	}

	at := t.clock.Now()
	if t.phase.Paused() {
		at = t.pausedAt
	}
	if err := t.closeActive(at); err != nil {
		return err
	}
	t.endedAt = at
	t.enter(domain.PhaseEnded)
	return nil
}

// SubmitScoreText parses free-form user input before submitting it.
func (t *Tracker) SubmitScoreText(ctx context.Context, user *domain.User, text string) error {
	score, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return fmt.Errorf("%q: %w", text, domain.ErrInvalidScore)
	}
	return t.SubmitScore(ctx, user, score)
}

// SubmitScore attaches the focus score, persists the finished session and
// refreshes analytics. A store failure leaves the tracker ended so the
// submission can be retried.
func (t *Tracker) SubmitScore(ctx context.Context, user *domain.User, score int) error {
	if !user.Authenticated() {
		return domain.ErrAuthRequired
	}

	t.mu.Lock()
	if err := t.guard(opSubmit); err != nil {
		t.mu.Unlock()
		return err
	}
	if score < domain.MinFocusScore || score > domain.MaxFocusScore {
		t.mu.Unlock()
		return fmt.Errorf("%d: %w", score, domain.ErrInvalidScore)
	}

	final := t.finalSession(score)
	gen := t.generation
	t.busy = true
	t.mu.Unlock()

	if err := t.store.UpdateSession(ctx, user, final.ID, final); err != nil {
		t.mu.Lock()
		t.busy = false
		t.mu.Unlock()
		return fmt.Errorf("submitting session: %w", err)
	}

	summary := &Summary{
		Session:   final,
		StudyTime: final.StudyTime(),
		BreakTime: final.BreakTime(),
	}
	if t.insights != nil {
		snap, fb, err := t.insights.Refresh(ctx, user)
		if err != nil {
			summary.RefreshErr = err
		} else {
			summary.Analytics = &snap
		}
		summary.Feedback = fb
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.busy = false
	if gen != t.generation {
		return nil
	}
	t.summary = summary
	t.enter(domain.PhaseSubmitted)
	return nil
}

// Acknowledge dismisses the summary and returns to idle.
func (t *Tracker) Acknowledge() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.guard(opAcknowledge); err != nil {
		return err
	}
	t.clear()
	return nil
}

// Reset returns to idle unconditionally. Persisted data is not touched and
// pending display ticks are invalidated.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clear()
}

// Tick advances the display counter by one second if gen is the current
// generation and a segment clock is running. It reports whether the tick
// was counted; callers stop their tick loop on false.
func (t *Tracker) Tick(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.generation || !t.phase.Running() {
		return false
	}
	t.display++
	return true
}

func (t *Tracker) guard(op operation) error {
	if t.busy {
		return ErrBusy
	}
	return checkTransition(t.phase, op)
}

func (t *Tracker) enter(phase domain.Phase) {
	t.phase = phase
	t.generation++
}

func (t *Tracker) clear() {
	t.session = nil
	t.study = nil
	t.breaks = nil
	t.active = nil
	t.banked = 0
	t.pausedAt = time.Time{}
	t.endedAt = time.Time{}
	t.display = 0
	t.summary = nil
	t.enter(domain.PhaseIdle)
}

func (t *Tracker) openSegment(kind domain.SegmentKind, at time.Time) {
	number := len(t.study) + 1
	if kind == domain.SegmentBreak {
		number = len(t.breaks) + 1
	}
	t.active = &domain.Segment{
		ID:            uuid.New().String(),
		Kind:          kind,
		StartTime:     at,
		SegmentNumber: number,
	}
	t.banked = 0
	t.display = 0
}

func (t *Tracker) closeActive(at time.Time) error {
	if t.active == nil {
		return nil
	}
	if err := t.active.Finalize(at); err != nil {
		return err
	}
	if t.active.Kind == domain.SegmentBreak {
		t.breaks = append(t.breaks, *t.active)
	} else {
		t.study = append(t.study, *t.active)
	}
	t.active = nil
	t.banked = 0
	return nil
}

// resume reopens the paused segment. Its start is rebased so the paused
// interval is excluded from the eventual duration.
func (t *Tracker) resume(now time.Time) {
	kind := domain.SegmentStudy
	next := domain.PhaseStudying
	if t.phase == domain.PhasePausedBreak {
		kind = domain.SegmentBreak
		next = domain.PhaseOnBreak
	}
	if t.active == nil || t.active.Kind != kind {
		t.openSegment(kind, now)
	} else {
		t.active.StartTime = now.Add(-t.banked)
		t.banked = 0
	}
	t.pausedAt = time.Time{}
	t.enter(next)
}

func (t *Tracker) segmentCount() int {
	n := len(t.study) + len(t.breaks)
	if t.active != nil {
		n++
	}
	return n
}

func (t *Tracker) finalSession(score int) *domain.StudySession {
	s := *t.session
	s.StudySegments = append([]domain.Segment{}, t.study...)
	s.BreakSegments = append([]domain.Segment{}, t.breaks...)
	end := t.endedAt
	s.EndTime = &end
	s.TotalDuration = s.StudyTime()
	s.FocusScore = score
	s.Productivity = score
	return &s
}
