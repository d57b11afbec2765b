package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/studyclock/internal/domain"
	"github.com/google/uuid"
)

var testEmailCounter atomic.Int64

// User options
type UserOption func(*domain.User)

func WithEmail(email string) UserOption {
	return func(u *domain.User) {
		u.Email = email
	}
}

func WithDisplayName(name string) UserOption {
	return func(u *domain.User) {
		u.DisplayName = name
	}
}

func WithPasswordHash(hash string) UserOption {
	return func(u *domain.User) {
		u.PasswordHash = hash
	}
}

func NewTestUser(opts ...UserOption) *domain.User {
	n := testEmailCounter.Add(1)
	u := &domain.User{
		ID:           uuid.New().String(),
		Email:        fmt.Sprintf("student%02d@example.com", n),
		DisplayName:  fmt.Sprintf("Student %d", n),
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Session options
type SessionOption func(*domain.StudySession)

// WithStartTime moves the session, and any segments it already has, so that
// it starts at t.
func WithStartTime(t time.Time) SessionOption {
	return func(s *domain.StudySession) {
		shift := t.Sub(s.StartTime)
		s.StartTime = t
		s.TimeOfDay = domain.BucketTimeOfDay(t)
		shiftSegments(s.StudySegments, shift)
		shiftSegments(s.BreakSegments, shift)
		if s.EndTime != nil {
			end := s.EndTime.Add(shift)
			s.EndTime = &end
		}
	}
}

func shiftSegments(segs []domain.Segment, shift time.Duration) {
	for i := range segs {
		segs[i].StartTime = segs[i].StartTime.Add(shift)
		if segs[i].EndTime != nil {
			end := segs[i].EndTime.Add(shift)
			segs[i].EndTime = &end
		}
	}
}

func WithSubject(subject string) SessionOption {
	return func(s *domain.StudySession) {
		s.Subject = subject
	}
}

func WithTimeOfDay(tod domain.TimeOfDay) SessionOption {
	return func(s *domain.StudySession) {
		s.TimeOfDay = tod
	}
}

// WithScores sets both focus and productivity.
func WithScores(focus, productivity int) SessionOption {
	return func(s *domain.StudySession) {
		s.FocusScore = focus
		s.Productivity = productivity
	}
}

// WithStudyBlocks replaces the study segments with back-to-back finalized
// segments of the given lengths and recomputes the session totals.
func WithStudyBlocks(lengths ...time.Duration) SessionOption {
	return func(s *domain.StudySession) {
		s.StudySegments = buildSegments(domain.SegmentStudy, s.StartTime, lengths)
		s.TotalDuration = s.StudyTime()
		end := s.StartTime.Add(s.StudyTime() + s.BreakTime())
		s.EndTime = &end
	}
}

// WithBreakBlocks replaces the break segments. Breaks are placed after the
// study time so segments of the two kinds never overlap.
func WithBreakBlocks(lengths ...time.Duration) SessionOption {
	return func(s *domain.StudySession) {
		s.BreakSegments = buildSegments(domain.SegmentBreak, s.StartTime.Add(s.StudyTime()), lengths)
		end := s.StartTime.Add(s.StudyTime() + s.BreakTime())
		s.EndTime = &end
	}
}

// Unfinished clears the end time and scores, as for a session still running.
func Unfinished() SessionOption {
	return func(s *domain.StudySession) {
		s.EndTime = nil
		s.FocusScore = 0
		s.Productivity = 0
	}
}

func buildSegments(kind domain.SegmentKind, from time.Time, lengths []time.Duration) []domain.Segment {
	segs := make([]domain.Segment, 0, len(lengths))
	cursor := from
	for i, d := range lengths {
		end := cursor.Add(d)
		segs = append(segs, domain.Segment{
			ID:            uuid.New().String(),
			Kind:          kind,
			StartTime:     cursor,
			EndTime:       &end,
			Duration:      d,
			SegmentNumber: i + 1,
		})
		cursor = end
	}
	return segs
}

// NewTestSession returns a finished 30-minute session with one study segment
// and a focus score of 80, started an hour ago.
func NewTestSession(userID string, opts ...SessionOption) *domain.StudySession {
	start := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	s := &domain.StudySession{
		ID:            uuid.New().String(),
		UserID:        userID,
		StartTime:     start,
		FocusScore:    80,
		Productivity:  80,
		TimeOfDay:     domain.BucketTimeOfDay(start),
		StudySegments: []domain.Segment{},
		BreakSegments: []domain.Segment{},
		Version:       1,
	}
	WithStudyBlocks(30 * time.Minute)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Test record options
type TestRecordOption func(*domain.TestRecord)

func WithTakenAt(t time.Time) TestRecordOption {
	return func(r *domain.TestRecord) {
		r.Timestamp = t
	}
}

func WithPersonalityType(name string) TestRecordOption {
	return func(r *domain.TestRecord) {
		r.PersonalityType = name
	}
}

func NewTestRecord(userID string, opts ...TestRecordOption) *domain.TestRecord {
	r := &domain.TestRecord{
		ID:              uuid.New().String(),
		UserID:          userID,
		Timestamp:       time.Now().UTC().Truncate(time.Second),
		Answers:         []int{4, 4, 4, 4, 4, 4, 4, 4, 4, 4},
		PersonalityType: "The Mediator",
		Description:     "Balanced and steady.",
		Recommendation:  "Keep a regular rhythm.",
		Scores: domain.TraitScores{
			Extraversion:      0.5,
			Openness:          0.5,
			Conscientiousness: 0.5,
			Agreeableness:     0.5,
			Neuroticism:       0.5,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
