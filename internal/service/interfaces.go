package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/studyclock/internal/domain"
)

// ErrPersistence marks a failure of the underlying store. The operation can
// be retried by repeating the same user action.
var ErrPersistence = errors.New("could not save to the study store")

// SessionStore is the persistence adapter for study sessions. Every call is
// scoped to the given user; a nil or anonymous user fails with
// domain.ErrAuthRequired.
type SessionStore interface {
	CreateSession(ctx context.Context, user *domain.User, s *domain.StudySession) (string, error)
	UpdateSession(ctx context.Context, user *domain.User, id string, s *domain.StudySession) error
	QuerySessions(ctx context.Context, user *domain.User) ([]*domain.StudySession, error)
	GetSession(ctx context.Context, user *domain.User, id string) (*domain.StudySession, error)
}

type AnalyticsService interface {
	// Snapshot aggregates the user's finished sessions with the advisor's
	// prediction, or its fallback.
	Snapshot(ctx context.Context, user *domain.User) (*domain.AnalyticsSnapshot, error)

	// Feedback returns advisor coaching, or a canned response.
	Feedback(ctx context.Context, user *domain.User) (domain.Feedback, error)

	// Refresh computes both, for the post-submission summary.
	Refresh(ctx context.Context, user *domain.User) (domain.AnalyticsSnapshot, domain.Feedback, error)
}

type QuizService interface {
	Submit(ctx context.Context, user *domain.User, answers []int) (*domain.TestRecord, error)
	ListRecords(ctx context.Context, user *domain.User) ([]*domain.TestRecord, error)
	GetRecord(ctx context.Context, user *domain.User, id string) (*domain.TestRecord, error)
}
