package repository

import (
	"context"

	"github.com/alexanderramin/studyclock/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type StudySessionRepo interface {
	Create(ctx context.Context, s *domain.StudySession) error
	GetByID(ctx context.Context, id string) (*domain.StudySession, error)
	// ListByUser returns a user's sessions ordered by start time, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.StudySession, error)
	// Update writes the scalar session fields and bumps the version counter.
	Update(ctx context.Context, s *domain.StudySession) error
	// ReplaceSegments swaps the stored segment lists for the given session.
	ReplaceSegments(ctx context.Context, sessionID string, study, breaks []domain.Segment) error
	Delete(ctx context.Context, id string) error
}

type TestRecordRepo interface {
	Create(ctx context.Context, r *domain.TestRecord) error
	GetByID(ctx context.Context, id string) (*domain.TestRecord, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.TestRecord, error)
}
