package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studyclock/internal/db"
	"github.com/alexanderramin/studyclock/internal/domain"
	"github.com/alexanderramin/studyclock/internal/repository"
	"github.com/google/uuid"
)

type sessionStore struct {
	sessions repository.StudySessionRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewSessionStore creates the SQLite-backed persistence adapter. Writes go
// through uow so a session and its segments land together.
func NewSessionStore(sessions repository.StudySessionRepo, uow db.UnitOfWork, observers ...UseCaseObserver) SessionStore {
	return &sessionStore{
		sessions: sessions,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *sessionStore) CreateSession(ctx context.Context, user *domain.User, session *domain.StudySession) (id string, err error) {
	if !user.Authenticated() {
		return "", domain.ErrAuthRequired
	}
	fields := map[string]any{"user_id": user.ID}
	defer observe(ctx, s.observer, "create-session", time.Now(), fields, &err)

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	session.UserID = user.ID
	fields["session_id"] = session.ID

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteStudySessionRepo(tx).Create(ctx, session)
	})
	if err != nil {
		return "", persistenceError("creating session", err)
	}
	return session.ID, nil
}

// UpdateSession overwrites the stored session and its segments. Concurrent
// writers are resolved last-writer-wins; each write bumps the version.
func (s *sessionStore) UpdateSession(ctx context.Context, user *domain.User, id string, session *domain.StudySession) (err error) {
	if !user.Authenticated() {
		return domain.ErrAuthRequired
	}
	fields := map[string]any{"user_id": user.ID, "session_id": id}
	defer observe(ctx, s.observer, "update-session", time.Now(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteStudySessionRepo(tx)

		existing, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing.UserID != user.ID {
			return fmt.Errorf("session %s: %w", id, repository.ErrNotFound)
		}

		session.ID = id
		session.UserID = user.ID
		session.CreatedAt = existing.CreatedAt
		if err := repo.Update(ctx, session); err != nil {
			return err
		}
		return repo.ReplaceSegments(ctx, id, session.StudySegments, session.BreakSegments)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return persistenceError("updating session", err)
	}
	fields["version"] = session.Version
	return nil
}

func (s *sessionStore) QuerySessions(ctx context.Context, user *domain.User) ([]*domain.StudySession, error) {
	if !user.Authenticated() {
		return nil, domain.ErrAuthRequired
	}
	sessions, err := s.sessions.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, persistenceError("querying sessions", err)
	}
	return sessions, nil
}

func (s *sessionStore) GetSession(ctx context.Context, user *domain.User, id string) (*domain.StudySession, error) {
	if !user.Authenticated() {
		return nil, domain.ErrAuthRequired
	}
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, persistenceError("loading session", err)
	}
	if session.UserID != user.ID {
		return nil, fmt.Errorf("session %s: %w", id, repository.ErrNotFound)
	}
	return session, nil
}

func persistenceError(action string, err error) error {
	return fmt.Errorf("%s: %w: %w", action, ErrPersistence, err)
}
