package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studyclock/internal/db"
	"github.com/alexanderramin/studyclock/internal/domain"
	"github.com/alexanderramin/studyclock/internal/quiz"
	"github.com/alexanderramin/studyclock/internal/repository"
	"github.com/google/uuid"
)

type quizService struct {
	records  repository.TestRecordRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewQuizService(records repository.TestRecordRepo, uow db.UnitOfWork, observers ...UseCaseObserver) QuizService {
	return &quizService{
		records:  records,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Submit scores the answers and saves the result as a test record.
func (s *quizService) Submit(ctx context.Context, user *domain.User, answers []int) (rec *domain.TestRecord, err error) {
	if !user.Authenticated() {
		return nil, domain.ErrAuthRequired
	}
	fields := map[string]any{"user_id": user.ID}
	defer observe(ctx, s.observer, "submit-quiz", time.Now(), fields, &err)

	result, err := quiz.Score(answers)
	if err != nil {
		return nil, err
	}
	fields["personality_type"] = result.Archetype.Label

	rec = quiz.NewRecord(user.ID, answers, result)
	rec.ID = uuid.New().String()
	rec.Timestamp = time.Now().UTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTestRecordRepo(tx).Create(ctx, rec)
	})
	if err != nil {
		return nil, persistenceError("saving test record", err)
	}
	return rec, nil
}

func (s *quizService) ListRecords(ctx context.Context, user *domain.User) ([]*domain.TestRecord, error) {
	if !user.Authenticated() {
		return nil, domain.ErrAuthRequired
	}
	records, err := s.records.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, persistenceError("listing test records", err)
	}
	return records, nil
}

func (s *quizService) GetRecord(ctx context.Context, user *domain.User, id string) (*domain.TestRecord, error) {
	if !user.Authenticated() {
		return nil, domain.ErrAuthRequired
	}
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, persistenceError("loading test record", err)
	}
	if rec.UserID != user.ID {
		return nil, fmt.Errorf("test record %s: %w", id, repository.ErrNotFound)
	}
	return rec, nil
}
