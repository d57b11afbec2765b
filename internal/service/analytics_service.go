package service

import (
	"context"
	"time"

	"github.com/alexanderramin/studyclock/internal/advisor"
	"github.com/alexanderramin/studyclock/internal/analytics"
	"github.com/alexanderramin/studyclock/internal/domain"
)

type analyticsService struct {
	store    SessionStore
	advisor  advisor.Client
	now      func() time.Time
	observer UseCaseObserver
}

// NewAnalyticsService creates an AnalyticsService. client may be nil when the
// advisor is disabled, in which case every remote call takes its fallback.
func NewAnalyticsService(store SessionStore, client advisor.Client, observers ...UseCaseObserver) AnalyticsService {
	return &analyticsService{
		store:    store,
		advisor:  client,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *analyticsService) Snapshot(ctx context.Context, user *domain.User) (snap *domain.AnalyticsSnapshot, err error) {
	sessions, err := s.finishedSessions(ctx, user)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{"user_id": user.ID, "sessions": len(sessions)}
	defer observe(ctx, s.observer, "analytics-snapshot", time.Now(), fields, &err)

	result := s.aggregate(ctx, sessions, fields)
	return &result, nil
}

func (s *analyticsService) Feedback(ctx context.Context, user *domain.User) (fb domain.Feedback, err error) {
	sessions, err := s.finishedSessions(ctx, user)
	if err != nil {
		return domain.Feedback{}, err
	}
	fields := map[string]any{"user_id": user.ID, "sessions": len(sessions)}
	defer observe(ctx, s.observer, "feedback", time.Now(), fields, &err)

	return s.feedback(ctx, sessions, fields), nil
}

func (s *analyticsService) Refresh(ctx context.Context, user *domain.User) (snap domain.AnalyticsSnapshot, fb domain.Feedback, err error) {
	sessions, err := s.finishedSessions(ctx, user)
	if err != nil {
		return domain.AnalyticsSnapshot{}, advisor.FallbackFeedback(), err
	}
	fields := map[string]any{"user_id": user.ID, "sessions": len(sessions)}
	defer observe(ctx, s.observer, "refresh-analytics", time.Now(), fields, &err)

	return s.aggregate(ctx, sessions, fields), s.feedback(ctx, sessions, fields), nil
}

func (s *analyticsService) finishedSessions(ctx context.Context, user *domain.User) ([]*domain.StudySession, error) {
	all, err := s.store.QuerySessions(ctx, user)
	if err != nil {
		return nil, err
	}
	finished := make([]*domain.StudySession, 0, len(all))
	for _, sess := range all {
		if sess.Finished() {
			finished = append(finished, sess)
		}
	}
	return finished, nil
}

// aggregate asks the advisor for a prediction only when there is history
// to base it on; otherwise the default prediction applies.
func (s *analyticsService) aggregate(ctx context.Context, sessions []*domain.StudySession, fields map[string]any) domain.AnalyticsSnapshot {
	pred := advisor.DefaultPrediction()
	if len(sessions) > 0 {
		var predErr error
		pred, predErr = advisor.PredictOrDefault(ctx, s.advisor, sessions, s.now())
		if predErr != nil {
			fields["prediction_error"] = predErr.Error()
		}
	}
	fields["confidence"] = pred.Confidence
	return analytics.Aggregate(sessions, &pred)
}

func (s *analyticsService) feedback(ctx context.Context, sessions []*domain.StudySession, fields map[string]any) domain.Feedback {
	fb, fbErr := advisor.FeedbackOrFallback(ctx, s.advisor, sessions)
	if fbErr != nil {
		fields["feedback_error"] = fbErr.Error()
	}
	fields["feedback_fallback"] = fb.Fallback
	return fb
}
