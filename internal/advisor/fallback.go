package advisor

import (
	"context"
	"time"

	"github.com/alexanderramin/studyclock/internal/domain"
)

const (
	fallbackStudy = 25 * time.Minute
	fallbackBreak = 5 * time.Minute
)

// DefaultPrediction is used whenever the advisor cannot produce a prediction.
// Its zero confidence keeps the local recommendations in charge.
func DefaultPrediction() domain.Prediction {
	return domain.Prediction{
		Duration:   fallbackStudy,
		BreakTime:  fallbackBreak,
		Confidence: 0,
	}
}

// FallbackFeedback is the canned response shown when the advisor fails.
func FallbackFeedback() domain.Feedback {
	return domain.Feedback{
		Summary:             "Feedback could not be generated right now.",
		Strengths:           []string{},
		AreasForImprovement: []string{},
		Recommendations: []string{
			"Your study data cannot be analyzed at the moment. Please try again in a little while.",
		},
		Fallback: true,
	}
}

// NoDataFeedback is returned without calling the advisor when the user has
// no finished sessions yet.
func NoDataFeedback() domain.Feedback {
	return domain.Feedback{
		Summary:             "Not enough study data yet.",
		Strengths:           []string{},
		AreasForImprovement: []string{},
		Recommendations: []string{
			"Complete a few timed sessions and rate your focus so feedback can be generated.",
		},
		Fallback: true,
	}
}

// PredictOrDefault calls Predict and substitutes DefaultPrediction on any
// failure. The error is returned for logging only. A nil client always
// yields the default.
func PredictOrDefault(ctx context.Context, c Client, sessions []*domain.StudySession, now time.Time) (domain.Prediction, error) {
	if c == nil {
		return DefaultPrediction(), nil
	}
	pred, err := c.Predict(ctx, sessions, now)
	if err != nil {
		return DefaultPrediction(), err
	}
	if pred == nil {
		return DefaultPrediction(), ErrInvalidResponse
	}
	return *pred, nil
}

// FeedbackOrFallback calls Feedback and substitutes the canned responses
// when there is nothing to analyze or the call fails.
func FeedbackOrFallback(ctx context.Context, c Client, sessions []*domain.StudySession) (domain.Feedback, error) {
	if len(sessions) == 0 {
		return NoDataFeedback(), nil
	}
	if c == nil {
		return FallbackFeedback(), nil
	}
	fb, err := c.Feedback(ctx, sessions)
	if err != nil {
		return FallbackFeedback(), err
	}
	if fb == nil {
		return FallbackFeedback(), ErrInvalidResponse
	}
	return *fb, nil
}
