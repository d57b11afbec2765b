package advisor

import (
	"time"

	"github.com/alexanderramin/studyclock/internal/domain"
)

// TrainingPoint is one session as the advisor sees it. Durations are in
// seconds and the score is on the 1-100 scale.
type TrainingPoint struct {
	Hour      int     `json:"hour"`
	DayOfWeek int     `json:"dayOfWeek"`
	Score     int     `json:"score"`
	Duration  float64 `json:"duration"`
	BreakTime float64 `json:"breakTime"`
}

// TrainingData converts sessions into advisor training points, using the
// local hour and weekday (Sunday = 0) of each session's start.
func TrainingData(sessions []*domain.StudySession) []TrainingPoint {
	points := make([]TrainingPoint, 0, len(sessions))
	for _, s := range sessions {
		if s == nil {
			continue
		}
		start := s.StartTime.Local()
		points = append(points, TrainingPoint{
			Hour:      start.Hour(),
			DayOfWeek: int(start.Weekday()),
			Score:     s.FocusScore,
			Duration:  s.StudyTime().Seconds(),
			BreakTime: s.BreakTime().Seconds(),
		})
	}
	return points
}

type predictRequest struct {
	TrainingData []TrainingPoint `json:"trainingData"`
	CurrentHour  int             `json:"currentHour"`
	DayOfWeek    int             `json:"dayOfWeek"`
}

type predictResponse struct {
	Duration   *float64 `json:"duration"`
	BreakTime  *float64 `json:"break_time"`
	Confidence *float64 `json:"confidence"`
}

type feedbackRequest struct {
	TrainingData []TrainingPoint `json:"trainingData"`
}

type feedbackResponse struct {
	Summary             string   `json:"summary"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	Recommendations     []string `json:"recommendations"`
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
