package quiz

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexanderramin/studyclock/internal/domain"
)

// ErrInvalidAnswers is returned when the answer set is incomplete or an
// answer falls outside the Likert scale.
var ErrInvalidAnswers = errors.New("invalid quiz answers")

// Result is the outcome of scoring one set of answers.
type Result struct {
	Scores    domain.TraitScores
	Archetype Archetype
	Distance  float64
}

// Score derives trait scores from ten answers and picks the nearest archetype.
func Score(answers []int) (Result, error) {
	if err := validate(answers); err != nil {
		return Result{}, err
	}

	a := func(n int) float64 { return float64(answers[n-1]) }
	inv := func(n int) float64 { return float64(LikertMax+1) - a(n) }

	scores := domain.TraitScores{
		Extraversion:      average(a(1), inv(2)),
		Openness:          average(a(9), a(7)),
		Conscientiousness: average(inv(4), a(10)),
		Agreeableness:     average(a(5), inv(3)),
		Neuroticism:       average(a(6), inv(8)),
	}

	best, dist := Nearest(scores.Vector())
	return Result{Scores: scores, Archetype: best, Distance: dist}, nil
}

// Nearest returns the archetype closest to v by Euclidean distance.
func Nearest(v [5]float64) (Archetype, float64) {
	best := Archetypes[0]
	bestDist := distance(v, best.Vector)
	for _, arch := range Archetypes[1:] {
		if d := distance(v, arch.Vector); d < bestDist {
			best, bestDist = arch, d
		}
	}
	return best, bestDist
}

// NewRecord builds the test record to persist for a scored quiz.
func NewRecord(userID string, answers []int, r Result) *domain.TestRecord {
	return &domain.TestRecord{
		UserID:          userID,
		Answers:         append([]int(nil), answers...),
		PersonalityType: r.Archetype.Label,
		Description:     r.Archetype.Description,
		Recommendation:  r.Archetype.Recommendation,
		Scores:          r.Scores,
	}
}

func validate(answers []int) error {
	if len(answers) != len(Questions) {
		return fmt.Errorf("%w: want %d answers, got %d", ErrInvalidAnswers, len(Questions), len(answers))
	}
	for i, v := range answers {
		if v < LikertMin || v > LikertMax {
			return fmt.Errorf("%w: answer %d is %d, must be %d-%d", ErrInvalidAnswers, i+1, v, LikertMin, LikertMax)
		}
	}
	return nil
}

// average rounds to one decimal place.
func average(vals ...float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return math.Round(sum/float64(len(vals))*10) / 10
}

func distance(a, b [5]float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
