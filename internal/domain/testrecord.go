package domain

import "time"

// TraitScores are the five personality dimensions derived from quiz answers.
type TraitScores struct {
	Extraversion      float64
	Openness          float64
	Conscientiousness float64
	Agreeableness     float64
	Neuroticism       float64
}

// Vector returns the scores in archetype order.
func (t TraitScores) Vector() [5]float64 {
	return [5]float64{t.Extraversion, t.Openness, t.Conscientiousness, t.Agreeableness, t.Neuroticism}
}

// TestRecord is a saved quiz result.
type TestRecord struct {
	ID              string
	UserID          string
	Timestamp       time.Time
	Answers         []int
	PersonalityType string
	Description     string
	Recommendation  string
	Scores          TraitScores
}
