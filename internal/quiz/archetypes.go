package quiz

// Archetype is a study personality described by a trait vector in
// (extraversion, openness, conscientiousness, agreeableness, neuroticism)
// order.
type Archetype struct {
	Label          string
	Description    string
	Recommendation string
	Vector         [5]float64
}

// Archetypes are compared in this order; the first of equally distant
// archetypes wins.
var Archetypes = []Archetype{
	{
		Label:          "Reflective Strategist",
		Description:    "Inward-looking but analytical, prefers strategic thinking.",
		Recommendation: "Planned, structured self-directed study suits you. Lean on planners and note systems.",
		Vector:         [5]float64{2, 6, 6, 4, 4},
	},
	{
		Label:          "Quiet Explorer",
		Description:    "Explores the world calmly and quietly.",
		Recommendation: "Solo study in a quiet place works best. Try a library or a reading room.",
		Vector:         [5]float64{2, 4, 4, 4, 4},
	},
	{
		Label:          "Responsible Leader",
		Description:    "Good at leading and at keeping emotions in check.",
		Recommendation: "Take the lead on goals and team projects. Running a study group suits you.",
		Vector:         [5]float64{6, 4, 6, 4, 6},
	},
	{
		Label:          "Free Adventurer",
		Description:    "Creative and flexible, prefers adventure to plans.",
		Recommendation: "Project-based, hands-on learning beats strict schedules. Don't be afraid to experiment.",
		Vector:         [5]float64{6, 6, 2, 4, 4},
	},
	{
		Label:          "Empathetic Collaborator",
		Description:    "Highly empathetic and sociable, sometimes emotional.",
		Recommendation: "Study with friends: cooperative learning, discussion and group sessions keep you motivated.",
		Vector:         [5]float64{4, 4, 4, 6, 2},
	},
	{
		Label:          "Careful Practitioner",
		Description:    "Quiet, responsible and practical in getting things done.",
		Recommendation: "Systematic drills, repeated practice problems and checklists are effective for you.",
		Vector:         [5]float64{2, 2, 6, 4, 4},
	},
	{
		Label:          "Balanced Realist",
		Description:    "Stable, with realistic judgement.",
		Recommendation: "Try a range of methods to find what fits. Balanced time allocation matters most.",
		Vector:         [5]float64{4, 4, 4, 4, 4},
	},
	{
		Label:          "Versatile Creative",
		Description:    "Curious about many fields and adaptable across them.",
		Recommendation: "Studying several subjects side by side and crossover learning suit you.",
		Vector:         [5]float64{4, 6, 4, 4, 4},
	},
	{
		Label:          "Sensitive Guardian",
		Description:    "Introverted and caring, can be emotionally unsettled.",
		Recommendation: "Study on your own somewhere comfortable and check in with yourself through a journal.",
		Vector:         [5]float64{2, 4, 4, 6, 2},
	},
	{
		Label:          "Idealistic Thinker",
		Description:    "Imagination-driven, with a strong inner world.",
		Recommendation: "Mind maps, essays and creative writing give you room to express ideas.",
		Vector:         [5]float64{2, 6, 4, 4, 4},
	},
	{
		Label:          "Passionate Driver",
		Description:    "Enthusiastic and creative, turns ideas into action.",
		Recommendation: "Set a goal and act on it right away. Seek out challenging tasks.",
		Vector:         [5]float64{6, 6, 6, 4, 4},
	},
	{
		Label:          "Peaceful Mediator",
		Description:    "Gentle and balanced, in harmony with those around them.",
		Recommendation: "Group study that values cooperation, feedback and discussion works well.",
		Vector:         [5]float64{4, 4, 4, 6, 6},
	},
}
