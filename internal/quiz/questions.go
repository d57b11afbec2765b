package quiz

// LikertMin and LikertMax bound every answer.
const (
	LikertMin = 1
	LikertMax = 7
)

// Question is one quiz statement answered on the 1-7 agreement scale.
type Question struct {
	Number int
	Text   string
}

// Questions is the fixed quiz, in answer order.
var Questions = []Question{
	{1, "I find it easy to get along with people I have just met."},
	{2, "I enjoy spending time on my own."},
	{3, "I put reason ahead of feelings."},
	{4, "I would rather act on impulse than make a plan."},
	{5, "I react strongly to the moods of people around me."},
	{6, "I only really focus when a deadline is close."},
	{7, "I care more about the big picture than the details."},
	{8, "I prefer doing things my own way over following instructions."},
	{9, "I enjoy new ideas and trying new things."},
	{10, "I value consistency and stability."},
}

// ScaleLabels names the ends and middle of the agreement scale.
var ScaleLabels = map[int]string{
	1: "strongly disagree",
	4: "neutral",
	7: "strongly agree",
}
