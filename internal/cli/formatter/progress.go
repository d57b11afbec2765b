package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderScoreBar renders a 1-100 score as a bar like [████░░░░] 45,
// colored with the score band.
func RenderScoreBar(score float64, width int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	if width < 2 {
		width = 2
	}

	filled := int(score / 100 * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3.0f", ScoreStyle(score).Render(bar), score)
}

// RenderSplitBar shows the study/break proportion of a session: study time
// in green, break time in blue.
func RenderSplitBar(study, brk float64, width int) string {
	if width < 2 {
		width = 2
	}
	total := study + brk
	if total <= 0 {
		return StyleDim.Render(strings.Repeat(emptyBlock, width))
	}
	n := int(study / total * float64(width))
	return StyleGreen.Render(strings.Repeat(filledBlock, n)) +
		StyleBlue.Render(strings.Repeat(filledBlock, width-n))
}
