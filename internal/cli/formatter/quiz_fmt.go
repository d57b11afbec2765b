package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyclock/internal/domain"
)

// FormatRecord renders one quiz result with its trait profile.
func FormatRecord(r *domain.TestRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", StyleHeader.Render(r.PersonalityType))
	fmt.Fprintf(&b, "%s\n\n", Dim(SessionStamp(r.Timestamp)))
	if r.Description != "" {
		b.WriteString(r.Description + "\n")
	}
	if r.Recommendation != "" {
		b.WriteString(StyleGreen.Render("→ ") + r.Recommendation + "\n")
	}
	b.WriteString("\n")

	traits := []struct {
		name  string
		value float64
	}{
		{"Extraversion", r.Scores.Extraversion},
		{"Openness", r.Scores.Openness},
		{"Conscientiousness", r.Scores.Conscientiousness},
		{"Agreeableness", r.Scores.Agreeableness},
		{"Neuroticism", r.Scores.Neuroticism},
	}
	for _, tr := range traits {
		fmt.Fprintf(&b, "%-18s %s\n", tr.name, traitBar(tr.value))
	}
	return RenderBox("Study personality", strings.TrimRight(b.String(), "\n"))
}

// FormatRecordList renders saved quiz results newest first.
func FormatRecordList(records []*domain.TestRecord) string {
	if len(records) == 0 {
		return Dim("No quiz results yet. Run `studyclock quiz` to take it.") + "\n"
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			TruncID(r.ID),
			SessionStamp(r.Timestamp),
			r.PersonalityType,
		})
	}
	return RenderBox("Quiz results", RenderTable([]string{"ID", "TAKEN", "TYPE"}, rows))
}

// traitBar draws a 1-7 trait value on a seven-cell scale.
func traitBar(v float64) string {
	filled := int(v + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > 7 {
		filled = 7
	}
	return StylePurple.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, 7-filled)) +
		fmt.Sprintf(" %.1f", v)
}
