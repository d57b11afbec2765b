package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyclock/internal/domain"
)

// FormatAnalytics renders an analytics snapshot.
func FormatAnalytics(snap domain.AnalyticsSnapshot) string {
	var b strings.Builder
	if snap.SessionCount == 0 {
		b.WriteString(Dim("No finished sessions yet; showing default recommendations.") + "\n\n")
	}
	fmt.Fprintf(&b, "Sessions          %d\n", snap.SessionCount)
	fmt.Fprintf(&b, "Total study       %s\n", Duration(snap.TotalStudyTime))
	fmt.Fprintf(&b, "Average session   %s\n", Duration(snap.AverageSessionDuration))
	fmt.Fprintf(&b, "Productivity      %s\n", RenderScoreBar(snap.ProductivityScore, 20))
	fmt.Fprintf(&b, "Focus             %s\n", RenderScoreBar(snap.FocusScore, 20))
	fmt.Fprintf(&b, "Best time of day  %s\n", TimeOfDayBadge(snap.BestTimeOfDay))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Recommended       %s study / %s break\n",
		Bold(Minutes(snap.RecommendedStudyDuration)), Bold(Minutes(snap.RecommendedBreakDuration)))
	fmt.Fprintf(&b, "Next session      %s study / %s break  %s\n",
		Bold(Minutes(snap.NextStudyDuration)), Bold(Minutes(snap.NextBreakDuration)),
		Dim(fmt.Sprintf("(confidence %.2f)", snap.Confidence)))
	return RenderBox("Analytics", b.String())
}

// FormatFeedback renders textual coaching.
func FormatFeedback(fb domain.Feedback) string {
	var b strings.Builder
	b.WriteString(fb.Summary)
	b.WriteString("\n")
	if fb.Fallback {
		b.WriteString(Dim("(offline feedback)") + "\n")
	}
	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString("\n" + StyleBold.Render(title) + "\n")
		b.WriteString(Bullets(items))
	}
	section("Strengths", fb.Strengths)
	section("To improve", fb.AreasForImprovement)
	section("Recommendations", fb.Recommendations)
	return RenderBox("Feedback", strings.TrimRight(b.String(), "\n"))
}

// FormatSummary renders the post-submission screen: the saved session, the
// refreshed analytics and feedback. snap is nil when the refresh failed.
func FormatSummary(s *domain.StudySession, snap *domain.AnalyticsSnapshot, fb domain.Feedback, refreshErr error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Study time   %s\n", Bold(Duration(s.StudyTime())))
	fmt.Fprintf(&b, "Break time   %s\n", Bold(Duration(s.BreakTime())))
	fmt.Fprintf(&b, "Focus score  %s\n", Score(float64(s.FocusScore)))
	fmt.Fprintf(&b, "Segments     %d study, %d break\n", len(s.StudySegments), len(s.BreakSegments))

	if snap != nil {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Best time of day  %s\n", TimeOfDayBadge(snap.BestTimeOfDay))
		fmt.Fprintf(&b, "Next session      %s study / %s break\n",
			Bold(Minutes(snap.NextStudyDuration)), Bold(Minutes(snap.NextBreakDuration)))
	}
	if refreshErr != nil {
		b.WriteString("\n" + StyleRed.Render("Analytics unavailable: "+refreshErr.Error()) + "\n")
	}
	if fb.Summary != "" {
		b.WriteString("\n" + fb.Summary + "\n")
		b.WriteString(Bullets(fb.Recommendations))
	}
	return RenderBox("Session saved", strings.TrimRight(b.String(), "\n"))
}
