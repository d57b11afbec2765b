package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyclock/internal/domain"
)

// FormatSessionList renders a user's sessions newest first.
func FormatSessionList(sessions []*domain.StudySession) string {
	if len(sessions) == 0 {
		return Dim("No study sessions yet. Run `studyclock timer` to start one.") + "\n"
	}

	headers := []string{"ID", "STARTED", "SUBJECT", "WHEN", "STUDY", "BREAK", "FOCUS"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		subject := s.Subject
		if subject == "" {
			subject = Dim("--")
		}
		focus := Score(float64(s.FocusScore))
		if !s.Finished() {
			focus = StyleYellow.Render("unfinished")
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			SessionStamp(s.StartTime),
			subject,
			TimeOfDayBadge(s.TimeOfDay),
			Duration(s.StudyTime()),
			Duration(s.BreakTime()),
			focus,
		})
	}
	return RenderBox("Sessions", RenderTable(headers, rows, 4, 5, 6))
}

// FormatSessionDetail renders one session with its segment timeline.
func FormatSessionDetail(s *domain.StudySession) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(SessionStamp(s.StartTime)), TimeOfDayBadge(s.TimeOfDay))
	if s.Subject != "" {
		fmt.Fprintf(&b, "Subject      %s\n", s.Subject)
	}
	fmt.Fprintf(&b, "Study time   %s\n", Duration(s.StudyTime()))
	fmt.Fprintf(&b, "Break time   %s\n", Duration(s.BreakTime()))
	if s.Finished() {
		fmt.Fprintf(&b, "Focus        %s\n", RenderScoreBar(float64(s.FocusScore), 20))
	} else {
		fmt.Fprintf(&b, "Focus        %s\n", StyleYellow.Render("not submitted"))
	}
	fmt.Fprintf(&b, "Split        %s\n", RenderSplitBar(s.StudyTime().Seconds(), s.BreakTime().Seconds(), 30))

	segs := timeline(s)
	if len(segs) > 0 {
		b.WriteString("\n")
		rows := make([][]string, 0, len(segs))
		for _, seg := range segs {
			kind := StyleGreen.Render("study")
			if seg.Kind == domain.SegmentBreak {
				kind = StyleBlue.Render("break")
			}
			end := Dim("open")
			if seg.EndTime != nil {
				end = seg.EndTime.Local().Format("15:04:05")
			}
			rows = append(rows, []string{
				kind,
				fmt.Sprintf("#%d", seg.SegmentNumber),
				seg.StartTime.Local().Format("15:04:05"),
				end,
				Duration(seg.Duration),
			})
		}
		b.WriteString(RenderTable([]string{"KIND", "NO", "START", "END", "LENGTH"}, rows, 4))
	}
	return RenderBox("Session "+shortID(s.ID), b.String())
}

// timeline merges both segment lists in start order.
func timeline(s *domain.StudySession) []domain.Segment {
	out := make([]domain.Segment, 0, len(s.StudySegments)+len(s.BreakSegments))
	i, j := 0, 0
	for i < len(s.StudySegments) || j < len(s.BreakSegments) {
		switch {
		case j >= len(s.BreakSegments):
			out = append(out, s.StudySegments[i])
			i++
		case i >= len(s.StudySegments):
			out = append(out, s.BreakSegments[j])
			j++
		case !s.BreakSegments[j].StartTime.Before(s.StudySegments[i].StartTime):
			out = append(out, s.StudySegments[i])
			i++
		default:
			out = append(out, s.BreakSegments[j])
			j++
		}
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
