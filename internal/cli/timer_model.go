package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyclock/internal/cli/formatter"
	"github.com/alexanderramin/studyclock/internal/domain"
	"github.com/alexanderramin/studyclock/internal/tracker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// tickMsg is one display tick of the loop identified by gen.
type tickMsg struct{ gen uint64 }

type startedMsg struct{ err error }

type submittedMsg struct{ err error }

func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

// timerModel is the interactive study timer screen. Store and advisor calls
// run as commands so the display keeps ticking while they are in flight.
type timerModel struct {
	ctx     context.Context
	tracker *tracker.Tracker
	user    *domain.User
	subject string

	score    textinput.Model
	err      error
	width    int
	quitting bool
}

func newTimerModel(ctx context.Context, t *tracker.Tracker, user *domain.User, subject string) timerModel {
	in := textinput.New()
	in.Placeholder = "1-100"
	in.CharLimit = 3
	in.Width = 5
	in.Prompt = "Focus score ▸ "
	return timerModel{
		ctx:     ctx,
		tracker: t,
		user:    user,
		subject: subject,
		score:   in,
	}
}

func (m timerModel) Init() tea.Cmd {
	return nil
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		if m.tracker.Tick(msg.gen) {
			return m, tickCmd(msg.gen)
		}
		return m, nil

	case startedMsg:
		m.err = msg.err
		return m, m.tickIfRunning()

	case submittedMsg:
		m.err = msg.err
		if msg.err != nil && errors.Is(msg.err, domain.ErrInvalidScore) {
			m.score.SetValue("")
		}
		if m.tracker.Phase() == domain.PhaseSubmitted {
			m.score.Blur()
			m.score.SetValue("")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m timerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	phase := m.tracker.Phase()
	if phase == domain.PhaseEnded {
		return m.handleScoreKey(msg)
	}

	m.err = nil
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "r":
		m.tracker.Reset()
		return m, nil
	case "enter":
		if phase == domain.PhaseSubmitted {
			m.err = m.tracker.Acknowledge()
		}
		return m, nil
	case " ", "s":
		if phase == domain.PhaseIdle {
			return m, m.startCmd()
		}
		m.err = m.tracker.Toggle(m.ctx, m.user)
		return m, m.tickIfRunning()
	case "p":
		m.err = m.tracker.Pause(m.user)
		return m, nil
	case "e":
		m.err = m.tracker.End(m.user)
		if m.tracker.Phase() == domain.PhaseEnded {
			return m, m.score.Focus()
		}
		return m, nil
	}
	return m, nil
}

func (m timerModel) handleScoreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.err = nil
		m.score.Blur()
		m.score.SetValue("")
		m.tracker.Reset()
		return m, nil
	case tea.KeyEnter:
		m.err = nil
		return m, m.submitCmd(m.score.Value())
	}
	var cmd tea.Cmd
	m.score, cmd = m.score.Update(msg)
	return m, cmd
}

func (m timerModel) startCmd() tea.Cmd {
	ctx, t, user, subject := m.ctx, m.tracker, m.user, m.subject
	return func() tea.Msg {
		return startedMsg{err: t.Start(ctx, user, subject)}
	}
}

func (m timerModel) submitCmd(text string) tea.Cmd {
	ctx, t, user := m.ctx, m.tracker, m.user
	return func() tea.Msg {
		return submittedMsg{err: t.SubmitScoreText(ctx, user, text)}
	}
}

// tickIfRunning starts a tick loop for the current generation. Loops from
// earlier generations stop on their next tick.
func (m timerModel) tickIfRunning() tea.Cmd {
	st := m.tracker.Snapshot()
	if !st.Phase.Running() {
		return nil
	}
	return tickCmd(st.Generation)
}

var (
	clockStyle = lipgloss.NewStyle().Foreground(formatter.ColorFg).Bold(true).Padding(1, 4)
	helpStyle  = lipgloss.NewStyle().Foreground(formatter.ColorDim)
)

func (m timerModel) View() string {
	if m.quitting {
		return ""
	}
	st := m.tracker.Snapshot()

	var b strings.Builder
	title := formatter.StyleHeader.Render("STUDYCLOCK")
	if subject := st.Subject; subject != "" {
		title += "  " + formatter.Dim(subject)
	} else if m.subject != "" {
		title += "  " + formatter.Dim(m.subject)
	}
	b.WriteString(title + "\n\n")

	if st.Phase == domain.PhaseSubmitted && st.Summary != nil {
		sum := st.Summary
		b.WriteString(formatter.FormatSummary(sum.Session, sum.Analytics, sum.Feedback, sum.RefreshErr))
		b.WriteString("\n\n" + helpStyle.Render("enter continue • q quit"))
		return b.String()
	}

	b.WriteString(formatter.PhaseBadge(st.Phase))
	if seg := st.ActiveSegment(); seg != nil {
		b.WriteString(formatter.Dim(fmt.Sprintf("  %s #%d", seg.Kind, seg.SegmentNumber)))
	}
	b.WriteString("\n")
	b.WriteString(clockStyle.Render(formatter.Clock(st.DisplaySeconds)))
	b.WriteString("\n")
	b.WriteString(formatter.Dim(fmt.Sprintf("study segments %d • break segments %d",
		len(st.StudySegments), len(st.BreakSegments))))
	b.WriteString("\n\n")

	if st.Phase == domain.PhaseEnded {
		b.WriteString(m.score.View() + "\n")
	}
	if st.Busy {
		b.WriteString(formatter.StyleYellow.Render("Saving...") + "\n")
	}
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("✖ "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(helpLine(st.Phase)))
	return b.String()
}

func helpLine(p domain.Phase) string {
	switch p {
	case domain.PhaseIdle:
		return "space start • q quit"
	case domain.PhaseStudying:
		return "space break • p pause • e end • r reset • q quit"
	case domain.PhaseOnBreak:
		return "space study • p pause • e end • r reset • q quit"
	case domain.PhasePausedStudy, domain.PhasePausedBreak:
		return "space resume • e end • r reset • q quit"
	case domain.PhaseEnded:
		return "enter submit • esc discard • ctrl+c quit"
	default:
		return "q quit"
	}
}
