package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/studyclock/internal/auth"
	"github.com/alexanderramin/studyclock/internal/cli/formatter"
	"github.com/alexanderramin/studyclock/internal/domain"
	"github.com/alexanderramin/studyclock/internal/service"
	"github.com/alexanderramin/studyclock/internal/tracker"
	"github.com/spf13/cobra"
)

// Authenticator is the credential provider used by the auth commands.
type Authenticator interface {
	SignUp(ctx context.Context, email, password string) (*domain.User, error)
	SignIn(ctx context.Context, email, password string, remember bool) (*domain.User, error)
	SignOut(ctx context.Context) error
	CurrentUser() *domain.User
	Restore(ctx context.Context) (*domain.User, error)
}

// App holds references to all services used by CLI commands.
type App struct {
	Auth      Authenticator
	Sessions  service.SessionStore
	Analytics service.AnalyticsService
	Quiz      service.QuizService

	// Clock drives the timer; nil means the system clock.
	Clock tracker.Clock

	// IsInteractive reports whether prompts and spinners may be shown.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// requireUser returns the signed-in user, restoring a remembered sign-in
// if needed.
func (a *App) requireUser(ctx context.Context) (*domain.User, error) {
	if u := a.Auth.CurrentUser(); u != nil {
		return u, nil
	}
	u, err := a.Auth.Restore(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", auth.Message(err), domain.ErrAuthRequired)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: run `studyclock auth signin` first", domain.ErrAuthRequired)
	}
	return u, nil
}

// withSpinner runs fn behind a spinner on stderr when attached to a terminal.
func (a *App) withSpinner(w io.Writer, message string, fn func() error) error {
	if !a.interactive() {
		return fn()
	}
	stop := formatter.StartSpinner(w, message)
	defer stop()
	return fn()
}

// friendlyError shows a user-facing message while keeping the cause for errors.Is.
type friendlyError struct {
	msg string
	err error
}

func (e *friendlyError) Error() string { return e.msg }
func (e *friendlyError) Unwrap() error { return e.err }

func authError(err error) error {
	var fe *friendlyError
	if err == nil || errors.As(err, &fe) {
		return err
	}
	return &friendlyError{msg: auth.Message(err), err: err}
}

// NewRootCmd creates the top-level "studyclock" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "studyclock",
		Short:         "Study timer with focus tracking and study analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAuthCmd(app),
		newTimerCmd(app),
		newSessionsCmd(app),
		newAnalyticsCmd(app),
		newFeedbackCmd(app),
		newQuizCmd(app),
		newRecordsCmd(app),
	)

	return root
}
