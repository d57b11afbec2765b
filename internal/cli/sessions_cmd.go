package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/studyclock/internal/cli/formatter"
	"github.com/alexanderramin/studyclock/internal/domain"
	"github.com/alexanderramin/studyclock/internal/repository"
	"github.com/spf13/cobra"
)

func newSessionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Browse your study sessions",
	}

	cmd.AddCommand(
		newSessionsListCmd(app),
		newSessionsShowCmd(app),
	)

	return cmd
}

func newSessionsListCmd(app *App) *cobra.Command {
	var limit int
	var finishedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.requireUser(ctx)
			if err != nil {
				return err
			}
			sessions, err := app.Sessions.QuerySessions(ctx, user)
			if err != nil {
				return err
			}

			if finishedOnly {
				kept := sessions[:0]
				for _, s := range sessions {
					if s.Finished() {
						kept = append(kept, s)
					}
				}
				sessions = kept
			}
			if limit > 0 && len(sessions) > limit {
				sessions = sessions[:limit]
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionList(sessions))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of sessions to show (0 for all)")
	cmd.Flags().BoolVar(&finishedOnly, "finished", false, "Hide sessions that were never scored")

	return cmd
}

func newSessionsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one session with its segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.requireUser(ctx)
			if err != nil {
				return err
			}
			s, err := resolveSession(ctx, app, user, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionDetail(s))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

// resolveSession accepts a full ID or the short prefix shown by list.
func resolveSession(ctx context.Context, app *App, user *domain.User, ref string) (*domain.StudySession, error) {
	s, err := app.Sessions.GetSession(ctx, user, ref)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	all, err := app.Sessions.QuerySessions(ctx, user)
	if err != nil {
		return nil, err
	}
	var match *domain.StudySession
	for _, cand := range all {
		if !strings.HasPrefix(cand.ID, ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("session prefix %q is ambiguous", ref)
		}
		match = cand
	}
	if match == nil {
		return nil, fmt.Errorf("session %s: %w", ref, repository.ErrNotFound)
	}
	return match, nil
}
