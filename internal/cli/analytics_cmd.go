package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/studyclock/internal/cli/formatter"
	"github.com/alexanderramin/studyclock/internal/domain"
	"github.com/spf13/cobra"
)

func newAnalyticsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show study analytics and recommended durations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.requireUser(ctx)
			if err != nil {
				return err
			}

			var snap *domain.AnalyticsSnapshot
			err = app.withSpinner(cmd.ErrOrStderr(), "Crunching your sessions...", func() error {
				snap, err = app.Analytics.Snapshot(ctx, user)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAnalytics(*snap))
			return nil
		},
	}
}

func newFeedbackCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "feedback",
		Short: "Get coaching on your study habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.requireUser(ctx)
			if err != nil {
				return err
			}

			var fb domain.Feedback
			err = app.withSpinner(cmd.ErrOrStderr(), "Asking the advisor...", func() error {
				fb, err = app.Analytics.Feedback(ctx, user)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatFeedback(fb))
			return nil
		},
	}
}
