package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/studyclock/internal/tracker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *App) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Open the interactive study timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.requireUser(ctx)
			if err != nil {
				return err
			}
			if !app.interactive() {
				return fmt.Errorf("the timer needs an interactive terminal")
			}

			t := tracker.New(app.Clock, app.Sessions, app.Analytics)
			m := newTimerModel(ctx, t, user, subject)
			_, err = tea.NewProgram(m,
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "What you are studying")

	return cmd
}
