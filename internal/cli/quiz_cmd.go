package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/studyclock/internal/cli/formatter"
	"github.com/alexanderramin/studyclock/internal/quiz"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newQuizCmd(app *App) *cobra.Command {
	var answersFlag string

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Take the study personality quiz",
		Long: "Answer ten statements on a 1-7 agreement scale to find your study personality.\n" +
			"Pass --answers to skip the interactive form, e.g. --answers 4,5,3,2,6,4,5,3,6,5",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.requireUser(ctx)
			if err != nil {
				return err
			}

			var answers []int
			switch {
			case answersFlag != "":
				answers, err = parseAnswers(answersFlag)
			case app.interactive():
				answers, err = runQuizForm()
			default:
				err = fmt.Errorf("--answers is required when not running in a terminal")
			}
			if err != nil {
				return err
			}

			rec, err := app.Quiz.Submit(ctx, user, answers)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRecord(rec))
			return nil
		},
	}

	cmd.Flags().StringVar(&answersFlag, "answers", "", "Comma-separated answers, one per question (1-7)")

	return cmd
}

func newRecordsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "records [ID]",
		Short: "List quiz results, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.requireUser(ctx)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				rec, err := app.Quiz.GetRecord(ctx, user, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRecord(rec))
				return nil
			}

			records, err := app.Quiz.ListRecords(ctx, user)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecordList(records))
			return nil
		},
	}
}

func parseAnswers(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	answers := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", quiz.ErrInvalidAnswers, p)
		}
		answers = append(answers, n)
	}
	return answers, nil
}

// runQuizForm asks every question as a 1-7 select, one per page.
func runQuizForm() ([]int, error) {
	answers := make([]int, len(quiz.Questions))
	groups := make([]*huh.Group, 0, len(quiz.Questions))
	for i, q := range quiz.Questions {
		answers[i] = (quiz.LikertMin + quiz.LikertMax) / 2
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("%d/%d  %s", q.Number, len(quiz.Questions), q.Text)).
				Options(likertOptions()...).
				Value(&answers[i]),
		))
	}

	form := huh.NewForm(groups...).WithTheme(studyclockHuhTheme())
	if err := form.Run(); err != nil {
		return nil, err
	}
	return answers, nil
}

func likertOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, quiz.LikertMax-quiz.LikertMin+1)
	for v := quiz.LikertMin; v <= quiz.LikertMax; v++ {
		label := strconv.Itoa(v)
		if name, ok := quiz.ScaleLabels[v]; ok {
			label += "  " + name
		}
		opts = append(opts, huh.NewOption(label, v))
	}
	return opts
}
