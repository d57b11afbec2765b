package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/studyclock/internal/auth"
	"github.com/alexanderramin/studyclock/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage your account",
	}

	cmd.AddCommand(
		newSignUpCmd(app),
		newSignInCmd(app),
		newSignOutCmd(app),
		newWhoAmICmd(app),
	)

	return cmd
}

func newSignUpCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := promptCredentials(app, "Create account", &email, &password, true); err != nil {
				return err
			}
			u, err := app.Auth.SignUp(context.Background(), email, password)
			if err != nil {
				return authError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Your account is ready and you are signed in.\n", formatter.Bold(u.DisplayName))
			return nil
		},
	}

	credentialFlags(cmd.Flags(), &email, &password, "Password (8+ characters with upper, lower, digit and symbol)")

	return cmd
}

func newSignInCmd(app *App) *cobra.Command {
	var email, password string
	var remember bool

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in to your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := promptCredentials(app, "Sign in", &email, &password, false); err != nil {
				return err
			}
			u, err := app.Auth.SignIn(context.Background(), email, password, remember)
			if err != nil {
				return authError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", formatter.Bold(u.Email))
			if !remember {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Sign-in not remembered; later commands will ask again."))
			}
			return nil
		},
	}

	credentialFlags(cmd.Flags(), &email, &password, "Password")
	cmd.Flags().BoolVar(&remember, "remember", true, "Stay signed in for 30 days")

	return cmd
}

func newSignOutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Sign out and forget the saved sign-in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.SignOut(context.Background()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.requireUser(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Bold(u.DisplayName), formatter.Dim("<"+u.Email+">"))
			return nil
		},
	}
}

// promptCredentials fills missing email/password from an interactive form.
// Without a terminal, missing values are an error.
func promptCredentials(app *App, title string, email, password *string, confirm bool) error {
	if *email != "" && *password != "" {
		return nil
	}
	if !app.interactive() {
		return fmt.Errorf("--email and --password are required")
	}

	var again string
	fields := []huh.Field{
		huh.NewInput().Title("Email").Value(email),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password).
			Validate(func(s string) error {
				if !confirm {
					return nil
				}
				if err := auth.ValidatePassword(s); err != nil {
					return errors.New(auth.Message(err))
				}
				return nil
			}),
	}
	if confirm {
		fields = append(fields, huh.NewInput().Title("Repeat password").EchoMode(huh.EchoModePassword).Value(&again).
			Validate(func(s string) error {
				if s != *password {
					return fmt.Errorf("passwords do not match")
				}
				return nil
			}))
	}

	return huh.NewForm(huh.NewGroup(fields...).Title(title)).
		WithTheme(studyclockHuhTheme()).
		Run()
}

// credentialFlags binds --email and --password. Both fall back to a prompt
// on an interactive terminal.
func credentialFlags(fs *pflag.FlagSet, email, password *string, passwordHelp string) {
	fs.StringVar(email, "email", "", "Account email")
	fs.StringVar(password, "password", "", passwordHelp)
}
