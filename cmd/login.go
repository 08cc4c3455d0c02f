package cmd

import (
	"errors"
	"fmt"

	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.sessions.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", session.User.Name, session.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.sessions.Logout(cmd.Context())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := requireSession(cmd, app)
			if err != nil {
				return err
			}

			user := session.User
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Name, user.Email)
			if user.Phone != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "phone: %s\n", user.Phone)
			}
			return nil
		},
	}
}

// requireSession restores the persisted session and gates protected
// commands behind it.
func requireSession(cmd *cobra.Command, app *app) (domain.Session, error) {
	session, err := app.sessions.Resolve(cmd.Context())
	if err != nil {
		if domain.IsUnauthorized(err) || errors.Is(err, domain.ErrCredentialNotFound) {
			return domain.Session{}, fmt.Errorf("%w: run `hg login` first", domain.ErrNotAuthenticated)
		}
		return domain.Session{}, err
	}
	if !session.Authenticated() {
		return domain.Session{}, fmt.Errorf("%w: run `hg login` first", domain.ErrNotAuthenticated)
	}

	return session, nil
}
