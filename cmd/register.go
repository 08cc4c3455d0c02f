package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd(app *app) *cobra.Command {
	var email string
	var password string
	var name string
	var phone string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.sessions.Register(cmd.Context(), email, password, name, phone)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Welcome to HarvestGuru, %s\n", session.User.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&name, "name", "", "Your name")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number (optional)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
