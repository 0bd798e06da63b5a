package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskflow-project/taskflowctl/internal/api"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the TaskFlow backend",
	Long: `Authenticate with email and password and store the resulting
session for subsequent commands.

Examples:
  taskflowctl login --email admin@company.com --password secret
  taskflowctl login -e manager@company.com -p secret`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringP("email", "e", "", "account email")
	loginCmd.Flags().StringP("password", "p", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if email == "" || password == "" {
		return errors.New("both email and password are required")
	}

	sess := newSessionManager()
	client := newAPIClient(nil)

	ctx, cancel := apiContext()
	defer cancel()

	identity, err := sess.Login(ctx, client, email, password)
	if err != nil {
		if api.StatusOf(err) == 401 {
			printer.Error("Invalid credentials")
			return fmt.Errorf("invalid credentials")
		}
		return failure(printer, err)
	}

	printer.Success("Logged in as %s (%s)", identity.FullName, printer.RoleBadge(identity.Role))
	printer.PrintHints("login")
	return nil
}
