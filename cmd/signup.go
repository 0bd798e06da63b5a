package cmd

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/taskflow-project/taskflowctl/internal/api"
	"github.com/taskflow-project/taskflowctl/internal/signup"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Request an employee account",
	Long: `Request a self-registered employee account. Managers and admins
are added by an admin, not here.

When the backend forbids public signup, or is unreachable, the request
is queued locally in the pending-signups file for later admin review.

Examples:
  taskflowctl signup --name "John Doe" --email john@company.com --password secret --confirm-password secret`,
	RunE: runSignup,
}

// signupInput is validated before anything leaves the process.
type signupInput struct {
	FullName        string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

func init() {
	rootCmd.AddCommand(signupCmd)

	signupCmd.Flags().String("name", "", "full name")
	signupCmd.Flags().String("email", "", "email address")
	signupCmd.Flags().String("password", "", "password")
	signupCmd.Flags().String("confirm-password", "", "password, again")
	_ = signupCmd.MarkFlagRequired("name")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")
	_ = signupCmd.MarkFlagRequired("confirm-password")
}

func runSignup(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	input := signupInput{}
	input.FullName, _ = cmd.Flags().GetString("name")
	input.Email, _ = cmd.Flags().GetString("email")
	input.Password, _ = cmd.Flags().GetString("password")
	input.ConfirmPassword, _ = cmd.Flags().GetString("confirm-password")

	if err := validator.New().Struct(input); err != nil {
		if input.Password != input.ConfirmPassword {
			return fmt.Errorf("passwords do not match")
		}
		return fmt.Errorf("invalid signup input: %w", err)
	}

	client := newAPIClient(nil)
	ctx, cancel := apiContext()
	defer cancel()

	_, err := client.Signup(ctx, api.SignupRequest{
		FullName: input.FullName,
		Email:    input.Email,
		Password: input.Password,
		Role:     api.RoleEmployee,
	})
	if err == nil {
		printer.Success("Account created successfully. You can now login.")
		printer.PrintHints("signup")
		return nil
	}

	// Only two failure modes feed the queue: the backend explicitly
	// forbidding public signup, or the backend being unreachable.
	// Validation errors and the like are surfaced, not queued.
	if !signup.ShouldQueue(err) {
		return failure(printer, err)
	}

	note := ""
	if api.IsUnreachable(err) {
		note = signup.NoteUnreachable
	}
	store := signup.NewStore(cfg.PendingSignupsFile())
	entry := signup.NewEntry(input.FullName, input.Email, note)
	if qerr := store.Append(entry); qerr != nil {
		printer.Error("Could not save signup request locally. Please ask an admin to create your account.")
		return qerr
	}

	// Queued is an expected outcome, informational rather than an error.
	if note == signup.NoteUnreachable {
		printer.Info("Backend is unreachable; signup request saved locally for admin review.")
	} else {
		printer.Info("Signup request saved and pending admin approval (see %s).", cfg.PendingSignupsFile())
	}
	return nil
}
