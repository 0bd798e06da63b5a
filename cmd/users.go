package cmd

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/taskflow-project/taskflowctl/internal/api"
	"github.com/taskflow-project/taskflowctl/internal/confirm"
	"github.com/taskflow-project/taskflowctl/internal/output"
	"github.com/taskflow-project/taskflowctl/internal/signup"
	"github.com/taskflow-project/taskflowctl/internal/view"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage team accounts (admin/manager)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List team accounts",
	RunE:  runUsersList,
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Provision an account (admin)",
	Long: `Create an account with the fixed default password. The password is
communicated to the new user out-of-band.

Examples:
  taskflowctl users add --name "Jane Doe" --email jane@company.com --role MANAGER`,
	RunE: runUsersAdd,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete an account (two-step confirmation)",
	Long: `Delete an account. The deletion must be confirmed interactively,
or with --yes for scripted use.

Admins may delete any user; managers may delete employees only. The
same rule is enforced by the backend, the client simply never offers a
delete that would be refused.`,
	Args: cobra.ExactArgs(1),
	RunE: runUsersDelete,
}

// userInput is validated before the create call goes out.
type userInput struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Role     string `validate:"required,oneof=ADMIN MANAGER EMPLOYEE"`
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersDeleteCmd)

	usersAddCmd.Flags().String("name", "", "full name")
	usersAddCmd.Flags().String("email", "", "email address")
	usersAddCmd.Flags().String("role", api.RoleEmployee, "role (ADMIN, MANAGER, EMPLOYEE)")
	_ = usersAddCmd.MarkFlagRequired("name")
	_ = usersAddCmd.MarkFlagRequired("email")

	usersDeleteCmd.Flags().BoolP("yes", "y", false, "confirm deletion without prompting")
}

func runUsersList(cmd *cobra.Command, args []string) error {
	sess, identity, err := requirePage("employees")
	if err != nil {
		return err
	}

	printer := newPrinter()
	client := newAPIClient(sess)

	ctx, cancel := apiContext()
	defer cancel()

	users, err := client.Users(ctx)
	if err != nil {
		return failure(printer, err)
	}

	if len(users) == 0 {
		printer.Info("No employees found")
		return nil
	}

	table := output.NewTable([]string{"ID", "Name", "Email", "Role", "Deletable"})
	for _, u := range users {
		deletable := ""
		if view.CanDelete(identity.Role, u.Role) && u.ID != identity.ID {
			deletable = "yes"
		}
		table.AddRow([]string{u.ID, u.FullName, u.Email, printer.RoleBadge(u.Role), deletable})
	}
	table.Render()
	printer.Print("Total: %d employee(s)", len(users))
	return nil
}

func runUsersAdd(cmd *cobra.Command, args []string) error {
	sess, _, err := requirePage("employees")
	if err != nil {
		return err
	}

	printer := newPrinter()

	input := userInput{}
	input.FullName, _ = cmd.Flags().GetString("name")
	input.Email, _ = cmd.Flags().GetString("email")
	input.Role, _ = cmd.Flags().GetString("role")

	if err := validator.New().Struct(input); err != nil {
		return fmt.Errorf("invalid user input: %w", err)
	}

	client := newAPIClient(sess)
	ctx, cancel := apiContext()
	defer cancel()

	user, err := client.CreateUser(ctx, input.FullName, input.Email, input.Role, signup.DefaultPassword)
	if err != nil {
		return failure(printer, err)
	}

	printer.Success("Employee '%s' added", user.FullName)
	printer.Info("Email: %s  Default Password: %s", user.Email, signup.DefaultPassword)
	printer.PrintHints("users add")
	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	sess, identity, err := requirePage("employees")
	if err != nil {
		return err
	}

	printer := newPrinter()
	client := newAPIClient(sess)
	id := args[0]

	ctx, cancel := apiContext()
	// The target's role decides whether the delete is offered at all.
	users, err := client.Users(ctx)
	cancel()
	if err != nil {
		return failure(printer, err)
	}
	idx := slices.IndexFunc(users, func(u api.User) bool { return u.ID == id })
	if idx < 0 {
		return fmt.Errorf("no user with id %s", id)
	}
	target := users[idx]

	if target.ID == identity.ID {
		return fmt.Errorf("cannot delete yourself")
	}
	if !view.CanDelete(identity.Role, target.Role) {
		return fmt.Errorf("role %s may not delete a %s user", identity.Role, target.Role)
	}

	controller := confirm.New()
	controller.Arm(target.ID, target.FullName)

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		if printer.IsQuiet() {
			_ = controller.Cancel()
			return fmt.Errorf("deletion needs confirmation; pass --yes when running with --quiet")
		}
		ticket, _ := controller.Armed()
		printer.Warning("Confirm deletion of user: %s (id: %s)", ticket.Label, ticket.TargetID)
		fmt.Fprintf(cmd.OutOrStdout(), "Type 'yes' to confirm: ")

		scanner := bufio.NewScanner(cmd.InOrStdin())
		scanner.Scan()
		if strings.TrimSpace(scanner.Text()) != "yes" {
			_ = controller.Cancel()
			printer.Info("Delete cancelled")
			return nil
		}
	}

	// A fresh deadline for the delete itself: however long the operator
	// deliberated at the prompt must not count against the call.
	delCtx, cancelDelete := apiContext()
	defer cancelDelete()

	// The ticket clears whatever happens; a failed delete is reported
	// and a retry needs an explicit re-run, never a stale armed state.
	err = controller.Confirm(delCtx, func(ctx context.Context, targetID string) error {
		return client.DeleteUser(ctx, targetID)
	})
	if err != nil {
		return failure(printer, err)
	}

	printer.Success("User deleted")
	printer.PrintHints("users delete")
	return nil
}
