package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskflow-project/taskflowctl/internal/output"
	"github.com/taskflow-project/taskflowctl/internal/session"
	"github.com/taskflow-project/taskflowctl/internal/signup"
	"github.com/taskflow-project/taskflowctl/internal/view"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Review queued signup requests (admin)",
	Long: `Review signup requests that could not be committed to the backend
and are queued locally for admin approval.

Approving creates the account with the EMPLOYEE role and the fixed
default password, then removes the entry from the queue. Rejecting just
removes the entry.`,
}

var pendingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List queued signup requests",
	RunE:  runPendingList,
}

var pendingApproveCmd = &cobra.Command{
	Use:   "approve <email>",
	Short: "Approve a queued signup request",
	Args:  cobra.ExactArgs(1),
	RunE:  runPendingApprove,
}

var pendingRejectCmd = &cobra.Command{
	Use:   "reject <email>",
	Short: "Reject a queued signup request",
	Args:  cobra.ExactArgs(1),
	RunE:  runPendingReject,
}

func init() {
	rootCmd.AddCommand(pendingCmd)
	pendingCmd.AddCommand(pendingListCmd)
	pendingCmd.AddCommand(pendingApproveCmd)
	pendingCmd.AddCommand(pendingRejectCmd)
}

func requirePendingAccess() (*session.Manager, error) {
	sess, identity, err := requireLogin()
	if err != nil {
		return nil, err
	}
	if !view.CanManagePending(identity.Role) {
		return nil, fmt.Errorf("pending signup review requires the ADMIN role")
	}
	return sess, nil
}

func runPendingList(cmd *cobra.Command, args []string) error {
	if _, err := requirePendingAccess(); err != nil {
		return err
	}

	printer := newPrinter()
	store := signup.NewStore(cfg.PendingSignupsFile())

	entries := store.List()
	if len(entries) == 0 {
		printer.Info("No pending signups found")
		return nil
	}

	table := output.NewTable([]string{"Name", "Email", "Requested", "Note"})
	for _, e := range entries {
		table.AddRow([]string{e.FullName, e.Email, e.RequestedAt, e.Note})
	}
	table.Render()
	printer.Print("Total: %d pending request(s)", len(entries))
	return nil
}

func runPendingApprove(cmd *cobra.Command, args []string) error {
	sess, err := requirePendingAccess()
	if err != nil {
		return err
	}

	printer := newPrinter()
	store := signup.NewStore(cfg.PendingSignupsFile())

	entry, ok := store.Find(args[0])
	if !ok {
		return fmt.Errorf("no pending signup for %s", args[0])
	}

	client := newAPIClient(sess)
	ctx, cancel := apiContext()
	defer cancel()

	// On failure the entry stays queued so the approval can be retried.
	if err := store.Approve(ctx, client, entry); err != nil {
		return failure(printer, err)
	}

	printer.Success("Account created for %s and removed from pending list", entry.Email)
	printer.PrintHints("pending approve")
	return nil
}

func runPendingReject(cmd *cobra.Command, args []string) error {
	if _, err := requirePendingAccess(); err != nil {
		return err
	}

	printer := newPrinter()
	store := signup.NewStore(cfg.PendingSignupsFile())

	entry, ok := store.Find(args[0])
	if !ok {
		return fmt.Errorf("no pending signup for %s", args[0])
	}

	if err := store.Reject(entry); err != nil {
		return err
	}

	printer.Info("Signup request for %s rejected and removed", entry.Email)
	return nil
}
