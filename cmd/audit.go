package cmd

import (
	"github.com/spf13/cobra"

	"github.com/taskflow-project/taskflowctl/internal/api"
	"github.com/taskflow-project/taskflowctl/internal/output"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the audit log (admin)",
	RunE:  runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	sess, _, err := requirePage("audit")
	if err != nil {
		return err
	}

	printer := newPrinter()
	client := newAPIClient(sess)

	ctx, cancel := apiContext()
	defer cancel()

	entries, err := client.Audit(ctx)
	if err != nil {
		return failure(printer, err)
	}

	if len(entries) == 0 {
		printer.Info("No audit logs available")
		return nil
	}

	table := output.NewTable([]string{"Action", "By", "Target", "Timestamp"})
	for _, e := range entries {
		target := e.Target
		if target == "" {
			target = "N/A"
		}
		table.AddRow([]string{
			e.Action,
			e.By,
			target,
			api.FormatMillis(e.At, "2006-01-02 15:04:05"),
		})
	}
	table.Render()
	return nil
}
