package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the task report",
	Long: `Export the task report from the backend.

Examples:
  taskflowctl report                       # JSON to stdout
  taskflowctl report --format csv          # CSV to stdout
  taskflowctl report --format csv -o tasks.csv`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("format", "json", "export format (json or csv)")
	reportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
}

func runReport(cmd *cobra.Command, args []string) error {
	sess, _, err := requireLogin()
	if err != nil {
		return err
	}

	printer := newPrinter()
	client := newAPIClient(sess)

	ctx, cancel := apiContext()
	defer cancel()

	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")

	var content []byte
	switch format {
	case "csv":
		csv, err := client.TasksReportCSV(ctx)
		if err != nil {
			return failure(printer, err)
		}
		content = []byte(csv)
	case "json":
		report, err := client.TasksReport(ctx)
		if err != nil {
			return failure(printer, err)
		}
		content, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		content = append(content, '\n')
	default:
		return fmt.Errorf("invalid format %q (must be json or csv)", format)
	}

	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(content)
		return err
	}

	if err := os.WriteFile(outPath, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	printer.Success("Report written to %s", outPath)
	printer.PrintHints("report")
	return nil
}
