package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/taskflow-project/taskflowctl/internal/view"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity and accessible pages",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)

	whoamiCmd.Flags().Bool("json", false, "output as JSON")
}

func runWhoami(cmd *cobra.Command, args []string) error {
	_, identity, err := requireLogin()
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(identity)
	}

	printer := newPrinter()
	printer.Print("%s <%s>", printer.Bold(identity.FullName), identity.Email)
	printer.Print("Role: %s", printer.RoleBadge(identity.Role))

	pages := view.NewRegistry().Allowed(identity.Role)
	printer.Header("Available Pages")
	for _, p := range pages {
		printer.Print("  %s  %s", printer.Bold(p.Name), printer.Dim(p.Description))
	}
	return nil
}
