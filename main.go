// Package main is the entry point for taskflowctl CLI
package main

import (
	"errors"
	"os"

	"github.com/taskflow-project/taskflowctl/cmd"
	"github.com/taskflow-project/taskflowctl/internal/output"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		// A CLIError was already rendered by the command; it only
		// carries the exit status here.
		var cliErr *output.CLIError
		if errors.As(err, &cliErr) {
			os.Exit(cliErr.ExitCode)
		}
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(output.ExitGeneral)
	}
}
