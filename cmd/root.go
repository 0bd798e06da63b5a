// Package cmd contains all CLI commands for taskflowctl
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskflow-project/taskflowctl/internal/api"
	"github.com/taskflow-project/taskflowctl/internal/config"
	"github.com/taskflow-project/taskflowctl/internal/output"
	"github.com/taskflow-project/taskflowctl/internal/session"
	"github.com/taskflow-project/taskflowctl/internal/view"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
	cfg     *config.Config
	logger  *slog.Logger
	version = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskflowctl",
	Short: "TaskFlow workflow management CLI",
	Long: `taskflowctl is a role-aware client for the TaskFlow workflow API.

It authenticates against the backend, then renders tasks, team and
dashboard views scoped to the caller's role (admin, manager, employee).

Example usage:
  taskflowctl login --email admin@company.com   # Authenticate
  taskflowctl dashboard                         # Role-scoped overview
  taskflowctl tasks list                        # List tasks
  taskflowctl users list                        # Team list (admin/manager)
  taskflowctl pending list                      # Queued signups (admin)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .taskflowctl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress informational output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	var err error

	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Logging.Level == "debug" || verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	logger.Debug("configuration loaded",
		"base_url", cfg.API.BaseURL,
		"timeout", cfg.API.Timeout,
		"data_dir", cfg.Data.Dir,
	)

	return nil
}

// newPrinter builds the shared terminal printer from config and the
// global quiet flag.
func newPrinter() *output.Printer {
	return output.NewPrinterWithOptions(output.PrinterOptions{
		Colors: cfg.Output.Colors,
		Quiet:  quiet,
	})
}

// newSessionManager loads the persisted session for this data dir.
func newSessionManager() *session.Manager {
	return session.NewManager(cfg.SessionFile())
}

// newAPIClient builds a backend client carrying the given credential
// source. Pass nil for unauthenticated flows.
func newAPIClient(tokens api.TokenSource) *api.Client {
	return api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, tokens, logger)
}

// apiContext bounds one round trip. The per-call HTTP timeout is the
// real limit; the extra half keeps a wedged call from hanging forever.
func apiContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.API.Timeout*3/2)
}

// requireLogin returns the session manager and identity, or an error
// fit for direct return from a RunE.
func requireLogin() (*session.Manager, *api.User, error) {
	sess := newSessionManager()
	if err := sess.Require(); err != nil {
		return nil, nil, err
	}
	return sess, sess.Identity(), nil
}

// requirePage gates a command on the page policy for the caller's role.
func requirePage(page string) (*session.Manager, *api.User, error) {
	sess, identity, err := requireLogin()
	if err != nil {
		return nil, nil, err
	}
	if !view.NewRegistry().CanAccess(page, identity.Role) {
		return nil, nil, fmt.Errorf("%s access is not available for role %s", page, identity.Role)
	}
	return sess, identity, nil
}

// failure converts a client error into a structured printed message
// plus a non-nil error carrying the exit code. A CLIError returned from
// here has already been rendered; main only maps it to an exit status.
func failure(printer *output.Printer, err error) error {
	logger.Debug("command failed", "error", err)

	e := &output.CLIError{
		Summary:  api.UserMessage(err),
		ExitCode: output.ExitAPIError,
	}
	switch {
	case api.IsUnreachable(err):
		e.Suggestion = "check api.base_url in .taskflowctl.yaml, or start the backend"
	case api.IsTimeout(err):
		e.Suggestion = "retry, or raise api.timeout"
	}
	switch api.StatusOf(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		e.ExitCode = output.ExitAuthError
		e.Suggestion = "run 'taskflowctl login' and try again"
	}
	if verbose {
		e.Detail = err.Error()
	}

	printer.FormatError(e)
	return e
}
