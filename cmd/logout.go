package cmd

import "github.com/spf13/cobra"

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	Long:  `Clear the stored token and identity. Always succeeds, even when no session exists.`,
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	sess := newSessionManager()
	if err := sess.Logout(); err != nil {
		return err
	}

	printer.Success("Logged out")
	return nil
}
