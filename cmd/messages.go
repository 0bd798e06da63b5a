package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskflow-project/taskflowctl/internal/api"
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Team communication",
}

var messagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List team messages, newest first",
	RunE:  runMessagesList,
}

var messagesPostCmd = &cobra.Command{
	Use:   "post <text>",
	Short: "Post a team message",
	Long: `Post a message to the team channel, optionally tied to a task or
prefixed with a title.

Examples:
  taskflowctl messages post "Deploy done, please verify"
  taskflowctl messages post "blocked on review" --task a1b2c3
  taskflowctl messages post "all good" --title "Standup"`,
	Args: cobra.ExactArgs(1),
	RunE: runMessagesPost,
}

func init() {
	rootCmd.AddCommand(messagesCmd)
	messagesCmd.AddCommand(messagesListCmd)
	messagesCmd.AddCommand(messagesPostCmd)

	messagesListCmd.Flags().String("task", "", "filter by task id")

	messagesPostCmd.Flags().String("task", "", "task id to attach the message to")
	messagesPostCmd.Flags().String("title", "", "optional message title")
}

func runMessagesList(cmd *cobra.Command, args []string) error {
	sess, _, err := requireLogin()
	if err != nil {
		return err
	}

	printer := newPrinter()
	client := newAPIClient(sess)

	ctx, cancel := apiContext()
	defer cancel()

	taskID, _ := cmd.Flags().GetString("task")
	msgs, err := client.Messages(ctx, taskID)
	if err != nil {
		return failure(printer, err)
	}

	if len(msgs) == 0 {
		printer.Info("No messages yet. Be the first to communicate!")
		return nil
	}

	printer.Header(fmt.Sprintf("%d Message(s) in Channel", len(msgs)))
	// Newest first for display; storage order stays oldest first.
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		printer.Print("%s  %s", printer.Bold(m.UserID), printer.Dim(api.FormatMillis(m.CreatedAt, "2006-01-02 15:04")))
		printer.Print("  %s", m.Text)
	}
	return nil
}

func runMessagesPost(cmd *cobra.Command, args []string) error {
	sess, _, err := requireLogin()
	if err != nil {
		return err
	}

	printer := newPrinter()

	text := strings.TrimSpace(args[0])
	if text == "" {
		return fmt.Errorf("message cannot be empty")
	}
	if title, _ := cmd.Flags().GetString("title"); title != "" {
		text = title + ": " + text
	}

	client := newAPIClient(sess)
	ctx, cancel := apiContext()
	defer cancel()

	taskID, _ := cmd.Flags().GetString("task")
	if _, err := client.PostMessage(ctx, taskID, text); err != nil {
		return failure(printer, err)
	}

	printer.Success("Message sent to team")
	printer.PrintHints("messages post")
	return nil
}
