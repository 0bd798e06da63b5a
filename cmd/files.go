package cmd

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taskflow-project/taskflowctl/internal/api"
	"github.com/taskflow-project/taskflowctl/internal/output"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage uploaded files",
}

var filesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded files",
	RunE:  runFilesList,
}

var filesUploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a file",
	Long: `Upload a local file to the backend. Content travels base64 encoded.

Examples:
  taskflowctl files upload ./report.pdf
  taskflowctl files upload ./notes.txt --name "meeting notes"`,
	Args: cobra.ExactArgs(1),
	RunE: runFilesUpload,
}

func init() {
	rootCmd.AddCommand(filesCmd)
	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesUploadCmd)

	filesUploadCmd.Flags().String("name", "", "stored filename (default: basename of path)")
}

func runFilesList(cmd *cobra.Command, args []string) error {
	sess, _, err := requireLogin()
	if err != nil {
		return err
	}

	printer := newPrinter()
	client := newAPIClient(sess)

	ctx, cancel := apiContext()
	defer cancel()

	files, err := client.Files(ctx)
	if err != nil {
		return failure(printer, err)
	}

	if len(files) == 0 {
		printer.Info("No files uploaded yet")
		return nil
	}

	table := output.NewTable([]string{"ID", "Filename", "Versions", "Uploaded"})
	for _, f := range files {
		table.AddRow([]string{
			f.ID,
			f.Name,
			fmt.Sprint(f.Versions),
			api.FormatMillis(f.CreatedAt, "2006-01-02 15:04"),
		})
	}
	table.Render()
	return nil
}

func runFilesUpload(cmd *cobra.Command, args []string) error {
	sess, _, err := requireLogin()
	if err != nil {
		return err
	}

	printer := newPrinter()

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = filepath.Base(path)
	}

	client := newAPIClient(sess)
	ctx, cancel := apiContext()
	defer cancel()

	info, err := client.UploadFile(ctx, name, base64.StdEncoding.EncodeToString(content))
	if err != nil {
		return failure(printer, err)
	}

	printer.Success("File uploaded: %s (%s)", info.Name, info.ID)
	printer.PrintHints("files upload")
	return nil
}
