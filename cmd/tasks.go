package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/taskflow-project/taskflowctl/internal/api"
	"github.com/taskflow-project/taskflowctl/internal/output"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List all tasks visible to the caller, newest first.

Examples:
  taskflowctl tasks list
  taskflowctl tasks list --status TODO,IN_PROGRESS`,
	RunE: runTasksList,
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a task",
	Long: `Create a new task in TODO state.

Examples:
  taskflowctl tasks create --title "Ship release" --priority 4
  taskflowctl tasks create --title "Fix login" --description "401 on retry"`,
	RunE: runTasksCreate,
}

var tasksStatusCmd = &cobra.Command{
	Use:   "status <task-id> <status>",
	Short: "Update a task's status",
	Long: `Move a task to TODO, IN_PROGRESS or DONE.

Examples:
  taskflowctl tasks status a1b2c3 IN_PROGRESS
  taskflowctl tasks status a1b2c3 DONE`,
	Args: cobra.ExactArgs(2),
	RunE: runTasksStatus,
}

// taskInput is validated before the create call goes out.
type taskInput struct {
	Title    string `validate:"required"`
	Priority int    `validate:"min=1,max=5"`
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksCreateCmd)
	tasksCmd.AddCommand(tasksStatusCmd)

	tasksListCmd.Flags().String("status", "", "comma-separated status filter (TODO,IN_PROGRESS,DONE)")

	tasksCreateCmd.Flags().String("title", "", "task title")
	tasksCreateCmd.Flags().String("description", "", "task description")
	tasksCreateCmd.Flags().Int("priority", api.DefaultPriority, "priority 1-5")
	_ = tasksCreateCmd.MarkFlagRequired("title")
}

func runTasksList(cmd *cobra.Command, args []string) error {
	sess, _, err := requireLogin()
	if err != nil {
		return err
	}

	printer := newPrinter()
	client := newAPIClient(sess)

	ctx, cancel := apiContext()
	defer cancel()

	tasks, err := client.Tasks(ctx)
	if err != nil {
		return failure(printer, err)
	}

	statusFilter, _ := cmd.Flags().GetString("status")
	if statusFilter != "" {
		wanted := strings.Split(statusFilter, ",")
		tasks = slices.DeleteFunc(tasks, func(t api.Task) bool {
			return !slices.Contains(wanted, t.Status)
		})
	}

	if len(tasks) == 0 {
		printer.Info("No tasks found")
		return nil
	}

	table := output.NewTable([]string{"ID", "Title", "Status", "Priority", "Created"})
	for _, t := range tasks {
		table.AddRow([]string{
			t.ID,
			t.Title,
			printer.StatusBadge(t.Status),
			fmt.Sprintf("%d/5", t.EffectivePriority()),
			api.FormatMillis(t.CreatedAt, "2006-01-02"),
		})
	}
	table.Render()
	printer.Print("Total: %d task(s)", len(tasks))
	return nil
}

func runTasksCreate(cmd *cobra.Command, args []string) error {
	sess, _, err := requireLogin()
	if err != nil {
		return err
	}

	printer := newPrinter()

	input := taskInput{}
	input.Title, _ = cmd.Flags().GetString("title")
	input.Priority, _ = cmd.Flags().GetInt("priority")
	description, _ := cmd.Flags().GetString("description")

	if err := validator.New().Struct(input); err != nil {
		return fmt.Errorf("invalid task input: %w", err)
	}

	client := newAPIClient(sess)
	ctx, cancel := apiContext()
	defer cancel()

	task, err := client.CreateTask(ctx, input.Title, description, input.Priority)
	if err != nil {
		return failure(printer, err)
	}

	printer.Success("Task created: %s (%s)", task.Title, task.ID)
	printer.PrintHints("tasks create")
	return nil
}

func runTasksStatus(cmd *cobra.Command, args []string) error {
	sess, _, err := requireLogin()
	if err != nil {
		return err
	}

	id, status := args[0], args[1]
	valid := []string{api.StatusTodo, api.StatusInProgress, api.StatusDone}
	if !slices.Contains(valid, status) {
		return fmt.Errorf("invalid status %q (must be one of %s)", status, strings.Join(valid, ", "))
	}

	printer := newPrinter()
	client := newAPIClient(sess)

	ctx, cancel := apiContext()
	defer cancel()

	task, err := client.UpdateTaskStatus(ctx, id, status)
	if err != nil {
		return failure(printer, err)
	}

	printer.Success("Task %s moved to %s", task.Title, printer.StatusBadge(task.Status))
	printer.PrintHints("tasks status")
	return nil
}
