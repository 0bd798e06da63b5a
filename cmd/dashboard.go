package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskflow-project/taskflowctl/internal/api"
	"github.com/taskflow-project/taskflowctl/internal/output"
	"github.com/taskflow-project/taskflowctl/internal/view"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the role-scoped dashboard",
	Long: `Fetch tasks and summary data and render the dashboard for the
caller's role. Admins see system totals and team composition, managers
see workload and priority breakdowns, employees see their own counts.

A failed fetch degrades the affected section to an explicit "no data"
line instead of aborting the whole view.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	sess, identity, err := requireLogin()
	if err != nil {
		return err
	}

	printer := newPrinter()
	client := newAPIClient(sess)

	ctx, cancel := apiContext()
	defer cancel()

	// One round trip at a time; a failure empties that section only.
	tasks, err := client.Tasks(ctx)
	if err != nil {
		printer.Warning("Tasks unavailable: %s", api.UserMessage(err))
	}
	summary, err := client.Summary(ctx)
	if err != nil {
		printer.Warning("Summary unavailable: %s", api.UserMessage(err))
	}

	// The employee list is fetched only for roles entitled to it; an
	// employee dashboard never requests it at all.
	var employees []api.User
	if view.CanViewEmployees(identity.Role) {
		employees, err = client.Users(ctx)
		if err != nil {
			printer.Warning("Team list unavailable: %s", api.UserMessage(err))
		}
	}

	if summary == nil && tasks == nil {
		printer.Warning("No data available")
		return nil
	}

	model := view.Compose(identity.Role, summary, tasks, employees)

	printer.Print("Welcome, %s! %s", printer.Bold(identity.FullName), printer.RoleBadge(identity.Role))
	printer.Header(model.Title)

	renderMetrics(model.Metrics)
	renderDistribution(printer, "Task Status Distribution", model.StatusDistribution)
	renderDistribution(printer, "Priority Distribution", model.PriorityDistribution)
	renderDistribution(printer, "Team Composition", model.RoleDistribution)
	renderRecentTasks(printer, model.RecentTasks)

	printer.PrintHints("dashboard")
	return nil
}

func renderMetrics(metrics []view.Metric) {
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{m.Label, m.Value})
	}
	table := output.NewTable([]string{"Metric", "Value"})
	table.AddRows(rows)
	table.Render()
}

func renderDistribution(printer *output.Printer, title string, buckets []view.Bucket) {
	if buckets == nil {
		return
	}
	printer.Header(title)
	if len(buckets) == 0 {
		printer.Print("  no data")
		return
	}
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []string{b.Name, fmt.Sprint(b.Count)})
	}
	table := output.NewTable([]string{"Name", "Count"})
	table.AddRows(rows)
	table.Render()
}

func renderRecentTasks(printer *output.Printer, tasks []api.Task) {
	printer.Header("Recent Tasks")
	if len(tasks) == 0 {
		printer.Print("  no data")
		return
	}
	table := output.NewTable([]string{"Title", "Status", "Priority", "Created"})
	for _, t := range tasks {
		table.AddRow([]string{
			t.Title,
			printer.StatusBadge(t.Status),
			fmt.Sprintf("%d/5", t.EffectivePriority()),
			api.FormatMillis(t.CreatedAt, "2006-01-02"),
		})
	}
	table.Render()
}
