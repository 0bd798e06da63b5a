package view

import (
	"fmt"
	"sort"

	"github.com/taskflow-project/taskflowctl/internal/api"
)

// Metric is one headline number of a dashboard.
type Metric struct {
	Label string
	Value string
}

// Bucket is one slice of a distribution.
type Bucket struct {
	Name  string
	Count int
}

// Model is everything a dashboard render needs, already scoped to the
// caller's role. Sections a role must not see stay nil.
type Model struct {
	Role                 string
	Title                string
	Metrics              []Metric
	StatusDistribution   []Bucket
	PriorityDistribution []Bucket
	RoleDistribution     []Bucket
	RecentTasks          []api.Task
}

// recentTaskLimit bounds the recent-task section.
const recentTaskLimit = 10

// Compose maps (role, fetched data) to the dashboard model. It is a
// pure function: no calls, no clock, no storage. The employees slice
// feeds only the admin view; for any other role it is ignored, so an
// EMPLOYEE model can never carry user-list data.
func Compose(role string, summary *api.DashboardSummary, tasks []api.Task, employees []api.User) Model {
	byStatus := statusCounts(summary)
	total := 0
	if summary != nil {
		total = summary.TotalTasks
	}
	completed := byStatus[api.StatusDone]
	pending := byStatus[api.StatusTodo] + byStatus[api.StatusInProgress]

	m := Model{
		Role:               role,
		StatusDistribution: statusBuckets(byStatus),
		RecentTasks:        recentTasks(tasks),
	}

	switch role {
	case api.RoleAdmin:
		m.Title = "System Overview"
		users := 0
		if summary != nil {
			users = summary.Users
		}
		m.Metrics = []Metric{
			{Label: "Total Tasks", Value: fmt.Sprint(total)},
			{Label: "Total Users", Value: fmt.Sprint(users)},
			{Label: "Completed", Value: fmt.Sprint(completed)},
			{Label: "Pending", Value: fmt.Sprint(pending)},
		}
		m.RoleDistribution = roleBuckets(employees)

	case api.RoleManager:
		m.Title = "Team Tasks"
		m.Metrics = []Metric{
			{Label: "Total Tasks", Value: fmt.Sprint(total)},
			{Label: "To Do", Value: fmt.Sprint(byStatus[api.StatusTodo])},
			{Label: "In Progress", Value: fmt.Sprint(byStatus[api.StatusInProgress])},
			{Label: "Completed", Value: fmt.Sprint(completed)},
		}
		m.PriorityDistribution = priorityBuckets(tasks)

	default:
		m.Title = "My Tasks Overview"
		m.Metrics = []Metric{
			{Label: "My Tasks", Value: fmt.Sprint(total)},
			{Label: "Completed", Value: fmt.Sprint(completed)},
			{Label: "Pending", Value: fmt.Sprint(pending)},
		}
	}

	return m
}

func statusCounts(summary *api.DashboardSummary) map[string]int {
	counts := make(map[string]int)
	if summary == nil {
		return counts
	}
	for _, sc := range summary.ByStatus {
		counts[sc.Status] += sc.Cnt
	}
	return counts
}

// statusBuckets orders the known statuses first, anything else after.
func statusBuckets(counts map[string]int) []Bucket {
	known := []string{api.StatusTodo, api.StatusInProgress, api.StatusDone}
	var buckets []Bucket
	seen := make(map[string]bool)
	for _, s := range known {
		if c, ok := counts[s]; ok {
			buckets = append(buckets, Bucket{Name: s, Count: c})
			seen[s] = true
		}
	}
	var rest []string
	for s := range counts {
		if !seen[s] {
			rest = append(rest, s)
		}
	}
	sort.Strings(rest)
	for _, s := range rest {
		buckets = append(buckets, Bucket{Name: s, Count: counts[s]})
	}
	return buckets
}

func priorityBuckets(tasks []api.Task) []Bucket {
	counts := make(map[int]int)
	for _, t := range tasks {
		counts[t.EffectivePriority()]++
	}
	var buckets []Bucket
	for p := 1; p <= 5; p++ {
		if c, ok := counts[p]; ok {
			buckets = append(buckets, Bucket{Name: fmt.Sprintf("Priority %d", p), Count: c})
		}
	}
	return buckets
}

func roleBuckets(employees []api.User) []Bucket {
	if len(employees) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, u := range employees {
		role := u.Role
		if role == "" {
			role = "UNKNOWN"
		}
		counts[role]++
	}
	known := []string{api.RoleAdmin, api.RoleManager, api.RoleEmployee}
	var buckets []Bucket
	seen := make(map[string]bool)
	for _, r := range known {
		if c, ok := counts[r]; ok {
			buckets = append(buckets, Bucket{Name: r, Count: c})
			seen[r] = true
		}
	}
	var rest []string
	for r := range counts {
		if !seen[r] {
			rest = append(rest, r)
		}
	}
	sort.Strings(rest)
	for _, r := range rest {
		buckets = append(buckets, Bucket{Name: r, Count: counts[r]})
	}
	return buckets
}

func recentTasks(tasks []api.Task) []api.Task {
	if len(tasks) > recentTaskLimit {
		return tasks[:recentTaskLimit]
	}
	return tasks
}
