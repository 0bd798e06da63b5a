package api

import "time"

// Roles known to the TaskFlow backend.
const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

// Task statuses known to the TaskFlow backend.
const (
	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

// DefaultPriority is applied when a task carries no priority.
const DefaultPriority = 3

// User is an account as the backend reports it.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

// Task is a workflow item.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AssigneeID  string `json:"assigneeId,omitempty"`
	Status      string `json:"status"`
	Priority    int    `json:"priority"`
	DueDate     int64  `json:"dueDate,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt,omitempty"`
}

// EffectivePriority returns the task priority, defaulting when unset.
func (t Task) EffectivePriority() int {
	if t.Priority == 0 {
		return DefaultPriority
	}
	return t.Priority
}

// StatusCount is one bucket of the dashboard summary.
type StatusCount struct {
	Status string `json:"status"`
	Cnt    int    `json:"cnt"`
}

// DashboardSummary is the aggregate the backend computes for dashboards.
type DashboardSummary struct {
	TotalTasks int           `json:"totalTasks"`
	Users      int           `json:"users"`
	ByStatus   []StatusCount `json:"byStatus"`
}

// FileInfo describes an uploaded file (metadata only, no content).
type FileInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	UploadedBy string `json:"uploadedBy"`
	CreatedAt  int64  `json:"createdAt"`
	Versions   int    `json:"versions"`
}

// Message is a team communication entry, optionally tied to a task.
type Message struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId"`
	Text      string `json:"text"`
	UserID    string `json:"userId"`
	CreatedAt int64  `json:"createdAt"`
}

// AuditEntry is one row of the backend audit log.
type AuditEntry struct {
	ID     string `json:"id"`
	Action string `json:"action"`
	By     string `json:"by"`
	Target string `json:"target"`
	At     int64  `json:"at"`
}

// TaskReport is the JSON form of /reports/tasks.
type TaskReport struct {
	Total int             `json:"total"`
	Rows  []TaskReportRow `json:"rows"`
}

// TaskReportRow is one exported task row.
type TaskReportRow struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	AssigneeID string `json:"assigneeId"`
	CreatedAt  int64  `json:"createdAt"`
}

// LoginResult is the payload of a successful POST /auth/login.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// FormatMillis renders a backend millisecond timestamp in local time.
func FormatMillis(ms int64, layout string) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).Format(layout)
}
