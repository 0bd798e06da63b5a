package api

import (
	"context"
	"net/http"
	"net/url"
)

// Login exchanges credentials for a token and identity snapshot.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	data, err := c.CallUnauthenticated(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	var result LoginResult
	if err := decode(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SignupRequest is the public self-registration payload. The backend
// forces the role to EMPLOYEE regardless of what is sent.
type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Signup attempts public employee self-registration. The endpoint takes
// no credential; a 403 means the backend forbids public signup.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	data, err := c.CallUnauthenticated(ctx, http.MethodPost, "/users/signup", req)
	if err != nil {
		return nil, err
	}
	var user User
	if err := decode(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Tasks lists all tasks visible to the caller, newest first.
func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	data, err := c.Call(ctx, http.MethodGet, "/tasks", nil)
	if err != nil {
		return nil, err
	}
	var tasks []Task
	if err := decode(data, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task in TODO state.
func (c *Client) CreateTask(ctx context.Context, title, description string, priority int) (*Task, error) {
	data, err := c.Call(ctx, http.MethodPost, "/tasks", map[string]any{
		"title":       title,
		"description": description,
		"priority":    priority,
		"status":      StatusTodo,
	})
	if err != nil {
		return nil, err
	}
	var task Task
	if err := decode(data, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTaskStatus moves a task to the given status.
func (c *Client) UpdateTaskStatus(ctx context.Context, id, status string) (*Task, error) {
	data, err := c.Call(ctx, http.MethodPatch, "/tasks/"+id, map[string]string{"status": status})
	if err != nil {
		return nil, err
	}
	var task Task
	if err := decode(data, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Users lists all accounts. Backend restricts this to privileged roles.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	data, err := c.Call(ctx, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}
	var users []User
	if err := decode(data, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser provisions an account with the given role and password.
func (c *Client) CreateUser(ctx context.Context, fullName, email, role, password string) (*User, error) {
	data, err := c.Call(ctx, http.MethodPost, "/users", map[string]string{
		"fullName": fullName,
		"email":    email,
		"role":     role,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	var user User
	if err := decode(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account by id.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.Call(ctx, http.MethodDelete, "/users/"+id, nil)
	return err
}

// Summary fetches the dashboard aggregate counts.
func (c *Client) Summary(ctx context.Context) (*DashboardSummary, error) {
	data, err := c.Call(ctx, http.MethodGet, "/dashboard/summary", nil)
	if err != nil {
		return nil, err
	}
	var summary DashboardSummary
	if err := decode(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Files lists uploaded file metadata.
func (c *Client) Files(ctx context.Context) ([]FileInfo, error) {
	data, err := c.Call(ctx, http.MethodGet, "/files", nil)
	if err != nil {
		return nil, err
	}
	var files []FileInfo
	if err := decode(data, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// UploadFile stores a file under the given name. Content travels base64
// encoded inside the JSON body.
func (c *Client) UploadFile(ctx context.Context, name, contentBase64 string) (*FileInfo, error) {
	data, err := c.Call(ctx, http.MethodPost, "/files", map[string]string{
		"name":          name,
		"contentBase64": contentBase64,
	})
	if err != nil {
		return nil, err
	}
	var info FileInfo
	if err := decode(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Messages lists team messages, optionally filtered by task.
func (c *Client) Messages(ctx context.Context, taskID string) ([]Message, error) {
	path := "/messages"
	if taskID != "" {
		path = "/messages?taskId=" + url.QueryEscape(taskID)
	}
	data, err := c.Call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var msgs []Message
	if err := decode(data, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// PostMessage sends a team message, optionally tied to a task.
func (c *Client) PostMessage(ctx context.Context, taskID, text string) (*Message, error) {
	data, err := c.Call(ctx, http.MethodPost, "/messages", map[string]string{
		"taskId": taskID,
		"text":   text,
	})
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := decode(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// TasksReport fetches the task report as structured JSON.
func (c *Client) TasksReport(ctx context.Context) (*TaskReport, error) {
	data, err := c.Call(ctx, http.MethodGet, "/reports/tasks", nil)
	if err != nil {
		return nil, err
	}
	var report TaskReport
	if err := decode(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// TasksReportCSV fetches the task report in CSV form as raw text.
func (c *Client) TasksReportCSV(ctx context.Context) (string, error) {
	data, err := c.Call(ctx, http.MethodGet, "/reports/tasks?format=csv", nil)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Audit fetches the audit log. Backend restricts this to admins.
func (c *Client) Audit(ctx context.Context) ([]AuditEntry, error) {
	data, err := c.Call(ctx, http.MethodGet, "/audit", nil)
	if err != nil {
		return nil, err
	}
	var entries []AuditEntry
	if err := decode(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
