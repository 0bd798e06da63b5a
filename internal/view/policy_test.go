package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskflow-project/taskflowctl/internal/api"
)

func TestCanDelete(t *testing.T) {
	cases := []struct {
		actor, target string
		want          bool
	}{
		{api.RoleAdmin, api.RoleAdmin, true},
		{api.RoleAdmin, api.RoleManager, true},
		{api.RoleAdmin, api.RoleEmployee, true},
		{api.RoleManager, api.RoleEmployee, true},
		{api.RoleManager, api.RoleManager, false},
		{api.RoleManager, api.RoleAdmin, false},
		{api.RoleEmployee, api.RoleEmployee, false},
		{api.RoleEmployee, api.RoleAdmin, false},
		{"", api.RoleEmployee, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanDelete(tc.actor, tc.target),
			"actor=%s target=%s", tc.actor, tc.target)
	}
}

func TestCanViewEmployees(t *testing.T) {
	assert.True(t, CanViewEmployees(api.RoleAdmin))
	assert.True(t, CanViewEmployees(api.RoleManager))
	assert.False(t, CanViewEmployees(api.RoleEmployee))
	assert.False(t, CanViewEmployees(""))
}

func TestCanViewAudit(t *testing.T) {
	assert.True(t, CanViewAudit(api.RoleAdmin))
	assert.False(t, CanViewAudit(api.RoleManager))
	assert.False(t, CanViewAudit(api.RoleEmployee))
}

func TestRegistry_PageGating(t *testing.T) {
	r := NewRegistry()

	// Shared pages are open to every role.
	for _, page := range []string{"dashboard", "tasks", "files", "messages", "report"} {
		for _, role := range []string{api.RoleAdmin, api.RoleManager, api.RoleEmployee} {
			assert.True(t, r.CanAccess(page, role), "page=%s role=%s", page, role)
		}
	}

	assert.True(t, r.CanAccess("employees", api.RoleAdmin))
	assert.True(t, r.CanAccess("employees", api.RoleManager))
	assert.False(t, r.CanAccess("employees", api.RoleEmployee))

	assert.True(t, r.CanAccess("audit", api.RoleAdmin))
	assert.False(t, r.CanAccess("audit", api.RoleManager))
	assert.False(t, r.CanAccess("audit", api.RoleEmployee))

	assert.False(t, r.CanAccess("nonexistent", api.RoleAdmin))
}

func TestRegistry_AllowedOrder(t *testing.T) {
	r := NewRegistry()

	var names []string
	for _, p := range r.Allowed(api.RoleAdmin) {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"dashboard", "tasks", "files", "messages", "report", "employees", "audit"}, names)

	names = nil
	for _, p := range r.Allowed(api.RoleEmployee) {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"dashboard", "tasks", "files", "messages", "report"}, names)
}
