package view

import "github.com/taskflow-project/taskflowctl/internal/api"

// Page is one navigable view of the client.
type Page struct {
	Name        string
	Description string
	// Roles allowed to open the page. Empty means every role.
	Roles []string
}

// defaultPages contains the predefined page definitions
var defaultPages = []Page{
	{
		Name:        "dashboard",
		Description: "Role-scoped overview of tasks and team",
	},
	{
		Name:        "tasks",
		Description: "Task management",
	},
	{
		Name:        "files",
		Description: "File management",
	},
	{
		Name:        "messages",
		Description: "Team communication",
	},
	{
		Name:        "report",
		Description: "Reports and analytics",
	},
	{
		Name:        "employees",
		Description: "Employee management",
		Roles:       []string{api.RoleAdmin, api.RoleManager},
	},
	{
		Name:        "audit",
		Description: "Audit logs",
		Roles:       []string{api.RoleAdmin},
	},
}

// Registry holds all page definitions
type Registry struct {
	pages map[string]*Page
	order []string
}

// NewRegistry creates a registry with the default pages
func NewRegistry() *Registry {
	r := &Registry{pages: make(map[string]*Page)}
	for i := range defaultPages {
		p := defaultPages[i]
		r.pages[p.Name] = &p
		r.order = append(r.order, p.Name)
	}
	return r
}

// Get returns a page by name
func (r *Registry) Get(name string) (*Page, bool) {
	p, ok := r.pages[name]
	return p, ok
}

// CanAccess reports whether the role may open the named page. Unknown
// pages are inaccessible.
func (r *Registry) CanAccess(name, role string) bool {
	p, ok := r.pages[name]
	if !ok {
		return false
	}
	if len(p.Roles) == 0 {
		return true
	}
	for _, allowed := range p.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Allowed returns the pages visible to the role, in navigation order.
func (r *Registry) Allowed(role string) []Page {
	var pages []Page
	for _, name := range r.order {
		if r.CanAccess(name, role) {
			pages = append(pages, *r.pages[name])
		}
	}
	return pages
}
