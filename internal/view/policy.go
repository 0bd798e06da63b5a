// Package view decides what each role gets to see and do. Everything
// here is pure policy: no network, no storage.
package view

import "github.com/taskflow-project/taskflowctl/internal/api"

// CanDelete is the single deletion policy shared by every surface:
// admins may delete anyone, managers only employees. The backend
// enforces the same rule; the client mirrors it so controls that would
// merely fail server-side are never offered.
func CanDelete(actorRole, targetRole string) bool {
	switch actorRole {
	case api.RoleAdmin:
		return true
	case api.RoleManager:
		return targetRole == api.RoleEmployee
	default:
		return false
	}
}

// CanViewEmployees gates the employee list and everything derived
// from it. Employees must never receive the full user list, even if
// the backend would permit the call.
func CanViewEmployees(role string) bool {
	return role == api.RoleAdmin || role == api.RoleManager
}

// CanViewAudit gates the audit log.
func CanViewAudit(role string) bool {
	return role == api.RoleAdmin
}

// CanManagePending gates the pending-signup queue workflow.
func CanManagePending(role string) bool {
	return role == api.RoleAdmin
}
