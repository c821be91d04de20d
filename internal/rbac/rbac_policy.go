package rbac

import "github.com/Ashmit12092000/ems/internal/domain"

const (
	ResourceRequest      = "request"
	ResourceSwap         = "swap"
	ResourceRoster       = "roster"
	ResourceLimit        = "limit"
	ResourceAttendance   = "attendance"
	ResourceNotification = "notification"
	ResourceUser         = "user"

	ActionCreate  = "create"
	ActionRead    = "read"
	ActionReadAll = "read_all"
	ActionUpdate  = "update"
	ActionApprove = "approve"
	ActionRespond = "respond"
	ActionDecide  = "decide"
	ActionExport  = "export"
)

// DefaultPolicies are the permission rows per role. HOD inherits every
// Employee row through DefaultInheritance.
func DefaultPolicies() [][]string {
	return [][]string{
		{domain.RoleEmployee, ResourceRequest, ActionCreate},
		{domain.RoleEmployee, ResourceRequest, ActionRead},
		{domain.RoleEmployee, ResourceSwap, ActionCreate},
		{domain.RoleEmployee, ResourceSwap, ActionRead},
		{domain.RoleEmployee, ResourceSwap, ActionRespond},
		{domain.RoleEmployee, ResourceRoster, ActionRead},
		{domain.RoleEmployee, ResourceLimit, ActionRead},
		{domain.RoleEmployee, ResourceAttendance, ActionRead},
		{domain.RoleEmployee, ResourceNotification, ActionRead},
		{domain.RoleEmployee, ResourceNotification, ActionUpdate},
		{domain.RoleEmployee, ResourceUser, ActionRead},

		{domain.RoleHOD, ResourceRequest, ActionApprove},
		{domain.RoleHOD, ResourceSwap, ActionDecide},
		{domain.RoleHOD, ResourceRoster, ActionUpdate},
		{domain.RoleHOD, ResourceRoster, ActionExport},
		{domain.RoleHOD, ResourceLimit, ActionUpdate},
		{domain.RoleHOD, ResourceAttendance, ActionReadAll},
		{domain.RoleHOD, ResourceAttendance, ActionUpdate},
		{domain.RoleHOD, ResourceUser, ActionReadAll},
	}
}

func DefaultInheritance() [][]string {
	return [][]string{
		{domain.RoleHOD, domain.RoleEmployee},
	}
}
