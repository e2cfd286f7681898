package auth

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

var Roles = []string{RoleAdmin, RoleHR, RoleManager, RoleEmployee}

func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

const (
	PermEmployeesRead     = "employees.read"
	PermEmployeesWrite    = "employees.write"
	PermOrgRead           = "org.read"
	PermOrgWrite          = "org.write"
	PermLeaveRead         = "leave.read"
	PermLeaveWrite        = "leave.write"
	PermLeaveApprove      = "leave.approve"
	PermTalentRead        = "talent.read"
	PermTalentWrite       = "talent.write"
	PermPerformanceRead   = "performance.read"
	PermPerformanceWrite  = "performance.write"
	PermPoliciesRead      = "policies.read"
	PermDashboardRead     = "dashboard.read"
	PermNotificationsRead = "notifications.read"
	PermSystemAdmin       = "*"
)

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermOrgRead,
	PermOrgWrite,
	PermLeaveRead,
	PermLeaveWrite,
	PermLeaveApprove,
	PermTalentRead,
	PermTalentWrite,
	PermPerformanceRead,
	PermPerformanceWrite,
	PermPoliciesRead,
	PermDashboardRead,
	PermNotificationsRead,
	PermSystemAdmin,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermEmployeesRead,
		PermOrgRead,
		PermLeaveRead,
		PermLeaveWrite,
		PermTalentRead,
		PermPerformanceRead,
		PermPoliciesRead,
		PermDashboardRead,
		PermNotificationsRead,
	},
	RoleManager: {
		PermEmployeesRead,
		PermOrgRead,
		PermLeaveRead,
		PermLeaveWrite,
		PermLeaveApprove,
		PermTalentRead,
		PermPerformanceRead,
		PermPerformanceWrite,
		PermPoliciesRead,
		PermDashboardRead,
		PermNotificationsRead,
	},
	RoleHR: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermOrgRead,
		PermOrgWrite,
		PermLeaveRead,
		PermLeaveWrite,
		PermLeaveApprove,
		PermTalentRead,
		PermTalentWrite,
		PermPerformanceRead,
		PermPerformanceWrite,
		PermPoliciesRead,
		PermDashboardRead,
		PermNotificationsRead,
	},
	RoleAdmin: {
		PermSystemAdmin,
	},
}
