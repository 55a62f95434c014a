package access

import (
	"fmt"
	"slices"
	"strings"
)

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	_, ok := RolePermissions[r]
	return ok
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

type Action string

const (
	// Own data
	ActionViewOwn Action = "leave.view_own"

	// Colleagues
	ActionViewOthers         Action = "leave.view_others"
	ActionApproveLeave       Action = "leave.approve"
	ActionFileLeaveForOthers Action = "leave.file_for_others"
	ActionOverrideBalance    Action = "leave.override_balance"

	// Organization
	ActionManageCompany   Action = "company.manage"
	ActionImportEmployees Action = "employee.import"
)

// RolePermissions maps roles to the actions they may perform within a company.
var RolePermissions = map[Role][]Action{
	RoleOwner: {
		ActionViewOwn,
		ActionViewOthers,
		ActionApproveLeave,
		ActionFileLeaveForOthers,
		ActionOverrideBalance,
		ActionManageCompany,
		ActionImportEmployees,
	},
	RoleAdmin: {
		ActionViewOwn,
		ActionViewOthers,
		ActionApproveLeave,
		ActionFileLeaveForOthers,
		ActionOverrideBalance,
		ActionManageCompany,
		ActionImportEmployees,
	},
	RoleEditor: {
		ActionViewOwn,
		ActionViewOthers,
		ActionImportEmployees,
	},
	RoleViewer: {
		ActionViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, action Action) bool {
	return slices.Contains(RolePermissions[role], action)
}
