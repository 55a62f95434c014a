package employee

import (
	"context"

	"github.com/chll-hr/leave-backend/internal/domain/access"
)

type EmployeeService interface {
	MembershipOf(ctx context.Context, employeeID, companyID string) (Membership, error)
	RoleOf(ctx context.Context, employeeID, companyID string) (access.Role, error)
	EmployeesOfCompany(ctx context.Context, companyID string) ([]Member, error)
	EmployeesOfDepartment(ctx context.Context, departmentID string) ([]Member, error)
	AddMembership(ctx context.Context, companyID, employeeID string, role access.Role, departmentID *string) (Membership, error)

	// Caller-scoped operations.
	ListMembers(ctx context.Context, callerID, companyID string) ([]MemberResponse, error)
	ListDepartmentMembers(ctx context.Context, callerID, companyID, departmentID string) ([]MemberResponse, error)
	AddEmployee(ctx context.Context, callerID, companyID string, req AddEmployeeRequest) (MemberResponse, error)
	ImportEmployees(ctx context.Context, callerID, companyID string, rows []ImportRow) (ImportReport, error)
}
