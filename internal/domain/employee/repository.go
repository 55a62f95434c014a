package employee

import "context"

type EmployeeRepository interface {
	FindEmployee(ctx context.Context, id string) (Employee, error)
	FindEmployeeByEmail(ctx context.Context, email string) (Employee, error)
	CreateEmployee(ctx context.Context, e Employee) (Employee, error)
}

type MembershipRepository interface {
	FindMembership(ctx context.Context, companyID, employeeID string) (Membership, error)
	// SaveMembership fails with ErrDuplicateMembership when the pair exists.
	SaveMembership(ctx context.Context, m Membership) (Membership, error)
	ListMembers(ctx context.Context, companyID string) ([]Member, error)
	ListDepartmentMembers(ctx context.Context, departmentID string) ([]Member, error)
}
