package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/chll-hr/leave-backend/internal/domain/access"
	"github.com/chll-hr/leave-backend/internal/domain/company"
	"github.com/chll-hr/leave-backend/internal/domain/employee"
)

// Authorizer resolves callers and targets against the organization graph.
type Authorizer struct {
	memberships employee.MembershipRepository
	departments company.DepartmentRepository
}

func NewAuthorizer(memberships employee.MembershipRepository, departments company.DepartmentRepository) *Authorizer {
	return &Authorizer{memberships: memberships, departments: departments}
}

// Subject loads callerID's role in companyID. A caller outside the company
// gets access.ErrNotFound so the company's existence is not revealed.
func (a *Authorizer) Subject(ctx context.Context, callerID, companyID string) (access.Subject, error) {
	m, err := a.memberships.FindMembership(ctx, companyID, callerID)
	if err != nil {
		if errors.Is(err, employee.ErrMembershipNotFound) {
			return access.Subject{}, access.ErrNotFound
		}
		return access.Subject{}, fmt.Errorf("failed to get caller membership: %w", err)
	}

	led, err := a.departments.ListDepartmentsByBoss(ctx, companyID, callerID)
	if err != nil {
		return access.Subject{}, fmt.Errorf("failed to list departments led by caller: %w", err)
	}
	bossOf := make([]string, 0, len(led))
	for _, d := range led {
		bossOf = append(bossOf, d.ID)
	}

	return access.Subject{
		EmployeeID: callerID,
		CompanyID:  companyID,
		Role:       m.Role,
		BossOf:     bossOf,
	}, nil
}

// Require loads the subject and checks action in one step.
func (a *Authorizer) Require(ctx context.Context, callerID, companyID string, action access.Action) (access.Subject, error) {
	s, err := a.Subject(ctx, callerID, companyID)
	if err != nil {
		return access.Subject{}, err
	}
	if err := s.Require(action); err != nil {
		return access.Subject{}, err
	}
	return s, nil
}

// Target loads employeeID's membership in companyID. Non-members are
// reported as access.ErrNotFound.
func (a *Authorizer) Target(ctx context.Context, companyID, employeeID string) (employee.Membership, error) {
	m, err := a.memberships.FindMembership(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrMembershipNotFound) {
			return employee.Membership{}, access.ErrNotFound
		}
		return employee.Membership{}, fmt.Errorf("failed to get target membership: %w", err)
	}
	return m, nil
}
