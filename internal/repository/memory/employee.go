package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/chll-hr/leave-backend/internal/domain/employee"
)

func (s *Store) FindEmployee(ctx context.Context, id string) (employee.Employee, error) {
	defer s.rlock(ctx)()

	e, ok := s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (s *Store) FindEmployeeByEmail(ctx context.Context, email string) (employee.Employee, error) {
	defer s.rlock(ctx)()

	if e, ok := s.employeeByEmail(email); ok {
		return e, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *Store) employeeByEmail(email string) (employee.Employee, bool) {
	email = employee.NormalizeEmail(email)
	for _, e := range s.employees {
		if employee.NormalizeEmail(e.Email) == email {
			return e, true
		}
	}
	return employee.Employee{}, false
}

func (s *Store) CreateEmployee(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	defer s.lock(ctx)()

	if _, ok := s.employeeByEmail(e.Email); ok {
		return employee.Employee{}, employee.ErrEmailExists
	}
	e.Email = employee.NormalizeEmail(e.Email)
	e.ID, e.CreatedAt, e.UpdatedAt = s.stamp(e.ID, e.CreatedAt)
	s.employees[e.ID] = e
	return e, nil
}

func (s *Store) FindMembership(ctx context.Context, companyID, employeeID string) (employee.Membership, error) {
	defer s.rlock(ctx)()

	m, ok := s.memberships[memberKey{CompanyID: companyID, EmployeeID: employeeID}]
	if !ok {
		return employee.Membership{}, employee.ErrMembershipNotFound
	}
	return m, nil
}

func (s *Store) SaveMembership(ctx context.Context, m employee.Membership) (employee.Membership, error) {
	defer s.lock(ctx)()

	k := memberKey{CompanyID: m.CompanyID, EmployeeID: m.EmployeeID}
	if _, ok := s.memberships[k]; ok {
		return employee.Membership{}, employee.ErrDuplicateMembership
	}
	if _, ok := s.employees[m.EmployeeID]; !ok {
		return employee.Membership{}, employee.ErrEmployeeNotFound
	}
	m.ID, m.CreatedAt, m.UpdatedAt = s.stamp(m.ID, m.CreatedAt)
	s.memberships[k] = m
	return m, nil
}

func (s *Store) ListMembers(ctx context.Context, companyID string) ([]employee.Member, error) {
	defer s.rlock(ctx)()

	return s.members(func(m employee.Membership) bool {
		return m.CompanyID == companyID
	}), nil
}

func (s *Store) ListDepartmentMembers(ctx context.Context, departmentID string) ([]employee.Member, error) {
	defer s.rlock(ctx)()

	return s.members(func(m employee.Membership) bool {
		return m.DepartmentID != nil && *m.DepartmentID == departmentID
	}), nil
}

func (s *Store) members(keep func(employee.Membership) bool) []employee.Member {
	var result []employee.Member
	for _, m := range s.memberships {
		if !keep(m) {
			continue
		}
		result = append(result, employee.Member{Employee: s.employees[m.EmployeeID], Membership: m})
	}
	slices.SortFunc(result, func(a, b employee.Member) int {
		return cmp.Or(
			strings.Compare(a.Employee.LastName, b.Employee.LastName),
			strings.Compare(a.Employee.FirstName, b.Employee.FirstName),
			strings.Compare(a.Employee.ID, b.Employee.ID),
		)
	})
	return result
}
