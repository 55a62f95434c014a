package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chll-hr/leave-backend/internal/domain/access"
	"github.com/chll-hr/leave-backend/internal/domain/company"
	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/chll-hr/leave-backend/internal/pkg/database"
	"github.com/chll-hr/leave-backend/internal/pkg/logger"
	"github.com/chll-hr/leave-backend/internal/pkg/retry"
	"github.com/chll-hr/leave-backend/internal/pkg/validator"
	accessService "github.com/chll-hr/leave-backend/internal/service/access"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	tx          database.Transactor
	employees   employee.EmployeeRepository
	memberships employee.MembershipRepository
	companies   company.CompanyRepository
	departments company.DepartmentRepository
	authz       *accessService.Authorizer
	retry       retry.Policy
}

func NewEmployeeService(
	tx database.Transactor,
	employees employee.EmployeeRepository,
	memberships employee.MembershipRepository,
	companies company.CompanyRepository,
	departments company.DepartmentRepository,
	authz *accessService.Authorizer,
) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		tx:          tx,
		employees:   employees,
		memberships: memberships,
		companies:   companies,
		departments: departments,
		authz:       authz,
		retry:       retry.DefaultPolicy,
	}
}

var _ employee.EmployeeService = (*EmployeeServiceImpl)(nil)

// MembershipOf implements employee.EmployeeService.
func (s *EmployeeServiceImpl) MembershipOf(ctx context.Context, employeeID, companyID string) (employee.Membership, error) {
	return s.memberships.FindMembership(ctx, companyID, employeeID)
}

// RoleOf implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RoleOf(ctx context.Context, employeeID, companyID string) (access.Role, error) {
	m, err := s.MembershipOf(ctx, employeeID, companyID)
	if err != nil {
		return "", err
	}
	return m.Role, nil
}

// EmployeesOfCompany implements employee.EmployeeService.
func (s *EmployeeServiceImpl) EmployeesOfCompany(ctx context.Context, companyID string) ([]employee.Member, error) {
	if _, err := s.companies.FindCompany(ctx, companyID); err != nil {
		return nil, err
	}
	return s.memberships.ListMembers(ctx, companyID)
}

// EmployeesOfDepartment implements employee.EmployeeService.
func (s *EmployeeServiceImpl) EmployeesOfDepartment(ctx context.Context, departmentID string) ([]employee.Member, error) {
	if _, err := s.departments.FindDepartment(ctx, departmentID); err != nil {
		return nil, err
	}
	return s.memberships.ListDepartmentMembers(ctx, departmentID)
}

// AddMembership implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AddMembership(ctx context.Context, companyID, employeeID string, role access.Role, departmentID *string) (employee.Membership, error) {
	if !role.Valid() {
		return employee.Membership{}, validator.ValidationErrors{{Field: "role", Message: "role must be one of owner, admin, editor, viewer"}}
	}

	var created employee.Membership
	err := s.retry.Do(ctx, func(ctx context.Context) error {
		return s.tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := s.companies.FindCompany(ctx, companyID); err != nil {
				return err
			}
			if _, err := s.employees.FindEmployee(ctx, employeeID); err != nil {
				return err
			}
			m, err := s.addMembership(ctx, employee.Membership{
				CompanyID:    companyID,
				EmployeeID:   employeeID,
				Role:         role,
				DepartmentID: departmentID,
			})
			if err != nil {
				return err
			}
			created = m
			return nil
		})
	})
	if err != nil {
		return employee.Membership{}, err
	}
	return created, nil
}

// addMembership validates the department and pre-checks uniqueness; the
// repository enforces it again on commit.
func (s *EmployeeServiceImpl) addMembership(ctx context.Context, m employee.Membership) (employee.Membership, error) {
	if m.DepartmentID != nil {
		dept, err := s.departments.FindDepartment(ctx, *m.DepartmentID)
		if err != nil {
			return employee.Membership{}, err
		}
		if dept.CompanyID != m.CompanyID {
			return employee.Membership{}, company.ErrDepartmentNotFound
		}
	}

	_, err := s.memberships.FindMembership(ctx, m.CompanyID, m.EmployeeID)
	switch {
	case err == nil:
		return employee.Membership{}, employee.ErrDuplicateMembership
	case !errors.Is(err, employee.ErrMembershipNotFound):
		return employee.Membership{}, fmt.Errorf("failed to check membership: %w", err)
	}

	m.ID = uuid.Must(uuid.NewV7()).String()
	return s.memberships.SaveMembership(ctx, m)
}

// ListMembers implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListMembers(ctx context.Context, callerID, companyID string) ([]employee.MemberResponse, error) {
	subject, err := s.authz.Subject(ctx, callerID, companyID)
	if err != nil {
		return nil, err
	}

	members, err := s.memberships.ListMembers(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return toMemberResponses(subject, members), nil
}

// ListDepartmentMembers implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListDepartmentMembers(ctx context.Context, callerID, companyID, departmentID string) ([]employee.MemberResponse, error) {
	subject, err := s.authz.Subject(ctx, callerID, companyID)
	if err != nil {
		return nil, err
	}

	dept, err := s.departments.FindDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if dept.CompanyID != companyID {
		return nil, company.ErrDepartmentNotFound
	}

	members, err := s.memberships.ListDepartmentMembers(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list department members: %w", err)
	}
	return toMemberResponses(subject, members), nil
}

func toMemberResponses(subject access.Subject, members []employee.Member) []employee.MemberResponse {
	result := make([]employee.MemberResponse, 0, len(members))
	for _, m := range members {
		visible := subject.CanViewDetails(m.Membership.Target())
		result = append(result, employee.NewMemberResponse(m.Employee, m.Membership, visible))
	}
	return result
}

// AddEmployee implements employee.EmployeeService. The employee record is
// reused when the email is already known.
func (s *EmployeeServiceImpl) AddEmployee(ctx context.Context, callerID, companyID string, req employee.AddEmployeeRequest) (employee.MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.MemberResponse{}, err
	}

	subject, err := s.authz.Require(ctx, callerID, companyID, access.ActionImportEmployees)
	if err != nil {
		return employee.MemberResponse{}, err
	}

	role := access.RoleViewer
	if req.Role != "" {
		role, _ = access.ParseRole(req.Role)
	}
	// Granting company management needs company management.
	if access.HasPermission(role, access.ActionManageCompany) && !subject.Can(access.ActionManageCompany) {
		return employee.MemberResponse{}, access.ErrAccessDenied
	}

	var resp employee.MemberResponse
	err = s.retry.Do(ctx, func(ctx context.Context) error {
		return s.tx.WithinTx(ctx, func(ctx context.Context) error {
			e, err := s.findOrCreateEmployee(ctx, req.Email, req.FirstName, req.LastName)
			if err != nil {
				return err
			}
			m, err := s.addMembership(ctx, employee.Membership{
				CompanyID:    companyID,
				EmployeeID:   e.ID,
				Role:         role,
				DepartmentID: req.DepartmentID,
			})
			if err != nil {
				return err
			}
			resp = employee.NewMemberResponse(e, m, true)
			return nil
		})
	})
	if err != nil {
		return employee.MemberResponse{}, err
	}

	logger.From(ctx).Info("employee added", "company_id", companyID, "employee_id", resp.EmployeeID, "role", role)
	return resp, nil
}

func (s *EmployeeServiceImpl) findOrCreateEmployee(ctx context.Context, email, firstName, lastName string) (employee.Employee, error) {
	found, err := s.employees.FindEmployeeByEmail(ctx, email)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.Employee{}, fmt.Errorf("failed to find employee by email: %w", err)
	}

	created, err := s.employees.CreateEmployee(ctx, employee.Employee{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Email:     employee.NormalizeEmail(email),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
	})
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// ImportEmployees implements employee.EmployeeService. Each row is applied
// on its own; a bad row is reported and the rest carry on. Only
// infrastructure failures abort the import.
func (s *EmployeeServiceImpl) ImportEmployees(ctx context.Context, callerID, companyID string, rows []employee.ImportRow) (employee.ImportReport, error) {
	if _, err := s.authz.Require(ctx, callerID, companyID, access.ActionImportEmployees); err != nil {
		return employee.ImportReport{}, err
	}

	co, err := s.companies.FindCompany(ctx, companyID)
	if err != nil {
		return employee.ImportReport{}, err
	}

	report := employee.ImportReport{
		Created: []employee.MemberResponse{},
		Failed:  []employee.ImportRowError{},
	}
	seen := make(map[string]int, len(rows))
	log := logger.From(ctx).With("company_id", companyID)

	for _, row := range rows {
		fail := func(reason string) {
			report.Failed = append(report.Failed, employee.ImportRowError{Row: row.Row, Email: row.Email, Reason: reason})
		}

		if reason := row.Validate(); reason != "" {
			fail(reason)
			continue
		}

		email := employee.NormalizeEmail(row.Email)
		if first, dup := seen[email]; dup {
			fail(fmt.Sprintf("email already used on row %d", first))
			continue
		}
		seen[email] = row.Row

		resp, err := s.importRow(ctx, co, row)
		switch {
		case err == nil:
			report.Created = append(report.Created, resp)
		case errors.Is(err, employee.ErrDuplicateMembership):
			fail("employee already belongs to this company")
		case errors.Is(err, company.ErrDepartmentNotFound):
			fail(fmt.Sprintf("department %q not found", row.Department))
		default:
			return report, fmt.Errorf("import row %d: %w", row.Row, err)
		}
	}

	log.Info("employee import finished", "created", len(report.Created), "failed", len(report.Failed))
	return report, nil
}

func (s *EmployeeServiceImpl) importRow(ctx context.Context, co company.Company, row employee.ImportRow) (employee.MemberResponse, error) {
	var resp employee.MemberResponse
	err := s.retry.Do(ctx, func(ctx context.Context) error {
		return s.tx.WithinTx(ctx, func(ctx context.Context) error {
			var dept *company.Department
			if name := strings.TrimSpace(row.Department); name != "" {
				d, err := s.departments.FindDepartmentByName(ctx, co.ID, name)
				if err != nil {
					return err
				}
				dept = &d
			}

			e, err := s.findOrCreateEmployee(ctx, row.Email, row.FirstName, row.LastName)
			if err != nil {
				return err
			}

			m := employee.Membership{
				CompanyID:  co.ID,
				EmployeeID: e.ID,
				Role:       access.RoleViewer,
			}
			if dept != nil {
				m.DepartmentID = &dept.ID
			}
			// The feed states what is left; keep the difference to the
			// regular allowance as an adjustment.
			if row.RemainingHoliday != nil {
				m.DaysOffAdjustment = row.RemainingHoliday.Sub(decimal.NewFromInt(int64(co.Allowance(dept))))
			}

			m, err = s.addMembership(ctx, m)
			if err != nil {
				return err
			}
			resp = employee.NewMemberResponse(e, m, true)
			return nil
		})
	})
	return resp, err
}
