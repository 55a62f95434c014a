package company

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chll-hr/leave-backend/internal/domain/access"
	"github.com/chll-hr/leave-backend/internal/domain/company"
	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/chll-hr/leave-backend/internal/domain/leave"
	"github.com/chll-hr/leave-backend/internal/fixtures"
	"github.com/chll-hr/leave-backend/internal/pkg/database"
	"github.com/chll-hr/leave-backend/internal/pkg/logger"
	"github.com/chll-hr/leave-backend/internal/pkg/retry"
	accessService "github.com/chll-hr/leave-backend/internal/service/access"
	"github.com/google/uuid"
)

type CompanyServiceImpl struct {
	tx          database.Transactor
	companies   company.CompanyRepository
	departments company.DepartmentRepository
	employees   employee.EmployeeRepository
	memberships employee.MembershipRepository
	leaveTypes  leave.LeaveTypeRepository
	authz       *accessService.Authorizer

	// defaultTimezone applies to companies created without one.
	defaultTimezone string
	retry           retry.Policy
}

func NewCompanyService(
	tx database.Transactor,
	companies company.CompanyRepository,
	departments company.DepartmentRepository,
	employees employee.EmployeeRepository,
	memberships employee.MembershipRepository,
	leaveTypes leave.LeaveTypeRepository,
	authz *accessService.Authorizer,
	defaultTimezone string,
) *CompanyServiceImpl {
	return &CompanyServiceImpl{
		tx:              tx,
		companies:       companies,
		departments:     departments,
		employees:       employees,
		memberships:     memberships,
		leaveTypes:      leaveTypes,
		authz:           authz,
		defaultTimezone: defaultTimezone,
		retry:           retry.DefaultPolicy,
	}
}

var _ company.CompanyService = (*CompanyServiceImpl)(nil)

// Create implements company.CompanyService. The caller becomes the Owner and
// the company starts with the default leave types.
func (c *CompanyServiceImpl) Create(ctx context.Context, callerID string, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}
	if _, err := c.employees.FindEmployee(ctx, callerID); err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to get caller: %w", err)
	}

	tz := req.Timezone
	if tz == "" {
		tz = c.defaultTimezone
	}

	var created company.Company
	err := c.retry.Do(ctx, func(ctx context.Context) error {
		return c.tx.WithinTx(ctx, func(ctx context.Context) error {
			var err error
			created, err = c.companies.CreateCompany(ctx, company.Company{
				ID:             uuid.Must(uuid.NewV7()).String(),
				Name:           strings.TrimSpace(req.Name),
				DefaultDaysOff: req.DefaultDaysOff,
				Timezone:       tz,
			})
			if err != nil {
				return fmt.Errorf("failed to create company: %w", err)
			}

			_, err = c.memberships.SaveMembership(ctx, employee.Membership{
				ID:         uuid.Must(uuid.NewV7()).String(),
				CompanyID:  created.ID,
				EmployeeID: callerID,
				Role:       access.RoleOwner,
			})
			if err != nil {
				return fmt.Errorf("failed to create owner membership: %w", err)
			}

			for _, lt := range fixtures.GetDefaultLeaveTypes(created.ID) {
				if _, err := c.leaveTypes.CreateLeaveType(ctx, lt); err != nil {
					return fmt.Errorf("failed to seed leave type %q: %w", lt.Name, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		return company.CompanyResponse{}, err
	}

	logger.From(ctx).Info("company created", "company_id", created.ID, "owner_id", callerID)
	return company.NewCompanyResponse(created), nil
}

// GetByID implements company.CompanyService.
func (c *CompanyServiceImpl) GetByID(ctx context.Context, callerID, companyID string) (company.CompanyResponse, error) {
	if _, err := c.authz.Subject(ctx, callerID, companyID); err != nil {
		return company.CompanyResponse{}, err
	}

	found, err := c.companies.FindCompany(ctx, companyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.NewCompanyResponse(found), nil
}

// Update implements company.CompanyService.
func (c *CompanyServiceImpl) Update(ctx context.Context, callerID, companyID string, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}
	if _, err := c.authz.Require(ctx, callerID, companyID, access.ActionManageCompany); err != nil {
		return company.CompanyResponse{}, err
	}

	var updated company.Company
	err := c.retry.Do(ctx, func(ctx context.Context) error {
		return c.tx.WithinTx(ctx, func(ctx context.Context) error {
			found, err := c.companies.FindCompany(ctx, companyID)
			if err != nil {
				return err
			}
			if req.Name != nil {
				found.Name = strings.TrimSpace(*req.Name)
			}
			if req.DefaultDaysOff != nil {
				found.DefaultDaysOff = *req.DefaultDaysOff
			}
			if req.Timezone != nil {
				found.Timezone = *req.Timezone
			}
			if err := c.companies.UpdateCompany(ctx, found); err != nil {
				return fmt.Errorf("failed to update company: %w", err)
			}
			updated, err = c.companies.FindCompany(ctx, companyID)
			return err
		})
	})
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.NewCompanyResponse(updated), nil
}

// CreateDepartment implements company.CompanyService.
func (c *CompanyServiceImpl) CreateDepartment(ctx context.Context, callerID, companyID string, req company.CreateDepartmentRequest) (company.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return company.DepartmentResponse{}, err
	}
	if _, err := c.authz.Require(ctx, callerID, companyID, access.ActionManageCompany); err != nil {
		return company.DepartmentResponse{}, err
	}

	var created company.Department
	err := c.retry.Do(ctx, func(ctx context.Context) error {
		return c.tx.WithinTx(ctx, func(ctx context.Context) error {
			if err := c.checkBoss(ctx, companyID, req.BossID); err != nil {
				return err
			}
			var err error
			created, err = c.departments.CreateDepartment(ctx, company.Department{
				ID:        uuid.Must(uuid.NewV7()).String(),
				CompanyID: companyID,
				Name:      strings.TrimSpace(req.Name),
				DaysOff:   req.DaysOff,
				BossID:    req.BossID,
			})
			return err
		})
	})
	if err != nil {
		return company.DepartmentResponse{}, err
	}
	return company.NewDepartmentResponse(created), nil
}

// UpdateDepartment implements company.CompanyService.
func (c *CompanyServiceImpl) UpdateDepartment(ctx context.Context, callerID, companyID, departmentID string, req company.UpdateDepartmentRequest) (company.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return company.DepartmentResponse{}, err
	}
	if _, err := c.authz.Require(ctx, callerID, companyID, access.ActionManageCompany); err != nil {
		return company.DepartmentResponse{}, err
	}

	var updated company.Department
	err := c.retry.Do(ctx, func(ctx context.Context) error {
		return c.tx.WithinTx(ctx, func(ctx context.Context) error {
			dept, err := c.departments.FindDepartment(ctx, departmentID)
			if err != nil {
				return err
			}
			if dept.CompanyID != companyID {
				return company.ErrDepartmentNotFound
			}

			if req.Name != nil {
				dept.Name = strings.TrimSpace(*req.Name)
			}
			switch {
			case req.ClearDaysOff:
				dept.DaysOff = nil
			case req.DaysOff != nil:
				dept.DaysOff = req.DaysOff
			}
			switch {
			case req.ClearBoss:
				dept.BossID = nil
			case req.BossID != nil:
				if err := c.checkBoss(ctx, companyID, req.BossID); err != nil {
					return err
				}
				dept.BossID = req.BossID
			}

			if err := c.departments.UpdateDepartment(ctx, dept); err != nil {
				return err
			}
			updated, err = c.departments.FindDepartment(ctx, departmentID)
			return err
		})
	})
	if err != nil {
		return company.DepartmentResponse{}, err
	}
	return company.NewDepartmentResponse(updated), nil
}

// ListDepartments implements company.CompanyService.
func (c *CompanyServiceImpl) ListDepartments(ctx context.Context, callerID, companyID string) ([]company.DepartmentResponse, error) {
	if _, err := c.authz.Subject(ctx, callerID, companyID); err != nil {
		return nil, err
	}

	departments, err := c.departments.ListDepartments(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	result := make([]company.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		result = append(result, company.NewDepartmentResponse(d))
	}
	return result, nil
}

func (c *CompanyServiceImpl) checkBoss(ctx context.Context, companyID string, bossID *string) error {
	if bossID == nil {
		return nil
	}
	_, err := c.memberships.FindMembership(ctx, companyID, *bossID)
	if errors.Is(err, employee.ErrMembershipNotFound) {
		return company.ErrBossNotMember
	}
	return err
}
