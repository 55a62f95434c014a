package postgresql

import (
	"context"

	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/chll-hr/leave-backend/internal/pkg/database"
)

type membershipRepositoryImpl struct {
	db *database.DB
}

func NewMembershipRepository(db *database.DB) employee.MembershipRepository {
	return &membershipRepositoryImpl{db: db}
}

// FindMembership implements employee.MembershipRepository.
func (r *membershipRepositoryImpl) FindMembership(ctx context.Context, companyID, employeeID string) (employee.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, role, department_id, days_off_adjustment, created_at, updated_at
		FROM memberships
		WHERE company_id = $1 AND employee_id = $2
	`

	var m employee.Membership
	err := q.QueryRow(ctx, query, companyID, employeeID).Scan(
		&m.ID, &m.CompanyID, &m.EmployeeID, &m.Role, &m.DepartmentID, &m.DaysOffAdjustment, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return employee.Membership{}, notFound(err, employee.ErrMembershipNotFound)
	}
	return m, nil
}

// SaveMembership implements employee.MembershipRepository.
func (r *membershipRepositoryImpl) SaveMembership(ctx context.Context, m employee.Membership) (employee.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO memberships (id, company_id, employee_id, role, department_id, days_off_adjustment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, m.ID, m.CompanyID, m.EmployeeID, string(m.Role), m.DepartmentID, m.DaysOffAdjustment).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return employee.Membership{}, mapError(err)
	}
	return m, nil
}

const memberQuery = `
	SELECT e.id, e.email, e.first_name, e.last_name, e.created_at, e.updated_at,
		   m.id, m.company_id, m.employee_id, m.role, m.department_id, m.days_off_adjustment, m.created_at, m.updated_at
	FROM memberships m
	INNER JOIN employees e ON e.id = m.employee_id
`

// ListMembers implements employee.MembershipRepository.
func (r *membershipRepositoryImpl) ListMembers(ctx context.Context, companyID string) ([]employee.Member, error) {
	return r.list(ctx, memberQuery+` WHERE m.company_id = $1 ORDER BY e.last_name, e.first_name, e.id`, companyID)
}

// ListDepartmentMembers implements employee.MembershipRepository.
func (r *membershipRepositoryImpl) ListDepartmentMembers(ctx context.Context, departmentID string) ([]employee.Member, error) {
	return r.list(ctx, memberQuery+` WHERE m.department_id = $1 ORDER BY e.last_name, e.first_name, e.id`, departmentID)
}

func (r *membershipRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]employee.Member, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var members []employee.Member
	for rows.Next() {
		var e employee.Employee
		var m employee.Membership
		err := rows.Scan(
			&e.ID, &e.Email, &e.FirstName, &e.LastName, &e.CreatedAt, &e.UpdatedAt,
			&m.ID, &m.CompanyID, &m.EmployeeID, &m.Role, &m.DepartmentID, &m.DaysOffAdjustment, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		members = append(members, employee.Member{Employee: e, Membership: m})
	}
	return members, mapError(rows.Err())
}
