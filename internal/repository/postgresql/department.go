package postgresql

import (
	"context"
	"fmt"

	"github.com/chll-hr/leave-backend/internal/domain/company"
	"github.com/chll-hr/leave-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) company.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

const departmentColumns = `id, company_id, name, days_off, boss_id, created_at, updated_at`

func scanDepartment(row pgx.Row) (company.Department, error) {
	var d company.Department
	err := row.Scan(&d.ID, &d.CompanyID, &d.Name, &d.DaysOff, &d.BossID, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *departmentRepositoryImpl) FindDepartment(ctx context.Context, id string) (company.Department, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDepartment(q.QueryRow(ctx, `SELECT `+departmentColumns+` FROM departments WHERE id = $1`, id))
	if err != nil {
		return company.Department{}, notFound(err, company.ErrDepartmentNotFound)
	}
	return d, nil
}

func (r *departmentRepositoryImpl) FindDepartmentByName(ctx context.Context, companyID, name string) (company.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + departmentColumns + ` FROM departments WHERE company_id = $1 AND LOWER(name) = LOWER(TRIM($2))`
	d, err := scanDepartment(q.QueryRow(ctx, query, companyID, name))
	if err != nil {
		return company.Department{}, notFound(err, company.ErrDepartmentNotFound)
	}
	return d, nil
}

func (r *departmentRepositoryImpl) ListDepartments(ctx context.Context, companyID string) ([]company.Department, error) {
	return r.list(ctx, `SELECT `+departmentColumns+` FROM departments WHERE company_id = $1 ORDER BY name, id`, companyID)
}

func (r *departmentRepositoryImpl) ListDepartmentsByBoss(ctx context.Context, companyID, bossID string) ([]company.Department, error) {
	return r.list(ctx, `SELECT `+departmentColumns+` FROM departments WHERE company_id = $1 AND boss_id = $2 ORDER BY name, id`, companyID, bossID)
}

func (r *departmentRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]company.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var departments []company.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, mapError(rows.Err())
}

func (r *departmentRepositoryImpl) CreateDepartment(ctx context.Context, d company.Department) (company.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (id, company_id, name, days_off, boss_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, d.ID, d.CompanyID, d.Name, d.DaysOff, d.BossID).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return company.Department{}, mapError(err)
	}
	return d, nil
}

func (r *departmentRepositoryImpl) UpdateDepartment(ctx context.Context, d company.Department) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET name = $2, days_off = $3, boss_id = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, d.ID, d.Name, d.DaysOff, d.BossID)
	if err != nil {
		return fmt.Errorf("failed to update department with id %s: %w", d.ID, mapError(err))
	}
	if tag.RowsAffected() != 1 {
		return company.ErrDepartmentNotFound
	}
	return nil
}
