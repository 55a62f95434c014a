package postgresql

import (
	"context"

	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/chll-hr/leave-backend/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// FindEmployee implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) FindEmployee(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, first_name, last_name, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(&e.ID, &e.Email, &e.FirstName, &e.LastName, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, notFound(err, employee.ErrEmployeeNotFound)
	}
	return e, nil
}

// FindEmployeeByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) FindEmployeeByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, first_name, last_name, created_at, updated_at
		FROM employees
		WHERE LOWER(email) = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, employee.NormalizeEmail(email)).
		Scan(&e.ID, &e.Email, &e.FirstName, &e.LastName, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, notFound(err, employee.ErrEmployeeNotFound)
	}
	return e, nil
}

// CreateEmployee implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CreateEmployee(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, email, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	e.Email = employee.NormalizeEmail(e.Email)
	err := q.QueryRow(ctx, query, e.ID, e.Email, e.FirstName, e.LastName).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, mapError(err)
	}
	return e, nil
}
