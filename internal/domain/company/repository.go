package company

import "context"

type CompanyRepository interface {
	FindCompany(ctx context.Context, id string) (Company, error)
	CreateCompany(ctx context.Context, newCompany Company) (Company, error)
	UpdateCompany(ctx context.Context, c Company) error
}

type DepartmentRepository interface {
	FindDepartment(ctx context.Context, id string) (Department, error)
	FindDepartmentByName(ctx context.Context, companyID, name string) (Department, error)
	ListDepartments(ctx context.Context, companyID string) ([]Department, error)
	// ListDepartmentsByBoss returns the departments of companyID led by bossID.
	ListDepartmentsByBoss(ctx context.Context, companyID, bossID string) ([]Department, error)
	CreateDepartment(ctx context.Context, d Department) (Department, error)
	UpdateDepartment(ctx context.Context, d Department) error
}
