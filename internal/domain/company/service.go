package company

import (
	"context"
)

// CompanyService operates on companies on behalf of callerID.
type CompanyService interface {
	Create(ctx context.Context, callerID string, req CreateCompanyRequest) (CompanyResponse, error)
	GetByID(ctx context.Context, callerID, companyID string) (CompanyResponse, error)
	Update(ctx context.Context, callerID, companyID string, req UpdateCompanyRequest) (CompanyResponse, error)

	CreateDepartment(ctx context.Context, callerID, companyID string, req CreateDepartmentRequest) (DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, callerID, companyID, departmentID string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	ListDepartments(ctx context.Context, callerID, companyID string) ([]DepartmentResponse, error)
}
