package http

import (
	"net/http"

	"github.com/chll-hr/leave-backend/internal/domain/company"
	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/chll-hr/leave-backend/internal/handler/http/response"
	"github.com/chll-hr/leave-backend/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CompanyHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)

	CreateDepartment(w http.ResponseWriter, r *http.Request)
	UpdateDepartment(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
	ListDepartmentMembers(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService  company.CompanyService
	employeeService employee.EmployeeService
}

// Create implements CompanyHandler.
func (c *CompanyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req company.CreateCompanyRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	co, err := c.companyService.Create(r.Context(), caller, req)
	if err != nil {
		logger.From(r.Context()).Error("Failed to create company", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Company created successfully", co)
}

// GetByID implements CompanyHandler.
func (c *CompanyHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	co, err := c.companyService.GetByID(r.Context(), caller, chi.URLParam(r, "companyID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, co)
}

// Update implements CompanyHandler.
func (c *CompanyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req company.UpdateCompanyRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	co, err := c.companyService.Update(r.Context(), caller, chi.URLParam(r, "companyID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company updated successfully", co)
}

// CreateDepartment implements CompanyHandler.
func (c *CompanyHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req company.CreateDepartmentRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	dept, err := c.companyService.CreateDepartment(r.Context(), caller, chi.URLParam(r, "companyID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created successfully", dept)
}

// UpdateDepartment implements CompanyHandler.
func (c *CompanyHandlerImpl) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req company.UpdateDepartmentRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	dept, err := c.companyService.UpdateDepartment(r.Context(), caller, chi.URLParam(r, "companyID"), chi.URLParam(r, "departmentID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department updated successfully", dept)
}

// ListDepartments implements CompanyHandler.
func (c *CompanyHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	depts, err := c.companyService.ListDepartments(r.Context(), caller, chi.URLParam(r, "companyID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, depts)
}

// ListDepartmentMembers implements CompanyHandler.
func (c *CompanyHandlerImpl) ListDepartmentMembers(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	members, err := c.employeeService.ListDepartmentMembers(r.Context(), caller, chi.URLParam(r, "companyID"), chi.URLParam(r, "departmentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, members)
}

func NewCompanyHandler(companyService company.CompanyService, employeeService employee.EmployeeService) CompanyHandler {
	return &CompanyHandlerImpl{
		companyService:  companyService,
		employeeService: employeeService,
	}
}
