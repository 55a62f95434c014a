package http

import (
	"net/http"

	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/chll-hr/leave-backend/internal/handler/http/response"
	"github.com/chll-hr/leave-backend/internal/pkg/csvimport"
	"github.com/chll-hr/leave-backend/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const maxImportBytes = 10 << 20

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Add(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
	ImportExample(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

// List implements EmployeeHandler.
func (e *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	members, err := e.employeeService.ListMembers(r.Context(), caller, chi.URLParam(r, "companyID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, members)
}

// Add implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Add(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req employee.AddEmployeeRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	member, err := e.employeeService.AddEmployee(r.Context(), caller, chi.URLParam(r, "companyID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee added successfully", member)
}

// Import implements EmployeeHandler. The roster is uploaded as the "file"
// part of a multipart form.
func (e *EmployeeHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	log := logger.From(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		log.Warn("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Field 'file' is required", nil)
		return
	}
	defer file.Close()

	rows, err := csvimport.Parse(file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := e.employeeService.ImportEmployees(r.Context(), caller, chi.URLParam(r, "companyID"), rows)
	if err != nil {
		log.Error("Failed to import employees", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employees imported", report)
}

// ImportExample implements EmployeeHandler.
func (e *EmployeeHandlerImpl) ImportExample(w http.ResponseWriter, r *http.Request) {
	data, err := csvimport.Example()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="employees.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{
		employeeService: employeeService,
	}
}
