package response

import (
	"errors"
	"net/http"

	"github.com/chll-hr/leave-backend/internal/domain/access"
	"github.com/chll-hr/leave-backend/internal/domain/company"
	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/chll-hr/leave-backend/internal/domain/leave"
	"github.com/chll-hr/leave-backend/internal/pkg/csvimport"
	"github.com/chll-hr/leave-backend/internal/pkg/jwt"
	"github.com/chll-hr/leave-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Access
	case errors.Is(err, access.ErrNotFound):
		NotFound(w, "Not found")
	case errors.Is(err, access.ErrAccessDenied):
		Forbidden(w, "Access denied")

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, company.ErrDepartmentExists):
		Conflict(w, err.Error())
	case errors.Is(err, company.ErrBossNotMember):
		ValidationError(w, map[string]string{"boss_id": err.Error()})

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrMembershipNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrDuplicateMembership):
		Conflict(w, "Employee already belongs to this company")

	// Import feed
	case errors.Is(err, csvimport.ErrEmptyFile), errors.Is(err, csvimport.ErrMissingColumn):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeExists):
		Conflict(w, "Leave type already exists")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Leave request overlaps an existing request")
	case errors.Is(err, leave.ErrBalanceExceeded):
		Conflict(w, "Leave balance exceeded")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
