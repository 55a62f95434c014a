package postgresql

import (
	"errors"

	"github.com/chll-hr/leave-backend/internal/domain/company"
	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/chll-hr/leave-backend/internal/domain/leave"
	"github.com/chll-hr/leave-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// constraint name -> domain error
var constraintErrors = map[string]error{
	"leave_requests_no_overlap":        leave.ErrOverlappingLeave,
	"leave_requests_range_check":       leave.ErrInvalidRange,
	"leave_types_company_name_key":     leave.ErrLeaveTypeExists,
	"memberships_company_employee_key": employee.ErrDuplicateMembership,
	"employees_email_key":              employee.ErrEmailExists,
	"departments_company_name_key":     company.ErrDepartmentExists,
}

// mapError turns driver errors into domain errors. Constraint violations
// become the matching sentinel; retryable failures are marked transient.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch database.PgCode(err) {
	case database.CodeUniqueViolation, database.CodeExclusionViolation, database.CodeCheckViolation:
		if domainErr, ok := constraintErrors[database.ConstraintName(err)]; ok {
			return domainErr
		}
	}
	return database.MarkTransient(err)
}

// notFound maps pgx.ErrNoRows to target.
func notFound(err error, target error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return target
	}
	return mapError(err)
}
