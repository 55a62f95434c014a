package employee

import (
	"time"

	"github.com/chll-hr/leave-backend/internal/domain/access"
	"github.com/chll-hr/leave-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type MemberResponse struct {
	EmployeeID        string           `json:"employee_id"`
	Email             string           `json:"email"`
	FirstName         string           `json:"first_name"`
	LastName          string           `json:"last_name"`
	CompanyID         string           `json:"company_id"`
	Role              access.Role      `json:"role"`
	DepartmentID      *string          `json:"department_id,omitempty"`
	DaysOffAdjustment *decimal.Decimal `json:"days_off_adjustment,omitempty"`
	JoinedAt          time.Time        `json:"joined_at"`
}

// NewMemberResponse includes the allowance adjustment only when withDetails is set.
func NewMemberResponse(e Employee, m Membership, withDetails bool) MemberResponse {
	resp := MemberResponse{
		EmployeeID:   e.ID,
		Email:        e.Email,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		CompanyID:    m.CompanyID,
		Role:         m.Role,
		DepartmentID: m.DepartmentID,
		JoinedAt:     m.CreatedAt,
	}
	if withDetails {
		adjustment := m.DaysOffAdjustment
		resp.DaysOffAdjustment = &adjustment
	}
	return resp
}

type AddEmployeeRequest struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	Role         string  `json:"role,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
}

func (r *AddEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs.Add("first_name", "first_name is required")
	} else if validator.TooLong(r.FirstName, 100) {
		errs.Add("first_name", "first_name must not exceed 100 characters")
	}
	if validator.IsEmpty(r.LastName) {
		errs.Add("last_name", "last_name is required")
	} else if validator.TooLong(r.LastName, 100) {
		errs.Add("last_name", "last_name must not exceed 100 characters")
	}
	if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}
	if r.Role != "" {
		if _, err := access.ParseRole(r.Role); err != nil {
			errs.Add("role", "role must be one of owner, admin, editor, viewer")
		}
	}
	if r.DepartmentID != nil && !validator.IsValidUUID(*r.DepartmentID) {
		errs.Add("department_id", "department_id must be a valid ID")
	}

	return errs.Err()
}

// ImportRow is one data row of the employee feed.
type ImportRow struct {
	Row              int
	FirstName        string
	LastName         string
	Email            string
	Department       string
	RemainingHoliday *decimal.Decimal
	// Problem is set by the parser when the row could not be read.
	Problem string
}

// Validate returns the first reason the row cannot be imported, or "".
func (r ImportRow) Validate() string {
	switch {
	case r.Problem != "":
		return r.Problem
	case validator.IsEmpty(r.FirstName):
		return "first name is required"
	case validator.IsEmpty(r.LastName):
		return "last name is required"
	case !validator.IsValidEmail(r.Email):
		return "email is not valid"
	case r.RemainingHoliday != nil && r.RemainingHoliday.IsNegative():
		return "remaining holiday must not be negative"
	}
	return ""
}

type ImportReport struct {
	Created []MemberResponse `json:"created"`
	Failed  []ImportRowError `json:"failed"`
}
