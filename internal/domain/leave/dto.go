package leave

import (
	"time"

	"github.com/chll-hr/leave-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateLeaveTypeRequest struct {
	Name string `json:"leave_type_name"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	// Leave type name
	if validator.IsEmpty(r.Name) {
		errs.Add("leave_type_name", "leave_type_name is required")
	}
	if validator.TooLong(r.Name, 255) {
		errs.Add("leave_type_name", "leave_type_name must not exceed 255 characters")
	}

	return errs.Err()
}

type LeaveTypeResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"leave_type_name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewLeaveTypeResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:        lt.ID,
		CompanyID: lt.CompanyID,
		Name:      lt.Name,
		CreatedAt: lt.CreatedAt,
	}
}

// CreateLeaveRequestRequest files leave for EmployeeID, or for the caller
// when EmployeeID is empty. From and To take a date or an RFC 3339 instant.
type CreateLeaveRequestRequest struct {
	CompanyID   string  `json:"company_id"`
	EmployeeID  string  `json:"employee_id,omitempty"`
	LeaveTypeID *string `json:"leave_type_id,omitempty"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	Reason      *string `json:"reason,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyID) {
		errs.Add("company_id", "company_id is required")
	} else if !validator.IsValidUUID(r.CompanyID) {
		errs.Add("company_id", "company_id must be a valid ID")
	}
	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid ID")
	}
	if validator.IsEmpty(r.From) {
		errs.Add("from", "from is required")
	} else if !validator.IsValidDateOrInstant(r.From) {
		errs.Add("from", "from must be YYYY-MM-DD or an RFC 3339 timestamp")
	}
	if validator.IsEmpty(r.To) {
		errs.Add("to", "to is required")
	} else if !validator.IsValidDateOrInstant(r.To) {
		errs.Add("to", "to must be YYYY-MM-DD or an RFC 3339 timestamp")
	}
	if r.LeaveTypeID != nil && !validator.IsValidUUID(*r.LeaveTypeID) {
		errs.Add("leave_type_id", "leave_type_id must be a valid ID")
	}
	if r.Reason != nil && validator.TooLong(*r.Reason, 1000) {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}

	return errs.Err()
}

// DecisionRequest carries approver options.
type DecisionRequest struct {
	// Override allows approving beyond the remaining allowance.
	Override bool `json:"override"`
}

type LeaveRequestResponse struct {
	ID            string             `json:"id"`
	EmployeeID    string             `json:"employee_id"`
	CompanyID     string             `json:"company_id"`
	LeaveTypeID   *string            `json:"leave_type_id,omitempty"`
	LeaveTypeName string             `json:"leave_type_name"`
	From          time.Time          `json:"from"`
	To            time.Time          `json:"to"`
	AllDay        bool               `json:"all_day"`
	Days          decimal.Decimal    `json:"days"`
	Reason        *string            `json:"reason,omitempty"`
	Status        LeaveRequestStatus `json:"status"`
	ApprovedBy    *string            `json:"approved_by,omitempty"`
	DecidedAt     *time.Time         `json:"decided_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

type CompanyLeavesFilter struct {
	From string
	To   string
}

type BalanceFilter struct {
	From string
	To   string
}

type EmployeeRef struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type DepartmentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EmployeeLeaves groups one employee's requests in a company listing.
// Remaining is absent when the viewer may not see the balance.
type EmployeeLeaves struct {
	Employee   EmployeeRef            `json:"employee"`
	Department *DepartmentRef         `json:"department,omitempty"`
	Leaves     []LeaveRequestResponse `json:"leaves"`
	Remaining  *decimal.Decimal       `json:"remaining,omitempty"`
}

type ListCompanyLeavesResponse struct {
	CompanyID string           `json:"company_id"`
	From      string           `json:"from"`
	To        string           `json:"to"`
	Employees []EmployeeLeaves `json:"employees"`
}

type BalanceResponse struct {
	EmployeeID string          `json:"employee_id"`
	CompanyID  string          `json:"company_id"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	Allowance  decimal.Decimal `json:"allowance"`
	Consumed   decimal.Decimal `json:"consumed"`
	Pending    decimal.Decimal `json:"pending"`
	Remaining  decimal.Decimal `json:"remaining"`
	Overdrawn  bool            `json:"overdrawn"`
}
