package leave

import (
	"time"

	"github.com/chll-hr/leave-backend/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// LeaveType entity
type LeaveType struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultLeaveTypeName labels requests filed without a type.
const DefaultLeaveTypeName = "Holiday"

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// LeaveRequest entity. The interval is half-open: Ending is the first
// instant the employee is back.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	LeaveTypeID *string
	Starting    time.Time
	Ending      time.Time
	Reason      *string
	Status      LeaveRequestStatus
	ApprovedBy  *string
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r LeaveRequest) Range() calendar.Range {
	return calendar.Range{Start: r.Starting, End: r.Ending}
}

// Blocking reports whether the request takes part in overlap checks.
func (r LeaveRequest) Blocking() bool {
	return r.Status != LeaveRequestStatusRejected
}

// Balance is an entitlement snapshot for one employee, company and window.
// Remaining may be negative; Overdrawn flags it.
type Balance struct {
	Allowance decimal.Decimal
	Consumed  decimal.Decimal
	Pending   decimal.Decimal
	Remaining decimal.Decimal
	Overdrawn bool
}

type EventStatus string

const (
	EventStatusTentative EventStatus = "TENTATIVE"
	EventStatusConfirmed EventStatus = "CONFIRMED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

func EventStatusOf(s LeaveRequestStatus) EventStatus {
	switch s {
	case LeaveRequestStatusPending:
		return EventStatusTentative
	case LeaveRequestStatusApproved:
		return EventStatusConfirmed
	default:
		return EventStatusCancelled
	}
}

// CalendarEvent is one leave request projected for calendar clients.
// All-day events carry local-midnight bounds.
type CalendarEvent struct {
	UID         string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Summary     string
	Description string
	Status      EventStatus
	Created     time.Time
	Modified    time.Time
}

type CalendarFeed struct {
	Name     string
	Location *time.Location
	Events   []CalendarEvent
}

// StatusChange is emitted after an approver decides on a request.
type StatusChange struct {
	RequestID     string
	CompanyID     string
	CompanyName   string
	EmployeeID    string
	EmployeeEmail string
	EmployeeName  string
	Status        LeaveRequestStatus
	Starting      time.Time
	Ending        time.Time
	Location      *time.Location
	DecidedBy     string
}
