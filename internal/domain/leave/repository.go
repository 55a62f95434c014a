package leave

import (
	"context"

	"github.com/chll-hr/leave-backend/internal/pkg/calendar"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	FindLeaveType(ctx context.Context, id string) (LeaveType, error)
	ListLeaveTypes(ctx context.Context, companyID string) ([]LeaveType, error)
	CreateLeaveType(ctx context.Context, leaveType LeaveType) (LeaveType, error)
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	FindLeaveRequest(ctx context.Context, id string) (LeaveRequest, error)
	// FindLeaveRequests returns every request of employeeID, in any company and
	// status, that intersects window, ordered by start.
	FindLeaveRequests(ctx context.Context, employeeID string, window calendar.Range) ([]LeaveRequest, error)
	ListEmployeeLeaveRequests(ctx context.Context, companyID, employeeID string) ([]LeaveRequest, error)
	ListCompanyLeaveRequests(ctx context.Context, companyID string, window calendar.Range) ([]LeaveRequest, error)
	// SaveLeaveRequest fails with ErrOverlappingLeave when a blocking request
	// of the same employee intersects r.
	SaveLeaveRequest(ctx context.Context, r LeaveRequest) (LeaveRequest, error)
	// UpdateLeaveRequestStatus applies a decision to a pending request and
	// fails with ErrLeaveRequestAlreadyProcessed otherwise.
	UpdateLeaveRequestStatus(ctx context.Context, r LeaveRequest) error
}

// Notifier receives decisions. Implementations must not block the caller.
type Notifier interface {
	LeaveStatusChanged(ctx context.Context, change StatusChange)
}
