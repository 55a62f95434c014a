package leave

import (
	"context"

	"github.com/chll-hr/leave-backend/internal/pkg/calendar"
)

type LeaveService interface {
	// Type
	CreateLeaveType(ctx context.Context, callerID, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	ListLeaveTypes(ctx context.Context, callerID, companyID string) ([]LeaveTypeResponse, error)
	// Balance
	RemainingDays(ctx context.Context, employeeID, companyID string, window calendar.Range) (Balance, error)
	GetBalance(ctx context.Context, callerID, companyID, employeeID string, filter BalanceFilter) (BalanceResponse, error)
	// Request
	CreateLeaveRequest(ctx context.Context, callerID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ListCompanyLeaves(ctx context.Context, callerID, companyID string, filter CompanyLeavesFilter) (ListCompanyLeavesResponse, error)
	ListEmployeeLeaves(ctx context.Context, callerID, companyID, employeeID string) ([]LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, callerID, requestID string, req DecisionRequest) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, callerID, requestID string) (LeaveRequestResponse, error)
	// Calendar
	Calendar(ctx context.Context, callerID, companyID, employeeID string) (CalendarFeed, error)
}
