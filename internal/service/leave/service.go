package leave

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chll-hr/leave-backend/internal/domain/access"
	"github.com/chll-hr/leave-backend/internal/domain/company"
	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/chll-hr/leave-backend/internal/domain/leave"
	"github.com/chll-hr/leave-backend/internal/pkg/calendar"
	"github.com/chll-hr/leave-backend/internal/pkg/database"
	"github.com/chll-hr/leave-backend/internal/pkg/retry"
	accessService "github.com/chll-hr/leave-backend/internal/service/access"
	"github.com/google/uuid"
)

// Repositories groups the stores the leave service reads and writes.
type Repositories struct {
	Companies   company.CompanyRepository
	Departments company.DepartmentRepository
	Employees   employee.EmployeeRepository
	Memberships employee.MembershipRepository
	LeaveTypes  leave.LeaveTypeRepository
	Requests    leave.LeaveRequestRepository
}

type LeaveServiceImpl struct {
	tx    database.Transactor
	repos Repositories
	authz *accessService.Authorizer

	notifier leave.Notifier
	// calendarDomain qualifies event UIDs.
	calendarDomain string
	// balanceWorkers bounds the balance fan-out of company listings.
	balanceWorkers int

	retry retry.Policy
	now   func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	repos Repositories,
	authz *accessService.Authorizer,
	notifier leave.Notifier,
	calendarDomain string,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		tx:             tx,
		repos:          repos,
		authz:          authz,
		notifier:       notifier,
		calendarDomain: calendarDomain,
		balanceWorkers: 8,
		retry:          retry.DefaultPolicy,
		now:            time.Now,
	}
}

var _ leave.LeaveService = (*LeaveServiceImpl)(nil)

// CreateLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveType(ctx context.Context, callerID, companyID string, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}
	if _, err := l.authz.Require(ctx, callerID, companyID, access.ActionManageCompany); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	created, err := l.repos.LeaveTypes.CreateLeaveType(ctx, leave.LeaveType{
		ID:        uuid.Must(uuid.NewV7()).String(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(req.Name),
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}
	return leave.NewLeaveTypeResponse(created), nil
}

// ListLeaveTypes implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveTypes(ctx context.Context, callerID, companyID string) ([]leave.LeaveTypeResponse, error) {
	if _, err := l.authz.Subject(ctx, callerID, companyID); err != nil {
		return nil, err
	}

	types, err := l.repos.LeaveTypes.ListLeaveTypes(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	result := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		result = append(result, leave.NewLeaveTypeResponse(lt))
	}
	return result, nil
}

// typeNames maps leave type ids of a company to their names.
func (l *LeaveServiceImpl) typeNames(ctx context.Context, companyID string) (map[string]string, error) {
	types, err := l.repos.LeaveTypes.ListLeaveTypes(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	names := make(map[string]string, len(types))
	for _, lt := range types {
		names[lt.ID] = lt.Name
	}
	return names, nil
}

func typeName(names map[string]string, id *string) string {
	if id != nil {
		if name, ok := names[*id]; ok {
			return name
		}
	}
	return leave.DefaultLeaveTypeName
}

func toResponse(r leave.LeaveRequest, names map[string]string, loc *time.Location, withReason bool) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		CompanyID:     r.CompanyID,
		LeaveTypeID:   r.LeaveTypeID,
		LeaveTypeName: typeName(names, r.LeaveTypeID),
		From:          r.Starting.In(loc),
		To:            r.Ending.In(loc),
		AllDay:        r.Range().IsAllDay(loc),
		Days:          r.Range().Days(loc),
		Status:        r.Status,
		ApprovedBy:    r.ApprovedBy,
		DecidedAt:     r.DecidedAt,
		CreatedAt:     r.CreatedAt,
	}
	if withReason {
		resp.Reason = r.Reason
	}
	return resp
}

// parseWindow reads a half-open [from, to) window of dates in loc.
func parseWindow(from, to string, loc *time.Location) (calendar.Range, error) {
	if from == "" || to == "" {
		return calendar.Range{}, fmt.Errorf("%w: from and to are required", leave.ErrInvalidRange)
	}
	start, err := calendar.ParseDate(from, loc)
	if err != nil {
		return calendar.Range{}, fmt.Errorf("%w: %v", leave.ErrInvalidRange, err)
	}
	end, err := calendar.ParseDate(to, loc)
	if err != nil {
		return calendar.Range{}, fmt.Errorf("%w: %v", leave.ErrInvalidRange, err)
	}
	return calendar.NewRange(start, end)
}

// yearOf returns the calendar year containing t in loc.
func yearOf(t time.Time, loc *time.Location) calendar.Range {
	y := t.In(loc).Year()
	return calendar.Range{
		Start: time.Date(y, time.January, 1, 0, 0, 0, 0, loc),
		End:   time.Date(y+1, time.January, 1, 0, 0, 0, 0, loc),
	}
}

// findRequest hides requests of companies the caller does not belong to.
func (l *LeaveServiceImpl) findRequest(ctx context.Context, callerID, requestID string) (leave.LeaveRequest, access.Subject, error) {
	r, err := l.repos.Requests.FindLeaveRequest(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, access.Subject{}, err
	}

	subject, err := l.authz.Subject(ctx, callerID, r.CompanyID)
	if err != nil {
		if errors.Is(err, access.ErrNotFound) {
			return leave.LeaveRequest{}, access.Subject{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, access.Subject{}, err
	}
	return r, subject, nil
}
