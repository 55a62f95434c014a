package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/chll-hr/leave-backend/internal/domain/access"
	"github.com/chll-hr/leave-backend/internal/domain/leave"
)

// Calendar implements leave.LeaveService. Rejected requests are left out.
func (l *LeaveServiceImpl) Calendar(ctx context.Context, callerID, companyID, employeeID string) (leave.CalendarFeed, error) {
	subject, err := l.authz.Subject(ctx, callerID, companyID)
	if err != nil {
		return leave.CalendarFeed{}, err
	}
	if employeeID == "" {
		employeeID = callerID
	}
	target, err := l.authz.Target(ctx, companyID, employeeID)
	if err != nil {
		return leave.CalendarFeed{}, err
	}
	if !subject.CanViewDetails(target.Target()) {
		return leave.CalendarFeed{}, access.ErrAccessDenied
	}

	co, err := l.repos.Companies.FindCompany(ctx, companyID)
	if err != nil {
		return leave.CalendarFeed{}, err
	}
	e, err := l.repos.Employees.FindEmployee(ctx, employeeID)
	if err != nil {
		return leave.CalendarFeed{}, err
	}
	requests, err := l.repos.Requests.ListEmployeeLeaveRequests(ctx, companyID, employeeID)
	if err != nil {
		return leave.CalendarFeed{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	names, err := l.typeNames(ctx, companyID)
	if err != nil {
		return leave.CalendarFeed{}, err
	}

	loc := co.Location()
	feed := leave.CalendarFeed{
		Name:     "Chll - " + e.FullName(),
		Location: loc,
		Events:   make([]leave.CalendarEvent, 0, len(requests)),
	}
	for _, r := range requests {
		if !r.Blocking() {
			continue
		}
		feed.Events = append(feed.Events, l.event(r, e.FullName(), names, loc))
	}
	return feed, nil
}

func (l *LeaveServiceImpl) event(r leave.LeaveRequest, fullName string, names map[string]string, loc *time.Location) leave.CalendarEvent {
	ev := leave.CalendarEvent{
		UID:      r.ID + "@" + l.calendarDomain,
		Start:    r.Starting.In(loc),
		End:      r.Ending.In(loc),
		AllDay:   r.Range().IsAllDay(loc),
		Summary:  fullName + ": " + typeName(names, r.LeaveTypeID),
		Status:   leave.EventStatusOf(r.Status),
		Created:  r.CreatedAt,
		Modified: r.UpdatedAt,
	}
	if r.Reason != nil {
		ev.Description = *r.Reason
	}
	return ev
}
