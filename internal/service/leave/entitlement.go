package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/chll-hr/leave-backend/internal/domain/access"
	"github.com/chll-hr/leave-backend/internal/domain/company"
	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/chll-hr/leave-backend/internal/domain/leave"
	"github.com/chll-hr/leave-backend/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// RemainingDays implements leave.LeaveService. It only reads.
func (l *LeaveServiceImpl) RemainingDays(ctx context.Context, employeeID, companyID string, window calendar.Range) (leave.Balance, error) {
	if window.End.Before(window.Start) {
		return leave.Balance{}, leave.ErrInvalidRange
	}

	co, err := l.repos.Companies.FindCompany(ctx, companyID)
	if err != nil {
		return leave.Balance{}, err
	}
	m, err := l.repos.Memberships.FindMembership(ctx, companyID, employeeID)
	if err != nil {
		return leave.Balance{}, err
	}
	return l.balance(ctx, co, m, window)
}

// GetBalance implements leave.LeaveService. Without a window the current
// calendar year of the company applies.
func (l *LeaveServiceImpl) GetBalance(ctx context.Context, callerID, companyID, employeeID string, filter leave.BalanceFilter) (leave.BalanceResponse, error) {
	subject, err := l.authz.Subject(ctx, callerID, companyID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	if employeeID == "" {
		employeeID = callerID
	}
	target, err := l.authz.Target(ctx, companyID, employeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	if !subject.CanViewDetails(target.Target()) {
		return leave.BalanceResponse{}, access.ErrAccessDenied
	}

	co, err := l.repos.Companies.FindCompany(ctx, companyID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	loc := co.Location()

	window := yearOf(l.now(), loc)
	if filter.From != "" || filter.To != "" {
		window, err = parseWindow(filter.From, filter.To, loc)
		if err != nil {
			return leave.BalanceResponse{}, err
		}
	}

	b, err := l.balance(ctx, co, target, window)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	return leave.BalanceResponse{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		From:       calendar.FormatDate(window.Start, loc),
		To:         calendar.FormatDate(window.End, loc),
		Allowance:  b.Allowance,
		Consumed:   b.Consumed,
		Pending:    b.Pending,
		Remaining:  b.Remaining,
		Overdrawn:  b.Overdrawn,
	}, nil
}

// balance loads what computeBalance needs for one membership.
func (l *LeaveServiceImpl) balance(ctx context.Context, co company.Company, m employee.Membership, window calendar.Range) (leave.Balance, error) {
	var dept *company.Department
	if m.DepartmentID != nil {
		d, err := l.repos.Departments.FindDepartment(ctx, *m.DepartmentID)
		if err != nil {
			return leave.Balance{}, fmt.Errorf("failed to get department: %w", err)
		}
		dept = &d
	}

	requests, err := l.repos.Requests.FindLeaveRequests(ctx, m.EmployeeID, window)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to find leave requests: %w", err)
	}

	allowance := decimal.NewFromInt(int64(co.Allowance(dept))).Add(m.DaysOffAdjustment)
	return computeBalance(allowance, co.ID, requests, window, co.Location()), nil
}

// computeBalance counts the part of each request of companyID that falls
// inside window. Approved requests are consumed, pending ones are reported
// apart and rejected ones are ignored.
func computeBalance(allowance decimal.Decimal, companyID string, requests []leave.LeaveRequest, window calendar.Range, loc *time.Location) leave.Balance {
	consumed, pending := decimal.Zero, decimal.Zero

	for _, r := range requests {
		if r.CompanyID != companyID {
			continue
		}
		clipped, ok := r.Range().Clip(window)
		if !ok {
			continue
		}
		switch r.Status {
		case leave.LeaveRequestStatusApproved:
			consumed = consumed.Add(clipped.Days(loc))
		case leave.LeaveRequestStatusPending:
			pending = pending.Add(clipped.Days(loc))
		}
	}

	remaining := allowance.Sub(consumed)
	return leave.Balance{
		Allowance: allowance,
		Consumed:  consumed,
		Pending:   pending,
		Remaining: remaining,
		Overdrawn: remaining.IsNegative(),
	}
}
