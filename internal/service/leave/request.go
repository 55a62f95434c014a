package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/chll-hr/leave-backend/internal/domain/access"
	"github.com/chll-hr/leave-backend/internal/domain/company"
	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/chll-hr/leave-backend/internal/domain/leave"
	"github.com/chll-hr/leave-backend/internal/pkg/calendar"
	"github.com/chll-hr/leave-backend/internal/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// CreateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, callerID string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	log := logger.From(ctx).With("company_id", req.CompanyID, "caller_id", callerID)
	log.Debug("creating leave request")

	// Caller and target must both belong to the company
	subject, err := l.authz.Subject(ctx, callerID, req.CompanyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = callerID
	}
	target, err := l.authz.Target(ctx, req.CompanyID, employeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !subject.CanFileFor(target.Target()) {
		log.Warn("leave request for another employee denied", "employee_id", employeeID)
		return leave.LeaveRequestResponse{}, access.ErrAccessDenied
	}

	co, err := l.repos.Companies.FindCompany(ctx, req.CompanyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	loc := co.Location()

	// Dates are read in the company zone
	start, err := calendar.ParseInstant(req.From, loc)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("%w: %v", leave.ErrInvalidRange, err)
	}
	end, err := calendar.ParseInstant(req.To, loc)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("%w: %v", leave.ErrInvalidRange, err)
	}
	period, err := calendar.NewRange(start, end)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if req.LeaveTypeID != nil {
		lt, err := l.repos.LeaveTypes.FindLeaveType(ctx, *req.LeaveTypeID)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		if lt.CompanyID != req.CompanyID {
			return leave.LeaveRequestResponse{}, leave.ErrLeaveTypeNotFound
		}
	}

	var saved leave.LeaveRequest
	err = l.retry.Do(ctx, func(ctx context.Context) error {
		return l.tx.WithinTx(ctx, func(ctx context.Context) error {
			// Overlap is checked across every company the employee works for
			existing, err := l.repos.Requests.FindLeaveRequests(ctx, employeeID, period)
			if err != nil {
				return fmt.Errorf("failed to find leave requests: %w", err)
			}
			for _, r := range existing {
				if r.Blocking() {
					return leave.ErrOverlappingLeave
				}
			}

			saved, err = l.repos.Requests.SaveLeaveRequest(ctx, leave.LeaveRequest{
				ID:          uuid.Must(uuid.NewV7()).String(),
				EmployeeID:  employeeID,
				CompanyID:   req.CompanyID,
				LeaveTypeID: req.LeaveTypeID,
				Starting:    period.Start,
				Ending:      period.End,
				Reason:      req.Reason,
				Status:      leave.LeaveRequestStatusPending,
			})
			return err
		})
	})
	if err != nil {
		if errors.Is(err, leave.ErrOverlappingLeave) {
			log.Warn("overlapping leave request rejected", "employee_id", employeeID)
		}
		return leave.LeaveRequestResponse{}, err
	}

	names, err := l.typeNames(ctx, req.CompanyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	log.Info("leave request created", "request_id", saved.ID, "employee_id", employeeID)
	return toResponse(saved, names, loc, true), nil
}

// ListCompanyLeaves implements leave.LeaveService. Every member sees the
// dates; reason and remaining balance only show where the caller may see
// details.
func (l *LeaveServiceImpl) ListCompanyLeaves(ctx context.Context, callerID, companyID string, filter leave.CompanyLeavesFilter) (leave.ListCompanyLeavesResponse, error) {
	subject, err := l.authz.Subject(ctx, callerID, companyID)
	if err != nil {
		return leave.ListCompanyLeavesResponse{}, err
	}

	co, err := l.repos.Companies.FindCompany(ctx, companyID)
	if err != nil {
		return leave.ListCompanyLeavesResponse{}, err
	}
	loc := co.Location()

	window, err := parseWindow(filter.From, filter.To, loc)
	if err != nil {
		return leave.ListCompanyLeavesResponse{}, err
	}

	requests, err := l.repos.Requests.ListCompanyLeaveRequests(ctx, companyID, window)
	if err != nil {
		return leave.ListCompanyLeavesResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	members, err := l.repos.Memberships.ListMembers(ctx, companyID)
	if err != nil {
		return leave.ListCompanyLeavesResponse{}, fmt.Errorf("failed to list members: %w", err)
	}
	departments, err := l.repos.Departments.ListDepartments(ctx, companyID)
	if err != nil {
		return leave.ListCompanyLeavesResponse{}, fmt.Errorf("failed to list departments: %w", err)
	}
	names, err := l.typeNames(ctx, companyID)
	if err != nil {
		return leave.ListCompanyLeavesResponse{}, err
	}

	byEmployee := make(map[string][]leave.LeaveRequest)
	for _, r := range requests {
		byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
	}
	deptByID := make(map[string]company.Department, len(departments))
	for _, d := range departments {
		deptByID[d.ID] = d
	}

	// Group in roster order; former members drop out of the listing
	var (
		groups  []leave.EmployeeLeaves
		owners  []employee.Membership
		details []bool
	)
	for _, m := range members {
		reqs, ok := byEmployee[m.Employee.ID]
		if !ok {
			continue
		}
		visible := subject.CanViewDetails(m.Membership.Target())

		group := leave.EmployeeLeaves{
			Employee: leave.EmployeeRef{
				ID:        m.Employee.ID,
				Email:     m.Employee.Email,
				FirstName: m.Employee.FirstName,
				LastName:  m.Employee.LastName,
			},
			Leaves: make([]leave.LeaveRequestResponse, 0, len(reqs)),
		}
		if m.Membership.DepartmentID != nil {
			if d, ok := deptByID[*m.Membership.DepartmentID]; ok {
				group.Department = &leave.DepartmentRef{ID: d.ID, Name: d.Name}
			}
		}
		for _, r := range reqs {
			group.Leaves = append(group.Leaves, toResponse(r, names, loc, visible))
		}

		groups = append(groups, group)
		owners = append(owners, m.Membership)
		details = append(details, visible)
	}

	// Balances are independent reads, fetch them concurrently
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.balanceWorkers)
	for i := range groups {
		if !details[i] {
			continue
		}
		g.Go(func() error {
			b, err := l.balance(gctx, co, owners[i], window)
			if err != nil {
				return err
			}
			groups[i].Remaining = &b.Remaining
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return leave.ListCompanyLeavesResponse{}, err
	}

	if groups == nil {
		groups = []leave.EmployeeLeaves{}
	}
	return leave.ListCompanyLeavesResponse{
		CompanyID: companyID,
		From:      calendar.FormatDate(window.Start, loc),
		To:        calendar.FormatDate(window.End, loc),
		Employees: groups,
	}, nil
}

// ListEmployeeLeaves implements leave.LeaveService.
func (l *LeaveServiceImpl) ListEmployeeLeaves(ctx context.Context, callerID, companyID, employeeID string) ([]leave.LeaveRequestResponse, error) {
	subject, err := l.authz.Subject(ctx, callerID, companyID)
	if err != nil {
		return nil, err
	}
	if employeeID == "" {
		employeeID = callerID
	}
	target, err := l.authz.Target(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	co, err := l.repos.Companies.FindCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	requests, err := l.repos.Requests.ListEmployeeLeaveRequests(ctx, companyID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	names, err := l.typeNames(ctx, companyID)
	if err != nil {
		return nil, err
	}

	details := subject.CanViewDetails(target.Target())
	result := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, toResponse(r, names, co.Location(), details))
	}
	return result, nil
}

// ApproveLeaveRequest implements leave.LeaveService. Approving past the
// allowance needs req.Override and the override capability.
func (l *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, callerID, requestID string, req leave.DecisionRequest) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, callerID, requestID, leave.LeaveRequestStatusApproved, req.Override)
}

// RejectLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, callerID, requestID string) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, callerID, requestID, leave.LeaveRequestStatusRejected, false)
}

func (l *LeaveServiceImpl) decide(ctx context.Context, callerID, requestID string, status leave.LeaveRequestStatus, override bool) (leave.LeaveRequestResponse, error) {
	log := logger.From(ctx).With("request_id", requestID, "caller_id", callerID)

	r, subject, err := l.findRequest(ctx, callerID, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	target, err := l.authz.Target(ctx, r.CompanyID, r.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !subject.CanApprove(target.Target()) {
		log.Warn("leave decision denied")
		return leave.LeaveRequestResponse{}, access.ErrAccessDenied
	}
	if r.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	if override {
		if err := subject.Require(access.ActionOverrideBalance); err != nil {
			return leave.LeaveRequestResponse{}, err
		}
	}

	co, err := l.repos.Companies.FindCompany(ctx, r.CompanyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	loc := co.Location()

	err = l.retry.Do(ctx, func(ctx context.Context) error {
		return l.tx.WithinTx(ctx, func(ctx context.Context) error {
			if status == leave.LeaveRequestStatusApproved {
				if err := l.checkAllowance(ctx, co, target, r, override); err != nil {
					return err
				}
			}

			decidedAt := l.now()
			r.Status = status
			r.ApprovedBy = &callerID
			r.DecidedAt = &decidedAt
			return l.repos.Requests.UpdateLeaveRequestStatus(ctx, r)
		})
	})
	if err != nil {
		if errors.Is(err, leave.ErrBalanceExceeded) {
			log.Warn("approval would exceed allowance")
		}
		return leave.LeaveRequestResponse{}, err
	}
	log.Info("leave request decided", "status", status)

	l.notify(ctx, co, r)

	names, err := l.typeNames(ctx, r.CompanyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return toResponse(r, names, loc, subject.CanViewDetails(target.Target())), nil
}

// checkAllowance verifies every calendar year touched by r still has room
// for it once approved.
func (l *LeaveServiceImpl) checkAllowance(ctx context.Context, co company.Company, m employee.Membership, r leave.LeaveRequest, override bool) error {
	loc := co.Location()
	if r.Range().IsEmpty() {
		return nil
	}

	for year := yearOf(r.Starting, loc); year.Start.Before(r.Ending); year = yearOf(year.End, loc) {
		b, err := l.balance(ctx, co, m, year)
		if err != nil {
			return err
		}
		clipped, ok := r.Range().Clip(year)
		if !ok {
			continue
		}
		after := b.Remaining.Sub(clipped.Days(loc))
		if !after.IsNegative() {
			continue
		}
		if !override {
			return leave.ErrBalanceExceeded
		}
		logger.From(ctx).Warn("leave approved beyond allowance",
			"request_id", r.ID,
			"employee_id", r.EmployeeID,
			"year", year.Start.Year(),
			"remaining", after.String(),
		)
	}
	return nil
}

// notify hands the decision to the notifier. Lookup failures are logged and
// never reach the approver.
func (l *LeaveServiceImpl) notify(ctx context.Context, co company.Company, r leave.LeaveRequest) {
	if l.notifier == nil {
		return
	}

	e, err := l.repos.Employees.FindEmployee(ctx, r.EmployeeID)
	if err != nil {
		logger.From(ctx).Error("failed to load employee for notification", "request_id", r.ID, "error", err)
		return
	}

	decidedBy := ""
	if r.ApprovedBy != nil {
		decidedBy = *r.ApprovedBy
	}
	l.notifier.LeaveStatusChanged(context.WithoutCancel(ctx), leave.StatusChange{
		RequestID:     r.ID,
		CompanyID:     co.ID,
		CompanyName:   co.Name,
		EmployeeID:    e.ID,
		EmployeeEmail: e.Email,
		EmployeeName:  e.FullName(),
		Status:        r.Status,
		Starting:      r.Starting,
		Ending:        r.Ending,
		Location:      co.Location(),
		DecidedBy:     decidedBy,
	})
}
