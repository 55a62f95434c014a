package http

import (
	"net/http"
	"time"

	"github.com/chll-hr/leave-backend/internal/domain/leave"
	"github.com/chll-hr/leave-backend/internal/handler/http/response"
	"github.com/chll-hr/leave-backend/internal/pkg/ical"
	"github.com/chll-hr/leave-backend/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListCompanyLeaves(w http.ResponseWriter, r *http.Request)
	ListEmployeeLeaves(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)

	GetBalance(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	now          func() time.Time
}

// CreateType implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveTypeRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	lt, err := l.leaveService.CreateLeaveType(r.Context(), caller, chi.URLParam(r, "companyID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", lt)
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	types, err := l.leaveService.ListLeaveTypes(r.Context(), caller, chi.URLParam(r, "companyID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequestRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	// path parameters win over the body
	if id := chi.URLParam(r, "companyID"); id != "" {
		req.CompanyID = id
	}
	if id := chi.URLParam(r, "employeeID"); id != "" {
		req.EmployeeID = id
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := l.leaveService.CreateLeaveRequest(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

// ListCompanyLeaves implements LeaveHandler. from and to are required.
func (l *LeaveHandlerImpl) ListCompanyLeaves(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := leave.CompanyLeavesFilter{From: q.Get("from"), To: q.Get("to")}

	result, err := l.leaveService.ListCompanyLeaves(r.Context(), caller, chi.URLParam(r, "companyID"), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListEmployeeLeaves implements LeaveHandler.
func (l *LeaveHandlerImpl) ListEmployeeLeaves(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	leaves, err := l.leaveService.ListEmployeeLeaves(r.Context(), caller, chi.URLParam(r, "companyID"), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaves)
}

// ApproveRequest implements LeaveHandler. The body is optional.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req leave.DecisionRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	decided, err := l.leaveService.ApproveLeaveRequest(r.Context(), caller, chi.URLParam(r, "requestID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", decided)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	decided, err := l.leaveService.RejectLeaveRequest(r.Context(), caller, chi.URLParam(r, "requestID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected successfully", decided)
}

// GetBalance implements LeaveHandler. The window defaults to the current year.
func (l *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := leave.BalanceFilter{From: q.Get("from"), To: q.Get("to")}

	balance, err := l.leaveService.GetBalance(r.Context(), caller, chi.URLParam(r, "companyID"), chi.URLParam(r, "employeeID"), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// Calendar implements LeaveHandler.
func (l *LeaveHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	feed, err := l.leaveService.Calendar(r.Context(), caller, chi.URLParam(r, "companyID"), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", ical.ContentType)
	w.Header().Set("Content-Disposition", `inline; filename="leaves.ics"`)
	w.WriteHeader(http.StatusOK)
	if err := ical.Write(w, feed, l.now()); err != nil {
		logger.From(r.Context()).Error("Failed to write calendar", "error", err)
	}
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
		now:          time.Now,
	}
}
