package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/chll-hr/leave-backend/internal/domain/leave"
	"github.com/chll-hr/leave-backend/internal/pkg/calendar"
)

func (s *Store) FindLeaveType(ctx context.Context, id string) (leave.LeaveType, error) {
	defer s.rlock(ctx)()

	lt, ok := s.leaveTypes[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (s *Store) ListLeaveTypes(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	defer s.rlock(ctx)()

	var result []leave.LeaveType
	for _, lt := range s.leaveTypes {
		if lt.CompanyID == companyID {
			result = append(result, lt)
		}
	}
	slices.SortFunc(result, func(a, b leave.LeaveType) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), strings.Compare(a.ID, b.ID))
	})
	return result, nil
}

func (s *Store) CreateLeaveType(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	defer s.lock(ctx)()

	for _, existing := range s.leaveTypes {
		if existing.CompanyID == lt.CompanyID && strings.EqualFold(existing.Name, lt.Name) {
			return leave.LeaveType{}, leave.ErrLeaveTypeExists
		}
	}
	lt.ID, lt.CreatedAt, lt.UpdatedAt = s.stamp(lt.ID, lt.CreatedAt)
	s.leaveTypes[lt.ID] = lt
	return lt, nil
}

func (s *Store) FindLeaveRequest(ctx context.Context, id string) (leave.LeaveRequest, error) {
	defer s.rlock(ctx)()

	r, ok := s.leaveRequests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (s *Store) FindLeaveRequests(ctx context.Context, employeeID string, window calendar.Range) ([]leave.LeaveRequest, error) {
	defer s.rlock(ctx)()

	return s.filterRequests(func(r leave.LeaveRequest) bool {
		return r.EmployeeID == employeeID && r.Range().Overlaps(window)
	}), nil
}

func (s *Store) ListEmployeeLeaveRequests(ctx context.Context, companyID, employeeID string) ([]leave.LeaveRequest, error) {
	defer s.rlock(ctx)()

	return s.filterRequests(func(r leave.LeaveRequest) bool {
		return r.CompanyID == companyID && r.EmployeeID == employeeID
	}), nil
}

func (s *Store) ListCompanyLeaveRequests(ctx context.Context, companyID string, window calendar.Range) ([]leave.LeaveRequest, error) {
	defer s.rlock(ctx)()

	return s.filterRequests(func(r leave.LeaveRequest) bool {
		return r.CompanyID == companyID && r.Range().Overlaps(window)
	}), nil
}

func (s *Store) filterRequests(keep func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	var result []leave.LeaveRequest
	for _, r := range s.leaveRequests {
		if keep(r) {
			result = append(result, r)
		}
	}
	slices.SortFunc(result, func(a, b leave.LeaveRequest) int {
		return cmp.Or(a.Starting.Compare(b.Starting), strings.Compare(a.ID, b.ID))
	})
	return result
}

// SaveLeaveRequest re-checks overlap under the write lock, mirroring the
// exclusion constraint of the SQL schema.
func (s *Store) SaveLeaveRequest(ctx context.Context, r leave.LeaveRequest) (leave.LeaveRequest, error) {
	defer s.lock(ctx)()

	if r.Blocking() {
		for _, other := range s.leaveRequests {
			if other.ID != r.ID && other.EmployeeID == r.EmployeeID && other.Blocking() && other.Range().Overlaps(r.Range()) {
				return leave.LeaveRequest{}, leave.ErrOverlappingLeave
			}
		}
	}
	r.ID, r.CreatedAt, r.UpdatedAt = s.stamp(r.ID, r.CreatedAt)
	s.leaveRequests[r.ID] = r
	return r, nil
}

func (s *Store) UpdateLeaveRequestStatus(ctx context.Context, r leave.LeaveRequest) error {
	defer s.lock(ctx)()

	existing, ok := s.leaveRequests[r.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if existing.Status != leave.LeaveRequestStatusPending {
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	existing.Status = r.Status
	existing.ApprovedBy = r.ApprovedBy
	existing.DecidedAt = r.DecidedAt
	existing.UpdatedAt = s.now()
	s.leaveRequests[r.ID] = existing
	return nil
}
