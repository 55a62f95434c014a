// Package memory keeps every aggregate in process memory. It backs tests and
// the development server when no database is configured.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/chll-hr/leave-backend/internal/domain/company"
	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/chll-hr/leave-backend/internal/domain/leave"
	"github.com/google/uuid"
)

type memberKey struct {
	CompanyID  string
	EmployeeID string
}

type Store struct {
	mu sync.RWMutex

	companies     map[string]company.Company
	departments   map[string]company.Department
	employees     map[string]employee.Employee
	memberships   map[memberKey]employee.Membership
	leaveTypes    map[string]leave.LeaveType
	leaveRequests map[string]leave.LeaveRequest

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		companies:     make(map[string]company.Company),
		departments:   make(map[string]company.Department),
		employees:     make(map[string]employee.Employee),
		memberships:   make(map[memberKey]employee.Membership),
		leaveTypes:    make(map[string]leave.LeaveType),
		leaveRequests: make(map[string]leave.LeaveRequest),
		now:           time.Now,
	}
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// lock takes the write lock unless ctx already runs inside WithinTx.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) rlock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

// WithinTx runs fn holding the write lock. State is restored if fn fails.
// Nested calls join the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	companies     map[string]company.Company
	departments   map[string]company.Department
	employees     map[string]employee.Employee
	memberships   map[memberKey]employee.Membership
	leaveTypes    map[string]leave.LeaveType
	leaveRequests map[string]leave.LeaveRequest
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		companies:     maps.Clone(s.companies),
		departments:   maps.Clone(s.departments),
		employees:     maps.Clone(s.employees),
		memberships:   maps.Clone(s.memberships),
		leaveTypes:    maps.Clone(s.leaveTypes),
		leaveRequests: maps.Clone(s.leaveRequests),
	}
}

func (s *Store) restore(snap snapshot) {
	s.companies = snap.companies
	s.departments = snap.departments
	s.employees = snap.employees
	s.memberships = snap.memberships
	s.leaveTypes = snap.leaveTypes
	s.leaveRequests = snap.leaveRequests
}

func (s *Store) stamp(id string, createdAt time.Time) (string, time.Time, time.Time) {
	now := s.now()
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}
	if createdAt.IsZero() {
		createdAt = now
	}
	return id, createdAt, now
}
