package leave

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/chll-hr/leave-backend/internal/domain/access"
	"github.com/chll-hr/leave-backend/internal/domain/company"
	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/chll-hr/leave-backend/internal/domain/leave"
	"github.com/chll-hr/leave-backend/internal/pkg/calendar"
	"github.com/chll-hr/leave-backend/internal/repository/memory"
	accessService "github.com/chll-hr/leave-backend/internal/service/access"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu      sync.Mutex
	changes []leave.StatusChange
}

func (n *recordingNotifier) LeaveStatusChanged(_ context.Context, c leave.StatusChange) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, c)
}

type fixture struct {
	store    *memory.Store
	service  *LeaveServiceImpl
	notifier *recordingNotifier
	company  company.Company
	sales    company.Department
	owner    employee.Employee
	viewer   employee.Employee
	worker   employee.Employee
}

func newFixture(t *testing.T, allowance int) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	notifier := &recordingNotifier{}
	repos := Repositories{
		Companies:   store,
		Departments: store,
		Employees:   store,
		Memberships: store,
		LeaveTypes:  store,
		Requests:    store,
	}
	svc := NewLeaveService(store, repos, accessService.NewAuthorizer(store, store), notifier, "chll.test")
	svc.now = func() time.Time { return time.Date(2017, time.June, 1, 12, 0, 0, 0, time.UTC) }

	co, err := store.CreateCompany(ctx, company.Company{Name: "Acme", DefaultDaysOff: allowance, Timezone: "Europe/Prague"})
	require.NoError(t, err)
	sales, err := store.CreateDepartment(ctx, company.Department{CompanyID: co.ID, Name: "Sales"})
	require.NoError(t, err)

	f := fixture{store: store, service: svc, notifier: notifier, company: co, sales: sales}
	f.owner = f.member(t, "owner@acme.test", access.RoleOwner, nil)
	f.viewer = f.member(t, "viewer@acme.test", access.RoleViewer, nil)
	f.worker = f.member(t, "worker@acme.test", access.RoleViewer, &sales.ID)
	return f
}

func (f fixture) member(t *testing.T, email string, role access.Role, departmentID *string) employee.Employee {
	t.Helper()
	ctx := context.Background()
	e, err := f.store.CreateEmployee(ctx, employee.Employee{Email: email, FirstName: "Test", LastName: email})
	require.NoError(t, err)
	_, err = f.store.SaveMembership(ctx, employee.Membership{CompanyID: f.company.ID, EmployeeID: e.ID, Role: role, DepartmentID: departmentID})
	require.NoError(t, err)
	return e
}

func (f fixture) file(t *testing.T, employeeID, from, to string) leave.LeaveRequestResponse {
	t.Helper()
	resp, err := f.service.CreateLeaveRequest(context.Background(), employeeID, leave.CreateLeaveRequestRequest{
		CompanyID: f.company.ID,
		From:      from,
		To:        to,
	})
	require.NoError(t, err)
	return resp
}

func (f fixture) window(t *testing.T, from, to string) calendar.Range {
	t.Helper()
	w, err := parseWindow(from, to, f.company.Location())
	require.NoError(t, err)
	return w
}

func TestCreateLeaveRequest_Overlap(t *testing.T) {
	tests := []struct {
		name    string
		first   [2]string
		second  [2]string
		overlap bool
	}{
		{"sharing days", [2]string{"2017-01-01", "2017-01-05"}, [2]string{"2017-01-04", "2017-01-08"}, true},
		{"back to back", [2]string{"2017-01-01", "2017-01-05"}, [2]string{"2017-01-05", "2017-01-08"}, false},
		{"contained", [2]string{"2017-01-01", "2017-01-10"}, [2]string{"2017-01-03", "2017-01-04"}, true},
		{"before", [2]string{"2017-01-10", "2017-01-12"}, [2]string{"2017-01-01", "2017-01-10"}, false},
		{"half day inside", [2]string{"2017-01-01", "2017-01-05"}, [2]string{"2017-01-04T12:00:00+01:00", "2017-01-06"}, true},
		{"zero length", [2]string{"2017-01-01", "2017-01-05"}, [2]string{"2017-01-03", "2017-01-03"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 20)
			f.file(t, f.worker.ID, tt.first[0], tt.first[1])

			_, err := f.service.CreateLeaveRequest(context.Background(), f.worker.ID, leave.CreateLeaveRequestRequest{
				CompanyID: f.company.ID,
				From:      tt.second[0],
				To:        tt.second[1],
			})
			if tt.overlap {
				assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateLeaveRequest_RejectedDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 20)

	r := f.file(t, f.worker.ID, "2017-01-01", "2017-01-05")
	_, err := f.service.RejectLeaveRequest(ctx, f.owner.ID, r.ID)
	require.NoError(t, err)

	f.file(t, f.worker.ID, "2017-01-02", "2017-01-04")
}

// racyRequests hides existing requests from the pre-check so only the
// repository can catch the conflict.
type racyRequests struct {
	*memory.Store
}

func (racyRequests) FindLeaveRequests(context.Context, string, calendar.Range) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func TestCreateLeaveRequest_ConflictAtCommit(t *testing.T) {
	f := newFixture(t, 20)
	f.service.repos.Requests = racyRequests{f.store}

	f.file(t, f.worker.ID, "2017-01-01", "2017-01-05")
	_, err := f.service.CreateLeaveRequest(context.Background(), f.worker.ID, leave.CreateLeaveRequestRequest{
		CompanyID: f.company.ID,
		From:      "2017-01-03",
		To:        "2017-01-04",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestCreateLeaveRequest_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 20)

	t.Run("end before start", func(t *testing.T) {
		_, err := f.service.CreateLeaveRequest(ctx, f.worker.ID, leave.CreateLeaveRequestRequest{
			CompanyID: f.company.ID, From: "2017-01-05", To: "2017-01-01",
		})
		assert.ErrorIs(t, err, leave.ErrInvalidRange)
	})

	t.Run("viewer files for a colleague", func(t *testing.T) {
		_, err := f.service.CreateLeaveRequest(ctx, f.viewer.ID, leave.CreateLeaveRequestRequest{
			CompanyID: f.company.ID, EmployeeID: f.worker.ID, From: "2017-01-01", To: "2017-01-02",
		})
		assert.ErrorIs(t, err, access.ErrAccessDenied)
	})

	t.Run("owner files for a colleague", func(t *testing.T) {
		resp, err := f.service.CreateLeaveRequest(ctx, f.owner.ID, leave.CreateLeaveRequestRequest{
			CompanyID: f.company.ID, EmployeeID: f.worker.ID, From: "2017-02-01", To: "2017-02-02",
		})
		require.NoError(t, err)
		assert.Equal(t, f.worker.ID, resp.EmployeeID)
		assert.Equal(t, leave.LeaveRequestStatusPending, resp.Status)
		assert.True(t, resp.AllDay)
		assert.True(t, decimal.NewFromInt(1).Equal(resp.Days))
	})

	t.Run("leave type of another company", func(t *testing.T) {
		other, err := f.store.CreateCompany(ctx, company.Company{Name: "Globex"})
		require.NoError(t, err)
		lt, err := f.store.CreateLeaveType(ctx, leave.LeaveType{CompanyID: other.ID, Name: "Sick"})
		require.NoError(t, err)

		_, err = f.service.CreateLeaveRequest(ctx, f.worker.ID, leave.CreateLeaveRequestRequest{
			CompanyID: f.company.ID, LeaveTypeID: &lt.ID, From: "2017-03-01", To: "2017-03-02",
		})
		assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
	})
}

func TestCreateLeaveRequest_ForeignCompanyIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 20)

	other, err := f.store.CreateCompany(ctx, company.Company{Name: "Globex", DefaultDaysOff: 10})
	require.NoError(t, err)
	stranger, err := f.store.CreateEmployee(ctx, employee.Employee{Email: "s@globex.test", FirstName: "S", LastName: "Tranger"})
	require.NoError(t, err)
	_, err = f.store.SaveMembership(ctx, employee.Membership{CompanyID: other.ID, EmployeeID: stranger.ID, Role: access.RoleOwner})
	require.NoError(t, err)

	// caller outside the company
	_, err = f.service.CreateLeaveRequest(ctx, stranger.ID, leave.CreateLeaveRequestRequest{
		CompanyID: f.company.ID, EmployeeID: f.worker.ID, From: "2017-01-01", To: "2017-01-02",
	})
	assert.ErrorIs(t, err, access.ErrNotFound)

	// target outside the company
	_, err = f.service.CreateLeaveRequest(ctx, f.owner.ID, leave.CreateLeaveRequestRequest{
		CompanyID: f.company.ID, EmployeeID: stranger.ID, From: "2017-01-01", To: "2017-01-02",
	})
	assert.ErrorIs(t, err, access.ErrNotFound)

	r := f.file(t, f.worker.ID, "2017-01-01", "2017-01-02")
	_, err = f.service.ApproveLeaveRequest(ctx, stranger.ID, r.ID, leave.DecisionRequest{})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestRemainingDays_ClipsToWindow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 100)

	r := f.file(t, f.worker.ID, "2017-04-25", "2017-05-14")
	assert.True(t, decimal.NewFromInt(19).Equal(r.Days))
	_, err := f.service.ApproveLeaveRequest(ctx, f.owner.ID, r.ID, leave.DecisionRequest{})
	require.NoError(t, err)

	b, err := f.service.RemainingDays(ctx, f.worker.ID, f.company.ID, f.window(t, "2017-05-01", "2017-05-31"))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(b.Allowance))
	assert.True(t, decimal.NewFromInt(13).Equal(b.Consumed))
	assert.True(t, decimal.NewFromInt(87).Equal(b.Remaining), "got %s", b.Remaining)
	assert.False(t, b.Overdrawn)
}

func TestRemainingDays_Monotonic(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 30)
	window := f.window(t, "2017-01-01", "2018-01-01")

	remaining := func() decimal.Decimal {
		b, err := f.service.RemainingDays(ctx, f.worker.ID, f.company.ID, window)
		require.NoError(t, err)
		return b.Remaining
	}
	last := remaining()
	assert.True(t, decimal.NewFromInt(30).Equal(last))

	// pending and rejected requests leave the balance alone
	pending := f.file(t, f.worker.ID, "2017-02-01", "2017-02-03")
	rejected := f.file(t, f.worker.ID, "2017-03-01", "2017-03-03")
	_, err := f.service.RejectLeaveRequest(ctx, f.owner.ID, rejected.ID)
	require.NoError(t, err)
	assert.True(t, last.Equal(remaining()))

	b, err := f.service.RemainingDays(ctx, f.worker.ID, f.company.ID, window)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2).Equal(b.Pending))

	_, err = f.service.ApproveLeaveRequest(ctx, f.owner.ID, pending.ID, leave.DecisionRequest{})
	require.NoError(t, err)

	for _, p := range [][2]string{
		{"2017-04-03", "2017-04-07"},
		{"2017-07-10T09:00:00+02:00", "2017-07-10T21:00:00+02:00"},
		{"2017-12-30", "2018-01-03"},
	} {
		r := f.file(t, f.worker.ID, p[0], p[1])
		_, err := f.service.ApproveLeaveRequest(ctx, f.owner.ID, r.ID, leave.DecisionRequest{})
		require.NoError(t, err)

		now := remaining()
		assert.True(t, now.LessThan(last), "%s not below %s", now, last)
		last = now
	}
	// 30 - 2 - 4 - 0.5 - 2 (only the 2017 part of the last one)
	assert.True(t, decimal.RequireFromString("21.5").Equal(last), "got %s", last)
}

func TestRemainingDays_DepartmentOverrideAndAdjustment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 20)

	days := 25
	f.sales.DaysOff = &days
	require.NoError(t, f.store.UpdateDepartment(ctx, f.sales))

	b, err := f.service.RemainingDays(ctx, f.worker.ID, f.company.ID, f.window(t, "2017-01-01", "2018-01-01"))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(b.Allowance))

	b, err = f.service.RemainingDays(ctx, f.viewer.ID, f.company.ID, f.window(t, "2017-01-01", "2018-01-01"))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(b.Allowance))

	_, err = f.service.RemainingDays(ctx, f.worker.ID, f.company.ID, calendar.Range{
		Start: time.Date(2017, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, leave.ErrInvalidRange)
}

func TestApproveLeaveRequest_Allowance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5)
	boss := f.member(t, "boss@acme.test", access.RoleViewer, nil)
	f.sales.BossID = &boss.ID
	require.NoError(t, f.store.UpdateDepartment(ctx, f.sales))

	r := f.file(t, f.worker.ID, "2017-03-06", "2017-03-16")

	_, err := f.service.ApproveLeaveRequest(ctx, f.owner.ID, r.ID, leave.DecisionRequest{})
	assert.ErrorIs(t, err, leave.ErrBalanceExceeded)

	_, err = f.service.ApproveLeaveRequest(ctx, boss.ID, r.ID, leave.DecisionRequest{Override: true})
	assert.ErrorIs(t, err, access.ErrAccessDenied)

	_, err = f.service.ApproveLeaveRequest(ctx, f.viewer.ID, r.ID, leave.DecisionRequest{})
	assert.ErrorIs(t, err, access.ErrAccessDenied)

	resp, err := f.service.ApproveLeaveRequest(ctx, f.owner.ID, r.ID, leave.DecisionRequest{Override: true})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, f.owner.ID, *resp.ApprovedBy)

	balance, err := f.service.GetBalance(ctx, f.worker.ID, f.company.ID, "", leave.BalanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, "2017-01-01", balance.From)
	assert.Equal(t, "2018-01-01", balance.To)
	assert.True(t, decimal.NewFromInt(-5).Equal(balance.Remaining), "got %s", balance.Remaining)
	assert.True(t, balance.Overdrawn)

	_, err = f.service.RejectLeaveRequest(ctx, f.owner.ID, r.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	require.Len(t, f.notifier.changes, 1)
	change := f.notifier.changes[0]
	assert.Equal(t, r.ID, change.RequestID)
	assert.Equal(t, leave.LeaveRequestStatusApproved, change.Status)
	assert.Equal(t, "worker@acme.test", change.EmployeeEmail)
	assert.Equal(t, "Acme", change.CompanyName)
}

func TestApproveLeaveRequest_Boss(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 20)
	boss := f.member(t, "boss@acme.test", access.RoleViewer, &f.sales.ID)
	f.sales.BossID = &boss.ID
	require.NoError(t, f.store.UpdateDepartment(ctx, f.sales))

	r := f.file(t, f.worker.ID, "2017-03-06", "2017-03-08")
	resp, err := f.service.ApproveLeaveRequest(ctx, boss.ID, r.ID, leave.DecisionRequest{})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, resp.Status)

	own := f.file(t, boss.ID, "2017-03-06", "2017-03-08")
	_, err = f.service.ApproveLeaveRequest(ctx, boss.ID, own.ID, leave.DecisionRequest{})
	assert.ErrorIs(t, err, access.ErrAccessDenied)

	_, err = f.service.ApproveLeaveRequest(ctx, f.owner.ID, "missing", leave.DecisionRequest{})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestApproveLeaveRequest_OwnRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 20)

	r := f.file(t, f.owner.ID, "2017-03-01", "2017-03-03")

	_, err := f.service.ApproveLeaveRequest(ctx, f.owner.ID, r.ID, leave.DecisionRequest{})
	assert.ErrorIs(t, err, access.ErrAccessDenied)
	_, err = f.service.RejectLeaveRequest(ctx, f.owner.ID, r.ID)
	assert.ErrorIs(t, err, access.ErrAccessDenied)

	admin := f.member(t, "admin@acme.test", access.RoleAdmin, nil)
	resp, err := f.service.ApproveLeaveRequest(ctx, admin.ID, r.ID, leave.DecisionRequest{})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, resp.Status)
	assert.Len(t, f.notifier.changes, 1)
}

func TestListCompanyLeaves_Visibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 20)
	reason := "family trip"

	_, err := f.service.CreateLeaveRequest(ctx, f.worker.ID, leave.CreateLeaveRequestRequest{
		CompanyID: f.company.ID, From: "2017-05-02", To: "2017-05-05", Reason: &reason,
	})
	require.NoError(t, err)
	f.file(t, f.viewer.ID, "2017-05-10", "2017-05-11")
	f.file(t, f.owner.ID, "2017-07-01", "2017-07-02")

	find := func(resp leave.ListCompanyLeavesResponse, id string) leave.EmployeeLeaves {
		for _, e := range resp.Employees {
			if e.Employee.ID == id {
				return e
			}
		}
		t.Fatalf("employee %s missing from listing", id)
		return leave.EmployeeLeaves{}
	}
	filter := leave.CompanyLeavesFilter{From: "2017-05-01", To: "2017-06-01"}

	asViewer, err := f.service.ListCompanyLeaves(ctx, f.viewer.ID, f.company.ID, filter)
	require.NoError(t, err)
	require.Len(t, asViewer.Employees, 2)
	colleague := find(asViewer, f.worker.ID)
	assert.Nil(t, colleague.Remaining)
	require.Len(t, colleague.Leaves, 1)
	assert.Nil(t, colleague.Leaves[0].Reason)
	require.NotNil(t, colleague.Department)
	assert.Equal(t, "Sales", colleague.Department.Name)
	assert.NotNil(t, find(asViewer, f.viewer.ID).Remaining)

	asOwner, err := f.service.ListCompanyLeaves(ctx, f.owner.ID, f.company.ID, filter)
	require.NoError(t, err)
	colleague = find(asOwner, f.worker.ID)
	require.NotNil(t, colleague.Remaining)
	assert.True(t, decimal.NewFromInt(20).Equal(*colleague.Remaining))
	require.NotNil(t, colleague.Leaves[0].Reason)
	assert.Equal(t, reason, *colleague.Leaves[0].Reason)

	_, err = f.service.ListCompanyLeaves(ctx, f.owner.ID, f.company.ID, leave.CompanyLeavesFilter{})
	assert.ErrorIs(t, err, leave.ErrInvalidRange)
	_, err = f.service.ListCompanyLeaves(ctx, f.owner.ID, f.company.ID, leave.CompanyLeavesFilter{From: "2017-06-01", To: "2017-05-01"})
	assert.ErrorIs(t, err, leave.ErrInvalidRange)
}

func TestListEmployeeLeaves_HidesReason(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 20)
	reason := "dentist"

	_, err := f.service.CreateLeaveRequest(ctx, f.worker.ID, leave.CreateLeaveRequestRequest{
		CompanyID: f.company.ID, From: "2017-05-02T08:00:00+02:00", To: "2017-05-02T16:00:00+02:00", Reason: &reason,
	})
	require.NoError(t, err)

	mine, err := f.service.ListEmployeeLeaves(ctx, f.worker.ID, f.company.ID, "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Reason)
	assert.False(t, mine[0].AllDay)
	assert.True(t, decimal.RequireFromString("0.5").Equal(mine[0].Days))

	theirs, err := f.service.ListEmployeeLeaves(ctx, f.viewer.ID, f.company.ID, f.worker.ID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Nil(t, theirs[0].Reason)

	_, err = f.service.GetBalance(ctx, f.viewer.ID, f.company.ID, f.worker.ID, leave.BalanceFilter{})
	assert.ErrorIs(t, err, access.ErrAccessDenied)
}

func TestCalendar(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 20)
	lt, err := f.service.CreateLeaveType(ctx, f.owner.ID, f.company.ID, leave.CreateLeaveTypeRequest{Name: "Sick"})
	require.NoError(t, err)

	holiday := f.file(t, f.worker.ID, "2017-05-02", "2017-05-05")
	_, err = f.service.ApproveLeaveRequest(ctx, f.owner.ID, holiday.ID, leave.DecisionRequest{})
	require.NoError(t, err)

	sick, err := f.service.CreateLeaveRequest(ctx, f.worker.ID, leave.CreateLeaveRequestRequest{
		CompanyID: f.company.ID, LeaveTypeID: &lt.ID, From: "2017-06-01T13:00:00+02:00", To: "2017-06-01T17:00:00+02:00",
	})
	require.NoError(t, err)

	rejected := f.file(t, f.worker.ID, "2017-07-01", "2017-07-03")
	_, err = f.service.RejectLeaveRequest(ctx, f.owner.ID, rejected.ID)
	require.NoError(t, err)

	feed, err := f.service.Calendar(ctx, f.worker.ID, f.company.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Chll - Test worker@acme.test", feed.Name)
	assert.Equal(t, "Europe/Prague", feed.Location.String())
	require.Len(t, feed.Events, 2)

	first := feed.Events[0]
	assert.Equal(t, holiday.ID+"@chll.test", first.UID)
	assert.True(t, first.AllDay)
	assert.Equal(t, leave.EventStatusConfirmed, first.Status)
	assert.Equal(t, "Test worker@acme.test: Holiday", first.Summary)
	assert.Equal(t, "2017-05-05", calendar.FormatDate(first.End, feed.Location))

	second := feed.Events[1]
	assert.Equal(t, sick.ID+"@chll.test", second.UID)
	assert.False(t, second.AllDay)
	assert.Equal(t, leave.EventStatusTentative, second.Status)
	assert.Equal(t, "Test worker@acme.test: Sick", second.Summary)

	_, err = f.service.Calendar(ctx, f.viewer.ID, f.company.ID, f.worker.ID)
	assert.ErrorIs(t, err, access.ErrAccessDenied)
}

func TestLeaveTypes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 20)

	_, err := f.service.CreateLeaveType(ctx, f.viewer.ID, f.company.ID, leave.CreateLeaveTypeRequest{Name: "Sick"})
	assert.ErrorIs(t, err, access.ErrAccessDenied)

	_, err = f.service.CreateLeaveType(ctx, f.owner.ID, f.company.ID, leave.CreateLeaveTypeRequest{Name: "Sick"})
	require.NoError(t, err)
	_, err = f.service.CreateLeaveType(ctx, f.owner.ID, f.company.ID, leave.CreateLeaveTypeRequest{Name: "sick"})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeExists)

	types, err := f.service.ListLeaveTypes(ctx, f.viewer.ID, f.company.ID)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "Sick", types[0].Name)
}
