package employee

import (
	"context"
	"testing"

	"github.com/chll-hr/leave-backend/internal/domain/access"
	"github.com/chll-hr/leave-backend/internal/domain/company"
	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/chll-hr/leave-backend/internal/repository/memory"
	accessService "github.com/chll-hr/leave-backend/internal/service/access"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   *memory.Store
	service *EmployeeServiceImpl
	company company.Company
	sales   company.Department
	owner   employee.Employee
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewEmployeeService(store, store, store, store, store, accessService.NewAuthorizer(store, store))

	co, err := store.CreateCompany(ctx, company.Company{Name: "Acme", DefaultDaysOff: 20, Timezone: "Europe/Prague"})
	require.NoError(t, err)
	days := 25
	sales, err := store.CreateDepartment(ctx, company.Department{CompanyID: co.ID, Name: "Sales", DaysOff: &days})
	require.NoError(t, err)
	owner, err := store.CreateEmployee(ctx, employee.Employee{Email: "owner@acme.test", FirstName: "Olga", LastName: "Owner"})
	require.NoError(t, err)
	_, err = store.SaveMembership(ctx, employee.Membership{CompanyID: co.ID, EmployeeID: owner.ID, Role: access.RoleOwner})
	require.NoError(t, err)

	return fixture{store: store, service: svc, company: co, sales: sales, owner: owner}
}

func (f fixture) member(t *testing.T, email string, role access.Role) employee.Employee {
	t.Helper()
	ctx := context.Background()
	e, err := f.store.CreateEmployee(ctx, employee.Employee{Email: email, FirstName: "Test", LastName: email})
	require.NoError(t, err)
	_, err = f.store.SaveMembership(ctx, employee.Membership{CompanyID: f.company.ID, EmployeeID: e.ID, Role: role})
	require.NoError(t, err)
	return e
}

func TestEmployeeService_AddMembership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	e, err := f.store.CreateEmployee(ctx, employee.Employee{Email: "jan@acme.test", FirstName: "Jan", LastName: "Novak"})
	require.NoError(t, err)

	m, err := f.service.AddMembership(ctx, f.company.ID, e.ID, access.RoleEditor, &f.sales.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, access.RoleEditor, m.Role)

	role, err := f.service.RoleOf(ctx, e.ID, f.company.ID)
	require.NoError(t, err)
	assert.Equal(t, access.RoleEditor, role)

	_, err = f.service.AddMembership(ctx, f.company.ID, e.ID, access.RoleViewer, nil)
	assert.ErrorIs(t, err, employee.ErrDuplicateMembership)

	members, err := f.service.EmployeesOfDepartment(ctx, f.sales.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, e.ID, members[0].Employee.ID)

	all, err := f.service.EmployeesOfCompany(ctx, f.company.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEmployeeService_AddMembershipInOtherCompany(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	other, err := f.store.CreateCompany(ctx, company.Company{Name: "Globex", DefaultDaysOff: 10})
	require.NoError(t, err)

	_, err = f.service.AddMembership(ctx, other.ID, f.owner.ID, access.RoleViewer, nil)
	require.NoError(t, err)

	// a department of another company is not visible from here
	_, err = f.service.AddMembership(ctx, other.ID, f.member(t, "x@acme.test", access.RoleViewer).ID, access.RoleViewer, &f.sales.ID)
	assert.ErrorIs(t, err, company.ErrDepartmentNotFound)

	_, err = f.service.AddMembership(ctx, other.ID, f.owner.ID, access.Role("boss"), nil)
	assert.Error(t, err)
}

func TestEmployeeService_AddEmployee(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	editor := f.member(t, "editor@acme.test", access.RoleEditor)
	viewer := f.member(t, "viewer@acme.test", access.RoleViewer)

	req := employee.AddEmployeeRequest{FirstName: "Eva", LastName: "Dvorak", Email: "Eva@Acme.test"}

	t.Run("editor adds a viewer", func(t *testing.T) {
		resp, err := f.service.AddEmployee(ctx, editor.ID, f.company.ID, req)
		require.NoError(t, err)
		assert.Equal(t, "eva@acme.test", resp.Email)
		assert.Equal(t, access.RoleViewer, resp.Role)
	})

	t.Run("second time is a duplicate", func(t *testing.T) {
		_, err := f.service.AddEmployee(ctx, editor.ID, f.company.ID, req)
		assert.ErrorIs(t, err, employee.ErrDuplicateMembership)
	})

	t.Run("editor cannot grant admin", func(t *testing.T) {
		r := employee.AddEmployeeRequest{FirstName: "Adam", LastName: "Min", Email: "adam@acme.test", Role: "admin"}
		_, err := f.service.AddEmployee(ctx, editor.ID, f.company.ID, r)
		assert.ErrorIs(t, err, access.ErrAccessDenied)

		resp, err := f.service.AddEmployee(ctx, f.owner.ID, f.company.ID, r)
		require.NoError(t, err)
		assert.Equal(t, access.RoleAdmin, resp.Role)
	})

	t.Run("viewer is denied", func(t *testing.T) {
		r := employee.AddEmployeeRequest{FirstName: "Vic", LastName: "Tor", Email: "vic@acme.test"}
		_, err := f.service.AddEmployee(ctx, viewer.ID, f.company.ID, r)
		assert.ErrorIs(t, err, access.ErrAccessDenied)
	})
}

func TestEmployeeService_ListMembersHidesAdjustment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	viewer := f.member(t, "viewer@acme.test", access.RoleViewer)

	asViewer, err := f.service.ListMembers(ctx, viewer.ID, f.company.ID)
	require.NoError(t, err)
	require.Len(t, asViewer, 2)
	for _, m := range asViewer {
		if m.EmployeeID == viewer.ID {
			assert.NotNil(t, m.DaysOffAdjustment)
		} else {
			assert.Nil(t, m.DaysOffAdjustment)
		}
	}

	asOwner, err := f.service.ListMembers(ctx, f.owner.ID, f.company.ID)
	require.NoError(t, err)
	for _, m := range asOwner {
		assert.NotNil(t, m.DaysOffAdjustment)
	}

	outsider, err := f.store.CreateEmployee(ctx, employee.Employee{Email: "out@globex.test", FirstName: "O", LastName: "Ut"})
	require.NoError(t, err)
	_, err = f.service.ListMembers(ctx, outsider.ID, f.company.ID)
	assert.ErrorIs(t, err, access.ErrNotFound)
}

func TestEmployeeService_ImportEmployees(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	remaining := decimal.RequireFromString("24.5")
	rows := []employee.ImportRow{
		{Row: 1, FirstName: "Bernhard", LastName: "Cummerata", Email: "Bernhard.Cummerata@email.com", Department: "Sales", RemainingHoliday: &remaining},
		{Row: 2, FirstName: "Anna", LastName: "Kral", Email: "anna@acme.test"},
		{Row: 3, FirstName: "Anna", LastName: "Kralova", Email: "ANNA@acme.test"},
		{Row: 4, FirstName: "Petr", LastName: "Svoboda", Email: "petr@acme.test"},
		{Row: 5, FirstName: "Marie", LastName: "Novotna", Email: "marie@acme.test"},
	}

	report, err := f.service.ImportEmployees(ctx, f.owner.ID, f.company.ID, rows)
	require.NoError(t, err)

	assert.Len(t, report.Created, 4)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, 3, report.Failed[0].Row)
	assert.Contains(t, report.Failed[0].Reason, "row 2")

	members, err := f.service.EmployeesOfCompany(ctx, f.company.ID)
	require.NoError(t, err)
	assert.Len(t, members, 5)

	bernhard, err := f.store.FindEmployeeByEmail(ctx, "bernhard.cummerata@email.com")
	require.NoError(t, err)
	m, err := f.service.MembershipOf(ctx, bernhard.ID, f.company.ID)
	require.NoError(t, err)
	assert.Equal(t, access.RoleViewer, m.Role)
	require.NotNil(t, m.DepartmentID)
	assert.Equal(t, f.sales.ID, *m.DepartmentID)
	// Sales grants 25 days, 24.5 are left.
	assert.True(t, decimal.RequireFromString("-0.5").Equal(m.DaysOffAdjustment))
}

func TestEmployeeService_ImportEmployeesReportsBadRows(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	rows := []employee.ImportRow{
		{Row: 1, FirstName: "Olga", LastName: "Owner", Email: "owner@acme.test"},
		{Row: 2, FirstName: "No", LastName: "Dept", Email: "nodept@acme.test", Department: "Marketing"},
		{Row: 3, FirstName: "", LastName: "Nameless", Email: "nameless@acme.test"},
		{Row: 4, FirstName: "Bad", LastName: "Mail", Email: "not-an-email"},
		{Row: 5, Problem: "wrong number of fields"},
		{Row: 6, FirstName: "Fine", LastName: "Row", Email: "fine@acme.test"},
	}

	report, err := f.service.ImportEmployees(ctx, f.owner.ID, f.company.ID, rows)
	require.NoError(t, err)
	require.Len(t, report.Created, 1)
	assert.Equal(t, "fine@acme.test", report.Created[0].Email)

	require.Len(t, report.Failed, 5)
	reasons := map[int]string{}
	for _, f := range report.Failed {
		reasons[f.Row] = f.Reason
	}
	assert.Equal(t, "employee already belongs to this company", reasons[1])
	assert.Equal(t, `department "Marketing" not found`, reasons[2])
	assert.Equal(t, "first name is required", reasons[3])
	assert.Equal(t, "email is not valid", reasons[4])
	assert.Equal(t, "wrong number of fields", reasons[5])

	// the failed department row must not leave an orphan employee behind
	_, err = f.store.FindEmployeeByEmail(ctx, "nodept@acme.test")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_ImportEmployeesNeedsCapability(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	viewer := f.member(t, "viewer@acme.test", access.RoleViewer)

	_, err := f.service.ImportEmployees(ctx, viewer.ID, f.company.ID, []employee.ImportRow{
		{Row: 1, FirstName: "A", LastName: "B", Email: "ab@acme.test"},
	})
	assert.ErrorIs(t, err, access.ErrAccessDenied)

	outsider, err := f.store.CreateEmployee(ctx, employee.Employee{Email: "out@globex.test", FirstName: "O", LastName: "Ut"})
	require.NoError(t, err)
	_, err = f.service.ImportEmployees(ctx, outsider.ID, f.company.ID, nil)
	assert.ErrorIs(t, err, access.ErrNotFound)
}
