package access

import (
	"context"
	"testing"

	"github.com/chll-hr/leave-backend/internal/domain/access"
	"github.com/chll-hr/leave-backend/internal/domain/company"
	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/chll-hr/leave-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizer(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	authz := NewAuthorizer(store, store)

	co, err := store.CreateCompany(ctx, company.Company{Name: "Acme", DefaultDaysOff: 25})
	require.NoError(t, err)
	boss, err := store.CreateEmployee(ctx, employee.Employee{Email: "boss@acme.test", FirstName: "B", LastName: "Oss"})
	require.NoError(t, err)
	outsider, err := store.CreateEmployee(ctx, employee.Employee{Email: "out@other.test", FirstName: "O", LastName: "Ut"})
	require.NoError(t, err)

	dept, err := store.CreateDepartment(ctx, company.Department{CompanyID: co.ID, Name: "Sales", BossID: &boss.ID})
	require.NoError(t, err)
	_, err = store.SaveMembership(ctx, employee.Membership{CompanyID: co.ID, EmployeeID: boss.ID, Role: access.RoleViewer, DepartmentID: &dept.ID})
	require.NoError(t, err)

	t.Run("member with boss departments", func(t *testing.T) {
		s, err := authz.Subject(ctx, boss.ID, co.ID)
		require.NoError(t, err)
		assert.Equal(t, access.RoleViewer, s.Role)
		assert.Equal(t, []string{dept.ID}, s.BossOf)
	})

	t.Run("outsider is not found", func(t *testing.T) {
		_, err := authz.Subject(ctx, outsider.ID, co.ID)
		assert.ErrorIs(t, err, access.ErrNotFound)

		_, err = authz.Target(ctx, co.ID, outsider.ID)
		assert.ErrorIs(t, err, access.ErrNotFound)
	})

	t.Run("missing capability is denied", func(t *testing.T) {
		_, err := authz.Require(ctx, boss.ID, co.ID, access.ActionManageCompany)
		assert.ErrorIs(t, err, access.ErrAccessDenied)

		_, err = authz.Require(ctx, outsider.ID, co.ID, access.ActionManageCompany)
		assert.ErrorIs(t, err, access.ErrNotFound)
	})
}
