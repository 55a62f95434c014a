package employee

import (
	"strings"
	"time"

	"github.com/chll-hr/leave-backend/internal/domain/access"
	"github.com/shopspring/decimal"
)

// Employee is a person. Email is unique across the platform.
type Employee struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// NormalizeEmail is the form in which emails are stored and compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Membership ties an Employee to a Company. (CompanyID, EmployeeID) is unique.
type Membership struct {
	ID           string
	CompanyID    string
	EmployeeID   string
	Role         access.Role
	DepartmentID *string
	// DaysOffAdjustment is added on top of the company or department allowance.
	DaysOffAdjustment decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (m Membership) Target() access.Target {
	return access.Target{EmployeeID: m.EmployeeID, DepartmentID: m.DepartmentID}
}

// Member is a roster entry.
type Member struct {
	Employee   Employee
	Membership Membership
}
