package fixtures

import (
	"github.com/chll-hr/leave-backend/internal/domain/leave"
	"github.com/google/uuid"
)

// DefaultLeaveTypeNames are seeded into every new company. Requests filed
// without a type still count as leave.DefaultLeaveTypeName.
var DefaultLeaveTypeNames = []string{
	"Sick day",
	"Home office",
	"Unpaid leave",
	"Parental leave",
}

// GetDefaultLeaveTypes returns the leave types a new company starts with.
func GetDefaultLeaveTypes(companyID string) []leave.LeaveType {
	types := make([]leave.LeaveType, 0, len(DefaultLeaveTypeNames))
	for _, name := range DefaultLeaveTypeNames {
		types = append(types, leave.LeaveType{
			ID:        uuid.Must(uuid.NewV7()).String(),
			CompanyID: companyID,
			Name:      name,
		})
	}
	return types
}
