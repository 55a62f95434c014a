package employee

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound    = errors.New("Employee not found")
	ErrMembershipNotFound  = errors.New("Employee is not a member of this company")
	ErrEmailExists         = errors.New("Email already registered")
	ErrDuplicateMembership = errors.New("Employee already belongs to this company")
)

// ImportRowError reports one rejected row of a bulk import. Row is the
// 1-based index among data rows.
type ImportRowError struct {
	Row    int    `json:"row"`
	Email  string `json:"email,omitempty"`
	Reason string `json:"reason"`
}

func (e ImportRowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}
