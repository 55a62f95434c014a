package access

import "slices"

// Subject is the caller as seen from inside one company.
type Subject struct {
	EmployeeID string
	CompanyID  string
	Role       Role
	// BossOf lists the departments this employee leads.
	BossOf []string
}

// Target is the employee whose data is being read or changed.
type Target struct {
	EmployeeID   string
	DepartmentID *string
}

func (s Subject) Can(action Action) bool {
	return HasPermission(s.Role, action)
}

// Require returns ErrAccessDenied unless the subject's role grants action.
func (s Subject) Require(action Action) error {
	if !s.Can(action) {
		return ErrAccessDenied
	}
	return nil
}

func (s Subject) IsSelf(t Target) bool {
	return s.EmployeeID == t.EmployeeID
}

// IsBossOf reports whether t works in a department led by s.
func (s Subject) IsBossOf(t Target) bool {
	if t.DepartmentID == nil {
		return false
	}
	return slices.Contains(s.BossOf, *t.DepartmentID)
}

// CanViewDetails covers balance and reason of t's leave.
func (s Subject) CanViewDetails(t Target) bool {
	if s.IsSelf(t) {
		return s.Can(ActionViewOwn)
	}
	return s.Can(ActionViewOthers) || s.IsBossOf(t)
}

// CanApprove lets a boss decide for their department. Nobody decides their
// own request.
func (s Subject) CanApprove(t Target) bool {
	if s.IsSelf(t) {
		return false
	}
	return s.Can(ActionApproveLeave) || s.IsBossOf(t)
}

func (s Subject) CanFileFor(t Target) bool {
	return s.IsSelf(t) || s.Can(ActionFileLeaveForOthers)
}
