package company

import "errors"

var (
	ErrCompanyNotFound    = errors.New("Company not found")
	ErrDepartmentNotFound = errors.New("Department not found")
	ErrDepartmentExists   = errors.New("Department name already used in this company")
	ErrBossNotMember      = errors.New("Department boss must be a member of the company")
)
