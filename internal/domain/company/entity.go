package company

import (
	"time"

	"github.com/chll-hr/leave-backend/internal/pkg/calendar"
)

type Company struct {
	ID             string
	Name           string
	DefaultDaysOff int
	Timezone       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Location returns the company's zone, falling back to UTC for a bad name.
func (c Company) Location() *time.Location {
	loc, _ := calendar.LoadZone(c.Timezone, time.UTC)
	return loc
}

type Department struct {
	ID        string
	CompanyID string
	Name      string
	// DaysOff overrides the company default when set.
	DaysOff   *int
	BossID    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Allowance returns the department override, or the company default.
func (c Company) Allowance(dept *Department) int {
	if dept != nil && dept.DaysOff != nil {
		return *dept.DaysOff
	}
	return c.DefaultDaysOff
}
