package company

import (
	"time"

	"github.com/chll-hr/leave-backend/internal/pkg/validator"
)

type CompanyResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"company_name"`
	DefaultDaysOff int       `json:"default_days_off"`
	Timezone       string    `json:"timezone"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		DefaultDaysOff: c.DefaultDaysOff,
		Timezone:       c.Timezone,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

type CreateCompanyRequest struct {
	Name           string `json:"company_name"`
	DefaultDaysOff int    `json:"default_days_off"`
	Timezone       string `json:"timezone,omitempty"`
}

func (r *CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("company_name", "company_name is required")
	} else if validator.TooLong(r.Name, 255) {
		errs.Add("company_name", "company_name must not exceed 255 characters")
	}
	if r.DefaultDaysOff < 0 {
		errs.Add("default_days_off", "default_days_off must not be negative")
	}
	if r.Timezone != "" && !validator.IsValidTimezone(r.Timezone) {
		errs.Add("timezone", "timezone must be an IANA zone name")
	}

	return errs.Err()
}

type UpdateCompanyRequest struct {
	Name           *string `json:"company_name,omitempty"`
	DefaultDaysOff *int    `json:"default_days_off,omitempty"`
	Timezone       *string `json:"timezone,omitempty"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("company_name", "company_name must not be empty")
		} else if validator.TooLong(*r.Name, 255) {
			errs.Add("company_name", "company_name must not exceed 255 characters")
		}
	}
	if r.DefaultDaysOff != nil && *r.DefaultDaysOff < 0 {
		errs.Add("default_days_off", "default_days_off must not be negative")
	}
	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs.Add("timezone", "timezone must be an IANA zone name")
	}

	return errs.Err()
}

type DepartmentResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"department_name"`
	DaysOff   *int      `json:"days_off,omitempty"`
	BossID    *string   `json:"boss_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewDepartmentResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        d.ID,
		CompanyID: d.CompanyID,
		Name:      d.Name,
		DaysOff:   d.DaysOff,
		BossID:    d.BossID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type CreateDepartmentRequest struct {
	Name    string  `json:"department_name"`
	DaysOff *int    `json:"days_off,omitempty"`
	BossID  *string `json:"boss_id,omitempty"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("department_name", "department_name is required")
	} else if validator.TooLong(r.Name, 255) {
		errs.Add("department_name", "department_name must not exceed 255 characters")
	}
	if r.DaysOff != nil && *r.DaysOff < 0 {
		errs.Add("days_off", "days_off must not be negative")
	}
	if r.BossID != nil && !validator.IsValidUUID(*r.BossID) {
		errs.Add("boss_id", "boss_id must be a valid ID")
	}

	return errs.Err()
}

type UpdateDepartmentRequest struct {
	Name    *string `json:"department_name,omitempty"`
	DaysOff *int    `json:"days_off,omitempty"`
	BossID  *string `json:"boss_id,omitempty"`
	// ClearDaysOff drops the override so the company default applies again.
	ClearDaysOff bool `json:"clear_days_off,omitempty"`
	ClearBoss    bool `json:"clear_boss,omitempty"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("department_name", "department_name must not be empty")
		} else if validator.TooLong(*r.Name, 255) {
			errs.Add("department_name", "department_name must not exceed 255 characters")
		}
	}
	if r.DaysOff != nil && *r.DaysOff < 0 {
		errs.Add("days_off", "days_off must not be negative")
	}
	if r.DaysOff != nil && r.ClearDaysOff {
		errs.Add("clear_days_off", "clear_days_off conflicts with days_off")
	}
	if r.BossID != nil && !validator.IsValidUUID(*r.BossID) {
		errs.Add("boss_id", "boss_id must be a valid ID")
	}
	if r.BossID != nil && r.ClearBoss {
		errs.Add("clear_boss", "clear_boss conflicts with boss_id")
	}

	return errs.Err()
}
