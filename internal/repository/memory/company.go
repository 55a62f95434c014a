package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/chll-hr/leave-backend/internal/domain/company"
)

func (s *Store) FindCompany(ctx context.Context, id string) (company.Company, error) {
	defer s.rlock(ctx)()

	c, ok := s.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (s *Store) CreateCompany(ctx context.Context, c company.Company) (company.Company, error) {
	defer s.lock(ctx)()

	c.ID, c.CreatedAt, c.UpdatedAt = s.stamp(c.ID, c.CreatedAt)
	s.companies[c.ID] = c
	return c, nil
}

func (s *Store) UpdateCompany(ctx context.Context, c company.Company) error {
	defer s.lock(ctx)()

	existing, ok := s.companies[c.ID]
	if !ok {
		return company.ErrCompanyNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = s.now()
	s.companies[c.ID] = c
	return nil
}

func (s *Store) FindDepartment(ctx context.Context, id string) (company.Department, error) {
	defer s.rlock(ctx)()

	d, ok := s.departments[id]
	if !ok {
		return company.Department{}, company.ErrDepartmentNotFound
	}
	return d, nil
}

func (s *Store) FindDepartmentByName(ctx context.Context, companyID, name string) (company.Department, error) {
	defer s.rlock(ctx)()

	if d, ok := s.departmentByName(companyID, name); ok {
		return d, nil
	}
	return company.Department{}, company.ErrDepartmentNotFound
}

func (s *Store) departmentByName(companyID, name string) (company.Department, bool) {
	for _, d := range s.departments {
		if d.CompanyID == companyID && strings.EqualFold(d.Name, strings.TrimSpace(name)) {
			return d, true
		}
	}
	return company.Department{}, false
}

func (s *Store) ListDepartments(ctx context.Context, companyID string) ([]company.Department, error) {
	defer s.rlock(ctx)()

	return s.filterDepartments(func(d company.Department) bool {
		return d.CompanyID == companyID
	}), nil
}

func (s *Store) ListDepartmentsByBoss(ctx context.Context, companyID, bossID string) ([]company.Department, error) {
	defer s.rlock(ctx)()

	return s.filterDepartments(func(d company.Department) bool {
		return d.CompanyID == companyID && d.BossID != nil && *d.BossID == bossID
	}), nil
}

func (s *Store) filterDepartments(keep func(company.Department) bool) []company.Department {
	var result []company.Department
	for _, d := range s.departments {
		if keep(d) {
			result = append(result, d)
		}
	}
	slices.SortFunc(result, func(a, b company.Department) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), strings.Compare(a.ID, b.ID))
	})
	return result
}

func (s *Store) CreateDepartment(ctx context.Context, d company.Department) (company.Department, error) {
	defer s.lock(ctx)()

	if _, ok := s.departmentByName(d.CompanyID, d.Name); ok {
		return company.Department{}, company.ErrDepartmentExists
	}
	d.ID, d.CreatedAt, d.UpdatedAt = s.stamp(d.ID, d.CreatedAt)
	s.departments[d.ID] = d
	return d, nil
}

func (s *Store) UpdateDepartment(ctx context.Context, d company.Department) error {
	defer s.lock(ctx)()

	existing, ok := s.departments[d.ID]
	if !ok {
		return company.ErrDepartmentNotFound
	}
	if other, ok := s.departmentByName(d.CompanyID, d.Name); ok && other.ID != d.ID {
		return company.ErrDepartmentExists
	}
	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = s.now()
	s.departments[d.ID] = d
	return nil
}
