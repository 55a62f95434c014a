package postgresql

import (
	"context"
	"fmt"

	"github.com/chll-hr/leave-backend/internal/domain/company"
	"github.com/chll-hr/leave-backend/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// FindCompany implements company.CompanyRepository.
func (c *companyRepositoryImpl) FindCompany(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, default_days_off, timezone, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var found company.Company
	err := q.QueryRow(ctx, query, id).
		Scan(&found.ID, &found.Name, &found.DefaultDaysOff, &found.Timezone, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		return company.Company{}, notFound(err, company.ErrCompanyNotFound)
	}
	return found, nil
}

// CreateCompany implements company.CompanyRepository.
func (c *companyRepositoryImpl) CreateCompany(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO companies (id, name, default_days_off, timezone)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, newCompany.ID, newCompany.Name, newCompany.DefaultDaysOff, newCompany.Timezone).
		Scan(&newCompany.CreatedAt, &newCompany.UpdatedAt)
	if err != nil {
		return company.Company{}, mapError(err)
	}
	return newCompany, nil
}

// UpdateCompany implements company.CompanyRepository.
func (c *companyRepositoryImpl) UpdateCompany(ctx context.Context, updated company.Company) error {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE companies
		SET name = $2, default_days_off = $3, timezone = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, updated.ID, updated.Name, updated.DefaultDaysOff, updated.Timezone)
	if err != nil {
		return fmt.Errorf("failed to update company with id %s: %w", updated.ID, mapError(err))
	}
	if tag.RowsAffected() != 1 {
		return company.ErrCompanyNotFound
	}
	return nil
}
