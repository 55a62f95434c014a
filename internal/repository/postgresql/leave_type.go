package postgresql

import (
	"context"

	"github.com/chll-hr/leave-backend/internal/domain/leave"
	"github.com/chll-hr/leave-backend/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// FindLeaveType implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) FindLeaveType(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(&lt.ID, &lt.CompanyID, &lt.Name, &lt.CreatedAt, &lt.UpdatedAt)
	if err != nil {
		return leave.LeaveType{}, notFound(err, leave.ErrLeaveTypeNotFound)
	}
	return lt, nil
}

// ListLeaveTypes implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) ListLeaveTypes(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM leave_types
		WHERE company_id = $1
		ORDER BY name, id
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(&lt.ID, &lt.CompanyID, &lt.Name, &lt.CreatedAt, &lt.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, mapError(rows.Err())
}

// CreateLeaveType implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) CreateLeaveType(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (id, company_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	if err := q.QueryRow(ctx, query, lt.ID, lt.CompanyID, lt.Name).Scan(&lt.CreatedAt, &lt.UpdatedAt); err != nil {
		return leave.LeaveType{}, mapError(err)
	}
	return lt, nil
}
