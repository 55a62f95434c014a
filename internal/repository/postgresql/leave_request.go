package postgresql

import (
	"context"

	"github.com/chll-hr/leave-backend/internal/domain/leave"
	"github.com/chll-hr/leave-backend/internal/pkg/calendar"
	"github.com/chll-hr/leave-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	id, employee_id, company_id, leave_type_id, starting, ending, reason,
	status, approved_by, decided_at, created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.CompanyID,
		&lr.LeaveTypeID,
		&lr.Starting,
		&lr.Ending,
		&lr.Reason,
		&lr.Status,
		&lr.ApprovedBy,
		&lr.DecidedAt,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	)
	return lr, err
}

// FindLeaveRequest implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) FindLeaveRequest(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE id = $1`, id))
	if err != nil {
		return leave.LeaveRequest{}, notFound(err, leave.ErrLeaveRequestNotFound)
	}
	return lr, nil
}

// FindLeaveRequests implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) FindLeaveRequests(ctx context.Context, employeeID string, window calendar.Range) ([]leave.LeaveRequest, error) {
	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		  AND tstzrange(starting, ending, '[)') && tstzrange($2, $3, '[)')
		ORDER BY starting, id`
	return r.list(ctx, query, employeeID, window.Start, window.End)
}

// ListEmployeeLeaveRequests implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListEmployeeLeaveRequests(ctx context.Context, companyID, employeeID string) ([]leave.LeaveRequest, error) {
	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE company_id = $1 AND employee_id = $2
		ORDER BY starting, id`
	return r.list(ctx, query, companyID, employeeID)
}

// ListCompanyLeaveRequests implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListCompanyLeaveRequests(ctx context.Context, companyID string, window calendar.Range) ([]leave.LeaveRequest, error) {
	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE company_id = $1
		  AND tstzrange(starting, ending, '[)') && tstzrange($2, $3, '[)')
		ORDER BY starting, id`
	return r.list(ctx, query, companyID, window.Start, window.End)
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, mapError(rows.Err())
}

// SaveLeaveRequest implements leave.LeaveRequestRepository. Overlaps are
// rejected by the leave_requests_no_overlap exclusion constraint.
func (r *leaveRequestRepositoryImpl) SaveLeaveRequest(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, company_id, leave_type_id,
			starting, ending, reason, status
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.CompanyID, request.LeaveTypeID,
		request.Starting, request.Ending, request.Reason, string(request.Status),
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, mapError(err)
	}

	return request, nil
}

// UpdateLeaveRequestStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateLeaveRequestStatus(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, approved_by = $3, decided_at = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, request.ID, string(request.Status), request.ApprovedBy, request.DecidedAt)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// Tell a missing row from one that was already decided.
	var status string
	err = q.QueryRow(ctx, `SELECT status FROM leave_requests WHERE id = $1`, request.ID).Scan(&status)
	if err != nil {
		return notFound(err, leave.ErrLeaveRequestNotFound)
	}
	return leave.ErrLeaveRequestAlreadyProcessed
}
