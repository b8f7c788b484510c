package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/leave"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	id, employee_id, company_id, leave_type, start_date, end_date,
	duration, total_days::text, reason, status, reviewer_notes,
	decided_by, decided_at, cancelled_by, cancelled_at,
	submitted_at, created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var r leave.Request
	var leaveType, duration, status, totalDays string

	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.CompanyID, &leaveType, &r.StartDate, &r.EndDate,
		&duration, &totalDays, &r.Reason, &status, &r.ReviewerNotes,
		&r.DecidedBy, &r.DecidedAt, &r.CancelledBy, &r.CancelledAt,
		&r.SubmittedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return leave.Request{}, err
	}

	r.Type = leave.Type(leaveType)
	r.Duration = leave.DurationType(duration)
	if normalized, ok := leave.NormalizeRequestStatus(status); ok {
		r.Status = normalized
	} else {
		return leave.Request{}, errors.New("unknown leave request status: " + status)
	}
	if r.TotalDays, err = decimal.NewFromString(totalDays); err != nil {
		return leave.Request{}, err
	}
	return r, nil
}

// Create implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		INSERT INTO leave_requests (
			id, employee_id, company_id, leave_type, start_date, end_date,
			duration, total_days, reason, status,
			submitted_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := q.Exec(ctx, query,
		req.ID, req.EmployeeID, req.CompanyID, string(req.Type), req.StartDate, req.EndDate,
		string(req.Duration), req.TotalDays.String(), req.Reason, string(req.Status),
		req.SubmittedAt, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return leave.Request{}, err
	}
	return req, nil
}

// GetByID implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)
	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}
	return req, nil
}

// ListByEmployee implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		ORDER BY submitted_at DESC
	`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// ListBlockingInRange implements leave.RequestRepository. Inclusive-range
// overlap: newStart <= existingEnd AND newEnd >= existingStart.
func (l *leaveRequestRepositoryImpl) ListBlockingInRange(ctx context.Context, employeeID string, startDate, endDate time.Time) ([]leave.Request, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		  AND status IN ('pending', 'approved')
		  AND start_date <= $3
		  AND end_date >= $2
		ORDER BY start_date
	`
	rows, err := q.Query(ctx, query, employeeID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// HasApprovedLeaveOn implements leave.RequestRepository.
func (l *leaveRequestRepositoryImpl) HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status = 'approved'
			  AND start_date <= $2
			  AND end_date >= $2
		)
	`
	var exists bool
	err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists)
	return exists, err
}

// UpdateStatus implements leave.RequestRepository. Compare-and-set on the
// stored status; a lost race surfaces as ErrAlreadyProcessed, never as a
// silent double-write.
func (l *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to leave.RequestStatus, actorID string, notes *string, at time.Time) error {
	q := GetQuerier(ctx, l.db)

	var query string
	var args []interface{}
	if to == leave.RequestStatusCancelled {
		query = `
			UPDATE leave_requests
			SET status = $3, cancelled_by = $4, cancelled_at = $5, updated_at = $5
			WHERE id = $1 AND status = $2
		`
		args = []interface{}{id, string(from), string(to), actorID, at}
	} else {
		query = `
			UPDATE leave_requests
			SET status = $3, decided_by = $4, reviewer_notes = $5, decided_at = $6, updated_at = $6
			WHERE id = $1 AND status = $2
		`
		args = []interface{}{id, string(from), string(to), actorID, notes, at}
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrAlreadyProcessed
	}
	return nil
}
