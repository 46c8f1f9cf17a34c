package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/hrstack/hr-api/internal/models"
)

type RequestRepository interface {
	Create(ctx context.Context, req models.Request) (models.Request, error)
	GetByID(ctx context.Context, id int64) (models.Request, error)
	List(ctx context.Context, limit, offset int) ([]models.Request, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]models.Request, error)
	UpdateStatus(ctx context.Context, id int64, status string) (models.Request, error)
	Delete(ctx context.Context, id int64) error

	// ListPending returns every request still awaiting a decision.
	ListPending(ctx context.Context) ([]models.Request, error)
}

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `id, employee_id, type, reason, submitted_at, start_date, end_date, status`

func scanRequest(row interface{ Scan(...interface{}) error }) (models.Request, error) {
	var req models.Request
	err := row.Scan(
		&req.ID,
		&req.EmployeeID,
		&req.Type,
		&req.Reason,
		&req.SubmittedAt,
		&req.StartDate,
		&req.EndDate,
		&req.Status,
	)
	return req, err
}

func (r *requestRepository) Create(ctx context.Context, req models.Request) (models.Request, error) {
	req.Status = models.RequestStatusPending
	query := `
		INSERT INTO hr.requests (employee_id, type, reason, submitted_at, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		req.EmployeeID,
		req.Type,
		req.Reason,
		req.SubmittedAt,
		req.StartDate,
		req.EndDate,
		req.Status,
	).Scan(&req.ID)
	if err != nil {
		return models.Request{}, errors.Wrap(err, "insert request")
	}
	return req, nil
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM hr.requests WHERE id = $1`
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Request{}, ErrNotFound
		}
		return models.Request{}, err
	}
	return req, nil
}

func (r *requestRepository) List(ctx context.Context, limit, offset int) ([]models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM hr.requests ORDER BY submitted_at DESC LIMIT $1 OFFSET $2`
	return r.queryRequests(ctx, query, limit, offset)
}

func (r *requestRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM hr.requests WHERE employee_id = $1 ORDER BY submitted_at DESC`
	return r.queryRequests(ctx, query, employeeID)
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id int64, status string) (models.Request, error) {
	query := `UPDATE hr.requests SET status = $1 WHERE id = $2 RETURNING ` + requestColumns
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Request{}, ErrNotFound
		}
		return models.Request{}, errors.Wrap(err, "update request status")
	}
	return req, nil
}

func (r *requestRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hr.requests WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete request")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *requestRepository) ListPending(ctx context.Context) ([]models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM hr.requests WHERE status = $1 ORDER BY submitted_at`
	return r.queryRequests(ctx, query, models.RequestStatusPending)
}

func (r *requestRepository) queryRequests(ctx context.Context, query string, args ...interface{}) ([]models.Request, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
