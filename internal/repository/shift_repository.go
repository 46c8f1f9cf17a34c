package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/hrstack/hr-api/internal/models"
)

type ShiftRepository interface {
	Create(ctx context.Context, shift models.Shift) (models.Shift, error)
	GetByID(ctx context.Context, id int64) (models.Shift, error)
	List(ctx context.Context, limit, offset int) ([]models.Shift, error)
	Update(ctx context.Context, shift models.Shift) (models.Shift, error)
	Delete(ctx context.Context, id int64) error
	Assign(ctx context.Context, shiftID, employeeID int64) (models.Shift, error)

	// ListByDate returns every shift scheduled on the given day.
	ListByDate(ctx context.Context, date time.Time) ([]models.Shift, error)
	// ListUncoveredBetween returns uncovered shifts with date in [from, to],
	// ordered by date ascending.
	ListUncoveredBetween(ctx context.Context, from, to time.Time) ([]models.Shift, error)
}

type shiftRepository struct {
	db *sql.DB
}

func NewShiftRepository(db *sql.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `id, date, start_time, end_time, required_position, assigned_employee_id, is_covered, is_alteration, notes`

func scanShift(row interface{ Scan(...interface{}) error }) (models.Shift, error) {
	var shift models.Shift
	err := row.Scan(
		&shift.ID,
		&shift.Date,
		&shift.StartTime,
		&shift.EndTime,
		&shift.RequiredPosition,
		&shift.AssignedEmployeeID,
		&shift.IsCovered,
		&shift.IsAlteration,
		&shift.Notes,
	)
	return shift, err
}

func (r *shiftRepository) Create(ctx context.Context, shift models.Shift) (models.Shift, error) {
	query := `
		INSERT INTO hr.shifts (date, start_time, end_time, required_position, assigned_employee_id, is_covered, is_alteration, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		shift.Date,
		shift.StartTime,
		shift.EndTime,
		shift.RequiredPosition,
		shift.AssignedEmployeeID,
		shift.IsCovered,
		shift.IsAlteration,
		shift.Notes,
	).Scan(&shift.ID)
	if err != nil {
		return models.Shift{}, errors.Wrap(err, "insert shift")
	}
	return shift, nil
}

func (r *shiftRepository) GetByID(ctx context.Context, id int64) (models.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM hr.shifts WHERE id = $1`
	shift, err := scanShift(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Shift{}, ErrNotFound
		}
		return models.Shift{}, err
	}
	return shift, nil
}

func (r *shiftRepository) List(ctx context.Context, limit, offset int) ([]models.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM hr.shifts ORDER BY date, start_time LIMIT $1 OFFSET $2`
	return r.queryShifts(ctx, query, limit, offset)
}

func (r *shiftRepository) Update(ctx context.Context, shift models.Shift) (models.Shift, error) {
	query := `
		UPDATE hr.shifts
		SET date = $1, start_time = $2, end_time = $3, required_position = $4,
		    assigned_employee_id = $5, is_covered = $6, is_alteration = $7, notes = $8
		WHERE id = $9
		RETURNING ` + shiftColumns
	updated, err := scanShift(r.db.QueryRowContext(ctx, query,
		shift.Date,
		shift.StartTime,
		shift.EndTime,
		shift.RequiredPosition,
		shift.AssignedEmployeeID,
		shift.IsCovered,
		shift.IsAlteration,
		shift.Notes,
		shift.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Shift{}, ErrNotFound
		}
		return models.Shift{}, errors.Wrap(err, "update shift")
	}
	return updated, nil
}

func (r *shiftRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hr.shifts WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete shift")
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

func (r *shiftRepository) Assign(ctx context.Context, shiftID, employeeID int64) (models.Shift, error) {
	query := `
		UPDATE hr.shifts
		SET assigned_employee_id = $1, is_covered = TRUE
		WHERE id = $2
		RETURNING ` + shiftColumns
	shift, err := scanShift(r.db.QueryRowContext(ctx, query, employeeID, shiftID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Shift{}, ErrNotFound
		}
		return models.Shift{}, errors.Wrap(err, "assign shift")
	}
	return shift, nil
}

func (r *shiftRepository) ListByDate(ctx context.Context, date time.Time) ([]models.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM hr.shifts WHERE date = $1 ORDER BY start_time`
	return r.queryShifts(ctx, query, date)
}

func (r *shiftRepository) ListUncoveredBetween(ctx context.Context, from, to time.Time) ([]models.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM hr.shifts
		WHERE NOT is_covered AND date >= $1 AND date <= $2
		ORDER BY date ASC
	`
	return r.queryShifts(ctx, query, from, to)
}

func (r *shiftRepository) queryShifts(ctx context.Context, query string, args ...interface{}) ([]models.Shift, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []models.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}
	return shifts, rows.Err()
}
