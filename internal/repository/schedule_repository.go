package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/hrstack/hr-api/internal/models"
)

type ScheduleRepository interface {
	Create(ctx context.Context, sched models.Schedule) (models.Schedule, error)
	GetByID(ctx context.Context, id int64) (models.Schedule, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]models.Schedule, error)
	Update(ctx context.Context, sched models.Schedule) (models.Schedule, error)
	Delete(ctx context.Context, id int64) error
}

type scheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(db *sql.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

const scheduleColumns = `id, employee_id, name, weekday, start_time, end_time, is_current`

func scanSchedule(row interface{ Scan(...interface{}) error }) (models.Schedule, error) {
	var sched models.Schedule
	err := row.Scan(
		&sched.ID,
		&sched.EmployeeID,
		&sched.Name,
		&sched.Weekday,
		&sched.StartTime,
		&sched.EndTime,
		&sched.IsCurrent,
	)
	return sched, err
}

func (r *scheduleRepository) Create(ctx context.Context, sched models.Schedule) (models.Schedule, error) {
	query := `
		INSERT INTO hr.employee_schedules (employee_id, name, weekday, start_time, end_time, is_current)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		sched.EmployeeID,
		sched.Name,
		sched.Weekday,
		sched.StartTime,
		sched.EndTime,
		sched.IsCurrent,
	).Scan(&sched.ID)
	if err != nil {
		return models.Schedule{}, errors.Wrap(err, "insert schedule")
	}
	return sched, nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id int64) (models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM hr.employee_schedules WHERE id = $1`
	sched, err := scanSchedule(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Schedule{}, ErrNotFound
		}
		return models.Schedule{}, err
	}
	return sched, nil
}

func (r *scheduleRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM hr.employee_schedules WHERE employee_id = $1 ORDER BY weekday, start_time`
	rows, err := r.db.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []models.Schedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, sched)
	}
	return schedules, rows.Err()
}

func (r *scheduleRepository) Update(ctx context.Context, sched models.Schedule) (models.Schedule, error) {
	query := `
		UPDATE hr.employee_schedules
		SET name = $1, weekday = $2, start_time = $3, end_time = $4, is_current = $5
		WHERE id = $6
		RETURNING ` + scheduleColumns
	updated, err := scanSchedule(r.db.QueryRowContext(ctx, query,
		sched.Name,
		sched.Weekday,
		sched.StartTime,
		sched.EndTime,
		sched.IsCurrent,
		sched.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Schedule{}, ErrNotFound
		}
		return models.Schedule{}, errors.Wrap(err, "update schedule")
	}
	return updated, nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hr.employee_schedules WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete schedule")
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
