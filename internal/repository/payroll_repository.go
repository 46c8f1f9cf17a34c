package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/hrstack/hr-api/internal/models"
)

type PayrollRepository interface {
	CreatePeriod(ctx context.Context, period models.PayrollPeriod) (models.PayrollPeriod, error)
	GetPeriod(ctx context.Context, id int64) (models.PayrollPeriod, error)
	ListPeriods(ctx context.Context, limit, offset int) ([]models.PayrollPeriod, error)
	UpdatePeriod(ctx context.Context, period models.PayrollPeriod) (models.PayrollPeriod, error)
	FinalizePeriod(ctx context.Context, id int64) (models.PayrollPeriod, error)

	// NextClosurePeriod returns the open period with the earliest review
	// cutoff on or after the given date, or nil when none exists.
	NextClosurePeriod(ctx context.Context, from time.Time) (*models.PayrollPeriod, error)

	CreateDetail(ctx context.Context, detail models.PaymentDetail) (models.PaymentDetail, error)
	ListDetailsByPeriod(ctx context.Context, periodID int64) ([]models.PaymentDetail, error)
	AddComponent(ctx context.Context, component models.PayComponent) (models.PayComponent, error)
	ListComponents(ctx context.Context, detailID int64) ([]models.PayComponent, error)
}

type payrollRepository struct {
	db *sql.DB
}

func NewPayrollRepository(db *sql.DB) PayrollRepository {
	return &payrollRepository{db: db}
}

const periodColumns = `id, name, start_date, end_date, review_cutoff, status, finalized`

func scanPeriod(row interface{ Scan(...interface{}) error }) (models.PayrollPeriod, error) {
	var period models.PayrollPeriod
	err := row.Scan(
		&period.ID,
		&period.Name,
		&period.StartDate,
		&period.EndDate,
		&period.ReviewCutoff,
		&period.Status,
		&period.Finalized,
	)
	return period, err
}

func (r *payrollRepository) CreatePeriod(ctx context.Context, period models.PayrollPeriod) (models.PayrollPeriod, error) {
	query := `
		INSERT INTO hr.payroll_periods (name, start_date, end_date, review_cutoff, status, finalized)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		period.Name,
		period.StartDate,
		period.EndDate,
		period.ReviewCutoff,
		period.Status,
		period.Finalized,
	).Scan(&period.ID)
	if err != nil {
		return models.PayrollPeriod{}, errors.Wrap(err, "insert payroll period")
	}
	return period, nil
}

func (r *payrollRepository) GetPeriod(ctx context.Context, id int64) (models.PayrollPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM hr.payroll_periods WHERE id = $1`
	period, err := scanPeriod(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PayrollPeriod{}, ErrNotFound
		}
		return models.PayrollPeriod{}, err
	}
	return period, nil
}

func (r *payrollRepository) ListPeriods(ctx context.Context, limit, offset int) ([]models.PayrollPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM hr.payroll_periods ORDER BY start_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []models.PayrollPeriod
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, rows.Err()
}

func (r *payrollRepository) UpdatePeriod(ctx context.Context, period models.PayrollPeriod) (models.PayrollPeriod, error) {
	query := `
		UPDATE hr.payroll_periods
		SET name = $1, start_date = $2, end_date = $3, review_cutoff = $4, status = $5
		WHERE id = $6 AND NOT finalized
		RETURNING ` + periodColumns
	updated, err := scanPeriod(r.db.QueryRowContext(ctx, query,
		period.Name,
		period.StartDate,
		period.EndDate,
		period.ReviewCutoff,
		period.Status,
		period.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PayrollPeriod{}, ErrNotFound
		}
		return models.PayrollPeriod{}, errors.Wrap(err, "update payroll period")
	}
	return updated, nil
}

func (r *payrollRepository) FinalizePeriod(ctx context.Context, id int64) (models.PayrollPeriod, error) {
	query := `
		UPDATE hr.payroll_periods
		SET finalized = TRUE, status = 'Finalized'
		WHERE id = $1 AND NOT finalized
		RETURNING ` + periodColumns
	period, err := scanPeriod(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PayrollPeriod{}, ErrNotFound
		}
		return models.PayrollPeriod{}, errors.Wrap(err, "finalize payroll period")
	}
	return period, nil
}

func (r *payrollRepository) NextClosurePeriod(ctx context.Context, from time.Time) (*models.PayrollPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM hr.payroll_periods
		WHERE NOT finalized AND review_cutoff >= $1
		ORDER BY review_cutoff ASC
		LIMIT 1
	`
	period, err := scanPeriod(r.db.QueryRowContext(ctx, query, from))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "next closure period")
	}
	return &period, nil
}

const detailColumns = `id, employee_id, period_id, total_hours, base_amount, deductions, bonuses, net_amount`

func (r *payrollRepository) CreateDetail(ctx context.Context, detail models.PaymentDetail) (models.PaymentDetail, error) {
	query := `
		INSERT INTO hr.payment_details (employee_id, period_id, total_hours, base_amount, deductions, bonuses, net_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		detail.EmployeeID,
		detail.PeriodID,
		detail.TotalHours,
		detail.BaseAmount,
		detail.Deductions,
		detail.Bonuses,
		detail.NetAmount,
	).Scan(&detail.ID)
	if err != nil {
		return models.PaymentDetail{}, errors.Wrap(err, "insert payment detail")
	}
	return detail, nil
}

func (r *payrollRepository) ListDetailsByPeriod(ctx context.Context, periodID int64) ([]models.PaymentDetail, error) {
	query := `SELECT ` + detailColumns + ` FROM hr.payment_details WHERE period_id = $1 ORDER BY employee_id`
	rows, err := r.db.QueryContext(ctx, query, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []models.PaymentDetail
	for rows.Next() {
		var detail models.PaymentDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&detail.PeriodID,
			&detail.TotalHours,
			&detail.BaseAmount,
			&detail.Deductions,
			&detail.Bonuses,
			&detail.NetAmount,
		); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, rows.Err()
}

func (r *payrollRepository) AddComponent(ctx context.Context, component models.PayComponent) (models.PayComponent, error) {
	query := `
		INSERT INTO hr.pay_components (payment_detail_id, type, description, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		component.PaymentDetailID,
		component.Type,
		component.Description,
		component.Amount,
	).Scan(&component.ID)
	if err != nil {
		return models.PayComponent{}, errors.Wrap(err, "insert pay component")
	}
	return component, nil
}

func (r *payrollRepository) ListComponents(ctx context.Context, detailID int64) ([]models.PayComponent, error) {
	query := `SELECT id, payment_detail_id, type, description, amount FROM hr.pay_components WHERE payment_detail_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, detailID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var components []models.PayComponent
	for rows.Next() {
		var component models.PayComponent
		if err := rows.Scan(
			&component.ID,
			&component.PaymentDetailID,
			&component.Type,
			&component.Description,
			&component.Amount,
		); err != nil {
			return nil, err
		}
		components = append(components, component)
	}
	return components, rows.Err()
}
