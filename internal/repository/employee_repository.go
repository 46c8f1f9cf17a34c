package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/hrstack/hr-api/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type EmployeeRepository interface {
	Create(ctx context.Context, emp models.Employee) (models.Employee, error)
	GetByID(ctx context.Context, id int64) (models.Employee, error)
	List(ctx context.Context, limit, offset int) ([]models.Employee, error)
	Update(ctx context.Context, emp models.Employee) (models.Employee, error)
	Delete(ctx context.Context, id int64) error
	CountActive(ctx context.Context) (int, error)
	CountHiredSince(ctx context.Context, since time.Time) (int, error)
}

type employeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, first_name, last_name, email, position, hourly_rate, fixed_salary, hire_date, is_active, performance_score, branch_id`

func scanEmployee(row interface{ Scan(...interface{}) error }) (models.Employee, error) {
	var emp models.Employee
	err := row.Scan(
		&emp.ID,
		&emp.FirstName,
		&emp.LastName,
		&emp.Email,
		&emp.Position,
		&emp.HourlyRate,
		&emp.FixedSalary,
		&emp.HireDate,
		&emp.IsActive,
		&emp.PerformanceScore,
		&emp.BranchID,
	)
	return emp, err
}

func (r *employeeRepository) Create(ctx context.Context, emp models.Employee) (models.Employee, error) {
	query := `
		INSERT INTO hr.employees (first_name, last_name, email, position, hourly_rate, fixed_salary, hire_date, is_active, performance_score, branch_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.Position,
		emp.HourlyRate,
		emp.FixedSalary,
		emp.HireDate,
		emp.IsActive,
		emp.PerformanceScore,
		emp.BranchID,
	).Scan(&emp.ID)
	if err != nil {
		return models.Employee{}, errors.Wrap(err, "insert employee")
	}
	return emp, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM hr.employees WHERE id = $1`
	emp, err := scanEmployee(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Employee{}, ErrNotFound
		}
		return models.Employee{}, err
	}
	return emp, nil
}

func (r *employeeRepository) List(ctx context.Context, limit, offset int) ([]models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM hr.employees ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]models.Employee, 0, limit)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) Update(ctx context.Context, emp models.Employee) (models.Employee, error) {
	query := `
		UPDATE hr.employees
		SET first_name = $1, last_name = $2, email = $3, position = $4,
		    hourly_rate = $5, fixed_salary = $6, is_active = $7,
		    performance_score = $8, branch_id = $9
		WHERE id = $10
		RETURNING ` + employeeColumns
	updated, err := scanEmployee(r.db.QueryRowContext(ctx, query,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.Position,
		emp.HourlyRate,
		emp.FixedSalary,
		emp.IsActive,
		emp.PerformanceScore,
		emp.BranchID,
		emp.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Employee{}, ErrNotFound
		}
		return models.Employee{}, errors.Wrap(err, "update employee")
	}
	return updated, nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hr.employees WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete employee")
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

func (r *employeeRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hr.employees WHERE is_active`).Scan(&count)
	return count, err
}

func (r *employeeRepository) CountHiredSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hr.employees WHERE hire_date >= $1`, since).Scan(&count)
	return count, err
}
