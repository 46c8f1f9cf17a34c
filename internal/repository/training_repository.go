package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/hrstack/hr-api/internal/models"
)

type TrainingRepository interface {
	Create(ctx context.Context, training models.Training) (models.Training, error)
	GetByID(ctx context.Context, id int64) (models.Training, error)
	List(ctx context.Context, limit, offset int) ([]models.Training, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]models.Training, error)
	Update(ctx context.Context, training models.Training) (models.Training, error)
	Delete(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64, certificateURL string) (models.Training, error)

	// ListPendingUntil returns incomplete trainings whose deadline is set and
	// falls on or before the given date, ordered by deadline ascending.
	ListPendingUntil(ctx context.Context, until time.Time) ([]models.Training, error)
	CountIncomplete(ctx context.Context) (int, error)
}

type trainingRepository struct {
	db *sql.DB
}

func NewTrainingRepository(db *sql.DB) TrainingRepository {
	return &trainingRepository{db: db}
}

const trainingColumns = `id, employee_id, name, assigned_date, deadline, completed, certificate_url`

func scanTraining(row interface{ Scan(...interface{}) error }) (models.Training, error) {
	var training models.Training
	err := row.Scan(
		&training.ID,
		&training.EmployeeID,
		&training.Name,
		&training.AssignedDate,
		&training.Deadline,
		&training.Completed,
		&training.CertificateURL,
	)
	return training, err
}

func (r *trainingRepository) Create(ctx context.Context, training models.Training) (models.Training, error) {
	query := `
		INSERT INTO hr.trainings (employee_id, name, assigned_date, deadline, completed, certificate_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		training.EmployeeID,
		training.Name,
		training.AssignedDate,
		training.Deadline,
		training.Completed,
		training.CertificateURL,
	).Scan(&training.ID)
	if err != nil {
		return models.Training{}, errors.Wrap(err, "insert training")
	}
	return training, nil
}

func (r *trainingRepository) GetByID(ctx context.Context, id int64) (models.Training, error) {
	query := `SELECT ` + trainingColumns + ` FROM hr.trainings WHERE id = $1`
	training, err := scanTraining(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Training{}, ErrNotFound
		}
		return models.Training{}, err
	}
	return training, nil
}

func (r *trainingRepository) List(ctx context.Context, limit, offset int) ([]models.Training, error) {
	query := `SELECT ` + trainingColumns + ` FROM hr.trainings ORDER BY id LIMIT $1 OFFSET $2`
	return r.queryTrainings(ctx, query, limit, offset)
}

func (r *trainingRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]models.Training, error) {
	query := `SELECT ` + trainingColumns + ` FROM hr.trainings WHERE employee_id = $1 ORDER BY id`
	return r.queryTrainings(ctx, query, employeeID)
}

func (r *trainingRepository) Update(ctx context.Context, training models.Training) (models.Training, error) {
	query := `
		UPDATE hr.trainings
		SET name = $1, assigned_date = $2, deadline = $3, completed = $4, certificate_url = $5
		WHERE id = $6
		RETURNING ` + trainingColumns
	updated, err := scanTraining(r.db.QueryRowContext(ctx, query,
		training.Name,
		training.AssignedDate,
		training.Deadline,
		training.Completed,
		training.CertificateURL,
		training.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Training{}, ErrNotFound
		}
		return models.Training{}, errors.Wrap(err, "update training")
	}
	return updated, nil
}

func (r *trainingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hr.trainings WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete training")
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

func (r *trainingRepository) Complete(ctx context.Context, id int64, certificateURL string) (models.Training, error) {
	query := `
		UPDATE hr.trainings
		SET completed = TRUE, certificate_url = COALESCE(NULLIF($1, ''), certificate_url)
		WHERE id = $2
		RETURNING ` + trainingColumns
	training, err := scanTraining(r.db.QueryRowContext(ctx, query, certificateURL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Training{}, ErrNotFound
		}
		return models.Training{}, errors.Wrap(err, "complete training")
	}
	return training, nil
}

func (r *trainingRepository) ListPendingUntil(ctx context.Context, until time.Time) ([]models.Training, error) {
	query := `
		SELECT ` + trainingColumns + `
		FROM hr.trainings
		WHERE NOT completed AND deadline IS NOT NULL AND deadline <= $1
		ORDER BY deadline ASC
	`
	return r.queryTrainings(ctx, query, until)
}

func (r *trainingRepository) CountIncomplete(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hr.trainings WHERE NOT completed`).Scan(&count)
	return count, err
}

func (r *trainingRepository) queryTrainings(ctx context.Context, query string, args ...interface{}) ([]models.Training, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainings []models.Training
	for rows.Next() {
		training, err := scanTraining(rows)
		if err != nil {
			return nil, err
		}
		trainings = append(trainings, training)
	}
	return trainings, rows.Err()
}
