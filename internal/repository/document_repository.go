package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/hrstack/hr-api/internal/models"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc models.Document) (models.Document, error)
	GetByID(ctx context.Context, id int64) (models.Document, error)
	List(ctx context.Context, limit, offset int) ([]models.Document, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]models.Document, error)
	Update(ctx context.Context, doc models.Document) (models.Document, error)
	Delete(ctx context.Context, id int64) error
	Approve(ctx context.Context, id int64) (models.Document, error)

	// ListComplianceCandidates returns documents that are unapproved or whose
	// expiry falls on or before the given date. A document matching both
	// conditions appears once.
	ListComplianceCandidates(ctx context.Context, until time.Time) ([]models.Document, error)
	// CountByApproval returns the total document count and how many of those
	// are admin-approved.
	CountByApproval(ctx context.Context) (total, approved int, err error)
}

type documentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) DocumentRepository {
	return &documentRepository{db: db}
}

const documentColumns = `id, employee_id, type, file_url, expiry_date, approved`

func scanDocument(row interface{ Scan(...interface{}) error }) (models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID,
		&doc.EmployeeID,
		&doc.Type,
		&doc.FileURL,
		&doc.ExpiryDate,
		&doc.Approved,
	)
	return doc, err
}

func (r *documentRepository) Create(ctx context.Context, doc models.Document) (models.Document, error) {
	query := `
		INSERT INTO hr.documents (employee_id, type, file_url, expiry_date, approved)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		doc.EmployeeID,
		doc.Type,
		doc.FileURL,
		doc.ExpiryDate,
		doc.Approved,
	).Scan(&doc.ID)
	if err != nil {
		return models.Document{}, errors.Wrap(err, "insert document")
	}
	return doc, nil
}

func (r *documentRepository) GetByID(ctx context.Context, id int64) (models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM hr.documents WHERE id = $1`
	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Document{}, ErrNotFound
		}
		return models.Document{}, err
	}
	return doc, nil
}

func (r *documentRepository) List(ctx context.Context, limit, offset int) ([]models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM hr.documents ORDER BY id LIMIT $1 OFFSET $2`
	return r.queryDocuments(ctx, query, limit, offset)
}

func (r *documentRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM hr.documents WHERE employee_id = $1 ORDER BY id`
	return r.queryDocuments(ctx, query, employeeID)
}

func (r *documentRepository) Update(ctx context.Context, doc models.Document) (models.Document, error) {
	query := `
		UPDATE hr.documents
		SET type = $1, file_url = $2, expiry_date = $3, approved = $4
		WHERE id = $5
		RETURNING ` + documentColumns
	updated, err := scanDocument(r.db.QueryRowContext(ctx, query,
		doc.Type,
		doc.FileURL,
		doc.ExpiryDate,
		doc.Approved,
		doc.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Document{}, ErrNotFound
		}
		return models.Document{}, errors.Wrap(err, "update document")
	}
	return updated, nil
}

func (r *documentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hr.documents WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete document")
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

func (r *documentRepository) Approve(ctx context.Context, id int64) (models.Document, error) {
	query := `UPDATE hr.documents SET approved = TRUE WHERE id = $1 RETURNING ` + documentColumns
	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Document{}, ErrNotFound
		}
		return models.Document{}, errors.Wrap(err, "approve document")
	}
	return doc, nil
}

func (r *documentRepository) ListComplianceCandidates(ctx context.Context, until time.Time) ([]models.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM hr.documents
		WHERE NOT approved
		   OR (expiry_date IS NOT NULL AND expiry_date <= $1)
		ORDER BY id
	`
	return r.queryDocuments(ctx, query, until)
}

func (r *documentRepository) CountByApproval(ctx context.Context) (int, int, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(approved::int), 0)
		FROM hr.documents
	`
	var total, approved int
	if err := r.db.QueryRowContext(ctx, query).Scan(&total, &approved); err != nil {
		return 0, 0, errors.Wrap(err, "count documents")
	}
	return total, approved, nil
}

func (r *documentRepository) queryDocuments(ctx context.Context, query string, args ...interface{}) ([]models.Document, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
