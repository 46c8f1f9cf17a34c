package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/hrstack/hr-api/internal/models"
)

type BranchRepository interface {
	Create(ctx context.Context, branch models.Branch) (models.Branch, error)
	GetByID(ctx context.Context, id int64) (models.Branch, error)
	List(ctx context.Context) ([]models.Branch, error)
	Update(ctx context.Context, branch models.Branch) (models.Branch, error)
	Delete(ctx context.Context, id int64) error
}

type branchRepository struct {
	db *sql.DB
}

func NewBranchRepository(db *sql.DB) BranchRepository {
	return &branchRepository{db: db}
}

const branchColumns = `id, name, opened_at, location, phone`

func scanBranch(row interface{ Scan(...interface{}) error }) (models.Branch, error) {
	var branch models.Branch
	err := row.Scan(&branch.ID, &branch.Name, &branch.OpenedAt, &branch.Location, &branch.Phone)
	return branch, err
}

func (r *branchRepository) Create(ctx context.Context, branch models.Branch) (models.Branch, error) {
	const query = `
		INSERT INTO hr.branches (name, opened_at, location, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, branch.Name, branch.OpenedAt, branch.Location, branch.Phone).Scan(&branch.ID)
	if err != nil {
		return models.Branch{}, errors.Wrap(err, "insert branch")
	}
	return branch, nil
}

func (r *branchRepository) GetByID(ctx context.Context, id int64) (models.Branch, error) {
	const query = `SELECT id, name, opened_at, location, phone FROM hr.branches WHERE id = $1`
	branch, err := scanBranch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Branch{}, ErrNotFound
		}
		return models.Branch{}, err
	}
	return branch, nil
}

func (r *branchRepository) List(ctx context.Context) ([]models.Branch, error) {
	const query = `SELECT id, name, opened_at, location, phone FROM hr.branches ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []models.Branch
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	return branches, rows.Err()
}

func (r *branchRepository) Update(ctx context.Context, branch models.Branch) (models.Branch, error) {
	const query = `
		UPDATE hr.branches
		SET name = $1, opened_at = $2, location = $3, phone = $4
		WHERE id = $5
		RETURNING id, name, opened_at, location, phone
	`
	updated, err := scanBranch(r.db.QueryRowContext(ctx, query, branch.Name, branch.OpenedAt, branch.Location, branch.Phone, branch.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Branch{}, ErrNotFound
		}
		return models.Branch{}, errors.Wrap(err, "update branch")
	}
	return updated, nil
}

func (r *branchRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hr.branches WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete branch")
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
