package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var documentCols = []string{"id", "employee_id", "type", "file_url", "expiry_date", "approved"}

func TestListComplianceCandidates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	until := time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`OR \(expiry_date IS NOT NULL AND expiry_date <= \$1\)`).
		WithArgs(until).
		WillReturnRows(sqlmock.NewRows(documentCols).
			AddRow(1, 3, "contract", "", nil, false).
			AddRow(2, 5, "food_handling", "https://files/2.pdf", expiry, true))

	repo := NewDocumentRepository(db)
	docs, err := repo.ListComplianceCandidates(context.Background(), until)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.False(t, docs[0].Approved)
	assert.Nil(t, docs[0].ExpiryDate)
	require.NotNil(t, docs[1].ExpiryDate)
	assert.True(t, expiry.Equal(*docs[1].ExpiryDate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByApproval(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(approved::int\), 0\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "coalesce"}).AddRow(10, 7))

	repo := NewDocumentRepository(db)
	total, approved, err := repo.CountByApproval(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	assert.Equal(t, 7, approved)
}

func TestApproveMissingDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`UPDATE hr\.documents SET approved = TRUE`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	repo := NewDocumentRepository(db)
	_, err = repo.Approve(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
