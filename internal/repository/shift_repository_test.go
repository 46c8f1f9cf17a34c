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

var shiftCols = []string{"id", "date", "start_time", "end_time", "required_position", "assigned_employee_id", "is_covered", "is_alteration", "notes"}

func TestListUncoveredBetween(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	mock.ExpectQuery(`WHERE NOT is_covered AND date >= \$1 AND date <= \$2`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows(shiftCols).
			AddRow(1, from.AddDate(0, 0, 2), "08:00", "16:00", "Cashier", nil, false, false, "").
			AddRow(2, from.AddDate(0, 0, 5), "16:00", "23:00", "Cook", nil, false, true, "swap pending"))

	repo := NewShiftRepository(db)
	shifts, err := repo.ListUncoveredBetween(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, shifts, 2)

	assert.Equal(t, "Cashier", shifts[0].RequiredPosition)
	assert.False(t, shifts[0].IsCovered)
	assert.Nil(t, shifts[0].AssignedEmployeeID)
	assert.True(t, shifts[1].IsAlteration)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignMarksShiftCovered(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SET assigned_employee_id = \$1, is_covered = TRUE`).
		WithArgs(int64(9), int64(4)).
		WillReturnRows(sqlmock.NewRows(shiftCols).
			AddRow(4, date, "08:00", "16:00", "Cashier", 9, true, false, ""))

	repo := NewShiftRepository(db)
	shift, err := repo.Assign(context.Background(), 4, 9)
	require.NoError(t, err)

	assert.True(t, shift.IsCovered)
	require.NotNil(t, shift.AssignedEmployeeID)
	assert.Equal(t, int64(9), *shift.AssignedEmployeeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignMissingShift(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SET assigned_employee_id = \$1, is_covered = TRUE`).
		WithArgs(int64(9), int64(999)).
		WillReturnError(sql.ErrNoRows)

	repo := NewShiftRepository(db)
	_, err = repo.Assign(context.Background(), 999, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteShiftNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM hr\.shifts WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewShiftRepository(db)
	err = repo.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
