package alerts

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrstack/hr-api/internal/models"
)

func TestSummaryStatsRollup(t *testing.T) {
	store := &fakeStore{
		activeCount: 12,
		hiredCount:  2,
		shiftsToday: []models.Shift{
			{ID: 1, IsCovered: true},
			{ID: 2, IsCovered: true},
			{ID: 3, IsCovered: false},
		},
		incomplete:   5,
		trainings:    []models.Training{{ID: 4}, {ID: 5}},
		totalDocs:    10,
		approvedDocs: 7,
		period:       &models.PayrollPeriod{ID: 6, Name: "March", ReviewCutoff: day(4)},
	}
	svc := newTestService(store, FailFast)

	stats, err := svc.SummaryStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, stats.TotalEmployees)
	assert.Equal(t, 2, stats.EmployeesAddedMonth)
	assert.Equal(t, 2, stats.ShiftsToday)
	assert.Equal(t, 1, stats.PendingShifts)
	assert.Equal(t, 5, stats.ActiveTrainings)
	assert.Equal(t, 2, stats.ExpiringTrainings)
	assert.Equal(t, 70, stats.ComplianceRate)
	assert.Equal(t, 0, stats.ComplianceChange)
	require.NotNil(t, stats.NextPayrollCutoff)
	assert.Equal(t, day(4), *stats.NextPayrollCutoff)
}

func TestSummaryStatsEmptyDatabase(t *testing.T) {
	svc := newTestService(&fakeStore{}, FailFast)

	stats, err := svc.SummaryStats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalEmployees)
	assert.Zero(t, stats.ShiftsToday)
	assert.Zero(t, stats.PendingShifts)
	assert.Zero(t, stats.ActiveTrainings)
	assert.Zero(t, stats.ExpiringTrainings)
	assert.Equal(t, 100, stats.ComplianceRate, "zero documents counts as fully compliant")
	assert.Nil(t, stats.NextPayrollCutoff)
}

func TestSummaryStatsFailsOnProviderError(t *testing.T) {
	store := &fakeStore{employeeErr: errors.New("store unavailable")}
	svc := newTestService(store, FailFast)

	_, err := svc.SummaryStats(context.Background())
	require.Error(t, err)
}

func TestComplianceRate(t *testing.T) {
	tests := []struct {
		total    int
		approved int
		want     int
	}{
		{0, 0, 100},
		{10, 7, 70},
		{3, 1, 33},
		{3, 2, 67},
		{8, 8, 100},
		{4, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, complianceRate(tt.total, tt.approved), "%d/%d", tt.approved, tt.total)
	}
}
