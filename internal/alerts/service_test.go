package alerts

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrstack/hr-api/internal/models"
)

// fakeStore satisfies every provider interface from canned data.
type fakeStore struct {
	requests    []models.Request
	uncovered   []models.Shift
	shiftsToday []models.Shift
	documents   []models.Document
	trainings   []models.Training
	period      *models.PayrollPeriod

	totalDocs    int
	approvedDocs int
	incomplete   int
	activeCount  int
	hiredCount   int

	requestErr  error
	shiftErr    error
	documentErr error
	trainingErr error
	payrollErr  error
	employeeErr error
}

func (f *fakeStore) ListPending(context.Context) ([]models.Request, error) {
	return f.requests, f.requestErr
}

func (f *fakeStore) ListUncoveredBetween(context.Context, time.Time, time.Time) ([]models.Shift, error) {
	return f.uncovered, f.shiftErr
}

func (f *fakeStore) ListByDate(context.Context, time.Time) ([]models.Shift, error) {
	return f.shiftsToday, f.shiftErr
}

func (f *fakeStore) ListComplianceCandidates(context.Context, time.Time) ([]models.Document, error) {
	return f.documents, f.documentErr
}

func (f *fakeStore) CountByApproval(context.Context) (int, int, error) {
	return f.totalDocs, f.approvedDocs, f.documentErr
}

func (f *fakeStore) ListPendingUntil(context.Context, time.Time) ([]models.Training, error) {
	return f.trainings, f.trainingErr
}

func (f *fakeStore) CountIncomplete(context.Context) (int, error) {
	return f.incomplete, f.trainingErr
}

func (f *fakeStore) NextClosurePeriod(context.Context, time.Time) (*models.PayrollPeriod, error) {
	return f.period, f.payrollErr
}

func (f *fakeStore) CountActive(context.Context) (int, error) {
	return f.activeCount, f.employeeErr
}

func (f *fakeStore) CountHiredSince(context.Context, time.Time) (int, error) {
	return f.hiredCount, f.employeeErr
}

func newTestService(store *fakeStore, policy FailurePolicy) *Service {
	svc := NewService(Sources{
		Requests:  store,
		Shifts:    store,
		Documents: store,
		Trainings: store,
		Payroll:   store,
		Employees: store,
	}, DefaultHorizons(), policy, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC) }
	return svc
}

func TestPendingAlertsSingleCriticalRequest(t *testing.T) {
	store := &fakeStore{
		requests: []models.Request{
			{ID: 42, Type: "Vacation", SubmittedAt: testToday, StartDate: day(5), Status: models.RequestStatusPending},
		},
	}
	svc := newTestService(store, FailFast)

	feed, _, err := svc.PendingAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, OriginRequest, feed[0].Origin)
	assert.Equal(t, int64(42), feed[0].EntityID)
	assert.Equal(t, PriorityCritical, feed[0].Priority)
	assert.Equal(t, testToday, feed[0].ReferenceDate)
}

func TestPendingAlertsFeedOrdering(t *testing.T) {
	store := &fakeStore{
		requests: []models.Request{
			{ID: 1, Type: "Vacation", SubmittedAt: day(-2), StartDate: day(40)}, // MEDIA
		},
		uncovered: []models.Shift{
			{ID: 2, RequiredPosition: "Cook", Date: day(2)},   // CRITICA
			{ID: 3, RequiredPosition: "Waiter", Date: day(5)}, // ALTA
		},
		documents: []models.Document{
			{ID: 4, Type: "Contract", Approved: false}, // ALTA, ref today
		},
		trainings: []models.Training{
			{ID: 5, Name: "Safety", Deadline: datePtr(day(-3))}, // CRITICA
		},
		period: &models.PayrollPeriod{ID: 6, Name: "March", ReviewCutoff: day(4)}, // ALTA
	}
	svc := newTestService(store, FailFast)

	feed, _, err := svc.PendingAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 6)

	// Rank never increases; within a rank, reference dates never increase.
	for i := 1; i < len(feed); i++ {
		prev, cur := feed[i-1], feed[i]
		assert.GreaterOrEqual(t, prev.Priority.Rank(), cur.Priority.Rank())
		if prev.Priority.Rank() == cur.Priority.Rank() {
			assert.False(t, cur.ReferenceDate.After(prev.ReferenceDate))
		}
	}

	// Criticals first: shift in 2 days (ref +2) before overdue training (ref -3).
	assert.Equal(t, OriginShift, feed[0].Origin)
	assert.Equal(t, OriginTraining, feed[1].Origin)
	// Then the high tier by descending reference date: shift +5, payroll +4, document today.
	assert.Equal(t, OriginShift, feed[2].Origin)
	assert.Equal(t, OriginPayroll, feed[3].Origin)
	assert.Equal(t, OriginDocument, feed[4].Origin)
	// Medium request last.
	assert.Equal(t, OriginRequest, feed[5].Origin)
}

func TestPendingAlertsStableTieBreakByDomainOrder(t *testing.T) {
	// Same priority, same reference date: the fixed domain evaluation order
	// (request before shift) must decide.
	store := &fakeStore{
		requests: []models.Request{
			{ID: 1, Type: "Vacation", SubmittedAt: day(2), StartDate: day(2)}, // CRITICA, ref +2
		},
		uncovered: []models.Shift{
			{ID: 2, RequiredPosition: "Cook", Date: day(2)}, // CRITICA, ref +2
		},
	}
	svc := newTestService(store, FailFast)

	feed, _, err := svc.PendingAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, OriginRequest, feed[0].Origin)
	assert.Equal(t, OriginShift, feed[1].Origin)
}

func TestPendingAlertsIdempotent(t *testing.T) {
	store := &fakeStore{
		requests: []models.Request{
			{ID: 1, Type: "Vacation", SubmittedAt: day(-1), StartDate: day(3)},
			{ID: 2, Type: "Sick leave", SubmittedAt: day(-5), StartDate: day(20)},
		},
		uncovered: []models.Shift{{ID: 3, RequiredPosition: "Cook", Date: day(1)}},
		trainings: []models.Training{{ID: 4, Name: "Safety", Deadline: datePtr(day(10))}},
	}
	svc := newTestService(store, FailFast)

	first, _, err := svc.PendingAlerts(context.Background())
	require.NoError(t, err)
	second, _, err := svc.PendingAlerts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPendingAlertsNoOpenPayrollPeriod(t *testing.T) {
	store := &fakeStore{
		uncovered: []models.Shift{{ID: 1, RequiredPosition: "Cook", Date: day(1)}},
	}
	svc := newTestService(store, FailFast)

	feed, _, err := svc.PendingAlerts(context.Background())
	require.NoError(t, err)
	for _, alert := range feed {
		assert.NotEqual(t, OriginPayroll, alert.Origin)
	}
}

func TestPendingAlertsEmptyDomainsYieldEmptyFeed(t *testing.T) {
	svc := newTestService(&fakeStore{}, FailFast)

	feed, statuses, err := svc.PendingAlerts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, feed)
	require.Len(t, statuses, 5)
	for _, status := range statuses {
		assert.True(t, status.Healthy)
	}
}

func TestPendingAlertsFailFastOnProviderError(t *testing.T) {
	store := &fakeStore{
		requests:    []models.Request{{ID: 1, Type: "Vacation", SubmittedAt: testToday, StartDate: day(3)}},
		documentErr: errors.New("connection refused"),
	}
	svc := newTestService(store, FailFast)

	feed, statuses, err := svc.PendingAlerts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOCUMENT")
	assert.Nil(t, feed, "fail-fast must not return a partial feed")
	assert.Nil(t, statuses)
}

func TestPendingAlertsDegradeKeepsHealthyDomains(t *testing.T) {
	store := &fakeStore{
		requests:    []models.Request{{ID: 1, Type: "Vacation", SubmittedAt: testToday, StartDate: day(3)}},
		uncovered:   []models.Shift{{ID: 2, RequiredPosition: "Cook", Date: day(1)}},
		documentErr: errors.New("connection refused"),
	}
	svc := newTestService(store, Degrade)

	feed, statuses, err := svc.PendingAlerts(context.Background())
	require.NoError(t, err)
	assert.Len(t, feed, 2)

	require.Len(t, statuses, 5)
	byOrigin := make(map[Origin]DomainStatus, len(statuses))
	for _, status := range statuses {
		byOrigin[status.Origin] = status
	}
	assert.False(t, byOrigin[OriginDocument].Healthy)
	assert.Contains(t, byOrigin[OriginDocument].Error, "connection refused")
	assert.True(t, byOrigin[OriginRequest].Healthy)
	assert.True(t, byOrigin[OriginShift].Healthy)
}
