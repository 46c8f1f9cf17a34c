package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hrstack/hr-api/internal/alerts"
	"github.com/hrstack/hr-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAlertStore satisfies every provider interface the aggregation core
// reads from.
type stubAlertStore struct {
	requests  []models.Request
	shifts    []models.Shift
	documents []models.Document
	trainings []models.Training
	period    *models.PayrollPeriod

	documentErr error
}

func (s *stubAlertStore) ListPending(context.Context) ([]models.Request, error) {
	return s.requests, nil
}

func (s *stubAlertStore) ListUncoveredBetween(context.Context, time.Time, time.Time) ([]models.Shift, error) {
	return s.shifts, nil
}

func (s *stubAlertStore) ListByDate(context.Context, time.Time) ([]models.Shift, error) {
	return nil, nil
}

func (s *stubAlertStore) ListComplianceCandidates(context.Context, time.Time) ([]models.Document, error) {
	if s.documentErr != nil {
		return nil, s.documentErr
	}
	return s.documents, nil
}

func (s *stubAlertStore) CountByApproval(context.Context) (int, int, error) {
	if s.documentErr != nil {
		return 0, 0, s.documentErr
	}
	return len(s.documents), 0, nil
}

func (s *stubAlertStore) ListPendingUntil(context.Context, time.Time) ([]models.Training, error) {
	return s.trainings, nil
}

func (s *stubAlertStore) CountIncomplete(context.Context) (int, error) {
	return len(s.trainings), nil
}

func (s *stubAlertStore) NextClosurePeriod(context.Context, time.Time) (*models.PayrollPeriod, error) {
	return s.period, nil
}

func (s *stubAlertStore) CountActive(context.Context) (int, error) {
	return 0, nil
}

func (s *stubAlertStore) CountHiredSince(context.Context, time.Time) (int, error) {
	return 0, nil
}

func newAlertService(store *stubAlertStore, policy alerts.FailurePolicy) *alerts.Service {
	return alerts.NewService(alerts.Sources{
		Requests:  store,
		Shifts:    store,
		Documents: store,
		Trainings: store,
		Payroll:   store,
		Employees: store,
	}, alerts.DefaultHorizons(), policy, zerolog.Nop())
}

func TestPendingAlertsEmptyFeedIsArray(t *testing.T) {
	handler := NewAlertHandler(newAlertService(&stubAlertStore{}, alerts.FailFast), false, zerolog.Nop())

	rec := httptest.NewRecorder()
	handler.PendingAlerts(rec, httptest.NewRequest(http.MethodGet, "/api/hr/alerts/pending", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var feed []alerts.Alert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	assert.Empty(t, feed)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestPendingAlertsRanksUncoveredShift(t *testing.T) {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	store := &stubAlertStore{
		shifts: []models.Shift{{ID: 7, Date: tomorrow, StartTime: "08:00", EndTime: "16:00", RequiredPosition: "Cashier"}},
	}
	handler := NewAlertHandler(newAlertService(store, alerts.FailFast), false, zerolog.Nop())

	rec := httptest.NewRecorder()
	handler.PendingAlerts(rec, httptest.NewRequest(http.MethodGet, "/api/hr/alerts/pending", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var feed []alerts.Alert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	require.Len(t, feed, 1)
	assert.Equal(t, alerts.OriginShift, feed[0].Origin)
	assert.Equal(t, alerts.PriorityCritical, feed[0].Priority)
	assert.Equal(t, int64(7), feed[0].EntityID)
}

func TestPendingAlertsFailFastOnProviderError(t *testing.T) {
	store := &stubAlertStore{documentErr: errors.New("connection refused")}
	handler := NewAlertHandler(newAlertService(store, alerts.FailFast), false, zerolog.Nop())

	rec := httptest.NewRecorder()
	handler.PendingAlerts(rec, httptest.NewRequest(http.MethodGet, "/api/hr/alerts/pending", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPendingAlertsDegradedEnvelope(t *testing.T) {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	store := &stubAlertStore{
		shifts:      []models.Shift{{ID: 7, Date: tomorrow, StartTime: "08:00", EndTime: "16:00", RequiredPosition: "Cashier"}},
		documentErr: errors.New("connection refused"),
	}
	handler := NewAlertHandler(newAlertService(store, alerts.Degrade), true, zerolog.Nop())

	rec := httptest.NewRecorder()
	handler.PendingAlerts(rec, httptest.NewRequest(http.MethodGet, "/api/hr/alerts/pending", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope degradedFeedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Alerts, 1)
	assert.Equal(t, alerts.OriginShift, envelope.Alerts[0].Origin)

	require.Len(t, envelope.Domains, 5)
	unhealthy := 0
	for _, domain := range envelope.Domains {
		if !domain.Healthy {
			unhealthy++
			assert.Equal(t, alerts.OriginDocument, domain.Origin)
		}
	}
	assert.Equal(t, 1, unhealthy)
}

func TestSummaryStatsProviderError(t *testing.T) {
	store := &stubAlertStore{documentErr: errors.New("connection refused")}
	handler := NewAlertHandler(newAlertService(store, alerts.FailFast), false, zerolog.Nop())

	rec := httptest.NewRecorder()
	handler.SummaryStats(rec, httptest.NewRequest(http.MethodGet, "/api/hr/stats/summary", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSummaryStatsFields(t *testing.T) {
	handler := NewAlertHandler(newAlertService(&stubAlertStore{}, alerts.FailFast), false, zerolog.Nop())

	rec := httptest.NewRecorder()
	handler.SummaryStats(rec, httptest.NewRequest(http.MethodGet, "/api/hr/stats/summary", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload, "total_employees")
	assert.Contains(t, payload, "compliance_rate")
	// No documents on file counts as fully compliant.
	assert.EqualValues(t, 100, payload["compliance_rate"])
}
