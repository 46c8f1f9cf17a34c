package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/hrstack/hr-api/internal/models"
	"github.com/hrstack/hr-api/internal/notification"
	"github.com/hrstack/hr-api/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequestRepo struct {
	byID map[int64]models.Request
}

func (f *fakeRequestRepo) Create(_ context.Context, req models.Request) (models.Request, error) {
	req.ID = int64(len(f.byID) + 1)
	req.Status = models.RequestStatusPending
	req.SubmittedAt = time.Now()
	f.byID[req.ID] = req
	return req, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (models.Request, error) {
	req, ok := f.byID[id]
	if !ok {
		return models.Request{}, repository.ErrNotFound
	}
	return req, nil
}

func (f *fakeRequestRepo) List(context.Context, int, int) ([]models.Request, error) {
	return nil, nil
}

func (f *fakeRequestRepo) ListByEmployee(context.Context, int64) ([]models.Request, error) {
	return nil, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id int64, status string) (models.Request, error) {
	req, ok := f.byID[id]
	if !ok {
		return models.Request{}, repository.ErrNotFound
	}
	req.Status = status
	f.byID[id] = req
	return req, nil
}

func (f *fakeRequestRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeRequestRepo) ListPending(context.Context) ([]models.Request, error) {
	return nil, nil
}

// recordingNotifications captures published lifecycle events.
type recordingNotifications struct {
	decided   []models.Request
	finalized []models.PayrollPeriod
}

func (r *recordingNotifications) Publish(context.Context, notification.Event) (models.Notification, error) {
	return models.Notification{}, nil
}

func (r *recordingNotifications) NotifyRequestDecided(_ context.Context, req models.Request) error {
	r.decided = append(r.decided, req)
	return nil
}

func (r *recordingNotifications) NotifyDocumentApproved(context.Context, models.Document) error {
	return nil
}

func (r *recordingNotifications) NotifyPayrollFinalized(_ context.Context, period models.PayrollPeriod) error {
	r.finalized = append(r.finalized, period)
	return nil
}

func (r *recordingNotifications) ListRecent(context.Context, int) ([]models.Notification, error) {
	return nil, nil
}

func (r *recordingNotifications) MarkRead(context.Context, string) (models.Notification, error) {
	return models.Notification{}, nil
}

func newRequestRouter(repo *fakeRequestRepo, notifs *recordingNotifications) *mux.Router {
	handler := NewRequestHandler(repo, notifs, zerolog.Nop())
	router := mux.NewRouter()
	router.HandleFunc("/requests", handler.Create).Methods(http.MethodPost)
	router.HandleFunc("/requests/{id}/status", handler.Decide).Methods(http.MethodPut)
	return router
}

func TestCreateRequestForcesPendingStatus(t *testing.T) {
	repo := &fakeRequestRepo{byID: map[int64]models.Request{}}
	router := newRequestRouter(repo, &recordingNotifications{})

	body := `{"employee_id": 3, "type": "vacation", "start_date": "2026-04-01", "end_date": "2026-04-05", "status": "Approved"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Request
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, models.RequestStatusPending, created.Status)
}

func TestCreateRequestRejectsInvertedDates(t *testing.T) {
	repo := &fakeRequestRepo{byID: map[int64]models.Request{}}
	router := newRequestRouter(repo, &recordingNotifications{})

	body := `{"employee_id": 3, "type": "vacation", "start_date": "2026-04-05", "end_date": "2026-04-01"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecideApprovesAndNotifies(t *testing.T) {
	repo := &fakeRequestRepo{byID: map[int64]models.Request{
		5: {ID: 5, EmployeeID: 3, Type: "vacation", Status: models.RequestStatusPending},
	}}
	notifs := &recordingNotifications{}
	router := newRequestRouter(repo, notifs)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/requests/5/status", strings.NewReader(`{"status": "Approved"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Request
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.RequestStatusApproved, updated.Status)

	require.Len(t, notifs.decided, 1)
	assert.Equal(t, int64(5), notifs.decided[0].ID)
}

func TestDecideTwiceConflicts(t *testing.T) {
	repo := &fakeRequestRepo{byID: map[int64]models.Request{
		5: {ID: 5, EmployeeID: 3, Type: "vacation", Status: models.RequestStatusApproved},
	}}
	notifs := &recordingNotifications{}
	router := newRequestRouter(repo, notifs)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/requests/5/status", strings.NewReader(`{"status": "Rejected"}`)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, notifs.decided)
}

func TestDecideRejectsUnknownStatus(t *testing.T) {
	repo := &fakeRequestRepo{byID: map[int64]models.Request{
		5: {ID: 5, EmployeeID: 3, Type: "vacation", Status: models.RequestStatusPending},
	}}
	router := newRequestRouter(repo, &recordingNotifications{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/requests/5/status", strings.NewReader(`{"status": "Maybe"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
