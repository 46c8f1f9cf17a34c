package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hrstack/hr-api/internal/models"
	"github.com/hrstack/hr-api/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryNotificationRepo struct {
	created []models.Notification
}

func (m *memoryNotificationRepo) Create(_ context.Context, params repository.CreateNotificationParams) (models.Notification, error) {
	notif := models.Notification{
		ID:         uuid.NewString(),
		EmployeeID: params.EmployeeID,
		EventType:  params.Event,
		Severity:   params.Severity,
		Title:      params.Title,
		Message:    params.Message,
		CreatedAt:  time.Now(),
	}
	m.created = append(m.created, notif)
	return notif, nil
}

func (m *memoryNotificationRepo) ListRecent(context.Context, int) ([]models.Notification, error) {
	return m.created, nil
}

func (m *memoryNotificationRepo) MarkRead(context.Context, string) (models.Notification, error) {
	return models.Notification{}, repository.ErrNotFound
}

type flakyNotifier struct {
	calls int
	err   error
}

func (f *flakyNotifier) Notify(context.Context, models.Notification) error {
	f.calls++
	return f.err
}

func TestPublishRequiresEventType(t *testing.T) {
	svc := NewService(&memoryNotificationRepo{}, zerolog.Nop())
	_, err := svc.Publish(context.Background(), Event{Title: "no event"})
	assert.Error(t, err)
}

func TestPublishDefaultsSeverityAndTitle(t *testing.T) {
	repo := &memoryNotificationRepo{}
	svc := NewService(repo, zerolog.Nop())

	notif, err := svc.Publish(context.Background(), Event{Event: models.NotificationEventPayrollFinalized})
	require.NoError(t, err)

	assert.Equal(t, models.NotificationSeverityInfo, notif.Severity)
	assert.Equal(t, string(models.NotificationEventPayrollFinalized), notif.Title)
	require.Len(t, repo.created, 1)
}

func TestPublishSurvivesNotifierFailure(t *testing.T) {
	repo := &memoryNotificationRepo{}
	broken := &flakyNotifier{err: errors.New("smtp down")}
	svc := NewService(repo, zerolog.Nop(), broken)

	_, err := svc.Publish(context.Background(), Event{
		Event: models.NotificationEventRequestApproved,
		Title: "Request approved",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, broken.calls)
	assert.Len(t, repo.created, 1)
}

func TestNotifyRequestDecidedRejectsPending(t *testing.T) {
	svc := NewService(&memoryNotificationRepo{}, zerolog.Nop())
	err := svc.NotifyRequestDecided(context.Background(), models.Request{
		ID:     1,
		Status: models.RequestStatusPending,
	})
	assert.Error(t, err)
}

func TestNotifyRequestDecidedScopesToEmployee(t *testing.T) {
	repo := &memoryNotificationRepo{}
	svc := NewService(repo, zerolog.Nop())

	err := svc.NotifyRequestDecided(context.Background(), models.Request{
		ID:         9,
		EmployeeID: 4,
		Type:       "vacation",
		StartDate:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:     models.RequestStatusRejected,
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	notif := repo.created[0]
	assert.Equal(t, models.NotificationEventRequestRejected, notif.EventType)
	assert.Equal(t, models.NotificationSeverityWarning, notif.Severity)
	require.NotNil(t, notif.EmployeeID)
	assert.Equal(t, int64(4), *notif.EmployeeID)
}

func TestNotifyPayrollFinalizedIsBroadcast(t *testing.T) {
	repo := &memoryNotificationRepo{}
	svc := NewService(repo, zerolog.Nop())

	err := svc.NotifyPayrollFinalized(context.Background(), models.PayrollPeriod{
		ID:        2,
		Name:      "March 2026 - 1st fortnight",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Nil(t, repo.created[0].EmployeeID)
}
