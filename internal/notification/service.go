package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrstack/hr-api/internal/models"
	"github.com/hrstack/hr-api/internal/repository"
	"github.com/rs/zerolog"
)

type Event struct {
	EmployeeID *int64
	Event      models.NotificationEvent
	Severity   models.NotificationSeverity
	Title      string
	Message    string
	Metadata   map[string]interface{}
}

type Service interface {
	Publish(ctx context.Context, evt Event) (models.Notification, error)
	NotifyRequestDecided(ctx context.Context, request models.Request) error
	NotifyDocumentApproved(ctx context.Context, document models.Document) error
	NotifyPayrollFinalized(ctx context.Context, period models.PayrollPeriod) error
	ListRecent(ctx context.Context, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) (models.Notification, error)
}

type service struct {
	repo      repository.NotificationRepository
	logger    zerolog.Logger
	notifiers []Notifier
}

func NewService(repo repository.NotificationRepository, logger zerolog.Logger, notifiers ...Notifier) Service {
	active := make([]Notifier, 0, len(notifiers))
	for _, notifier := range notifiers {
		if notifier != nil {
			active = append(active, notifier)
		}
	}
	return &service{
		repo:      repo,
		logger:    logger.With().Str("component", "notification_service").Logger(),
		notifiers: active,
	}
}

func (s *service) Publish(ctx context.Context, evt Event) (models.Notification, error) {
	if evt.Event == "" {
		return models.Notification{}, fmt.Errorf("event type is required")
	}
	if evt.Severity == "" {
		evt.Severity = models.NotificationSeverityInfo
	}
	title := strings.TrimSpace(evt.Title)
	message := strings.TrimSpace(evt.Message)
	if title == "" {
		title = string(evt.Event)
	}

	notif, err := s.repo.Create(ctx, repository.CreateNotificationParams{
		EmployeeID: evt.EmployeeID,
		Event:      evt.Event,
		Severity:   evt.Severity,
		Title:      title,
		Message:    message,
		Metadata:   evt.Metadata,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("event_type", string(evt.Event)).Msg("failed to persist notification")
		return models.Notification{}, err
	}
	for _, notifier := range s.notifiers {
		if err := notifier.Notify(ctx, notif); err != nil {
			logNotifyError(s.logger, err, notifierChannelName(notifier), notif)
		}
	}
	return notif, nil
}

// NotifyRequestDecided records the approval or rejection of an employee
// request. Pending requests are not notifiable.
func (s *service) NotifyRequestDecided(ctx context.Context, request models.Request) error {
	var event models.NotificationEvent
	var severity models.NotificationSeverity
	switch request.Status {
	case models.RequestStatusApproved:
		event = models.NotificationEventRequestApproved
		severity = models.NotificationSeverityInfo
	case models.RequestStatusRejected:
		event = models.NotificationEventRequestRejected
		severity = models.NotificationSeverityWarning
	default:
		return fmt.Errorf("request %d has undecided status %q", request.ID, request.Status)
	}

	employeeID := request.EmployeeID
	_, err := s.Publish(ctx, Event{
		EmployeeID: &employeeID,
		Event:      event,
		Severity:   severity,
		Title:      fmt.Sprintf("Request %s", strings.ToLower(request.Status)),
		Message:    fmt.Sprintf("Your %s request starting %s was %s.", request.Type, request.StartDate.Format("2006-01-02"), strings.ToLower(request.Status)),
		Metadata: map[string]interface{}{
			"request_id":   request.ID,
			"request_type": request.Type,
			"status":       request.Status,
		},
	})
	return err
}

func (s *service) NotifyDocumentApproved(ctx context.Context, document models.Document) error {
	employeeID := document.EmployeeID
	_, err := s.Publish(ctx, Event{
		EmployeeID: &employeeID,
		Event:      models.NotificationEventDocumentApproved,
		Severity:   models.NotificationSeverityInfo,
		Title:      "Document approved",
		Message:    fmt.Sprintf("Your document %q has been approved.", document.Type),
		Metadata: map[string]interface{}{
			"document_id":   document.ID,
			"document_type": document.Type,
		},
	})
	return err
}

// NotifyPayrollFinalized is broadcast; it carries no employee scope.
func (s *service) NotifyPayrollFinalized(ctx context.Context, period models.PayrollPeriod) error {
	_, err := s.Publish(ctx, Event{
		Event:    models.NotificationEventPayrollFinalized,
		Severity: models.NotificationSeverityInfo,
		Title:    fmt.Sprintf("Payroll finalized: %s", period.Name),
		Message:  fmt.Sprintf("Payroll period %s (%s to %s) has been finalized.", period.Name, period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02")),
		Metadata: map[string]interface{}{
			"period_id":   period.ID,
			"period_name": period.Name,
		},
	})
	return err
}

func (s *service) ListRecent(ctx context.Context, limit int) ([]models.Notification, error) {
	return s.repo.ListRecent(ctx, limit)
}

func (s *service) MarkRead(ctx context.Context, notificationID string) (models.Notification, error) {
	return s.repo.MarkRead(ctx, notificationID)
}

func notifierChannelName(n Notifier) string {
	type named interface {
		String() string
	}
	if v, ok := n.(named); ok {
		return v.String()
	}
	return fmt.Sprintf("%T", n)
}
