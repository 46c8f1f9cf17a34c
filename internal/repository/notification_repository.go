package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hrstack/hr-api/internal/models"
)

type NotificationRepository interface {
	Create(ctx context.Context, params CreateNotificationParams) (models.Notification, error)
	ListRecent(ctx context.Context, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) (models.Notification, error)
}

type notificationRepository struct {
	db *sql.DB
}

type CreateNotificationParams struct {
	EmployeeID *int64
	Event      models.NotificationEvent
	Severity   models.NotificationSeverity
	Title      string
	Message    string
	Metadata   map[string]interface{}
}

func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, params CreateNotificationParams) (models.Notification, error) {
	const query = `
		INSERT INTO hr.notifications (employee_id, event_type, severity, title, message, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employee_id, event_type, severity, title, message, metadata, created_at, read_at
	`

	var metadata interface{}
	if len(params.Metadata) > 0 {
		bytes, err := json.Marshal(params.Metadata)
		if err != nil {
			return models.Notification{}, fmt.Errorf("marshal metadata: %w", err)
		}
		metadata = bytes
	}

	row := r.db.QueryRowContext(ctx, query, params.EmployeeID, params.Event, params.Severity, params.Title, params.Message, metadata)
	return scanNotification(row)
}

func (r *notificationRepository) ListRecent(ctx context.Context, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	const query = `
		SELECT id, employee_id, event_type, severity, title, message, metadata, created_at, read_at
		FROM hr.notifications
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, notificationID string) (models.Notification, error) {
	const query = `
		UPDATE hr.notifications
		SET read_at = COALESCE(read_at, now())
		WHERE id = $1
		RETURNING id, employee_id, event_type, severity, title, message, metadata, created_at, read_at
	`
	notification, err := scanNotification(r.db.QueryRowContext(ctx, query, notificationID))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Notification{}, ErrNotFound
		}
		return models.Notification{}, err
	}
	return notification, nil
}

func scanNotification(row interface{ Scan(...interface{}) error }) (models.Notification, error) {
	var notification models.Notification
	var metadata []byte
	err := row.Scan(
		&notification.ID,
		&notification.EmployeeID,
		&notification.EventType,
		&notification.Severity,
		&notification.Title,
		&notification.Message,
		&metadata,
		&notification.CreatedAt,
		&notification.ReadAt,
	)
	if err != nil {
		return models.Notification{}, err
	}
	if len(metadata) > 0 {
		notification.Metadata = json.RawMessage(metadata)
	}
	return notification, nil
}
