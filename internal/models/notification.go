package models

import (
	"encoding/json"
	"time"
)

type NotificationSeverity string

const (
	NotificationSeverityInfo    NotificationSeverity = "info"
	NotificationSeverityWarning NotificationSeverity = "warning"
	NotificationSeverityError   NotificationSeverity = "error"
)

type NotificationEvent string

const (
	NotificationEventRequestApproved  NotificationEvent = "request_approved"
	NotificationEventRequestRejected  NotificationEvent = "request_rejected"
	NotificationEventPayrollFinalized NotificationEvent = "payroll_finalized"
	NotificationEventDocumentApproved NotificationEvent = "document_approved"
)

// Notification is one persisted lifecycle event, optionally scoped to a
// single employee. EmployeeID nil means the event is visible to everyone.
type Notification struct {
	ID         string               `json:"id" db:"id"`
	EmployeeID *int64               `json:"employee_id,omitempty" db:"employee_id"`
	EventType  NotificationEvent    `json:"event_type" db:"event_type"`
	Severity   NotificationSeverity `json:"severity" db:"severity"`
	Title      string               `json:"title" db:"title"`
	Message    string               `json:"message" db:"message"`
	Metadata   json.RawMessage      `json:"metadata,omitempty" db:"metadata"`
	CreatedAt  time.Time            `json:"created_at" db:"created_at"`
	ReadAt     *time.Time           `json:"read_at,omitempty" db:"read_at"`
}
