package models

import "time"

// Request statuses. A request is created Pending and decided exactly once.
const (
	RequestStatusPending  = "Pending"
	RequestStatusApproved = "Approved"
	RequestStatusRejected = "Rejected"
)

// Request is a leave/permission/replacement request filed by an employee.
type Request struct {
	ID          int64     `json:"id" db:"id"`
	EmployeeID  int64     `json:"employee_id" db:"employee_id"`
	Type        string    `json:"type" db:"type"`
	Reason      string    `json:"reason" db:"reason"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	Status      string    `json:"status" db:"status"`
}
