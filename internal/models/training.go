package models

import "time"

// Training tracks a course assigned to an employee and its completion state.
// Deadline is nil for open-ended trainings.
type Training struct {
	ID             int64      `json:"id" db:"id"`
	EmployeeID     int64      `json:"employee_id" db:"employee_id"`
	Name           string     `json:"name" db:"name"`
	AssignedDate   time.Time  `json:"assigned_date" db:"assigned_date"`
	Deadline       *time.Time `json:"deadline,omitempty" db:"deadline"`
	Completed      bool       `json:"completed" db:"completed"`
	CertificateURL string     `json:"certificate_url" db:"certificate_url"`
}
