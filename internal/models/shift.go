package models

import "time"

// Shift is a concrete staffing assignment for a single day. A shift with no
// assigned employee is uncovered and feeds the alert pipeline.
type Shift struct {
	ID                 int64     `json:"id" db:"id"`
	Date               time.Time `json:"date" db:"date"`
	StartTime          string    `json:"start_time" db:"start_time"`
	EndTime            string    `json:"end_time" db:"end_time"`
	RequiredPosition   string    `json:"required_position" db:"required_position"`
	AssignedEmployeeID *int64    `json:"assigned_employee_id,omitempty" db:"assigned_employee_id"`
	IsCovered          bool      `json:"is_covered" db:"is_covered"`
	IsAlteration       bool      `json:"is_alteration" db:"is_alteration"`
	Notes              string    `json:"notes" db:"notes"`
}
