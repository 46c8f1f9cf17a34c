package models

import "time"

// Document is a legal document or certification attached to an employee.
// ExpiryDate is nil for documents that never expire.
type Document struct {
	ID         int64      `json:"id" db:"id"`
	EmployeeID int64      `json:"employee_id" db:"employee_id"`
	Type       string     `json:"type" db:"type"`
	FileURL    string     `json:"file_url" db:"file_url"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty" db:"expiry_date"`
	Approved   bool       `json:"approved" db:"approved"`
}
