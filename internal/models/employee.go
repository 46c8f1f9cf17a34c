package models

import "time"

// Employee is the central entity of the HR service. Every other table
// (schedules, shifts, documents, trainings, requests, payments) hangs off it.
type Employee struct {
	ID               int64     `json:"id" db:"id"`
	FirstName        string    `json:"first_name" db:"first_name"`
	LastName         string    `json:"last_name" db:"last_name"`
	Email            string    `json:"email" db:"email"`
	Position         string    `json:"position" db:"position"`
	HourlyRate       float64   `json:"hourly_rate" db:"hourly_rate"`
	FixedSalary      bool      `json:"fixed_salary" db:"fixed_salary"`
	HireDate         time.Time `json:"hire_date" db:"hire_date"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	PerformanceScore int       `json:"performance_score" db:"performance_score"`
	BranchID         *int64    `json:"branch_id,omitempty" db:"branch_id"`
}

// Schedule is a base weekly pattern row for an employee (e.g. Monday
// 08:00-16:00). Weekday runs 1 (Monday) through 7 (Sunday). An employee may
// carry several patterns but only the current ones drive shift planning.
type Schedule struct {
	ID         int64  `json:"id" db:"id"`
	EmployeeID int64  `json:"employee_id" db:"employee_id"`
	Name       string `json:"name" db:"name"`
	Weekday    int    `json:"weekday" db:"weekday"`
	StartTime  string `json:"start_time" db:"start_time"`
	EndTime    string `json:"end_time" db:"end_time"`
	IsCurrent  bool   `json:"is_current" db:"is_current"`
}
