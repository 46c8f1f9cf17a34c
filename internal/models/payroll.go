package models

import "time"

// PayrollPeriod defines one pay cycle. ReviewCutoff is the deadline for
// reviewing the period's payment details before it can be finalized.
type PayrollPeriod struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	StartDate    time.Time `json:"start_date" db:"start_date"`
	EndDate      time.Time `json:"end_date" db:"end_date"`
	ReviewCutoff time.Time `json:"review_cutoff" db:"review_cutoff"`
	Status       string    `json:"status" db:"status"`
	Finalized    bool      `json:"finalized" db:"finalized"`
}

// PaymentDetail is the financial summary of one employee's pay for one
// period. TotalHours and BaseAmount are nil for fixed-salary employees until
// the payroll run computes them.
type PaymentDetail struct {
	ID         int64          `json:"id" db:"id"`
	EmployeeID int64          `json:"employee_id" db:"employee_id"`
	PeriodID   int64          `json:"period_id" db:"period_id"`
	TotalHours *float64       `json:"total_hours,omitempty" db:"total_hours"`
	BaseAmount *float64       `json:"base_amount,omitempty" db:"base_amount"`
	Deductions float64        `json:"deductions" db:"deductions"`
	Bonuses    float64        `json:"bonuses" db:"bonuses"`
	NetAmount  *float64       `json:"net_amount,omitempty" db:"net_amount"`
	Components []PayComponent `json:"components,omitempty"`
}

// PayComponent is a single receipt line (bonus, deduction, overtime) of a
// payment detail. Amount may be negative.
type PayComponent struct {
	ID              int64   `json:"id" db:"id"`
	PaymentDetailID int64   `json:"payment_detail_id" db:"payment_detail_id"`
	Type            string  `json:"type" db:"type"`
	Description     string  `json:"description" db:"description"`
	Amount          float64 `json:"amount" db:"amount"`
}
