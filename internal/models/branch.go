package models

import "time"

// Branch is a physical location employees belong to.
type Branch struct {
	ID       int64     `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	OpenedAt time.Time `json:"opened_at" db:"opened_at"`
	Location string    `json:"location" db:"location"`
	Phone    *string   `json:"phone,omitempty" db:"phone"`
}
