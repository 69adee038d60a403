package model

import "time"

type Customer struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Email           string    `json:"email" db:"email"`
	Phone           string    `json:"phone" db:"phone"`
	Status          string    `json:"status" db:"status"`
	OrderCount      int       `json:"order_count" db:"-"`
	TotalSpentCents int64     `json:"total_spent_cents" db:"-"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
