package model

import "time"

type Review struct {
	ID          string    `json:"id" db:"id"`
	ProductID   string    `json:"product_id" db:"product_id"`
	CustomerID  string    `json:"customer_id" db:"customer_id"`
	Rating      int       `json:"rating" db:"rating"`
	Comment     string    `json:"comment" db:"comment"`
	Status      string    `json:"status" db:"status"`
	Flagged     bool      `json:"flagged" db:"flagged"`
	FlagReasons []string  `json:"flag_reasons" db:"flag_reasons"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
