package model

import "time"

// AgeGroup is a target age range used to classify products.
type AgeGroup struct {
	ID        string    `json:"id" db:"id"`
	Label     string    `json:"label" db:"label"`
	MinAge    int       `json:"min_age" db:"min_age"`
	MaxAge    int       `json:"max_age" db:"max_age"`
	ImageKey  string    `json:"-" db:"image_key"`
	ImageURL  string    `json:"image_url" db:"image_url"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Color struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Hex       string    `json:"hex" db:"hex"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Material struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
