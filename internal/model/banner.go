package model

import "time"

type Banner struct {
	ID        string     `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Campaign  string     `json:"campaign" db:"campaign"`
	ImageKey  string     `json:"-" db:"image_key"`
	ImageURL  string     `json:"image_url" db:"image_url"`
	LinkURL   string     `json:"link_url" db:"link_url"`
	Position  int        `json:"position" db:"position"`
	Active    bool       `json:"active" db:"active"`
	StartsAt  *time.Time `json:"starts_at" db:"starts_at"`
	EndsAt    *time.Time `json:"ends_at" db:"ends_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// BannerGroup holds the banners of one campaign ordered by position.
type BannerGroup struct {
	Campaign string   `json:"campaign"`
	Banners  []Banner `json:"banners"`
}
