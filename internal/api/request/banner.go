package request

import "time"

// CreateBanner is filled from multipart form fields, not JSON.
type CreateBanner struct {
	Title    string `validate:"required,max=200"`
	Campaign string `validate:"required,max=120"`
	LinkURL  string `validate:"omitempty,url"`
	Position int    `validate:"gte=0"`
	Active   bool
	StartsAt *time.Time
	EndsAt   *time.Time
}
