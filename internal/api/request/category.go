package request

type CreateCategory struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Slug        string  `json:"slug" validate:"omitempty,slug"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid"`
	Description string  `json:"description" validate:"max=2000"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	SortOrder   int     `json:"sort_order"`
	Active      *bool   `json:"active"`
}

type UpdateCategory struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Slug        *string `json:"slug" validate:"omitempty,slug"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
	SortOrder   *int    `json:"sort_order"`
	Active      *bool   `json:"active"`
}

type CreateCollection struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Slug        string   `json:"slug" validate:"omitempty,slug"`
	Description string   `json:"description" validate:"max=2000"`
	Active      *bool    `json:"active"`
	ProductIDs  []string `json:"product_ids" validate:"omitempty,dive,uuid"`
}

type UpdateCollection struct {
	Name        string `json:"name" validate:"required,max=120"`
	Slug        string `json:"slug" validate:"omitempty,slug"`
	Description string `json:"description" validate:"max=2000"`
	Active      bool   `json:"active"`
}
