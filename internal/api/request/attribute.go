package request

// CreateAgeGroup is filled from multipart form fields, not JSON.
type CreateAgeGroup struct {
	Label     string `validate:"required,max=60"`
	MinAge    int    `validate:"gte=0,lte=150"`
	MaxAge    int    `validate:"gtefield=MinAge,lte=150"`
	SortOrder int
}

type CreateColor struct {
	Name string `json:"name" validate:"required,max=60"`
	Hex  string `json:"hex" validate:"required,len=7,hexcolor"`
}

type CreateMaterial struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
}
