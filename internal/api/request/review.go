package request

type CreateReview struct {
	ProductID  string `json:"product_id" validate:"required,uuid"`
	CustomerID string `json:"customer_id" validate:"required,uuid"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"max=5000"`
}

type UpdateReviewStatus struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}
