package request

type CreateCustomer struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"max=40"`
}

type UpdateCustomer struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone  *string `json:"phone" validate:"omitempty,max=40"`
	Status *string `json:"status" validate:"omitempty,oneof=active blocked"`
}
