package request

type CreateMenuItem struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category"`
	Available   *bool   `json:"available"`
}

// UpdateMenuItem is a partial merge; nil fields are left untouched.
type UpdateMenuItem struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    *string  `json:"category"`
	Available   *bool    `json:"available"`
}
