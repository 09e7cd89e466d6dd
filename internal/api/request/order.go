package request

// CreateOrderItem is one submitted order line. The unit price is snapshot
// into the order; the total is always recomputed server-side.
type CreateOrderItem struct {
	MenuItemID *string `json:"menu_item_id,omitempty"`
	Name       string  `json:"name" validate:"required"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	Price      float64 `json:"price" validate:"required,gt=0"`
}

type CreateOrder struct {
	CustomerName  string            `json:"customer_name" validate:"required"`
	PaymentMethod string            `json:"payment_method"`
	Items         []CreateOrderItem `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrder is a partial merge; nil fields are left untouched. A non-nil
// Items replaces the full line set and recomputes the total.
type UpdateOrder struct {
	CustomerName  *string           `json:"customer_name"`
	PaymentMethod *string           `json:"payment_method"`
	Status        *string           `json:"status"`
	Items         []CreateOrderItem `json:"items" validate:"omitempty,min=1,dive"`
}
