package model

import "time"

// Order is a placed order. Line items are a denormalized snapshot of the
// menu at order time: later menu edits never change historical totals.
type Order struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"order_number"`
	CustomerName  string      `json:"customer_name"`
	Items         []OrderItem `json:"items"`
	Total         float64     `json:"total"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"payment_method,omitempty"`
	TaxRate       float64     `json:"tax_rate"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderItem is one ordered line. MenuItemID links back to the catalog when
// known; name and price are the snapshot actually charged.
type OrderItem struct {
	MenuItemID *string `json:"menu_item_id,omitempty"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// LineTotal returns quantity × unit price.
func (i OrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.Price
}

// ItemsTotal sums the line totals of the given items.
func ItemsTotal(items []OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}
