package model

import "time"

// Bill is a read-model projection of a completed or paid order. It is
// never persisted; the subtotal/tax split is derived from the tax rate
// stored on the order so the original total is reproduced unchanged.
type Bill struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"order_number"`
	CustomerName  string      `json:"customer_name"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	Tax           float64     `json:"tax"`
	Total         float64     `json:"total"`
	PaymentMethod string      `json:"payment_method"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}

// BillFromOrder projects an order into its bill. Orders still marked
// completed surface as paid, matching how the register reports them.
func BillFromOrder(o Order) Bill {
	subtotal := o.Total / (1 + o.TaxRate)

	status := o.Status
	if status == StatusCompleted {
		status = StatusPaid
	}

	method := o.PaymentMethod
	if method == "" {
		method = "Cash"
	}

	return Bill{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		Items:         o.Items,
		Subtotal:      subtotal,
		Tax:           o.Total - subtotal,
		Total:         o.Total,
		PaymentMethod: method,
		Status:        status,
		CreatedAt:     o.CreatedAt,
	}
}
