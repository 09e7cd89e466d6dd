package core

// Services bundles the constructed service set for injection into the API
// server.
type Services struct {
	Order     *OrderService
	MenuItem  *MenuItemService
	Billing   *BillingService
	Analytics *AnalyticsService
	Dashboard *DashboardService
}

// NewServices wires every service to the shared pool. taxRate is the
// configured embedded tax fraction captured on new orders.
func NewServices(db DB, taxRate float64) *Services {
	return &Services{
		Order:     NewOrderService(db, taxRate),
		MenuItem:  NewMenuItemService(db),
		Billing:   NewBillingService(db),
		Analytics: NewAnalyticsService(db),
		Dashboard: NewDashboardService(db),
	}
}
