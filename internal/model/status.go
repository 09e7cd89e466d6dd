package model

// Order lifecycle status constants. This is the single closed vocabulary;
// handlers reject writes outside it.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusPaid      = "paid"
	StatusRefunded  = "refunded"
)

// statusTransitions maps each status to the statuses an order may move to.
// Cancellation is only reachable while the kitchen can still stop the order.
var statusTransitions = map[string][]string{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted},
	StatusCompleted: {StatusPaid},
	StatusPaid:      {StatusRefunded},
	StatusCancelled: {},
	StatusRefunded:  {},
}

// ValidStatus reports whether s belongs to the order status vocabulary.
func ValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
