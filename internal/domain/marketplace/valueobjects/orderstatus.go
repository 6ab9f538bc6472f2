package valueobjects

// OrderStatus values match the persisted representation.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusAccepted   OrderStatus = "ACCEPTED"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusPending:    {OrderStatusAccepted, OrderStatusCancelled},
		OrderStatusAccepted:   {OrderStatusInProgress, OrderStatusCancelled},
		OrderStatusInProgress: {OrderStatusCompleted, OrderStatusCancelled},
		OrderStatusCompleted:  {},
		OrderStatusCancelled:  {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}

	for _, allowedStatus := range allowed {
		if allowedStatus == target {
			return true
		}
	}
	return false
}

var ValidOrderStatuses = map[OrderStatus]bool{
	OrderStatusPending:    true,
	OrderStatusAccepted:   true,
	OrderStatusInProgress: true,
	OrderStatusCompleted:  true,
	OrderStatusCancelled:  true,
}
