package valueobjects

type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "ACTIVE"
	StatusCancelled SubscriptionStatus = "CANCELLED"
	StatusExpired   SubscriptionStatus = "EXPIRED"
	StatusSuspended SubscriptionStatus = "SUSPENDED"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// CanCreateResources reports whether the status allows new orders and
// proposals. A cancelled subscription keeps its quota until the period ends
// (grace period); a suspended one is blocked regardless of quota.
func (s SubscriptionStatus) CanCreateResources() bool {
	return s == StatusActive || s == StatusCancelled
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	transitions := map[SubscriptionStatus][]SubscriptionStatus{
		StatusActive:    {StatusCancelled, StatusSuspended, StatusExpired},
		StatusCancelled: {StatusExpired},
		StatusSuspended: {StatusActive},
		StatusExpired:   {},
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

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusActive:    true,
	StatusCancelled: true,
	StatusExpired:   true,
	StatusSuspended: true,
}
