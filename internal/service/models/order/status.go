package order

// Status represents the lifecycle state of an order. Checkout only ever
// creates orders in StatusPending; downstream payment and shipping flows own
// the later transitions.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusShipped   Status = "shipped"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the transition from s to next is legal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusPaid || next == StatusCancelled
	case StatusPaid:
		return next == StatusShipped
	case StatusShipped:
		return next == StatusCompleted
	default:
		return false
	}
}

// ParseStatus converts a stored string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusCancelled, StatusShipped, StatusCompleted:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
