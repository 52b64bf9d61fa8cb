package shipment

import (
	"errors"
	"fmt"
	"time"

	"github.com/webshop-labs/checkout/internal/service/models/account"
)

// Kind is the closed set of supported shipment kinds.
type Kind string

const (
	KindDelivery Kind = "delivery"
	KindPickup   Kind = "pickup"
)

var (
	ErrKindRequired = errors.New("shipment kind is required")
	ErrUnknownKind  = errors.New("unknown shipment kind")
)

// Shipment represents a shipment record. ID is zero until the shipment has
// been stored.
type Shipment struct {
	ID        int64     `json:"id"`
	Kind      Kind      `json:"kind"`
	FeeCents  int64     `json:"feeCents"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Details carries the partial, caller-supplied attributes a shipment is
// built from.
type Details struct {
	Kind     Kind   `json:"kind"`
	FeeCents int64  `json:"feeCents"`
	Address  string `json:"address"`
}

// Build constructs an unsaved shipment from partial details. A delivery
// without an address falls back to the account's stored address. It performs
// no I/O; persistence is a separate step.
func Build(d Details, acct *account.Account) (*Shipment, error) {
	if d.Kind == "" {
		return nil, ErrKindRequired
	}

	s := &Shipment{
		Kind:      d.Kind,
		FeeCents:  d.FeeCents,
		CreatedAt: time.Now(),
	}

	switch d.Kind {
	case KindDelivery:
		s.Address = d.Address
		if s.Address == "" && acct != nil {
			s.Address = acct.Address
		}
	case KindPickup:
		// Picked up in store, no address involved.
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}

	return s, nil
}
