package order

import (
	"errors"
	"time"

	"github.com/webshop-labs/checkout/internal/service/models/orderitem"
	"github.com/webshop-labs/checkout/internal/service/models/payment"
	"github.com/webshop-labs/checkout/internal/service/models/product"
	"github.com/webshop-labs/checkout/internal/service/models/shipment"
)

var (
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrNonPositiveQuantity = errors.New("item quantity must be positive")
	ErrUnknownProduct      = errors.New("item references an unknown product")
	ErrNotHydrated         = errors.New("order items are not hydrated")
)

// Order represents a durable record of a purchase intent. The order owns its
// item list and the identifiers of the payment and shipment it was placed
// with; the payment and shipment records themselves live in their own stores.
type Order struct {
	ID         int64                 `json:"id"`
	UserID     int64                 `json:"userId"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
	Items      []orderitem.OrderItem `json:"items"`
	PaymentID  int64                 `json:"paymentId"`
	ShipmentID int64                 `json:"shipmentId"`
	Status     Status                `json:"status"`
	Cancelled  bool                  `json:"cancelled"`

	// Payment and Shipment carry the attached objects between building and
	// persistence, and the resolved records after hydration.
	Payment  *payment.Payment   `json:"payment,omitempty"`
	Shipment *shipment.Shipment `json:"shipment,omitempty"`
}

// New creates an empty pending order for the given user.
func New(userID int64) *Order {
	return &Order{
		UserID:    userID,
		CreatedAt: time.Now(),
		Status:    StatusPending,
		Cancelled: false,
	}
}

// AddItem appends a line item. The quantity must be positive and the product
// must exist.
func (o *Order) AddItem(p *product.Product, quantity int) error {
	if p == nil {
		return ErrUnknownProduct
	}
	if quantity <= 0 {
		return ErrNonPositiveQuantity
	}

	o.Items = append(o.Items, orderitem.OrderItem{
		ProductID: p.ID,
		Quantity:  quantity,
		Product:   p,
	})

	return nil
}

// SetPayment attaches a payment object prior to persistence.
func (o *Order) SetPayment(p *payment.Payment) {
	o.Payment = p
	if p != nil {
		o.PaymentID = p.ID
	}
}

// SetShipment attaches a shipment object prior to persistence.
func (o *Order) SetShipment(s *shipment.Shipment) {
	o.Shipment = s
	if s != nil {
		o.ShipmentID = s.ID
	}
}

// TotalCents returns the sum of price times quantity over the current items.
// The total is always derived from the product prices the items were hydrated
// with, never stored on the order itself.
func (o *Order) TotalCents() (int64, error) {
	var total int64
	for _, item := range o.Items {
		if item.Product == nil {
			return 0, ErrNotHydrated
		}
		total += item.Product.PriceCents * int64(item.Quantity)
	}

	return total, nil
}

// Verify reports whether the order is complete enough to issue a receipt
// for: a non-empty item list with both a payment and a shipment attached.
func (o *Order) Verify() bool {
	if len(o.Items) == 0 {
		return false
	}
	if o.Payment == nil && o.PaymentID == 0 {
		return false
	}
	if o.Shipment == nil && o.ShipmentID == 0 {
		return false
	}

	return true
}
