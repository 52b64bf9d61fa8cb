package receipt

import (
	"time"

	"github.com/webshop-labs/checkout/internal/service/models/account"
	"github.com/webshop-labs/checkout/internal/service/models/currency"
	"github.com/webshop-labs/checkout/internal/service/models/payment"
	"github.com/webshop-labs/checkout/internal/service/models/shipment"
)

// Receipt is an immutable point-in-time summary of a valid order. It owns
// value copies of everything it references, so later changes to the order,
// user, or products do not affect an issued receipt.
type Receipt struct {
	OrderID     int64             `json:"orderId"`
	User        account.Account   `json:"user"`
	Lines       []Line            `json:"lines"`
	TotalCents  int64             `json:"totalCents"`
	Currency    currency.Currency `json:"currency"`
	Payment     payment.Payment   `json:"payment"`
	Shipment    shipment.Shipment `json:"shipment"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// Line is a single receipt line with the price computed at generation time.
type Line struct {
	ProductID      int64  `json:"productId"`
	ProductTitle   string `json:"productTitle"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	SubtotalCents  int64  `json:"subtotalCents"`
}
