package product

import (
	"time"

	"github.com/webshop-labs/checkout/internal/service/models/currency"
)

// Product represents a catalogue product.
type Product struct {
	ID            int64             `json:"id"`
	Title         string            `json:"title"`
	URL           string            `json:"url"`
	PriceCents    int64             `json:"priceCents"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
	Quantity      int               `json:"quantity"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
