package orderitem

import (
	"time"

	"github.com/webshop-labs/checkout/internal/service/models/product"
)

// OrderItem represents a single line within an order. Only the product
// reference and the quantity are persisted; Product is resolved during
// hydration and prices are never cached on the line.
type OrderItem struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"orderId"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Product *product.Product `json:"product,omitempty"`
}
