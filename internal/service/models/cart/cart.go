package cart

import "time"

// Cart represents a per-user list of product/quantity pairs awaiting checkout.
// The checkout engine consumes it read-only and empties it after a successful
// checkout; item mutation belongs to the cart owner, not to this service.
type Cart struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    int64     `json:"userId" bson:"user_id"`
	Items     []Item    `json:"items" bson:"items"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Item is a single cart line.
type Item struct {
	ProductID int64 `json:"productId" bson:"product_id"`
	Quantity  int   `json:"quantity" bson:"quantity"`
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
