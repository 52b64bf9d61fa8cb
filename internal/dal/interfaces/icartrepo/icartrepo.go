package icartrepo

import (
	"context"
	"errors"

	"github.com/webshop-labs/checkout/internal/service/models/cart"
)

var ErrCartNotFound = errors.New("cart not found")

// ICartRepository is an interface for cart access. The checkout engine reads
// carts and empties them after a successful checkout; item mutation belongs
// to the cart service.
type ICartRepository interface {
	GetCart(ctx context.Context, userID int64) (*cart.Cart, error)
	Empty(ctx context.Context, userID int64) error
}
