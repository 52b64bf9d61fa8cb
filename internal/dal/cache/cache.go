package cache

import (
	"context"
	"errors"

	"github.com/webshop-labs/checkout/internal/service/models/cart"
)

// CartCache caches carts in front of the cart repository.
type CartCache interface {
	Get(ctx context.Context, userID int64) (*cart.Cart, error)
	Set(ctx context.Context, userID int64, c *cart.Cart) error
	Delete(ctx context.Context, userID int64) error
}

var ErrCacheMiss = errors.New("cache miss")
