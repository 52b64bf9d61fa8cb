package cachedrepo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/webshop-labs/checkout/internal/dal/cache"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/icartrepo"
	"github.com/webshop-labs/checkout/internal/service/models/cart"
)

// CachedCartRepository wraps a cart repository with a read-through cache.
// Cache failures are logged and fall through to the backing repository so a
// broken cache never breaks checkout.
type CachedCartRepository struct {
	repo  icartrepo.ICartRepository
	cache cache.CartCache
}

// NewCachedCartRepository creates a new cached cart repository.
func NewCachedCartRepository(repo icartrepo.ICartRepository, c cache.CartCache) *CachedCartRepository {
	return &CachedCartRepository{
		repo:  repo,
		cache: c,
	}
}

// GetCart retrieves the cart of a user, preferring the cache.
func (r *CachedCartRepository) GetCart(ctx context.Context, userID int64) (*cart.Cart, error) {
	cached, err := r.cache.Get(ctx, userID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		slog.Warn("cart cache read failed", "user_id", userID, "error", err)
	}

	c, err := r.repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, userID, c); err != nil {
		slog.Warn("cart cache write failed", "user_id", userID, "error", err)
	}

	return c, nil
}

// Empty clears the cart of a user and invalidates the cached copy.
func (r *CachedCartRepository) Empty(ctx context.Context, userID int64) error {
	if err := r.repo.Empty(ctx, userID); err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, userID); err != nil {
		slog.Warn("cart cache invalidation failed", "user_id", userID, "error", err)
	}

	return nil
}
