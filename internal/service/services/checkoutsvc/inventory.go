package checkoutsvc

import (
	"context"

	"github.com/webshop-labs/checkout/internal/service/models/cart"
	"golang.org/x/sync/errgroup"
)

// checkStock validates every requested line against the catalogue snapshot.
// It returns nil when all lines fit, otherwise an error naming every
// offending product. A product absent from the snapshot counts as offending.
//
// The check and the later decrement are not atomic with respect to other
// concurrent checkouts: two checkouts reading the same snapshot can both pass
// and jointly oversell. Oversell is reconciled out of band.
func checkStock(snapshot map[int64]int, items []cart.Item) *InsufficientStockError {
	var offending []int64
	for _, item := range items {
		available, ok := snapshot[item.ProductID]
		if !ok || item.Quantity > available {
			offending = append(offending, item.ProductID)
		}
	}

	if len(offending) > 0 {
		return &InsufficientStockError{ProductIDs: offending}
	}

	return nil
}

// decrementStock writes back the new quantity for every ordered line,
// computed against the snapshot the checkout validated with. Decrements for
// distinct products run concurrently; all must complete, and a single
// failure fails the whole call with no guarantee about which decrements
// already landed.
func (s *CheckoutService) decrementStock(ctx context.Context, snapshot map[int64]int, items []cart.Item) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, item := range items {
		item := item
		g.Go(func() error {
			return s.stockRepo.UpdateQuantity(ctx, item.ProductID, snapshot[item.ProductID]-item.Quantity)
		})
	}

	return g.Wait()
}

func productIDs(items []cart.Item) []int64 {
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}

	return ids
}
