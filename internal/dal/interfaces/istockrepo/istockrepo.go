package istockrepo

import (
	"context"
)

// IStockRepository is an interface for catalogue stock levels.
//
// GetSnapshot and UpdateQuantity are deliberately separate, non-atomic
// operations: the snapshot a checkout validates against may be stale by the
// time the decrement lands. See the checkout service for how this is used.
type IStockRepository interface {
	// GetSnapshot returns the available quantity per product for the given
	// product ids. Products missing from the catalogue are absent from the
	// result.
	GetSnapshot(ctx context.Context, productIDs []int64) (map[int64]int, error)
	UpdateQuantity(ctx context.Context, productID int64, newQuantity int) error
}
