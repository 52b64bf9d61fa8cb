package iorderrepo

import (
	"context"
	"errors"

	"github.com/webshop-labs/checkout/internal/service/models/order"
)

var ErrOrderNotFound = errors.New("order not found")

// IOrderRepository is an interface for the order store.
type IOrderRepository interface {
	// Create persists the order and its items, returning the stored order
	// with identifiers assigned.
	Create(ctx context.Context, o *order.Order) (*order.Order, error)
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	GetByUserID(ctx context.Context, userID int64) ([]order.Order, error)
	Update(ctx context.Context, o *order.Order) error
	Delete(ctx context.Context, id int64) error
}
