package iproductrepo

import (
	"context"
	"errors"

	"github.com/webshop-labs/checkout/internal/service/models/product"
)

var ErrProductNotFound = errors.New("product not found")

// IProductRepository is an interface for product lookups.
type IProductRepository interface {
	Get(ctx context.Context, id int64) (*product.Product, error)
}
