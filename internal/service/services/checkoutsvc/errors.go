package checkoutsvc

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("caller is not authenticated")
	ErrInvalidInput    = errors.New("payment method and shipment kind are required")
	ErrEmptyCart       = errors.New("cart is empty, nothing to checkout")
)

// InsufficientStockError names the products whose requested quantity exceeds
// the catalogue snapshot.
type InsufficientStockError struct {
	ProductIDs []int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for products %v", e.ProductIDs)
}
