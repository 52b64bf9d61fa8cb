package ipaymentrepo

import (
	"context"
	"errors"

	"github.com/webshop-labs/checkout/internal/service/models/payment"
)

var ErrPaymentNotFound = errors.New("payment not found")

// IPaymentRepository is an interface for the payment store.
type IPaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*payment.Payment, error)
	// Store persists an unsaved payment and returns it with its identifier
	// assigned.
	Store(ctx context.Context, p *payment.Payment) (*payment.Payment, error)
}
