package checkoutsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/webshop-labs/checkout/internal/dal/interfaces/iaccountrepo"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/icartrepo"
	"github.com/webshop-labs/checkout/internal/service/models/account"
	"github.com/webshop-labs/checkout/internal/service/models/cart"
	"github.com/webshop-labs/checkout/internal/service/models/order"
	"github.com/webshop-labs/checkout/internal/service/models/payment"
	"github.com/webshop-labs/checkout/internal/service/models/session"
	"github.com/webshop-labs/checkout/internal/service/models/shipment"
	"go.opentelemetry.io/otel"
)

// Checkout converts the caller's cart into a persisted order.
//
// Preconditions are checked in order, each a distinct failure: the session
// must resolve to an account, both the payment method and the shipment kind
// must be present, the cart must be non-empty, and a fresh catalogue snapshot
// must cover every cart line.
//
// On success the sequence is: build the order from the cart lines, build and
// attach the shipment and the payment (amount is always cart subtotal plus
// shipment fee), persist shipment then payment then order, decrement stock
// for all lines concurrently, and empty the cart. A failure after persistence
// has begun leaves already-written rows in place: there is no compensation
// here, consistency is reconciled out of band.
func (s *CheckoutService) Checkout(
	ctx context.Context,
	sess session.Session,
	paymentDetails payment.Details,
	shipmentDetails shipment.Details,
) (*order.Order, error) {
	ctx, span := otel.Tracer("checkout-svc").Start(ctx, "Checkout")
	defer span.End()

	o, err := s.checkout(ctx, sess, paymentDetails, shipmentDetails)
	if err != nil {
		s.metrics.ObserveCheckout(metricsResult(err))

		return nil, err
	}
	s.metrics.ObserveCheckout("success")

	slog.Info("checkout completed",
		"order_id", o.ID,
		"user_id", o.UserID,
		"items", len(o.Items),
		"amount_cents", o.Payment.AmountCents,
	)

	return o, nil
}

func (s *CheckoutService) checkout(
	ctx context.Context,
	sess session.Session,
	paymentDetails payment.Details,
	shipmentDetails shipment.Details,
) (*order.Order, error) {
	if !sess.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}

	acct, err := s.accountRepo.GetAccount(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, iaccountrepo.ErrAccountNotFound) {
			return nil, ErrUnauthenticated
		}

		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	if paymentDetails.Method == "" || shipmentDetails.Kind == "" {
		return nil, ErrInvalidInput
	}

	crt, err := s.cartRepo.GetCart(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, icartrepo.ErrCartNotFound) {
			return nil, ErrEmptyCart
		}

		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if crt.IsEmpty() {
		return nil, ErrEmptyCart
	}

	snapshot, err := s.stockRepo.GetSnapshot(ctx, productIDs(crt.Items))
	if err != nil {
		return nil, fmt.Errorf("failed to get stock snapshot: %w", err)
	}
	if insufficient := checkStock(snapshot, crt.Items); insufficient != nil {
		return nil, insufficient
	}

	o, err := s.buildOrder(ctx, sess.UserID, crt, acct, paymentDetails, shipmentDetails)
	if err != nil {
		return nil, err
	}

	storedShipment, err := s.shipmentRepo.Store(ctx, o.Shipment)
	if err != nil {
		return nil, fmt.Errorf("failed to store shipment: %w", err)
	}
	o.SetShipment(storedShipment)

	// The order record needs both stored identifiers; the payment is not
	// persisted until the shipment made it.
	storedPayment, err := s.paymentRepo.Store(ctx, o.Payment)
	if err != nil {
		return nil, fmt.Errorf("failed to store payment: %w", err)
	}
	o.SetPayment(storedPayment)

	stored, err := s.orderRepo.Create(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.decrementStock(ctx, snapshot, crt.Items); err != nil {
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}

	if err := s.cartRepo.Empty(ctx, sess.UserID); err != nil {
		return nil, fmt.Errorf("failed to empty cart: %w", err)
	}

	s.publishOrderCreated(ctx, stored)

	return stored, nil
}

// buildOrder assembles the in-memory order aggregate: every cart line plus
// the unsaved shipment and payment objects.
func (s *CheckoutService) buildOrder(
	ctx context.Context,
	userID int64,
	crt *cart.Cart,
	acct *account.Account,
	paymentDetails payment.Details,
	shipmentDetails shipment.Details,
) (*order.Order, error) {
	o := order.New(userID)

	for _, line := range crt.Items {
		p, err := s.productRepo.Get(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to get product %d: %w", line.ProductID, err)
		}
		if err := o.AddItem(p, line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to add item for product %d: %w", line.ProductID, err)
		}
	}

	shp, err := shipment.Build(shipmentDetails, acct)
	if err != nil {
		return nil, fmt.Errorf("failed to build shipment: %w", err)
	}
	o.SetShipment(shp)

	pay, err := payment.Build(paymentDetails)
	if err != nil {
		return nil, fmt.Errorf("failed to build payment: %w", err)
	}

	subtotal, err := o.TotalCents()
	if err != nil {
		return nil, fmt.Errorf("failed to compute cart subtotal: %w", err)
	}
	// Whatever amount the caller supplied is discarded.
	pay.AmountCents = subtotal + shp.FeeCents
	o.SetPayment(pay)

	return o, nil
}

func metricsResult(err error) string {
	var stockErr *InsufficientStockError
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.As(err, &stockErr):
		return "insufficient_stock"
	default:
		return "error"
	}
}
