package receiptsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/webshop-labs/checkout/internal/dal/interfaces/iaccountrepo"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/ipaymentrepo"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/iproductrepo"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/ishipmentrepo"
	"github.com/webshop-labs/checkout/internal/service/models/currency"
	"github.com/webshop-labs/checkout/internal/service/models/order"
	"github.com/webshop-labs/checkout/internal/service/models/payment"
	"github.com/webshop-labs/checkout/internal/service/models/receipt"
	"github.com/webshop-labs/checkout/internal/service/models/shipment"
	"github.com/webshop-labs/checkout/pkg/metrics"
	"go.opentelemetry.io/otel"
)

var (
	ErrInvalidOrder = errors.New("order is not valid for a receipt")
	ErrUserNotFound = errors.New("order user cannot be resolved")
)

// ReceiptService produces immutable summaries of completed orders.
type ReceiptService struct {
	productRepo  iproductrepo.IProductRepository
	accountRepo  iaccountrepo.IAccountRepository
	paymentRepo  ipaymentrepo.IPaymentRepository
	shipmentRepo ishipmentrepo.IShipmentRepository
	metrics      *metrics.CheckoutMetrics
}

// option is a function that configures the ReceiptService.
type option func(*ReceiptService)

// MustNewReceiptService creates a new ReceiptService.
func MustNewReceiptService(opts ...option) *ReceiptService {
	s := &ReceiptService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *ReceiptService) {
		s.productRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithAccountRepository(repo iaccountrepo.IAccountRepository) option {
	return func(s *ReceiptService) {
		s.accountRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithPaymentRepository(repo ipaymentrepo.IPaymentRepository) option {
	return func(s *ReceiptService) {
		s.paymentRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithShipmentRepository(repo ishipmentrepo.IShipmentRepository) option {
	return func(s *ReceiptService) {
		s.shipmentRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithMetrics(m *metrics.CheckoutMetrics) option {
	return func(s *ReceiptService) {
		s.metrics = m
	}
}

// GenerateReceipt builds an immutable snapshot of a persisted order. Line
// prices are computed from the product prices at generation time, so a price
// change after the order was placed is reflected on the receipt. The order
// itself is never mutated.
func (s *ReceiptService) GenerateReceipt(ctx context.Context, o *order.Order) (*receipt.Receipt, error) {
	ctx, span := otel.Tracer("checkout-svc").Start(ctx, "GenerateReceipt")
	defer span.End()

	rcpt, err := s.generate(ctx, o)
	if err != nil {
		s.metrics.ObserveReceipt("error")

		return nil, err
	}
	s.metrics.ObserveReceipt("success")

	return rcpt, nil
}

func (s *ReceiptService) generate(ctx context.Context, o *order.Order) (*receipt.Receipt, error) {
	if o == nil || !o.Verify() {
		return nil, ErrInvalidOrder
	}

	acct, err := s.accountRepo.GetAccount(ctx, o.UserID)
	if err != nil {
		if errors.Is(err, iaccountrepo.ErrAccountNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	lines := make([]receipt.Line, 0, len(o.Items))
	var total int64
	for _, item := range o.Items {
		p, err := s.productRepo.Get(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to get product %d: %w", item.ProductID, err)
		}

		subtotal := p.PriceCents * int64(item.Quantity)
		lines = append(lines, receipt.Line{
			ProductID:      p.ID,
			ProductTitle:   p.Title,
			Quantity:       item.Quantity,
			UnitPriceCents: p.PriceCents,
			SubtotalCents:  subtotal,
		})
		total += subtotal
	}

	pay, err := s.resolvePayment(ctx, o)
	if err != nil {
		return nil, err
	}

	shp, err := s.resolveShipment(ctx, o)
	if err != nil {
		return nil, err
	}

	// The receipt owns deep copies: later mutation of the order's payment or
	// shipment must not leak into an issued receipt.
	payCopy := *pay
	if pay.Card != nil {
		card := *pay.Card
		payCopy.Card = &card
	}

	return &receipt.Receipt{
		OrderID:     o.ID,
		User:        *acct,
		Lines:       lines,
		TotalCents:  total,
		Currency:    currency.CurrencyUSD,
		Payment:     payCopy,
		Shipment:    *shp,
		GeneratedAt: time.Now(),
	}, nil
}

func (s *ReceiptService) resolvePayment(ctx context.Context, o *order.Order) (*payment.Payment, error) {
	if o.Payment != nil {
		return o.Payment, nil
	}

	pay, err := s.paymentRepo.GetByID(ctx, o.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment %d: %w", o.PaymentID, err)
	}

	return pay, nil
}

func (s *ReceiptService) resolveShipment(ctx context.Context, o *order.Order) (*shipment.Shipment, error) {
	if o.Shipment != nil {
		return o.Shipment, nil
	}

	shp, err := s.shipmentRepo.GetByID(ctx, o.ShipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment %d: %w", o.ShipmentID, err)
	}

	return shp, nil
}
