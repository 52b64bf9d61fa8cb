package checkoutsvc

import (
	"github.com/webshop-labs/checkout/internal/dal/interfaces/iaccountrepo"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/icartrepo"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/iorderrepo"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/ioutboxrepo"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/ipaymentrepo"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/iproductrepo"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/ishipmentrepo"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/istockrepo"
	"github.com/webshop-labs/checkout/pkg/metrics"
)

// CheckoutService drives the cart-to-order sequence. It owns the failure
// policy of checkout: preconditions fail fast before any write, and partial
// failures after persistence has begun are surfaced to the caller without
// compensation.
type CheckoutService struct {
	cartRepo     icartrepo.ICartRepository
	productRepo  iproductrepo.IProductRepository
	stockRepo    istockrepo.IStockRepository
	orderRepo    iorderrepo.IOrderRepository
	paymentRepo  ipaymentrepo.IPaymentRepository
	shipmentRepo ishipmentrepo.IShipmentRepository
	accountRepo  iaccountrepo.IAccountRepository
	outboxRepo   ioutboxrepo.IOutboxRepository
	metrics      *metrics.CheckoutMetrics
}

// option is a function that configures the CheckoutService.
type option func(*CheckoutService)

// MustNewCheckoutService creates a new CheckoutService.
func MustNewCheckoutService(opts ...option) *CheckoutService {
	s := &CheckoutService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithCartRepository(repo icartrepo.ICartRepository) option {
	return func(s *CheckoutService) {
		s.cartRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *CheckoutService) {
		s.productRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithStockRepository(repo istockrepo.IStockRepository) option {
	return func(s *CheckoutService) {
		s.stockRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *CheckoutService) {
		s.orderRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithPaymentRepository(repo ipaymentrepo.IPaymentRepository) option {
	return func(s *CheckoutService) {
		s.paymentRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithShipmentRepository(repo ishipmentrepo.IShipmentRepository) option {
	return func(s *CheckoutService) {
		s.shipmentRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithAccountRepository(repo iaccountrepo.IAccountRepository) option {
	return func(s *CheckoutService) {
		s.accountRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithOutboxRepository(repo ioutboxrepo.IOutboxRepository) option {
	return func(s *CheckoutService) {
		s.outboxRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithMetrics(m *metrics.CheckoutMetrics) option {
	return func(s *CheckoutService) {
		s.metrics = m
	}
}
