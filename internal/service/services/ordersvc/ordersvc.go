package ordersvc

import (
	"context"
	"fmt"

	"github.com/webshop-labs/checkout/internal/dal/interfaces/iorderrepo"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/ipaymentrepo"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/iproductrepo"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/ishipmentrepo"
	"github.com/webshop-labs/checkout/internal/service/models/order"
	"golang.org/x/sync/errgroup"
)

// OrderService is the read side of orders: it loads persisted orders and
// hydrates their product, payment, and shipment references into full objects.
type OrderService struct {
	orderRepo    iorderrepo.IOrderRepository
	productRepo  iproductrepo.IProductRepository
	paymentRepo  ipaymentrepo.IPaymentRepository
	shipmentRepo ishipmentrepo.IShipmentRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *OrderService) {
		s.orderRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *OrderService) {
		s.productRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithPaymentRepository(repo ipaymentrepo.IPaymentRepository) option {
	return func(s *OrderService) {
		s.paymentRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithShipmentRepository(repo ishipmentrepo.IShipmentRepository) option {
	return func(s *OrderService) {
		s.shipmentRepo = repo
	}
}

// GetByID loads and hydrates a single order.
func (s *OrderService) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.hydrate(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

// GetByUser loads and hydrates all orders of a user.
func (s *OrderService) GetByUser(ctx context.Context, userID int64) ([]order.Order, error) {
	orders, err := s.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if err := s.hydrate(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

// hydrate resolves an order's references into full objects. The per-item
// product lookups fan out concurrently; the order is only returned once all
// of them have completed.
func (s *OrderService) hydrate(ctx context.Context, o *order.Order) error {
	g, ctx := errgroup.WithContext(ctx)

	for i := range o.Items {
		i := i
		g.Go(func() error {
			p, err := s.productRepo.Get(ctx, o.Items[i].ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %d: %w", o.Items[i].ProductID, err)
			}
			o.Items[i].Product = p

			return nil
		})
	}

	if o.Payment == nil && o.PaymentID != 0 {
		g.Go(func() error {
			pay, err := s.paymentRepo.GetByID(ctx, o.PaymentID)
			if err != nil {
				return fmt.Errorf("failed to get payment %d: %w", o.PaymentID, err)
			}
			o.Payment = pay

			return nil
		})
	}

	if o.Shipment == nil && o.ShipmentID != 0 {
		g.Go(func() error {
			shp, err := s.shipmentRepo.GetByID(ctx, o.ShipmentID)
			if err != nil {
				return fmt.Errorf("failed to get shipment %d: %w", o.ShipmentID, err)
			}
			o.Shipment = shp

			return nil
		})
	}

	return g.Wait()
}
