package checkoutsvc

import (
	"context"
	"sync"
	"time"

	"github.com/webshop-labs/checkout/internal/service/models/account"
	"github.com/webshop-labs/checkout/internal/service/models/cart"
	"github.com/webshop-labs/checkout/internal/service/models/order"
	"github.com/webshop-labs/checkout/internal/service/models/outbox"
	"github.com/webshop-labs/checkout/internal/service/models/payment"
	"github.com/webshop-labs/checkout/internal/service/models/product"
	"github.com/webshop-labs/checkout/internal/service/models/shipment"
)

// mockAccountRepo implements iaccountrepo.IAccountRepository for testing.
type mockAccountRepo struct {
	Account *account.Account
	Err     error
}

func (m *mockAccountRepo) GetAccount(_ context.Context, _ int64) (*account.Account, error) {
	return m.Account, m.Err
}

// mockCartRepo implements icartrepo.ICartRepository for testing.
type mockCartRepo struct {
	Cart     *cart.Cart
	GetErr   error
	EmptyErr error
	Emptied  bool
}

func (m *mockCartRepo) GetCart(_ context.Context, _ int64) (*cart.Cart, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Cart, nil
}

func (m *mockCartRepo) Empty(_ context.Context, _ int64) error {
	if m.EmptyErr != nil {
		return m.EmptyErr
	}
	m.Emptied = true
	return nil
}

// mockProductRepo implements iproductrepo.IProductRepository for testing.
type mockProductRepo struct {
	Products map[int64]*product.Product
	Err      error
}

func (m *mockProductRepo) Get(_ context.Context, id int64) (*product.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Products[id], nil
}

// mockStockRepo implements istockrepo.IStockRepository for testing. Updates
// captures every UpdateQuantity call keyed by product id; the mutex guards it
// because decrements run concurrently.
type mockStockRepo struct {
	Snapshot  map[int64]int
	GetErr    error
	UpdateErr error
	mu        sync.Mutex
	Updates   map[int64]int
}

func newMockStockRepo(snapshot map[int64]int) *mockStockRepo {
	return &mockStockRepo{
		Snapshot: snapshot,
		Updates:  make(map[int64]int),
	}
}

func (m *mockStockRepo) GetSnapshot(_ context.Context, _ []int64) (map[int64]int, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Snapshot, nil
}

func (m *mockStockRepo) UpdateQuantity(_ context.Context, productID int64, newQuantity int) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	m.Updates[productID] = newQuantity
	m.mu.Unlock()
	return nil
}

// mockPaymentRepo implements ipaymentrepo.IPaymentRepository for testing.
type mockPaymentRepo struct {
	StoreErr error
	Stored   *payment.Payment
	nextID   int64
}

func (m *mockPaymentRepo) GetByID(_ context.Context, _ int64) (*payment.Payment, error) {
	return m.Stored, nil
}

func (m *mockPaymentRepo) Store(_ context.Context, p *payment.Payment) (*payment.Payment, error) {
	if m.StoreErr != nil {
		return nil, m.StoreErr
	}
	m.nextID++
	stored := *p
	stored.ID = m.nextID
	if p.Card != nil {
		card := *p.Card
		stored.Card = &card
	}
	m.Stored = &stored
	return &stored, nil
}

// mockShipmentRepo implements ishipmentrepo.IShipmentRepository for testing.
type mockShipmentRepo struct {
	StoreErr error
	Stored   *shipment.Shipment
	nextID   int64
}

func (m *mockShipmentRepo) GetByID(_ context.Context, _ int64) (*shipment.Shipment, error) {
	return m.Stored, nil
}

func (m *mockShipmentRepo) Store(_ context.Context, s *shipment.Shipment) (*shipment.Shipment, error) {
	if m.StoreErr != nil {
		return nil, m.StoreErr
	}
	m.nextID++
	stored := *s
	stored.ID = m.nextID
	m.Stored = &stored
	return &stored, nil
}

// mockOrderRepo implements iorderrepo.IOrderRepository for testing.
type mockOrderRepo struct {
	CreateErr error
	Created   *order.Order
}

func (m *mockOrderRepo) Create(_ context.Context, o *order.Order) (*order.Order, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	stored := *o
	stored.ID = 1001
	m.Created = &stored
	return &stored, nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, _ int64) (*order.Order, error) {
	return m.Created, nil
}

func (m *mockOrderRepo) GetByUserID(_ context.Context, _ int64) ([]order.Order, error) {
	if m.Created == nil {
		return nil, nil
	}
	return []order.Order{*m.Created}, nil
}

func (m *mockOrderRepo) Update(_ context.Context, _ *order.Order) error {
	return nil
}

func (m *mockOrderRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

// mockOutboxRepo implements ioutboxrepo.IOutboxRepository for testing.
type mockOutboxRepo struct {
	InsertErr error
	Inserted  []*outbox.Message
}

func (m *mockOutboxRepo) Insert(_ context.Context, msg *outbox.Message) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.Inserted = append(m.Inserted, msg)
	return nil
}

func (m *mockOutboxRepo) GetPendingMessages(_ context.Context, _ int) ([]outbox.Message, error) {
	return nil, nil
}

func (m *mockOutboxRepo) UpdateRetry(_ context.Context, _ int64, _ int, _ string, _ time.Time) error {
	return nil
}

func (m *mockOutboxRepo) Delete(_ context.Context, _ int64) error {
	return nil
}
