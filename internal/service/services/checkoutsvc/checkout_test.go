package checkoutsvc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/iaccountrepo"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/icartrepo"
	"github.com/webshop-labs/checkout/internal/service/models/account"
	"github.com/webshop-labs/checkout/internal/service/models/cart"
	"github.com/webshop-labs/checkout/internal/service/models/order"
	"github.com/webshop-labs/checkout/internal/service/models/payment"
	"github.com/webshop-labs/checkout/internal/service/models/product"
	"github.com/webshop-labs/checkout/internal/service/models/session"
	"github.com/webshop-labs/checkout/internal/service/models/shipment"
)

type fixture struct {
	accountRepo  *mockAccountRepo
	cartRepo     *mockCartRepo
	productRepo  *mockProductRepo
	stockRepo    *mockStockRepo
	orderRepo    *mockOrderRepo
	paymentRepo  *mockPaymentRepo
	shipmentRepo *mockShipmentRepo
	outboxRepo   *mockOutboxRepo
	svc          *CheckoutService
}

// newFixture wires a checkout over a two-line cart: 2 x product 1 (1000c
// each) and 1 x product 2 (500c), with 5 of each in stock.
func newFixture() *fixture {
	f := &fixture{
		accountRepo: &mockAccountRepo{
			Account: &account.Account{ID: 42, Name: "Ada", Address: "7 Stored Ave"},
		},
		cartRepo: &mockCartRepo{
			Cart: &cart.Cart{
				UserID: 42,
				Items: []cart.Item{
					{ProductID: 1, Quantity: 2},
					{ProductID: 2, Quantity: 1},
				},
			},
		},
		productRepo: &mockProductRepo{
			Products: map[int64]*product.Product{
				1: {ID: 1, Title: "Keyboard", PriceCents: 1000},
				2: {ID: 2, Title: "Mouse", PriceCents: 500},
			},
		},
		stockRepo:    newMockStockRepo(map[int64]int{1: 5, 2: 5}),
		orderRepo:    &mockOrderRepo{},
		paymentRepo:  &mockPaymentRepo{},
		shipmentRepo: &mockShipmentRepo{},
		outboxRepo:   &mockOutboxRepo{},
	}

	f.svc = MustNewCheckoutService(
		WithCartRepository(f.cartRepo),
		WithProductRepository(f.productRepo),
		WithStockRepository(f.stockRepo),
		WithOrderRepository(f.orderRepo),
		WithPaymentRepository(f.paymentRepo),
		WithShipmentRepository(f.shipmentRepo),
		WithAccountRepository(f.accountRepo),
		WithOutboxRepository(f.outboxRepo),
	)

	return f
}

func validPayment() payment.Details {
	return payment.Details{Method: payment.MethodCard, CardNumber: "4242424242424242"}
}

func validShipment() shipment.Details {
	return shipment.Details{Kind: shipment.KindDelivery, FeeCents: 300, Address: "1 Main St"}
}

func (f *fixture) assertNothingPersisted(t *testing.T) {
	t.Helper()
	assert.Nil(t, f.orderRepo.Created, "no order should be stored")
	assert.Nil(t, f.paymentRepo.Stored, "no payment should be stored")
	assert.Nil(t, f.shipmentRepo.Stored, "no shipment should be stored")
	assert.Empty(t, f.stockRepo.Updates, "no stock decrement should land")
	assert.False(t, f.cartRepo.Emptied, "cart should stay intact")
}

func TestCheckout_Success(t *testing.T) {
	f := newFixture()

	o, err := f.svc.Checkout(context.Background(), session.Session{UserID: 42}, validPayment(), validShipment())

	require.NoError(t, err)
	require.NotNil(t, o)

	assert.Equal(t, int64(1001), o.ID)
	assert.Equal(t, int64(42), o.UserID)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.False(t, o.Cancelled)

	// Payment amount is cart subtotal plus shipment fee.
	require.NotNil(t, o.Payment)
	assert.Equal(t, int64(2*1000+500+300), o.Payment.AmountCents)
	assert.Equal(t, o.Payment.ID, o.PaymentID)
	require.NotNil(t, o.Shipment)
	assert.Equal(t, o.Shipment.ID, o.ShipmentID)

	// Every ordered line is returned hydrated.
	require.Len(t, o.Items, 2)
	require.NotNil(t, o.Items[0].Product)
	assert.Equal(t, "Keyboard", o.Items[0].Product.Title)

	// Stock dropped from 5/5 to 3/4 and the cart was emptied.
	assert.Equal(t, map[int64]int{1: 3, 2: 4}, f.stockRepo.Updates)
	assert.True(t, f.cartRepo.Emptied)
}

func TestCheckout_PublishesOrderCreated(t *testing.T) {
	f := newFixture()

	o, err := f.svc.Checkout(context.Background(), session.Session{UserID: 42}, validPayment(), validShipment())

	require.NoError(t, err)
	require.Len(t, f.outboxRepo.Inserted, 1)
	msg := f.outboxRepo.Inserted[0]
	assert.Equal(t, OrderCreatedQueue, msg.QueueName)

	var event struct {
		OrderID     int64  `json:"orderId"`
		UserID      int64  `json:"userId"`
		AmountCents int64  `json:"amountCents"`
		Currency    string `json:"currency"`
	}
	require.NoError(t, json.Unmarshal(msg.Payload, &event))
	assert.Equal(t, o.ID, event.OrderID)
	assert.Equal(t, int64(42), event.UserID)
	assert.Equal(t, int64(2800), event.AmountCents)
	assert.Equal(t, "USD", event.Currency)
}

func TestCheckout_Unauthenticated(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Checkout(context.Background(), session.Session{}, validPayment(), validShipment())

	assert.ErrorIs(t, err, ErrUnauthenticated)
	f.assertNothingPersisted(t)
}

func TestCheckout_UnknownAccount(t *testing.T) {
	f := newFixture()
	f.accountRepo.Account = nil
	f.accountRepo.Err = iaccountrepo.ErrAccountNotFound

	_, err := f.svc.Checkout(context.Background(), session.Session{UserID: 42}, validPayment(), validShipment())

	assert.ErrorIs(t, err, ErrUnauthenticated)
	f.assertNothingPersisted(t)
}

func TestCheckout_MissingPaymentMethod(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Checkout(context.Background(), session.Session{UserID: 42}, payment.Details{}, validShipment())

	assert.ErrorIs(t, err, ErrInvalidInput)
	f.assertNothingPersisted(t)
}

func TestCheckout_MissingShipmentKind(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Checkout(context.Background(), session.Session{UserID: 42}, validPayment(), shipment.Details{})

	assert.ErrorIs(t, err, ErrInvalidInput)
	f.assertNothingPersisted(t)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture()
	f.cartRepo.Cart = &cart.Cart{UserID: 42}

	_, err := f.svc.Checkout(context.Background(), session.Session{UserID: 42}, validPayment(), validShipment())

	assert.ErrorIs(t, err, ErrEmptyCart)
	f.assertNothingPersisted(t)
}

func TestCheckout_MissingCartMeansEmpty(t *testing.T) {
	f := newFixture()
	f.cartRepo.Cart = nil
	f.cartRepo.GetErr = icartrepo.ErrCartNotFound

	_, err := f.svc.Checkout(context.Background(), session.Session{UserID: 42}, validPayment(), validShipment())

	assert.ErrorIs(t, err, ErrEmptyCart)
	f.assertNothingPersisted(t)
}

func TestCheckout_InsufficientStock(t *testing.T) {
	f := newFixture()
	f.stockRepo.Snapshot = map[int64]int{1: 1, 2: 5}

	_, err := f.svc.Checkout(context.Background(), session.Session{UserID: 42}, validPayment(), validShipment())

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, []int64{1}, stockErr.ProductIDs)
	f.assertNothingPersisted(t)
}

func TestCheckout_ProductMissingFromSnapshot(t *testing.T) {
	f := newFixture()
	f.stockRepo.Snapshot = map[int64]int{1: 5}

	_, err := f.svc.Checkout(context.Background(), session.Session{UserID: 42}, validPayment(), validShipment())

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, []int64{2}, stockErr.ProductIDs)
	f.assertNothingPersisted(t)
}

// Precondition checks come in a fixed order, each masking the ones after it.
func TestCheckout_PreconditionOrder(t *testing.T) {
	f := newFixture()
	f.cartRepo.Cart = &cart.Cart{UserID: 42}

	// Unauthenticated wins over invalid input and the empty cart.
	_, err := f.svc.Checkout(context.Background(), session.Session{}, payment.Details{}, shipment.Details{})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// Invalid input wins over the empty cart.
	_, err = f.svc.Checkout(context.Background(), session.Session{UserID: 42}, payment.Details{}, shipment.Details{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// The empty cart wins over insufficient stock.
	f.stockRepo.Snapshot = map[int64]int{}
	_, err = f.svc.Checkout(context.Background(), session.Session{UserID: 42}, validPayment(), validShipment())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_ShipmentPersistedBeforePayment(t *testing.T) {
	f := newFixture()
	f.shipmentRepo.StoreErr = errors.New("shipment store down")

	_, err := f.svc.Checkout(context.Background(), session.Session{UserID: 42}, validPayment(), validShipment())

	require.Error(t, err)
	assert.Nil(t, f.paymentRepo.Stored, "payment must not be stored when the shipment write failed")
	assert.Nil(t, f.orderRepo.Created)
}

// A failure after persistence has begun leaves the earlier writes in place.
func TestCheckout_NoCompensationOnPartialFailure(t *testing.T) {
	f := newFixture()
	f.orderRepo.CreateErr = errors.New("orders table down")

	_, err := f.svc.Checkout(context.Background(), session.Session{UserID: 42}, validPayment(), validShipment())

	require.Error(t, err)
	assert.NotNil(t, f.shipmentRepo.Stored, "stored shipment is not rolled back")
	assert.NotNil(t, f.paymentRepo.Stored, "stored payment is not rolled back")
	assert.Empty(t, f.stockRepo.Updates)
	assert.False(t, f.cartRepo.Emptied)
}

func TestCheckout_DecrementFailureKeepsCart(t *testing.T) {
	f := newFixture()
	f.stockRepo.UpdateErr = errors.New("stock write failed")

	_, err := f.svc.Checkout(context.Background(), session.Session{UserID: 42}, validPayment(), validShipment())

	require.Error(t, err)
	assert.NotNil(t, f.orderRepo.Created, "the order stays persisted")
	assert.False(t, f.cartRepo.Emptied, "the cart is only emptied after all decrements land")
}

func TestCheckout_OutboxFailureDoesNotFailCheckout(t *testing.T) {
	f := newFixture()
	f.outboxRepo.InsertErr = errors.New("outbox down")

	o, err := f.svc.Checkout(context.Background(), session.Session{UserID: 42}, validPayment(), validShipment())

	require.NoError(t, err)
	assert.NotNil(t, o)
}

func TestCheckStock(t *testing.T) {
	snapshot := map[int64]int{1: 5, 2: 0}
	items := []cart.Item{
		{ProductID: 1, Quantity: 5},
		{ProductID: 2, Quantity: 1},
		{ProductID: 3, Quantity: 1},
	}

	err := checkStock(snapshot, items)

	require.NotNil(t, err)
	assert.ElementsMatch(t, []int64{2, 3}, err.ProductIDs)
}

func TestCheckStock_AllLinesFit(t *testing.T) {
	snapshot := map[int64]int{1: 2, 2: 1}
	items := []cart.Item{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}

	assert.Nil(t, checkStock(snapshot, items))
}
