package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webshop-labs/checkout/internal/service/models/payment"
	"github.com/webshop-labs/checkout/internal/service/models/product"
	"github.com/webshop-labs/checkout/internal/service/models/shipment"
)

func TestNew(t *testing.T) {
	o := New(42)

	assert.Equal(t, int64(42), o.UserID)
	assert.Equal(t, StatusPending, o.Status)
	assert.False(t, o.Cancelled)
	assert.Empty(t, o.Items)
	assert.False(t, o.CreatedAt.IsZero())
}

func TestAddItem(t *testing.T) {
	o := New(1)
	p := &product.Product{ID: 7, Title: "Widget", PriceCents: 1000}

	err := o.AddItem(p, 2)

	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.Equal(t, int64(7), o.Items[0].ProductID)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Same(t, p, o.Items[0].Product)
}

func TestAddItem_NilProduct(t *testing.T) {
	o := New(1)

	err := o.AddItem(nil, 1)

	assert.ErrorIs(t, err, ErrUnknownProduct)
	assert.Empty(t, o.Items)
}

func TestAddItem_NonPositiveQuantity(t *testing.T) {
	o := New(1)
	p := &product.Product{ID: 7}

	assert.ErrorIs(t, o.AddItem(p, 0), ErrNonPositiveQuantity)
	assert.ErrorIs(t, o.AddItem(p, -3), ErrNonPositiveQuantity)
	assert.Empty(t, o.Items)
}

func TestSetPayment_SyncsID(t *testing.T) {
	o := New(1)

	o.SetPayment(&payment.Payment{ID: 55})

	assert.Equal(t, int64(55), o.PaymentID)
	require.NotNil(t, o.Payment)
}

func TestSetShipment_SyncsID(t *testing.T) {
	o := New(1)

	o.SetShipment(&shipment.Shipment{ID: 66})

	assert.Equal(t, int64(66), o.ShipmentID)
	require.NotNil(t, o.Shipment)
}

func TestTotalCents(t *testing.T) {
	o := New(1)
	require.NoError(t, o.AddItem(&product.Product{ID: 1, PriceCents: 1000}, 2))
	require.NoError(t, o.AddItem(&product.Product{ID: 2, PriceCents: 500}, 1))

	total, err := o.TotalCents()

	require.NoError(t, err)
	assert.Equal(t, int64(2500), total)
}

func TestTotalCents_NotHydrated(t *testing.T) {
	o := New(1)
	require.NoError(t, o.AddItem(&product.Product{ID: 1, PriceCents: 1000}, 2))
	o.Items[0].Product = nil

	_, err := o.TotalCents()

	assert.ErrorIs(t, err, ErrNotHydrated)
}

func TestVerify(t *testing.T) {
	o := New(1)
	require.NoError(t, o.AddItem(&product.Product{ID: 1, PriceCents: 100}, 1))
	o.SetPayment(&payment.Payment{ID: 1})
	o.SetShipment(&shipment.Shipment{ID: 2})

	assert.True(t, o.Verify())
}

func TestVerify_Incomplete(t *testing.T) {
	empty := New(1)
	empty.SetPayment(&payment.Payment{ID: 1})
	empty.SetShipment(&shipment.Shipment{ID: 2})
	assert.False(t, empty.Verify(), "no items")

	noPayment := New(1)
	require.NoError(t, noPayment.AddItem(&product.Product{ID: 1}, 1))
	noPayment.SetShipment(&shipment.Shipment{ID: 2})
	assert.False(t, noPayment.Verify(), "no payment")

	noShipment := New(1)
	require.NoError(t, noShipment.AddItem(&product.Product{ID: 1}, 1))
	noShipment.SetPayment(&payment.Payment{ID: 1})
	assert.False(t, noShipment.Verify(), "no shipment")
}

func TestVerify_PersistedIDsSuffice(t *testing.T) {
	o := New(1)
	require.NoError(t, o.AddItem(&product.Product{ID: 1}, 1))
	o.PaymentID = 10
	o.ShipmentID = 20

	assert.True(t, o.Verify())
}

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusCompleted, false},
		{StatusPaid, StatusShipped, true},
		{StatusPaid, StatusCancelled, false},
		{StatusShipped, StatusCompleted, true},
		{StatusShipped, StatusPaid, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusPaid, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusPaid.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, s)

	_, err = ParseStatus("unknown")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
