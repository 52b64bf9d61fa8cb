package checkout

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webshop-labs/checkout/internal/service/models/order"
	"github.com/webshop-labs/checkout/internal/service/models/payment"
	"github.com/webshop-labs/checkout/internal/service/models/session"
	"github.com/webshop-labs/checkout/internal/service/models/shipment"
	"github.com/webshop-labs/checkout/internal/service/services/checkoutsvc"
)

// mockService implements the handler's service interface for testing.
type mockService struct {
	Order *order.Order
	Err   error
}

func (m *mockService) Checkout(_ context.Context, _ session.Session, _ payment.Details, _ shipment.Details) (*order.Order, error) {
	return m.Order, m.Err
}

func perform(svc *mockService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	w := httptest.NewRecorder()
	Checkout(w, req, svc)
	return w
}

const validBody = `{"payment":{"method":"card","cardNumber":"4242"},"shipment":{"kind":"delivery","feeCents":300}}`

func TestCheckout_Created(t *testing.T) {
	o := order.New(42)
	o.ID = 1001
	svc := &mockService{Order: o}

	w := perform(svc, validBody)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"id":1001`)
}

func TestCheckout_MalformedBody(t *testing.T) {
	w := perform(&mockService{}, "{not json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckout_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unauthenticated", checkoutsvc.ErrUnauthenticated, http.StatusUnauthorized},
		{"invalid input", checkoutsvc.ErrInvalidInput, http.StatusBadRequest},
		{"empty cart", checkoutsvc.ErrEmptyCart, http.StatusBadRequest},
		{"insufficient stock", &checkoutsvc.InsufficientStockError{ProductIDs: []int64{1}}, http.StatusConflict},
		{"internal", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(&mockService{Err: tt.err}, validBody)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
