package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/webshop-labs/checkout/internal/service/models/order"
	"github.com/webshop-labs/checkout/internal/service/models/payment"
	"github.com/webshop-labs/checkout/internal/service/models/session"
	"github.com/webshop-labs/checkout/internal/service/models/shipment"
	"github.com/webshop-labs/checkout/internal/service/services/checkoutsvc"
	"github.com/webshop-labs/checkout/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	Checkout(ctx context.Context, sess session.Session, paymentDetails payment.Details, shipmentDetails shipment.Details) (*order.Order, error)
}

// request is the checkout request body.
type request struct {
	Payment  payment.Details  `json:"payment"`
	Shipment shipment.Details `json:"shipment"`
}

// Checkout handles the checkout request.
func Checkout(w http.ResponseWriter, r *http.Request, service service) {
	sess := auth.FromContext(r.Context())

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding checkout request body", "error", err)

		return
	}

	o, err := service.Checkout(r.Context(), sess, req.Payment, req.Shipment)
	if err != nil {
		status := statusFor(err)
		http.Error(w, err.Error(), status)
		if status == http.StatusInternalServerError {
			slog.Error("Error performing checkout", "user_id", sess.UserID, "error", err)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(o); err != nil {
		slog.Error("Error writing checkout response", "error", err)
	}
}

func statusFor(err error) int {
	var stockErr *checkoutsvc.InsufficientStockError
	switch {
	case errors.Is(err, checkoutsvc.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, checkoutsvc.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, checkoutsvc.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.As(err, &stockErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
