package getreceipt

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/iorderrepo"
	"github.com/webshop-labs/checkout/internal/service/models/order"
	"github.com/webshop-labs/checkout/internal/service/models/receipt"
	"github.com/webshop-labs/checkout/internal/service/services/receiptsvc"
	"github.com/webshop-labs/checkout/internal/transport/http/middleware/auth"
)

// orderService is an interface for the order read side.
type orderService interface {
	GetByID(ctx context.Context, orderID int64) (*order.Order, error)
}

// receiptService is an interface for the receipt service layer.
type receiptService interface {
	GenerateReceipt(ctx context.Context, o *order.Order) (*receipt.Receipt, error)
}

// GetReceipt generates a receipt for an order owned by the authenticated user.
func GetReceipt(w http.ResponseWriter, r *http.Request, orders orderService, receipts receiptService) {
	sess := auth.FromContext(r.Context())
	if !sess.IsAuthenticated() {
		http.Error(w, "authentication required", http.StatusUnauthorized)

		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	o, err := orders.GetByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, iorderrepo.ErrOrderNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)

			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error loading order for receipt", "order_id", orderID, "error", err)

		return
	}

	if o.UserID != sess.UserID {
		http.Error(w, iorderrepo.ErrOrderNotFound.Error(), http.StatusNotFound)

		return
	}

	rcpt, err := receipts.GenerateReceipt(r.Context(), o)
	if err != nil {
		status := statusFor(err)
		http.Error(w, err.Error(), status)
		if status == http.StatusInternalServerError {
			slog.Error("Error generating receipt", "order_id", orderID, "error", err)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rcpt); err != nil {
		slog.Error("Error writing receipt response", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, receiptsvc.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, receiptsvc.ErrInvalidOrder):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
