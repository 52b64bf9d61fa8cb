package getorder

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
	"github.com/webshop-labs/checkout/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	GetByID(ctx context.Context, orderID int64) (*order.Order, error)
}

// GetOrder returns a single hydrated order owned by the authenticated user.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
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

	o, err := service.GetByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, iorderrepo.ErrOrderNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)

			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error getting order", "order_id", orderID, "error", err)

		return
	}

	if o.UserID != sess.UserID {
		http.Error(w, iorderrepo.ErrOrderNotFound.Error(), http.StatusNotFound)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(o); err != nil {
		slog.Error("Error writing get order response", "error", err)
	}
}
