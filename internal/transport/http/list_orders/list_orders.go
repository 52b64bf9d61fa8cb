package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/webshop-labs/checkout/internal/service/models/order"
	"github.com/webshop-labs/checkout/internal/transport/http/middleware/auth"
)

// service is an interface for the service layer.
type service interface {
	GetByUser(ctx context.Context, userID int64) ([]order.Order, error)
}

// ListOrders returns the hydrated orders of the authenticated user.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	sess := auth.FromContext(r.Context())
	if !sess.IsAuthenticated() {
		http.Error(w, "authentication required", http.StatusUnauthorized)

		return
	}

	orders, err := service.GetByUser(r.Context(), sess.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error listing orders", "user_id", sess.UserID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		slog.Error("Error writing list orders response", "error", err)
	}
}
