package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	"github.com/webshop-labs/checkout/internal/service/models/order"
	"github.com/webshop-labs/checkout/internal/service/models/payment"
	"github.com/webshop-labs/checkout/internal/service/models/receipt"
	"github.com/webshop-labs/checkout/internal/service/models/session"
	"github.com/webshop-labs/checkout/internal/service/models/shipment"
	"github.com/webshop-labs/checkout/internal/transport/http/checkout"
	getorder "github.com/webshop-labs/checkout/internal/transport/http/get_order"
	getreceipt "github.com/webshop-labs/checkout/internal/transport/http/get_receipt"
	listorders "github.com/webshop-labs/checkout/internal/transport/http/list_orders"
	"github.com/webshop-labs/checkout/internal/transport/http/middleware/auth"
	"github.com/webshop-labs/checkout/pkg/http/middleware/trace"
	"github.com/webshop-labs/checkout/pkg/logger"
)

type checkoutService interface {
	Checkout(ctx context.Context, sess session.Session, paymentDetails payment.Details, shipmentDetails shipment.Details) (*order.Order, error)
}

type orderService interface {
	GetByID(ctx context.Context, orderID int64) (*order.Order, error)
	GetByUser(ctx context.Context, userID int64) ([]order.Order, error)
}

type receiptService interface {
	GenerateReceipt(ctx context.Context, o *order.Order) (*receipt.Receipt, error)
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	checkout checkoutService
	orders   orderService
	receipts receiptService
}

func NewHTTPTransport(checkoutSvc checkoutService, orderSvc orderService, receiptSvc receiptService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:   server,
		router:   router,
		checkout: checkoutSvc,
		orders:   orderSvc,
		receipts: receiptSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes(metricsHandler http.Handler) {
	h.router.Route("/api", func(r chi.Router) {
		r.Post("/checkout", h.doCheckout)
		r.Get("/orders", h.listOrders)
		r.Get("/orders/{orderID}", h.getOrder)
		r.Get("/orders/{orderID}/receipt", h.getReceipt)
	})
	h.router.Handle("/metrics", metricsHandler)
}

func (h *HTTPTransport) doCheckout(w http.ResponseWriter, r *http.Request) {
	checkout.Checkout(w, r, h.checkout)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orders)
}

func (h *HTTPTransport) getReceipt(w http.ResponseWriter, r *http.Request) {
	getreceipt.GetReceipt(w, r, h.orders, h.receipts)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)
	router.Use(auth.NewAuthMiddleware([]byte(viper.GetString("server.http.auth.secret"))))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
