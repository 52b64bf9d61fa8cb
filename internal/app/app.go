package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/webshop-labs/checkout/internal/dal/cache"
	"github.com/webshop-labs/checkout/internal/dal/mongodb"
	"github.com/webshop-labs/checkout/internal/dal/postgres"
	"github.com/webshop-labs/checkout/internal/dal/rabbitmq"
	accountrepo "github.com/webshop-labs/checkout/internal/dal/repositories/account/postgres"
	cachedrepo "github.com/webshop-labs/checkout/internal/dal/repositories/cart/cached"
	mongorepo "github.com/webshop-labs/checkout/internal/dal/repositories/cart/mongo"
	orderrepo "github.com/webshop-labs/checkout/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/webshop-labs/checkout/internal/dal/repositories/outbox/postgres"
	paymentrepo "github.com/webshop-labs/checkout/internal/dal/repositories/payment/postgres"
	productrepo "github.com/webshop-labs/checkout/internal/dal/repositories/product/postgres"
	shipmentrepo "github.com/webshop-labs/checkout/internal/dal/repositories/shipment/postgres"
	stockrepo "github.com/webshop-labs/checkout/internal/dal/repositories/stock/postgres"
	"github.com/webshop-labs/checkout/internal/otel"
	"github.com/webshop-labs/checkout/internal/service/services/checkoutsvc"
	"github.com/webshop-labs/checkout/internal/service/services/ordersvc"
	"github.com/webshop-labs/checkout/internal/service/services/receiptsvc"
	httptransport "github.com/webshop-labs/checkout/internal/transport/http"
	outboxworker "github.com/webshop-labs/checkout/internal/worker/outbox"
	"github.com/webshop-labs/checkout/pkg/metrics"
)

// App represents the application.
type App struct {
	checkoutSvc    *checkoutsvc.CheckoutService
	orderSvc       *ordersvc.OrderService
	receiptSvc     *receiptsvc.ReceiptService
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()

	postgresClient := postgres.MustNewClient()
	mongoDatabase := mongodb.MustNewDatabase()
	redisClient := cache.MustNewRedisClient()

	rabbitClient := rabbitmq.MustNewClient()
	if _, err := rabbitClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    checkoutsvc.OrderCreatedQueue,
		Durable: true,
	}); err != nil {
		panic("Failed to declare order.created queue: " + err.Error())
	}

	pool := postgresClient.Pool()
	orderRepository := orderrepo.NewPostgresOrderRepository(pool)
	productRepository := productrepo.NewPostgresProductRepository(pool)
	stockRepository := stockrepo.NewPostgresStockRepository(pool)
	paymentRepository := paymentrepo.NewPostgresPaymentRepository(pool)
	shipmentRepository := shipmentrepo.NewPostgresShipmentRepository(pool)
	accountRepository := accountrepo.NewPostgresAccountRepository(pool)
	outboxRepository := outboxrepo.NewOutboxRepository(pool)

	cartRepository := cachedrepo.NewCachedCartRepository(
		mongorepo.NewMongoCartRepository(mongoDatabase),
		cache.NewRedisCache(redisClient),
	)

	checkoutMetrics := metrics.NewCheckoutMetrics()

	checkoutSvc := checkoutsvc.MustNewCheckoutService(
		checkoutsvc.WithCartRepository(cartRepository),
		checkoutsvc.WithProductRepository(productRepository),
		checkoutsvc.WithStockRepository(stockRepository),
		checkoutsvc.WithOrderRepository(orderRepository),
		checkoutsvc.WithPaymentRepository(paymentRepository),
		checkoutsvc.WithShipmentRepository(shipmentRepository),
		checkoutsvc.WithAccountRepository(accountRepository),
		checkoutsvc.WithOutboxRepository(outboxRepository),
		checkoutsvc.WithMetrics(checkoutMetrics),
	)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithOrderRepository(orderRepository),
		ordersvc.WithProductRepository(productRepository),
		ordersvc.WithPaymentRepository(paymentRepository),
		ordersvc.WithShipmentRepository(shipmentRepository),
	)

	receiptSvc := receiptsvc.MustNewReceiptService(
		receiptsvc.WithProductRepository(productRepository),
		receiptsvc.WithAccountRepository(accountRepository),
		receiptsvc.WithPaymentRepository(paymentRepository),
		receiptsvc.WithShipmentRepository(shipmentRepository),
		receiptsvc.WithMetrics(checkoutMetrics),
	)

	transport := httptransport.NewHTTPTransport(checkoutSvc, orderSvc, receiptSvc)
	transport.RegisterRoutes(metrics.Handler())

	worker := outboxworker.NewWorker(outboxRepository, rabbitClient)

	return &App{
		checkoutSvc:    checkoutSvc,
		orderSvc:       orderSvc,
		receiptSvc:     receiptSvc,
		transport:      transport,
		outboxWorker:   worker,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
