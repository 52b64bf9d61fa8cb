package checkoutsvc

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/webshop-labs/checkout/internal/service/models/order"
	"github.com/webshop-labs/checkout/internal/service/models/outbox"
)

// OrderCreatedQueue is the queue order.created events are published to.
const OrderCreatedQueue = "oms.order.created"

// orderCreatedEvent is the payload published after a successful checkout.
type orderCreatedEvent struct {
	EventID     string    `json:"eventId"`
	OrderID     int64     `json:"orderId"`
	UserID      int64     `json:"userId"`
	AmountCents int64     `json:"amountCents"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"createdAt"`
}

// publishOrderCreated drops an order.created event into the outbox. Event
// publication is best effort: the order is already durable, so a failure
// here is logged and the checkout still succeeds.
func (s *CheckoutService) publishOrderCreated(ctx context.Context, o *order.Order) {
	if s.outboxRepo == nil {
		return
	}

	payload, err := json.Marshal(orderCreatedEvent{
		EventID:     uuid.New().String(),
		OrderID:     o.ID,
		UserID:      o.UserID,
		AmountCents: o.Payment.AmountCents,
		Currency:    o.Payment.Currency.String(),
		CreatedAt:   o.CreatedAt,
	})
	if err != nil {
		slog.Error("failed to marshal order.created event", "order_id", o.ID, "error", err)

		return
	}

	now := time.Now()
	msg := &outbox.Message{
		QueueName:   OrderCreatedQueue,
		RoutingKey:  OrderCreatedQueue,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  5,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}

	if err := s.outboxRepo.Insert(ctx, msg); err != nil {
		slog.Error("failed to insert order.created event into outbox", "order_id", o.ID, "error", err)
	}
}
