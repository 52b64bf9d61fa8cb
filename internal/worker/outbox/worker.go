package outbox

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/spf13/viper"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/ioutboxrepo"
)

// publisher sends a single message to the broker.
type publisher interface {
	Publish(exchange, routingKey, contentType string, body []byte) error
}

// Worker drains the outbox table and publishes its messages to RabbitMQ.
type Worker struct {
	outboxRepo    ioutboxrepo.IOutboxRepository
	publisher     publisher
	pollInterval  time.Duration
	batchSize     int
	retryInterval time.Duration
	stopCh        chan struct{}
}

// NewWorker creates a new outbox worker.
func NewWorker(
	outboxRepo ioutboxrepo.IOutboxRepository,
	publisher publisher,
) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.outbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("rabbitmq.outbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	retryIntervalSeconds := viper.GetInt("rabbitmq.outbox.retry_interval_seconds")
	if retryIntervalSeconds == 0 {
		retryIntervalSeconds = 30
	}

	return &Worker{
		outboxRepo:    outboxRepo,
		publisher:     publisher,
		pollInterval:  time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:     batchSize,
		retryInterval: time.Duration(retryIntervalSeconds) * time.Second,
		stopCh:        make(chan struct{}),
	}
}

// Start begins processing messages from the outbox.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Outbox worker stopped")

			return
		case <-ticker.C:
			w.processMessages(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// processMessages retrieves and processes pending messages from the outbox.
func (w *Worker) processMessages(ctx context.Context) {
	messages, err := w.outboxRepo.GetPendingMessages(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending messages from outbox", "error", err)

		return
	}

	if len(messages) == 0 {
		return
	}

	slog.Info("Processing outbox messages", "count", len(messages))

	for _, msg := range messages {
		err := w.publisher.Publish(msg.ExchangeName, msg.RoutingKey, msg.ContentType, msg.Payload)
		if err != nil {
			w.handlePublishError(ctx, msg.ID, msg.RetryCount, msg.MaxRetries, err)

			continue
		}

		if err := w.outboxRepo.Delete(ctx, msg.ID); err != nil {
			slog.Error("Failed to delete message from outbox after successful publish",
				"outbox_id", msg.ID,
				"error", err,
			)
		} else {
			slog.Info("Message successfully published and removed from outbox", "outbox_id", msg.ID)
		}
	}
}

func (w *Worker) handlePublishError(ctx context.Context, id int64, retryCount, maxRetries int, pubErr error) {
	newRetryCount := retryCount + 1

	if maxRetries > 0 && newRetryCount > maxRetries {
		slog.Error("Outbox message exceeded max retries, dropping", "outbox_id", id, "error", pubErr)
		if err := w.outboxRepo.Delete(ctx, id); err != nil {
			slog.Error("Failed to delete exhausted outbox message", "outbox_id", id, "error", err)
		}

		return
	}

	// 60s, 120s, 240s, etc.
	backoff := time.Duration(math.Pow(2, float64(newRetryCount))) * w.retryInterval
	nextRetryAt := time.Now().Add(backoff)

	slog.Warn("Failed to publish message from outbox, will retry",
		"outbox_id", id,
		"retry_count", newRetryCount,
		"next_retry", nextRetryAt,
		"error", pubErr,
	)

	if err := w.outboxRepo.UpdateRetry(ctx, id, newRetryCount, pubErr.Error(), nextRetryAt); err != nil {
		slog.Error("Failed to update retry information", "outbox_id", id, "error", err)
	}
}
