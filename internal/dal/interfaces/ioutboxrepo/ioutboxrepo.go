package ioutboxrepo

import (
	"context"
	"time"

	"github.com/webshop-labs/checkout/internal/service/models/outbox"
)

// IOutboxRepository is an interface for the transactional outbox table.
type IOutboxRepository interface {
	Insert(ctx context.Context, msg *outbox.Message) error
	GetPendingMessages(ctx context.Context, batchSize int) ([]outbox.Message, error)
	UpdateRetry(ctx context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error
	Delete(ctx context.Context, id int64) error
}
