package ishipmentrepo

import (
	"context"
	"errors"

	"github.com/webshop-labs/checkout/internal/service/models/shipment"
)

var ErrShipmentNotFound = errors.New("shipment not found")

// IShipmentRepository is an interface for the shipment store.
type IShipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*shipment.Shipment, error)
	// Store persists an unsaved shipment and returns it with its identifier
	// assigned.
	Store(ctx context.Context, s *shipment.Shipment) (*shipment.Shipment, error)
}
