package ports

import (
	"context"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment
// aggregates and their parcel membership rows.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate with its membership rows.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment, locking the row for
	// update when called within a transaction.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment with its member parcel ids.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// HasActiveLink reports whether the parcel belongs to a shipment that is
	// neither cancelled nor refunded. A parcel with an active link cannot be
	// linked again.
	HasActiveLink(ctx context.Context, parcelID kernel.UUID) (bool, error)

	// GetQuotedExpiredBefore retrieves shipments still in Quoted status whose
	// quote expiry lies before the given time. Used by the expiry sweep.
	GetQuotedExpiredBefore(ctx context.Context, now time.Time) ([]*shipment.Shipment, error)
}
