package ports

import (
	"context"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// Status history rows are append-only: Update inserts history rows that are
// new on the aggregate and never modifies existing ones.
type ParcelRepository interface {
	// Add persists a new parcel aggregate.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel, appending any new
	// status-history rows.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel with its status history.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetMany retrieves the parcels for the given ids, locking them for
	// update when called within a transaction. Fails if any id is unknown.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error)
}
