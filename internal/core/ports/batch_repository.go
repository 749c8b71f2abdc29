// Package ports defines the persistence and collaborator contracts between
// the domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"forwarding/internal/core/domain/model/intake"
	"forwarding/internal/core/domain/model/kernel"
)

// BatchRepository defines the persistence contract for intake batch
// aggregates, including their scanned items.
type BatchRepository interface {
	// Add persists a new batch aggregate with its items.
	Add(ctx context.Context, batch *intake.Batch) error

	// Update persists changes to an existing batch and its items.
	Update(ctx context.Context, batch *intake.Batch) error

	// Get retrieves a batch with all its scanned items.
	Get(ctx context.Context, id kernel.UUID) (*intake.Batch, error)
}

// ScannedItemRepository reads and updates scanned items directly, outside the
// batch aggregate. Assignment targets an arbitrary set of item ids, so the
// assignment use case locks and updates the items as rows rather than
// re-reading whole batches.
type ScannedItemRepository interface {
	// Get retrieves one scanned item.
	Get(ctx context.Context, id kernel.UUID) (*intake.ScannedItem, error)

	// GetMany retrieves the items for the given ids, locking them for update
	// when called within a transaction. Fails if any id is unknown.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*intake.ScannedItem, error)

	// Update persists changes to one scanned item.
	Update(ctx context.Context, item *intake.ScannedItem) error
}
