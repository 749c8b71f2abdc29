package queries

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrGetBatchItemsQueryIsNotConstructed = errors.New(
	"GetBatchItemsQuery must be created via NewGetBatchItemsQuery constructor",
)

// GetBatchItemsQuery asks for the scanned items of one batch, duplicates
// included.
type GetBatchItemsQuery struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBatchItemsQuery creates a batch-items read query.
func NewGetBatchItemsQuery(batchID kernel.UUID) (GetBatchItemsQuery, error) {
	q := GetBatchItemsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setBatchID(batchID); err != nil {
		return GetBatchItemsQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBatchItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchItemsQueryIsNotConstructed)
}

// BatchID returns the batch to read.
func (q GetBatchItemsQuery) BatchID() kernel.UUID {
	return q.batchID
}

func (q *GetBatchItemsQuery) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	q.batchID = batchID
	return nil
}
