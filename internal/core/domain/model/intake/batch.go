package intake

import (
	"errors"
	"fmt"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

var (
	// ErrBatchIsNotConstructed is returned when a Batch was not created
	// through NewBatch or RestoreBatch.
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")

	// ErrBatchAlreadyScanned indicates the scan session was already marked
	// complete and accepts no further scans.
	ErrBatchAlreadyScanned = errors.New("batch is already scanned")

	// ErrBatchIsEmpty indicates a completion attempt on a batch with no live
	// items.
	ErrBatchIsEmpty = errors.New("batch has no scanned items")
)

// Batch is the aggregate root for one courier-delivery scanning session.
// It records the courier, the expected piece count and the arrival time, and
// owns every ScannedItem produced by the session.
//
// Invariants:
//   - A tracking number is live at most once within the batch; repeated scans
//     produce duplicate markers, never second live items.
//   - Completion requires at least one live item and is terminal.
type Batch struct {
	id             kernel.UUID
	courierID      kernel.UUID
	expectedPieces int
	arrivedAt      time.Time
	status         BatchStatus
	items          []*ScannedItem

	guard kernel.ConstructorGuard
}

// NewBatch opens a new scan session for a courier delivery.
// The expected piece count comes from the courier manifest and must be
// positive.
func NewBatch(id kernel.UUID, courierID kernel.UUID, expectedPieces int, arrivedAt time.Time) (*Batch, error) {
	batch := &Batch{
		status: BatchPending,
		guard:  kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		batch.setID(id),
		batch.setCourierID(courierID),
		batch.setExpectedPieces(expectedPieces),
	); err != nil {
		return nil, err
	}

	batch.arrivedAt = arrivedAt
	return batch, nil
}

// RestoreBatch reconstructs a Batch and its items from persistence.
func RestoreBatch(
	id kernel.UUID,
	courierID kernel.UUID,
	expectedPieces int,
	arrivedAt time.Time,
	status BatchStatus,
	items []*ScannedItem,
) (*Batch, error) {
	batch, err := NewBatch(id, courierID, expectedPieces, arrivedAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err = item.Validate(); err != nil {
			return nil, err
		}
	}

	batch.status = status
	batch.items = items
	return batch, nil
}

// Validate ensures the batch was constructed through a constructor.
func (b *Batch) Validate() error {
	if b == nil {
		return ErrBatchIsNotConstructed
	}
	return b.guard.Validate(ErrBatchIsNotConstructed)
}

// ID returns the batch's unique identifier.
func (b *Batch) ID() kernel.UUID { return b.id }

// Courier returns the delivering courier's identifier.
func (b *Batch) Courier() kernel.UUID { return b.courierID }

// ExpectedPieces returns the piece count announced by the courier.
func (b *Batch) ExpectedPieces() int { return b.expectedPieces }

// ArrivedAt returns the arrival timestamp of the delivery.
func (b *Batch) ArrivedAt() time.Time { return b.arrivedAt }

// Status returns the batch's lifecycle status.
func (b *Batch) Status() BatchStatus { return b.status }

// Items returns every scanned item of the session, duplicates included.
func (b *Batch) Items() []*ScannedItem { return b.items }

// LiveItems returns the items that are not duplicate markers.
func (b *Batch) LiveItems() []*ScannedItem {
	live := make([]*ScannedItem, 0, len(b.items))
	for _, item := range b.items {
		if !item.IsDuplicate() {
			live = append(live, item)
		}
	}
	return live
}

// Scan records a tracking number in the session. A number already live in
// this batch yields a duplicate marker and leaves the first item untouched;
// repeating a scan is not an error. Returns the recorded item, whose
// IsDuplicate tells the two cases apart.
func (b *Batch) Scan(trackingNumber string, at time.Time) (*ScannedItem, error) {
	if trackingNumber == "" {
		return nil, errs.NewValueIsRequiredError("trackingNumber")
	}
	if b.status == BatchScanned {
		return nil, ErrBatchAlreadyScanned
	}

	duplicate := false
	for _, existing := range b.items {
		if !existing.IsDuplicate() && existing.TrackingNumber() == trackingNumber {
			duplicate = true
			break
		}
	}

	item, err := NewScannedItem(kernel.NewUUID(), b.id, trackingNumber, at, duplicate)
	if err != nil {
		return nil, err
	}

	b.items = append(b.items, item)
	b.status = BatchScanning
	return item, nil
}

// Complete marks the scan session finished and moves the batch to Scanned.
// Requires at least one live item; assignment of the items is not required.
func (b *Batch) Complete() error {
	if b.status == BatchScanned {
		return ErrBatchAlreadyScanned
	}
	if len(b.LiveItems()) == 0 {
		return ErrBatchIsEmpty
	}

	b.status = BatchScanned
	return nil
}

func (b *Batch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Batch) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	b.courierID = courierID
	return nil
}

func (b *Batch) setExpectedPieces(expectedPieces int) error {
	if expectedPieces <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("expectedPieces",
			fmt.Errorf("%d is not greater than 0", expectedPieces))
	}
	b.expectedPieces = expectedPieces
	return nil
}
