package intake

import (
	"errors"
	"fmt"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

var (
	// ErrScannedItemIsNotConstructed is returned when a ScannedItem was not
	// created through NewScannedItem or RestoreScannedItem.
	ErrScannedItemIsNotConstructed = errors.New("ScannedItem must be created via NewScannedItem constructor")

	// ErrItemIsDuplicate indicates an operation attempted on a duplicate
	// marker. Duplicate markers are not live items and cannot be assigned
	// or converted.
	ErrItemIsDuplicate = errors.New("scanned item is a duplicate marker")

	// ErrItemAlreadyConverted indicates the item has already spawned a parcel.
	// An item may be converted into exactly one parcel.
	ErrItemAlreadyConverted = errors.New("scanned item already converted into a parcel")

	// ErrItemNotAssigned indicates the item has no owning customer yet.
	ErrItemNotAssigned = errors.New("scanned item is not assigned to a customer")
)

// AlreadyAssignedError reports an all-or-nothing assignment failure.
// It names every offending item so a batch operation can be corrected in one
// round-trip, not just the first conflict found.
type AlreadyAssignedError struct {
	ItemIDs []kernel.UUID
}

func (e *AlreadyAssignedError) Error() string {
	ids := make([]string, 0, len(e.ItemIDs))
	for _, id := range e.ItemIDs {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf("items are not assignable: %v", ids)
}

// ScannedItem is one tracking number recorded within a batch. Live items
// start Unassigned and move to Assigned when linked to a customer; duplicate
// markers record a repeated scan and never participate in assignment.
type ScannedItem struct {
	id             kernel.UUID
	batchID        kernel.UUID
	trackingNumber string
	scannedAt      time.Time
	duplicate      bool

	status     AssignmentStatus
	customerID *kernel.UUID
	assignedAt *time.Time
	parcelID   *kernel.UUID

	guard kernel.ConstructorGuard
}

// NewScannedItem creates a live or duplicate-flagged item for a tracking
// number scanned at the given time. Used by Batch.Scan; not intended to be
// called directly by application code.
func NewScannedItem(id kernel.UUID, batchID kernel.UUID, trackingNumber string, scannedAt time.Time, duplicate bool) (*ScannedItem, error) {
	item := &ScannedItem{
		status:    Unassigned,
		duplicate: duplicate,
		scannedAt: scannedAt,
		guard:     kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setBatchID(batchID),
		item.setTrackingNumber(trackingNumber),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreScannedItem reconstructs a ScannedItem from persistence, including
// its assignment state and parcel conversion link.
func RestoreScannedItem(
	id kernel.UUID,
	batchID kernel.UUID,
	trackingNumber string,
	scannedAt time.Time,
	duplicate bool,
	status AssignmentStatus,
	customerID *kernel.UUID,
	assignedAt *time.Time,
	parcelID *kernel.UUID,
) (*ScannedItem, error) {
	item, err := NewScannedItem(id, batchID, trackingNumber, scannedAt, duplicate)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if status == Assigned && customerID == nil {
		return nil, errs.NewValueIsRequiredError("customerID")
	}

	item.status = status
	item.customerID = customerID
	item.assignedAt = assignedAt
	item.parcelID = parcelID
	return item, nil
}

// Validate ensures the item was constructed through a constructor.
func (i *ScannedItem) Validate() error {
	if i == nil {
		return ErrScannedItemIsNotConstructed
	}
	return i.guard.Validate(ErrScannedItemIsNotConstructed)
}

// ID returns the item's unique identifier.
func (i *ScannedItem) ID() kernel.UUID { return i.id }

// BatchID returns the owning batch's identifier.
func (i *ScannedItem) BatchID() kernel.UUID { return i.batchID }

// TrackingNumber returns the courier tracking number that was scanned.
func (i *ScannedItem) TrackingNumber() string { return i.trackingNumber }

// ScannedAt returns the scan timestamp.
func (i *ScannedItem) ScannedAt() time.Time { return i.scannedAt }

// IsDuplicate reports whether this item is a duplicate marker rather than a
// live item.
func (i *ScannedItem) IsDuplicate() bool { return i.duplicate }

// Status returns the item's assignment status.
func (i *ScannedItem) Status() AssignmentStatus { return i.status }

// Customer returns the owning customer's ID, nil while unassigned.
func (i *ScannedItem) Customer() *kernel.UUID { return i.customerID }

// AssignedAt returns the assignment timestamp, nil while unassigned.
func (i *ScannedItem) AssignedAt() *time.Time { return i.assignedAt }

// Parcel returns the ID of the parcel this item was converted into, nil if
// not yet converted.
func (i *ScannedItem) Parcel() *kernel.UUID { return i.parcelID }

// CanAssign reports whether the item is live and still unassigned.
func (i *ScannedItem) CanAssign() bool {
	return !i.duplicate && i.status == Unassigned
}

// Assign stamps the owning customer and moves the item to Assigned.
// Returns an AlreadyAssignedError naming this item if it is not assignable.
func (i *ScannedItem) Assign(customerID kernel.UUID, at time.Time) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	if !i.CanAssign() {
		return &AlreadyAssignedError{ItemIDs: []kernel.UUID{i.id}}
	}

	i.status = Assigned
	i.customerID = &customerID
	i.assignedAt = &at
	return nil
}

// MarkConverted links the item to the parcel created from it. An item is
// converted at most once and only after assignment.
func (i *ScannedItem) MarkConverted(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	if i.duplicate {
		return ErrItemIsDuplicate
	}
	if i.status != Assigned {
		return ErrItemNotAssigned
	}
	if i.parcelID != nil {
		return ErrItemAlreadyConverted
	}

	i.parcelID = &parcelID
	return nil
}

func (i *ScannedItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *ScannedItem) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	i.batchID = batchID
	return nil
}

func (i *ScannedItem) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	i.trackingNumber = trackingNumber
	return nil
}
