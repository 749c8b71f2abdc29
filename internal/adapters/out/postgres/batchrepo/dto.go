// Package batchrepo persists intake batches and their scanned items.
// The batch repository works on the whole aggregate; the scanned-item
// repository addresses items as rows, which is what cross-batch assignment
// needs.
package batchrepo

import (
	"time"

	"github.com/google/uuid"

	"forwarding/internal/core/domain/model/intake"
	"forwarding/internal/core/domain/model/kernel"
)

// BatchDTO represents the database structure for intake batches.
type BatchDTO struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CourierID      uuid.UUID        `gorm:"type:uuid;index"`
	ExpectedPieces int              `gorm:""`
	ArrivedAt      time.Time        `gorm:""`
	Status         int              `gorm:""`
	Items          []ScannedItemDTO `gorm:"foreignKey:BatchID"`
}

// TableName overrides GORM's default naming to use "batches".
func (BatchDTO) TableName() string {
	return "batches"
}

// ScannedItemDTO represents the database structure for scanned items.
// The tracking number is indexed: duplicate detection and pre-alert matching
// both look items up by it.
type ScannedItemDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BatchID        uuid.UUID  `gorm:"type:uuid;index"`
	TrackingNumber string     `gorm:"index"`
	ScannedAt      time.Time  `gorm:""`
	Duplicate      bool       `gorm:""`
	Status         int        `gorm:""`
	CustomerID     *uuid.UUID `gorm:"type:uuid;index"`
	AssignedAt     *time.Time `gorm:""`
	ParcelID       *uuid.UUID `gorm:"type:uuid"`
}

// TableName overrides GORM's default naming to use "scanned_items".
func (ScannedItemDTO) TableName() string {
	return "scanned_items"
}

func fromDomain(batch *intake.Batch) BatchDTO {
	items := make([]ScannedItemDTO, 0, len(batch.Items()))
	for _, item := range batch.Items() {
		items = append(items, itemFromDomain(item))
	}

	return BatchDTO{
		ID:             batch.ID().Bytes(),
		CourierID:      batch.Courier().Bytes(),
		ExpectedPieces: batch.ExpectedPieces(),
		ArrivedAt:      batch.ArrivedAt(),
		Status:         int(batch.Status()),
		Items:          items,
	}
}

func itemFromDomain(item *intake.ScannedItem) ScannedItemDTO {
	var customerID, parcelID *uuid.UUID
	if id := item.Customer(); id != nil {
		raw := id.Bytes()
		customerID = &raw
	}
	if id := item.Parcel(); id != nil {
		raw := id.Bytes()
		parcelID = &raw
	}

	return ScannedItemDTO{
		ID:             item.ID().Bytes(),
		BatchID:        item.BatchID().Bytes(),
		TrackingNumber: item.TrackingNumber(),
		ScannedAt:      item.ScannedAt(),
		Duplicate:      item.IsDuplicate(),
		Status:         int(item.Status()),
		CustomerID:     customerID,
		AssignedAt:     item.AssignedAt(),
		ParcelID:       parcelID,
	}
}

func toDomain(dto BatchDTO) (*intake.Batch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*intake.ScannedItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return intake.RestoreBatch(id, courierID, dto.ExpectedPieces, dto.ArrivedAt,
		intake.BatchStatus(dto.Status), items)
}

func itemToDomain(dto ScannedItemDTO) (*intake.ScannedItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	batchID, err := kernel.UUIDFromBytes(dto.BatchID[:])
	if err != nil {
		return nil, err
	}

	var customerID, parcelID *kernel.UUID
	if dto.CustomerID != nil {
		cID, custErr := kernel.UUIDFromBytes((*dto.CustomerID)[:])
		if custErr != nil {
			return nil, custErr
		}
		customerID = &cID
	}
	if dto.ParcelID != nil {
		pID, parcelErr := kernel.UUIDFromBytes((*dto.ParcelID)[:])
		if parcelErr != nil {
			return nil, parcelErr
		}
		parcelID = &pID
	}

	return intake.RestoreScannedItem(id, batchID, dto.TrackingNumber, dto.ScannedAt,
		dto.Duplicate, intake.AssignmentStatus(dto.Status), customerID, dto.AssignedAt, parcelID)
}
