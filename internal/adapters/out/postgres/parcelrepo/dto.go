// Package parcelrepo persists parcel aggregates and their append-only
// status history.
package parcelrepo

import (
	"time"

	"github.com/google/uuid"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
)

// ParcelDTO represents the database structure for parcels. Measurement
// columns are nullable: a pre-alerted parcel has none until it is put on the
// scale.
type ParcelDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID `gorm:"type:uuid;index"`
	WarehouseID      uuid.UUID `gorm:"type:uuid;index"`
	InboundTracking  string    `gorm:"index"`
	OutboundTracking string    `gorm:""`

	WeightKg           *float64 `gorm:""`
	LengthCm           *float64 `gorm:""`
	WidthCm            *float64 `gorm:""`
	HeightCm           *float64 `gorm:""`
	VolumetricWeightKg *float64 `gorm:""`
	ChargeableWeightKg *float64 `gorm:""`

	DeclaredValueMinor int64  `gorm:""`
	Currency           string `gorm:""`

	Fragile           bool `gorm:""`
	HighValue         bool `gorm:""`
	Restricted        bool `gorm:""`
	RequiresSignature bool `gorm:""`

	Status        int              `gorm:"index"`
	ReceivedAt    *time.Time       `gorm:""`
	ScannedItemID *uuid.UUID       `gorm:"type:uuid"`
	Documents     []string         `gorm:"serializer:json"`
	History       []StatusChangeDTO `gorm:"foreignKey:ParcelID"`
}

// TableName overrides GORM's default naming to use "parcels".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// StatusChangeDTO represents one row of a parcel's status history.
type StatusChangeDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID   uuid.UUID `gorm:"type:uuid;index"`
	FromStatus int       `gorm:""`
	ToStatus   int       `gorm:""`
	Reason     string    `gorm:""`
	Actor      string    `gorm:""`
	OccurredAt time.Time `gorm:""`
}

// TableName overrides GORM's default naming to use "parcel_status_changes".
func (StatusChangeDTO) TableName() string {
	return "parcel_status_changes"
}

func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	dto := ParcelDTO{
		ID:                 aggregate.ID().Bytes(),
		CustomerID:         aggregate.Customer().Bytes(),
		WarehouseID:        aggregate.Warehouse().Bytes(),
		InboundTracking:    aggregate.InboundTracking(),
		OutboundTracking:   aggregate.OutboundTracking(),
		DeclaredValueMinor: aggregate.DeclaredValue().AmountMinor(),
		Currency:           aggregate.DeclaredValue().Currency().Code(),
		Fragile:            aggregate.Flags().Fragile,
		HighValue:          aggregate.Flags().HighValue,
		Restricted:         aggregate.Flags().Restricted,
		RequiresSignature:  aggregate.Flags().RequiresSignature,
		Status:             int(aggregate.Status()),
		ReceivedAt:         aggregate.ReceivedAt(),
		Documents:          aggregate.Documents(),
	}

	if w := aggregate.Weight(); w != nil {
		kg := w.Kg()
		dto.WeightKg = &kg
	}
	if d := aggregate.Dimensions(); d != nil {
		l, wd, h := d.LengthCm(), d.WidthCm(), d.HeightCm()
		dto.LengthCm, dto.WidthCm, dto.HeightCm = &l, &wd, &h
	}
	if v := aggregate.VolumetricWeight(); v != nil {
		kg := v.Kg()
		dto.VolumetricWeightKg = &kg
	}
	if c := aggregate.ChargeableWeight(); c != nil {
		kg := c.Kg()
		dto.ChargeableWeightKg = &kg
	}
	if id := aggregate.ScannedItem(); id != nil {
		raw := id.Bytes()
		dto.ScannedItemID = &raw
	}

	for _, change := range aggregate.History() {
		dto.History = append(dto.History, changeFromDomain(change))
	}

	return dto
}

func changeFromDomain(change parcel.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		ID:         change.ID().Bytes(),
		ParcelID:   change.ParcelID().Bytes(),
		FromStatus: int(change.From()),
		ToStatus:   int(change.To()),
		Reason:     change.Reason(),
		Actor:      change.Actor(),
		OccurredAt: change.At(),
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	currency, err := kernel.CurrencyFromCode(dto.Currency)
	if err != nil {
		return nil, err
	}
	declaredValue, err := kernel.NewMoney(dto.DeclaredValueMinor, currency)
	if err != nil {
		return nil, err
	}

	var weight, volumetric, chargeable *kernel.Weight
	var dimensions *kernel.Dimensions
	if dto.WeightKg != nil {
		w, weightErr := kernel.NewWeight(*dto.WeightKg)
		if weightErr != nil {
			return nil, weightErr
		}
		weight = &w
	}
	if dto.LengthCm != nil && dto.WidthCm != nil && dto.HeightCm != nil {
		d, dimErr := kernel.NewDimensions(*dto.LengthCm, *dto.WidthCm, *dto.HeightCm)
		if dimErr != nil {
			return nil, dimErr
		}
		dimensions = &d
	}
	if dto.VolumetricWeightKg != nil {
		v, volErr := kernel.NewWeight(*dto.VolumetricWeightKg)
		if volErr != nil {
			return nil, volErr
		}
		volumetric = &v
	}
	if dto.ChargeableWeightKg != nil {
		c, chErr := kernel.NewWeight(*dto.ChargeableWeightKg)
		if chErr != nil {
			return nil, chErr
		}
		chargeable = &c
	}

	var scannedItemID *kernel.UUID
	if dto.ScannedItemID != nil {
		sID, scanErr := kernel.UUIDFromBytes((*dto.ScannedItemID)[:])
		if scanErr != nil {
			return nil, scanErr
		}
		scannedItemID = &sID
	}

	history := make([]parcel.StatusChange, 0, len(dto.History))
	for _, changeDTO := range dto.History {
		change, changeErr := changeToDomain(changeDTO)
		if changeErr != nil {
			return nil, changeErr
		}
		history = append(history, change)
	}

	return parcel.RestoreParcel(
		id, customerID, warehouseID,
		dto.InboundTracking, dto.OutboundTracking,
		weight, dimensions, volumetric, chargeable,
		declaredValue,
		parcel.Flags{
			Fragile:           dto.Fragile,
			HighValue:         dto.HighValue,
			Restricted:        dto.Restricted,
			RequiresSignature: dto.RequiresSignature,
		},
		parcel.Status(dto.Status),
		dto.ReceivedAt,
		scannedItemID,
		dto.Documents,
		history,
	)
}

func changeToDomain(dto StatusChangeDTO) (parcel.StatusChange, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return parcel.StatusChange{}, err
	}
	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return parcel.StatusChange{}, err
	}

	return parcel.NewStatusChange(id, parcelID,
		parcel.Status(dto.FromStatus), parcel.Status(dto.ToStatus),
		dto.Reason, dto.Actor, dto.OccurredAt)
}
