package shipmentrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/pkg/errs"
)

// aggregateTracker defines the unit-of-work surface the repository needs.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
	InTransaction() bool
}

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment and its membership rows to the database.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment. Membership rows are immutable after
// creation, so only the shipment row is written. Quote columns are written
// explicitly: the expiry sweep nulls them, and Updates would skip nil
// fields.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
		Where("id = ?", dto.ID).
		Select("Status", "ShippingMinor", "InsuranceMinor", "HandlingMinor", "StorageMinor",
			"TotalMinor", "Currency", "TraceZoneID", "TraceBaseRate", "TraceWeightCharge",
			"TraceMinChargeApplied", "QuoteExpiresAt", "PaymentReference",
			"PaidAt", "DispatchedAt", "DeliveredAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment with its member parcel ids, locking the shipment
// row when a transaction is active. Payment completion and the expiry sweep
// both rely on that lock for their check-and-set.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	session := r.db.WithContext(ctx)
	if r.tracker.InTransaction() {
		session = session.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: ShipmentDTO{}.TableName()}})
	}

	var dto ShipmentDTO
	if err := session.Preload("Parcels").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// HasActiveLink reports whether the parcel belongs to a shipment that is
// neither cancelled nor refunded.
func (r *GormShipmentRepository) HasActiveLink(ctx context.Context, parcelID kernel.UUID) (bool, error) {
	if err := parcelID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ShipmentParcelDTO{}).
		Joins("JOIN shipments ON shipments.id = shipment_parcels.shipment_id").
		Where("shipment_parcels.parcel_id = ? AND shipments.status NOT IN ?",
			parcelID.Bytes(), []int{int(shipment.Cancelled), int(shipment.Refunded)}).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetQuotedExpiredBefore retrieves shipments still Quoted whose expiry lies
// before the given time, locking them when a transaction is active.
func (r *GormShipmentRepository) GetQuotedExpiredBefore(ctx context.Context, now time.Time) ([]*shipment.Shipment, error) {
	session := r.db.WithContext(ctx)
	if r.tracker.InTransaction() {
		session = session.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: ShipmentDTO{}.TableName()}})
	}

	var dtos []ShipmentDTO
	err := session.Preload("Parcels").
		Find(&dtos, "status = ? AND quote_expires_at < ?", int(shipment.Quoted), now).Error
	if err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}
