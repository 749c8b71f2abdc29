package raterepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/rate"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/domain/model/warehouse"
	"forwarding/internal/pkg/errs"
)

// GormRateRepository implements RateRepository using GORM.
type GormRateRepository struct {
	db *gorm.DB
}

// NewGormRateRepository creates a new GORM rate repository.
func NewGormRateRepository(db *gorm.DB) *GormRateRepository {
	return &GormRateRepository{db: db}
}

// GetEffective retrieves the active rate for the (warehouse, zone, service
// type) triple whose effective window contains the given time.
func (r *GormRateRepository) GetEffective(
	ctx context.Context,
	warehouseID, zoneID kernel.UUID,
	serviceType shipment.ServiceType,
	at time.Time,
) (*rate.Rate, error) {
	if err := errors.Join(warehouseID.Validate(), zoneID.Validate(), serviceType.Validate()); err != nil {
		return nil, err
	}

	var dto RateDTO
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND zone_id = ? AND service_type = ?",
			warehouseID.Bytes(), zoneID.Bytes(), int(serviceType)).
		Where("is_active AND active_from <= ? AND active_until >= ?", at, at).
		Order("active_from DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rate.ErrRateNotFound
		}
		return nil, err
	}

	return rateToDomain(dto)
}

// GetAllEffective retrieves the active rates of every service type for the
// (warehouse, zone) pair at the given time.
func (r *GormRateRepository) GetAllEffective(
	ctx context.Context,
	warehouseID, zoneID kernel.UUID,
	at time.Time,
) ([]*rate.Rate, error) {
	if err := errors.Join(warehouseID.Validate(), zoneID.Validate()); err != nil {
		return nil, err
	}

	var dtos []RateDTO
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND zone_id = ?", warehouseID.Bytes(), zoneID.Bytes()).
		Where("is_active AND active_from <= ? AND active_until >= ?", at, at).
		Order("service_type, active_from DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	rates := make([]*rate.Rate, 0, len(dtos))
	seen := make(map[int]bool, len(dtos))
	for _, dto := range dtos {
		// Overlapping windows for the same service type resolve to the most
		// recently effective one.
		if seen[dto.ServiceType] {
			continue
		}
		seen[dto.ServiceType] = true

		domainRate, domainErr := rateToDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		rates = append(rates, domainRate)
	}

	return rates, nil
}

// GormWarehouseRepository implements WarehouseRepository using GORM.
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GORM warehouse repository.
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// Get retrieves a warehouse configuration record.
func (r *GormWarehouseRepository) Get(ctx context.Context, id kernel.UUID) (*warehouse.Warehouse, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WarehouseDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("warehouse", id.String())
		}
		return nil, err
	}

	return warehouseToDomain(dto)
}
