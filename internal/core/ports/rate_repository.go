package ports

import (
	"context"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/rate"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/domain/model/warehouse"
)

// RateRepository reads shipping rate reference data. Multiple rates may
// exist per (warehouse, zone, service type); implementations return the one
// whose effective window contains the given time and which is active.
type RateRepository interface {
	// GetEffective retrieves the active rate for the triple at the given
	// time. Returns rate.ErrRateNotFound when none matches.
	GetEffective(ctx context.Context, warehouseID, zoneID kernel.UUID, serviceType shipment.ServiceType, at time.Time) (*rate.Rate, error)

	// GetAllEffective retrieves the active rates of every service type for
	// the (warehouse, zone) pair at the given time. Used for ranking
	// available services.
	GetAllEffective(ctx context.Context, warehouseID, zoneID kernel.UUID, at time.Time) ([]*rate.Rate, error)
}

// WarehouseRepository reads warehouse reference data.
type WarehouseRepository interface {
	// Get retrieves a warehouse configuration record.
	Get(ctx context.Context, id kernel.UUID) (*warehouse.Warehouse, error)
}
