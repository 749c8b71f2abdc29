// Package redis caches shipping rate reference data. Rates change through
// master-data administration, not through this service, so a short TTL keeps
// quoting off the database without risking stale prices for long.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/rate"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/ports"
)

type cachedRate struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	ZoneID      string    `json:"zone_id"`
	ServiceType int       `json:"service_type"`
	BaseRate    float64   `json:"base_rate"`
	PerKgRate   float64   `json:"per_kg_rate"`
	MinCharge   float64   `json:"min_charge"`
	MaxWeightKg float64   `json:"max_weight_kg"`
	Currency    string    `json:"currency"`
	ActiveFrom  time.Time `json:"active_from"`
	ActiveUntil time.Time `json:"active_until"`
}

// RateCache decorates a RateRepository with redis caching. Only effective
// rates are cached; a cached rate whose window no longer covers the asked
// time falls through to the inner repository.
type RateCache struct {
	inner ports.RateRepository
	c     *goredis.Client
	ttl   time.Duration
}

// NewRateCache creates a caching decorator around the given repository.
func NewRateCache(inner ports.RateRepository, client *goredis.Client, ttl time.Duration) *RateCache {
	return &RateCache{
		inner: inner,
		c:     client,
		ttl:   ttl,
	}
}

// GetEffective retrieves the active rate for the triple, serving from cache
// when the cached entry still covers the asked time.
func (r *RateCache) GetEffective(
	ctx context.Context,
	warehouseID, zoneID kernel.UUID,
	serviceType shipment.ServiceType,
	at time.Time,
) (*rate.Rate, error) {
	key := fmt.Sprintf("rate:%s:%s:%d", warehouseID.String(), zoneID.String(), int(serviceType))

	if raw, err := r.c.Get(ctx, key).Bytes(); err == nil {
		var dto cachedRate
		if jsonErr := json.Unmarshal(raw, &dto); jsonErr == nil {
			if cached, buildErr := fromCached(dto); buildErr == nil && cached.IsEffectiveAt(at) {
				return cached, nil
			}
		}
	}

	fresh, err := r.inner.GetEffective(ctx, warehouseID, zoneID, serviceType, at)
	if err != nil {
		return nil, err
	}

	// Cache write failures are not worth failing a quote over.
	if raw, jsonErr := json.Marshal(toCached(fresh)); jsonErr == nil {
		_ = r.c.Set(ctx, key, raw, r.ttl).Err()
	}

	return fresh, nil
}

// GetAllEffective retrieves the active rates of every service type for the
// pair, serving from cache when every cached entry still covers the asked
// time.
func (r *RateCache) GetAllEffective(
	ctx context.Context,
	warehouseID, zoneID kernel.UUID,
	at time.Time,
) ([]*rate.Rate, error) {
	key := fmt.Sprintf("rates:%s:%s", warehouseID.String(), zoneID.String())

	if raw, err := r.c.Get(ctx, key).Bytes(); err == nil {
		var dtos []cachedRate
		if jsonErr := json.Unmarshal(raw, &dtos); jsonErr == nil {
			if rates, ok := fromCachedAll(dtos, at); ok {
				return rates, nil
			}
		}
	}

	fresh, err := r.inner.GetAllEffective(ctx, warehouseID, zoneID, at)
	if err != nil {
		return nil, err
	}

	dtos := make([]cachedRate, 0, len(fresh))
	for _, freshRate := range fresh {
		dtos = append(dtos, toCached(freshRate))
	}
	if raw, jsonErr := json.Marshal(dtos); jsonErr == nil {
		_ = r.c.Set(ctx, key, raw, r.ttl).Err()
	}

	return fresh, nil
}

func toCached(domainRate *rate.Rate) cachedRate {
	return cachedRate{
		ID:          domainRate.ID().String(),
		WarehouseID: domainRate.Warehouse().String(),
		ZoneID:      domainRate.Zone().String(),
		ServiceType: int(domainRate.ServiceType()),
		BaseRate:    domainRate.BaseRate(),
		PerKgRate:   domainRate.PerKgRate(),
		MinCharge:   domainRate.MinCharge(),
		MaxWeightKg: domainRate.MaxWeightKg(),
		Currency:    domainRate.Currency().Code(),
		ActiveFrom:  domainRate.ActiveFrom(),
		ActiveUntil: domainRate.ActiveUntil(),
	}
}

func fromCached(dto cachedRate) (*rate.Rate, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}
	warehouseID, err := kernel.UUIDFromString(dto.WarehouseID)
	if err != nil {
		return nil, err
	}
	zoneID, err := kernel.UUIDFromString(dto.ZoneID)
	if err != nil {
		return nil, err
	}
	currency, err := kernel.CurrencyFromCode(dto.Currency)
	if err != nil {
		return nil, err
	}

	// Only effective rates ever enter the cache.
	return rate.NewRate(
		id, warehouseID, zoneID,
		shipment.ServiceType(dto.ServiceType),
		dto.BaseRate, dto.PerKgRate, dto.MinCharge, dto.MaxWeightKg,
		currency,
		dto.ActiveFrom, dto.ActiveUntil,
		true,
	)
}

func fromCachedAll(dtos []cachedRate, at time.Time) ([]*rate.Rate, bool) {
	rates := make([]*rate.Rate, 0, len(dtos))
	for _, dto := range dtos {
		cached, err := fromCached(dto)
		if err != nil || !cached.IsEffectiveAt(at) {
			return nil, false
		}
		rates = append(rates, cached)
	}
	return rates, true
}
