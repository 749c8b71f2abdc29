package redis_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forwarding/internal/adapters/out/redis"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/rate"
	"forwarding/internal/core/domain/model/shipment"
)

type stubRateRepository struct {
	rates []*rate.Rate
	calls int
}

func (s *stubRateRepository) GetEffective(
	_ context.Context, _, _ kernel.UUID, _ shipment.ServiceType, _ time.Time,
) (*rate.Rate, error) {
	s.calls++
	return s.rates[0], nil
}

func (s *stubRateRepository) GetAllEffective(
	_ context.Context, _, _ kernel.UUID, _ time.Time,
) ([]*rate.Rate, error) {
	s.calls++
	return s.rates, nil
}

func effectiveRate(t *testing.T, warehouseID, zoneID kernel.UUID, serviceType shipment.ServiceType, until time.Time) *rate.Rate {
	t.Helper()
	currency, err := kernel.CurrencyFromCode("USD")
	require.NoError(t, err)

	r, err := rate.NewRate(
		kernel.NewUUID(), warehouseID, zoneID, serviceType,
		10.00, 2.50, 12.00, 30,
		currency,
		until.Add(-24*time.Hour), until,
		true,
	)
	require.NoError(t, err)
	return r
}

func TestRateCache_GetEffective_ServesSecondReadFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	warehouseID := kernel.NewUUID()
	zoneID := kernel.NewUUID()
	now := time.Now().UTC()
	inner := &stubRateRepository{rates: []*rate.Rate{
		effectiveRate(t, warehouseID, zoneID, shipment.Standard, now.Add(time.Hour)),
	}}

	cache := redis.NewRateCache(inner, client, time.Minute)
	ctx := context.Background()

	first, err := cache.GetEffective(ctx, warehouseID, zoneID, shipment.Standard, now)
	require.NoError(t, err)
	require.Equal(t, 1, inner.calls)

	second, err := cache.GetEffective(ctx, warehouseID, zoneID, shipment.Standard, now)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls, "second read should be served from cache")
	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, first.BaseRate(), second.BaseRate())
	assert.Equal(t, first.PerKgRate(), second.PerKgRate())
	assert.Equal(t, first.Currency().Code(), second.Currency().Code())
}

func TestRateCache_GetEffective_StaleWindowFallsThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	warehouseID := kernel.NewUUID()
	zoneID := kernel.NewUUID()
	now := time.Now().UTC()
	inner := &stubRateRepository{rates: []*rate.Rate{
		effectiveRate(t, warehouseID, zoneID, shipment.Standard, now.Add(time.Hour)),
	}}

	cache := redis.NewRateCache(inner, client, time.Hour)
	ctx := context.Background()

	_, err := cache.GetEffective(ctx, warehouseID, zoneID, shipment.Standard, now)
	require.NoError(t, err)
	require.Equal(t, 1, inner.calls)

	// The cached entry's window no longer covers the asked time, so the
	// cache must not serve it even though the redis key is still alive.
	inner.rates[0] = effectiveRate(t, warehouseID, zoneID, shipment.Standard, now.Add(48*time.Hour))
	_, err = cache.GetEffective(ctx, warehouseID, zoneID, shipment.Standard, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestRateCache_GetAllEffective_ServesSecondReadFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	warehouseID := kernel.NewUUID()
	zoneID := kernel.NewUUID()
	now := time.Now().UTC()
	inner := &stubRateRepository{rates: []*rate.Rate{
		effectiveRate(t, warehouseID, zoneID, shipment.Economy, now.Add(time.Hour)),
		effectiveRate(t, warehouseID, zoneID, shipment.Express, now.Add(time.Hour)),
	}}

	cache := redis.NewRateCache(inner, client, time.Minute)
	ctx := context.Background()

	first, err := cache.GetAllEffective(ctx, warehouseID, zoneID, now)
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.Equal(t, 1, inner.calls)

	second, err := cache.GetAllEffective(ctx, warehouseID, zoneID, now)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls, "second read should be served from cache")
	require.Len(t, second, 2)
	assert.Equal(t, first[0].ServiceType(), second[0].ServiceType())
	assert.Equal(t, first[1].ServiceType(), second[1].ServiceType())
}
