package commands

import (
	"context"
	"time"
)

// ExpireQuotesCommandHandler drops lapsed quotes back to QuoteRequested, so
// stale prices can never be paid. A payment racing the sweep is safe either
// way: both paths re-check the expiry under the shipment's lock.
type ExpireQuotesCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewExpireQuotesCommandHandler creates a handler for the quote-expiry
// sweep.
func NewExpireQuotesCommandHandler(uowFactory ShipmentUoWFactory) ExpireQuotesCommandHandler {
	return ExpireQuotesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one sweep and returns how many quotes were expired.
func (h *ExpireQuotesCommandHandler) Handle(ctx context.Context, cmd ExpireQuotesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	lapsed, err := shipmentRepo.GetQuotedExpiredBefore(ctx, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, aggregate := range lapsed {
		if err = aggregate.ExpireQuote(now); err != nil {
			return 0, err
		}
		if err = shipmentRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}
		expired++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return expired, nil
}
