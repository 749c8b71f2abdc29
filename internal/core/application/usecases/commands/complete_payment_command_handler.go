package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"forwarding/internal/core/domain/model/invoice"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

var (
	// ErrPaymentNotSucceeded indicates the gateway reports the referenced
	// payment as failed or still pending. The shipment stays Quoted.
	ErrPaymentNotSucceeded = errors.New("payment reference did not succeed at the gateway")
)

// AmountMismatchError indicates the gateway amount differs from the quoted
// total. Compared in minor units of the quote currency.
type AmountMismatchError struct {
	ExpectedMinor int64
	ActualMinor   int64
	CurrencyCode  string
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("payment amount mismatch: expected %d, got %d minor units of %s",
		e.ExpectedMinor, e.ActualMinor, e.CurrencyCode)
}

// CompletePaymentResult reports which invoice covers the shipment.
// AlreadyProcessed distinguishes a fresh completion from an idempotent
// replay of one that already happened.
type CompletePaymentResult struct {
	InvoiceID        kernel.UUID
	InvoiceNumber    string
	AlreadyProcessed bool
}

// CompletePaymentCommandHandler reconciles shipment payments. The gateway is
// consulted before the transaction opens; inside the transaction the
// shipment is re-read under lock, the amount is compared in minor units and
// the status flip, the parcel transitions and the invoice insert commit
// together. A replayed completion returns the existing invoice untouched,
// so exactly one invoice ever exists per paid shipment.
type CompletePaymentCommandHandler struct {
	uowFactory BillingUoWFactory
	verifier   ports.PaymentVerifier
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCompletePaymentCommandHandler creates a handler for payment completion.
func NewCompletePaymentCommandHandler(
	uowFactory BillingUoWFactory,
	verifier ports.PaymentVerifier,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompletePaymentCommandHandler {
	return CompletePaymentCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		publisher:  publisher,
		logger:     logger.With("component", "complete_payment"),
	}
}

// Handle processes the payment completion command.
func (h *CompletePaymentCommandHandler) Handle(ctx context.Context, cmd CompletePaymentCommand) (CompletePaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return CompletePaymentResult{}, err
	}

	// Gateway round-trip happens outside the transaction to keep it short.
	// Verification is a read, so replays hit the gateway again harmlessly.
	verification, err := h.verifier.Verify(ctx, cmd.PaymentReference())
	if err != nil {
		return CompletePaymentResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CompletePaymentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return CompletePaymentResult{}, err
	}
	if !aggregate.Customer().IsEqual(cmd.CustomerID()) {
		return CompletePaymentResult{}, errs.NewObjectNotFoundError("shipmentID", cmd.ShipmentID())
	}

	// Idempotent replay: the shipment is already paid, return its invoice.
	if aggregate.PaidAt() != nil {
		existing, invErr := uow.InvoiceRepository().GetByShipment(ctx, aggregate.ID())
		if invErr != nil {
			return CompletePaymentResult{}, invErr
		}
		return CompletePaymentResult{
			InvoiceID:        existing.ID(),
			InvoiceNumber:    existing.Number(),
			AlreadyProcessed: true,
		}, nil
	}

	costs := aggregate.Costs()
	if costs == nil {
		return CompletePaymentResult{}, errs.NewValueIsInvalidError("shipment has no quote to pay")
	}
	if !verification.Succeeded {
		return CompletePaymentResult{}, ErrPaymentNotSucceeded
	}
	total := costs.Total()
	if verification.AmountMinor != total.AmountMinor() ||
		verification.CurrencyCode != total.Currency().Code() {
		return CompletePaymentResult{}, &AmountMismatchError{
			ExpectedMinor: total.AmountMinor(),
			ActualMinor:   verification.AmountMinor,
			CurrencyCode:  total.Currency().Code(),
		}
	}

	if err = aggregate.MarkPaid(cmd.PaymentReference(), now); err != nil {
		return CompletePaymentResult{}, err
	}

	parcelRepo := uow.ParcelRepository()
	parcels, err := parcelRepo.GetMany(ctx, aggregate.Parcels())
	if err != nil {
		return CompletePaymentResult{}, err
	}
	for _, p := range parcels {
		if err = p.TransitionTo(parcel.Shipped, "shipment "+aggregate.Number()+" paid", "system", now); err != nil {
			return CompletePaymentResult{}, err
		}
		if err = parcelRepo.Update(ctx, p); err != nil {
			return CompletePaymentResult{}, err
		}
	}

	invoiceID := kernel.NewUUID()
	record, err := invoice.ForPaidShipment(
		invoiceID,
		invoiceNumber(invoiceID),
		aggregate.ID(),
		aggregate.Customer(),
		costs.Shipping(), costs.Insurance(), costs.Handling(), costs.Storage(),
		len(aggregate.Parcels()),
		cmd.PaymentReference(),
		now,
	)
	if err != nil {
		return CompletePaymentResult{}, err
	}

	if err = uow.InvoiceRepository().Add(ctx, record); err != nil {
		return CompletePaymentResult{}, err
	}
	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return CompletePaymentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CompletePaymentResult{}, err
	}

	// Best-effort: the payment is committed, a lost event must not fail it.
	event := ports.ShipmentStatusChanged{
		ShipmentID:     aggregate.ID().String(),
		ShipmentNumber: aggregate.Number(),
		Status:         aggregate.Status().String(),
		OccurredAt:     now,
	}
	if err = h.publisher.PublishShipmentStatusChanged(ctx, event); err != nil {
		h.logger.Warn("failed to publish shipment status event",
			"shipment_id", event.ShipmentID, "error", err)
	}

	return CompletePaymentResult{InvoiceID: record.ID(), InvoiceNumber: record.Number()}, nil
}

// invoiceNumber derives the human-facing number from the invoice id.
func invoiceNumber(id kernel.UUID) string {
	return "INV-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:12])
}
