package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var (
	ErrCompletePaymentCommandIsNotConstructed = errors.New(
		"CompletePaymentCommand must be created via NewCompletePaymentCommand constructor",
	)
	ErrPaymentReferenceIsRequired = errors.New("paymentReference is required")
)

// CompletePaymentCommand represents a payment-completion callback for a
// quoted shipment, carrying the external gateway's transaction reference.
//
// Example:
//
//	cmd, err := NewCompletePaymentCommand(shipmentID, customerID, "pi_3Nx7f2")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewCompletePaymentCommandHandler(uowFactory, verifier, publisher, logger)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("payment completion failed: %w", err)
//	}
//	// result.InvoiceID is the single invoice for this shipment, whether this
//	// call created it or an earlier one did.
type CompletePaymentCommand struct { //nolint:recvcheck //using for validation
	shipmentID       kernel.UUID
	customerID       kernel.UUID
	paymentReference string

	guard guard.ConstructorGuard
}

// NewCompletePaymentCommand creates a command to complete a shipment payment.
func NewCompletePaymentCommand(shipmentID, customerID kernel.UUID, paymentReference string) (CompletePaymentCommand, error) {
	cmd := CompletePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setCustomerID(customerID),
		cmd.setPaymentReference(paymentReference),
	); err != nil {
		return CompletePaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCompletePaymentCommandIsNotConstructed)
}

// ShipmentID returns the shipment being paid for.
func (c CompletePaymentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// CustomerID returns the paying customer.
func (c CompletePaymentCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// PaymentReference returns the external gateway transaction reference.
func (c CompletePaymentCommand) PaymentReference() string {
	return c.paymentReference
}

func (c *CompletePaymentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CompletePaymentCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CompletePaymentCommand) setPaymentReference(paymentReference string) error {
	if paymentReference == "" {
		return ErrPaymentReferenceIsRequired
	}

	c.paymentReference = paymentReference
	return nil
}
