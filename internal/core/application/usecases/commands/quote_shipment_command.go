package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrQuoteShipmentCommandIsNotConstructed = errors.New(
	"QuoteShipmentCommand must be created via NewQuoteShipmentCommand constructor",
)

// QuoteShipmentCommand represents a request to price a shipment.
type QuoteShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewQuoteShipmentCommand creates a command to quote a shipment.
func NewQuoteShipmentCommand(shipmentID, customerID kernel.UUID) (QuoteShipmentCommand, error) {
	cmd := QuoteShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setCustomerID(customerID),
	); err != nil {
		return QuoteShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c QuoteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrQuoteShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to quote.
func (c QuoteShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// CustomerID returns the requesting customer.
func (c QuoteShipmentCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c *QuoteShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *QuoteShipmentCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}
