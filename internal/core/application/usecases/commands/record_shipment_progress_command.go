package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/pkg/guard"
)

var ErrRecordShipmentProgressCommandIsNotConstructed = errors.New(
	"RecordShipmentProgressCommand must be created via NewRecordShipmentProgressCommand constructor",
)

// RecordShipmentProgressCommand represents an operational lifecycle event on
// a paid shipment: processing, dispatch, transit scans, delivery attempts,
// return and refund. OutboundTracking is set on dispatch and optional
// otherwise.
type RecordShipmentProgressCommand struct { //nolint:recvcheck //using for validation
	shipmentID       kernel.UUID
	to               shipment.Status
	outboundTracking string

	guard guard.ConstructorGuard
}

// NewRecordShipmentProgressCommand creates a command to record shipment
// progress.
func NewRecordShipmentProgressCommand(shipmentID kernel.UUID, to shipment.Status, outboundTracking string) (RecordShipmentProgressCommand, error) {
	cmd := RecordShipmentProgressCommand{
		outboundTracking: outboundTracking,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setTo(to),
	); err != nil {
		return RecordShipmentProgressCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordShipmentProgressCommand) Validate() error {
	return c.guard.Validate(ErrRecordShipmentProgressCommandIsNotConstructed)
}

// ShipmentID returns the shipment to advance.
func (c RecordShipmentProgressCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// To returns the target status.
func (c RecordShipmentProgressCommand) To() shipment.Status {
	return c.to
}

// OutboundTracking returns the carrier tracking number, possibly empty.
func (c RecordShipmentProgressCommand) OutboundTracking() string {
	return c.outboundTracking
}

func (c *RecordShipmentProgressCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *RecordShipmentProgressCommand) setTo(to shipment.Status) error {
	if err := to.Validate(); err != nil {
		return err
	}

	c.to = to
	return nil
}
