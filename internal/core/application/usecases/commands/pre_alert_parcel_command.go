package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/pkg/guard"
)

var ErrPreAlertParcelCommandIsNotConstructed = errors.New(
	"PreAlertParcelCommand must be created via NewPreAlertParcelCommand constructor",
)

// PreAlertParcelCommand represents a customer announcing an inbound parcel
// before it reaches the warehouse. The parcel is created in Expected status
// and matched against the inbound tracking number on arrival.
type PreAlertParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID        kernel.UUID
	customerID      kernel.UUID
	warehouseID     kernel.UUID
	inboundTracking string
	declaredValue   kernel.Money
	flags           parcel.Flags

	guard guard.ConstructorGuard
}

// NewPreAlertParcelCommand creates a command to pre-alert an inbound parcel.
func NewPreAlertParcelCommand(
	parcelID, customerID, warehouseID kernel.UUID,
	inboundTracking string,
	declaredValue kernel.Money,
	flags parcel.Flags,
) (PreAlertParcelCommand, error) {
	cmd := PreAlertParcelCommand{
		flags: flags,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setCustomerID(customerID),
		cmd.setWarehouseID(warehouseID),
		cmd.setInboundTracking(inboundTracking),
		cmd.setDeclaredValue(declaredValue),
	); err != nil {
		return PreAlertParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PreAlertParcelCommand) Validate() error {
	return c.guard.Validate(ErrPreAlertParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier for the new parcel.
func (c PreAlertParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// CustomerID returns the announcing customer.
func (c PreAlertParcelCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// WarehouseID returns the warehouse the parcel is headed to.
func (c PreAlertParcelCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// InboundTracking returns the announced courier tracking number.
func (c PreAlertParcelCommand) InboundTracking() string {
	return c.inboundTracking
}

// DeclaredValue returns the declared value of the contents.
func (c PreAlertParcelCommand) DeclaredValue() kernel.Money {
	return c.declaredValue
}

// Flags returns the handling flags.
func (c PreAlertParcelCommand) Flags() parcel.Flags {
	return c.flags
}

func (c *PreAlertParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *PreAlertParcelCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *PreAlertParcelCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	c.warehouseID = warehouseID
	return nil
}

func (c *PreAlertParcelCommand) setInboundTracking(trackingNumber string) error {
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}

	c.inboundTracking = trackingNumber
	return nil
}

func (c *PreAlertParcelCommand) setDeclaredValue(declaredValue kernel.Money) error {
	if err := declaredValue.Validate(); err != nil {
		return err
	}

	c.declaredValue = declaredValue
	return nil
}
