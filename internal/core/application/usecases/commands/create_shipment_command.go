package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrParcelIDsAreRequired = errors.New("at least one parcel id is required")
)

// CreateShipmentCommand represents a customer consolidating ready parcels
// into one outbound shipment and requesting a quote for it.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID        kernel.UUID
	customerID        kernel.UUID
	destinationZoneID kernel.UUID
	serviceType       shipment.ServiceType
	parcelIDs         []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to build a shipment from
// parcels.
func NewCreateShipmentCommand(
	shipmentID, customerID, destinationZoneID kernel.UUID,
	serviceType shipment.ServiceType,
	parcelIDs []kernel.UUID,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setCustomerID(customerID),
		cmd.setDestinationZoneID(destinationZoneID),
		cmd.setServiceType(serviceType),
		cmd.setParcelIDs(parcelIDs),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// CustomerID returns the initiating customer.
func (c CreateShipmentCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// DestinationZoneID returns the destination rate zone.
func (c CreateShipmentCommand) DestinationZoneID() kernel.UUID {
	return c.destinationZoneID
}

// ServiceType returns the selected service level.
func (c CreateShipmentCommand) ServiceType() shipment.ServiceType {
	return c.serviceType
}

// ParcelIDs returns the parcels to consolidate.
func (c CreateShipmentCommand) ParcelIDs() []kernel.UUID {
	return c.parcelIDs
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateShipmentCommand) setDestinationZoneID(zoneID kernel.UUID) error {
	if err := zoneID.Validate(); err != nil {
		return err
	}

	c.destinationZoneID = zoneID
	return nil
}

func (c *CreateShipmentCommand) setServiceType(serviceType shipment.ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}

	c.serviceType = serviceType
	return nil
}

func (c *CreateShipmentCommand) setParcelIDs(parcelIDs []kernel.UUID) error {
	if len(parcelIDs) == 0 {
		return ErrParcelIDsAreRequired
	}
	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.parcelIDs = parcelIDs
	return nil
}
