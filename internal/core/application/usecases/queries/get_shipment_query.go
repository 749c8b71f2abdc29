package queries

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery asks for one shipment's read model, scoped to the owning
// customer.
type GetShipmentQuery struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a shipment read query.
func NewGetShipmentQuery(shipmentID, customerID kernel.UUID) (GetShipmentQuery, error) {
	q := GetShipmentQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setShipmentID(shipmentID),
		q.setCustomerID(customerID),
	); err != nil {
		return GetShipmentQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ShipmentID returns the shipment to read.
func (q GetShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// CustomerID returns the requesting customer.
func (q GetShipmentQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q *GetShipmentQuery) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	q.shipmentID = shipmentID
	return nil
}

func (q *GetShipmentQuery) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	q.customerID = customerID
	return nil
}
