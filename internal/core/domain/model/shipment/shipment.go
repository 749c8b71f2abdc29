package shipment

import (
	"errors"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment was not created
	// through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

	// ErrNoMemberParcels indicates a shipment creation attempt without parcels.
	ErrNoMemberParcels = errors.New("shipment requires at least one parcel")

	// ErrQuoteExpired indicates a payment attempt against a quote whose
	// expiry timestamp has passed. The shipment stays Quoted.
	ErrQuoteExpired = errors.New("quote has expired")

	// ErrQuoteStillValid indicates an expiry sweep touched a quote that has
	// not expired yet.
	ErrQuoteStillValid = errors.New("quote has not expired")

	// ErrNotQuoted indicates an operation that requires a priced quote on a
	// shipment that has none.
	ErrNotQuoted = errors.New("shipment has no active quote")
)

// Shipment is the aggregate root for a customer-initiated consolidation of
// ready parcels to one destination. Aggregated weight and declared value are
// recomputed from the member parcels at creation, never user-supplied.
type Shipment struct {
	id                kernel.UUID
	number            string
	customerID        kernel.UUID
	warehouseID       kernel.UUID
	destinationZoneID kernel.UUID
	serviceType       ServiceType
	status            Status
	parcelIDs         []kernel.UUID

	totalWeight   kernel.Weight
	declaredValue kernel.Money

	costs          *CostBreakdown
	trace          *RateTrace
	quoteExpiresAt *time.Time

	paymentReference string
	paidAt           *time.Time
	dispatchedAt     *time.Time
	deliveredAt      *time.Time

	guard kernel.ConstructorGuard
}

// NewShipment creates a shipment in QuoteRequested status. The caller (the
// create-shipment use case) aggregates totalWeight and declaredValue from the
// member parcels after verifying they are all ReadyToShip in one warehouse.
func NewShipment(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	warehouseID kernel.UUID,
	destinationZoneID kernel.UUID,
	serviceType ServiceType,
	parcelIDs []kernel.UUID,
	totalWeight kernel.Weight,
	declaredValue kernel.Money,
) (*Shipment, error) {
	s := &Shipment{
		status: QuoteRequested,
		guard:  kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setNumber(number),
		s.setCustomerID(customerID),
		s.setWarehouseID(warehouseID),
		s.setDestinationZoneID(destinationZoneID),
		s.setServiceType(serviceType),
		s.setParcelIDs(parcelIDs),
		s.setAggregates(totalWeight, declaredValue),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a shipment from persistence.
func RestoreShipment(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	warehouseID kernel.UUID,
	destinationZoneID kernel.UUID,
	serviceType ServiceType,
	status Status,
	parcelIDs []kernel.UUID,
	totalWeight kernel.Weight,
	declaredValue kernel.Money,
	costs *CostBreakdown,
	trace *RateTrace,
	quoteExpiresAt *time.Time,
	paymentReference string,
	paidAt, dispatchedAt, deliveredAt *time.Time,
) (*Shipment, error) {
	s, err := NewShipment(id, number, customerID, warehouseID, destinationZoneID,
		serviceType, parcelIDs, totalWeight, declaredValue)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if costs != nil {
		if err = costs.Validate(); err != nil {
			return nil, err
		}
	}
	if trace != nil {
		if err = trace.Validate(); err != nil {
			return nil, err
		}
	}

	s.status = status
	s.costs = costs
	s.trace = trace
	s.quoteExpiresAt = quoteExpiresAt
	s.paymentReference = paymentReference
	s.paidAt = paidAt
	s.dispatchedAt = dispatchedAt
	s.deliveredAt = deliveredAt
	return s, nil
}

// Validate ensures the shipment was constructed through a constructor.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// Number returns the human-facing shipment number.
func (s *Shipment) Number() string { return s.number }

// Customer returns the initiating customer.
func (s *Shipment) Customer() kernel.UUID { return s.customerID }

// Warehouse returns the origin warehouse shared by all member parcels.
func (s *Shipment) Warehouse() kernel.UUID { return s.warehouseID }

// DestinationZone returns the destination rate zone.
func (s *Shipment) DestinationZone() kernel.UUID { return s.destinationZoneID }

// ServiceType returns the selected service level.
func (s *Shipment) ServiceType() ServiceType { return s.serviceType }

// Status returns the shipment's current lifecycle status.
func (s *Shipment) Status() Status { return s.status }

// Parcels returns the member parcel IDs.
func (s *Shipment) Parcels() []kernel.UUID { return s.parcelIDs }

// TotalWeight returns the chargeable weight aggregated over the members.
func (s *Shipment) TotalWeight() kernel.Weight { return s.totalWeight }

// DeclaredValue returns the declared value aggregated over the members.
func (s *Shipment) DeclaredValue() kernel.Money { return s.declaredValue }

// Costs returns the quoted cost breakdown, nil before quoting.
func (s *Shipment) Costs() *CostBreakdown { return s.costs }

// Trace returns the rate-calculation trace, nil before quoting.
func (s *Shipment) Trace() *RateTrace { return s.trace }

// QuoteExpiresAt returns the quote expiry timestamp, nil before quoting.
func (s *Shipment) QuoteExpiresAt() *time.Time { return s.quoteExpiresAt }

// PaymentReference returns the external gateway transaction id, empty until
// payment completes.
func (s *Shipment) PaymentReference() string { return s.paymentReference }

// PaidAt returns the payment timestamp, nil until paid.
func (s *Shipment) PaidAt() *time.Time { return s.paidAt }

// DispatchedAt returns the dispatch timestamp, nil until dispatched.
func (s *Shipment) DispatchedAt() *time.Time { return s.dispatchedAt }

// DeliveredAt returns the delivery timestamp, nil until delivered.
func (s *Shipment) DeliveredAt() *time.Time { return s.deliveredAt }

// ApplyQuote attaches the calculator's priced quote, stamps the expiry and
// moves the shipment from QuoteRequested to Quoted.
func (s *Shipment) ApplyQuote(costs CostBreakdown, trace RateTrace, expiresAt time.Time) error {
	if err := errors.Join(costs.Validate(), trace.Validate()); err != nil {
		return err
	}
	newStatus, err := s.status.TransitionTo(Quoted)
	if err != nil {
		return err
	}

	s.status = newStatus
	s.costs = &costs
	s.trace = &trace
	s.quoteExpiresAt = &expiresAt
	return nil
}

// QuoteExpired reports whether the quote's expiry has passed at the given
// time. A shipment without a quote reports false.
func (s *Shipment) QuoteExpired(now time.Time) bool {
	return s.quoteExpiresAt != nil && now.After(*s.quoteExpiresAt)
}

// MarkPaid transitions Quoted -> Paid, stamping the external payment
// reference and the payment time. Fails with ErrQuoteExpired if the quote
// lapsed; time may have passed since the payment intent was created, so the
// check is repeated here at completion.
func (s *Shipment) MarkPaid(paymentReference string, at time.Time) error {
	if paymentReference == "" {
		return errs.NewValueIsRequiredError("paymentReference")
	}
	if s.costs == nil {
		return ErrNotQuoted
	}
	if s.QuoteExpired(at) {
		return ErrQuoteExpired
	}
	newStatus, err := s.status.TransitionTo(Paid)
	if err != nil {
		return err
	}

	s.status = newStatus
	s.paymentReference = paymentReference
	s.paidAt = &at
	return nil
}

// Cancel exits the shipment before payment. Member parcels are released back
// to ReadyToShip by the cancelling use case.
func (s *Shipment) Cancel() error {
	newStatus, err := s.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	s.status = newStatus
	return nil
}

// ExpireQuote drops a lapsed quote back to QuoteRequested so it must be
// re-requested. Fails with ErrQuoteStillValid when the expiry has not passed.
func (s *Shipment) ExpireQuote(now time.Time) error {
	if s.status != Quoted {
		return &InvalidTransitionError{From: s.status, To: QuoteRequested}
	}
	if !s.QuoteExpired(now) {
		return ErrQuoteStillValid
	}

	s.status = QuoteRequested
	s.costs = nil
	s.trace = nil
	s.quoteExpiresAt = nil
	return nil
}

// RecordProgress accepts an operational transition driven by warehouse or
// carrier events (Processing through Delivered, DeliveryFailed, Returned,
// Refunded), recording dispatch and delivery timestamps as they occur.
func (s *Shipment) RecordProgress(to Status, at time.Time) error {
	newStatus, err := s.status.TransitionTo(to)
	if err != nil {
		return err
	}

	s.status = newStatus
	switch newStatus {
	case Dispatched:
		s.dispatchedAt = &at
	case Delivered:
		s.deliveredAt = &at
	}
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("shipmentNumber")
	}
	s.number = number
	return nil
}

func (s *Shipment) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	s.customerID = customerID
	return nil
}

func (s *Shipment) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}
	s.warehouseID = warehouseID
	return nil
}

func (s *Shipment) setDestinationZoneID(zoneID kernel.UUID) error {
	if err := zoneID.Validate(); err != nil {
		return err
	}
	s.destinationZoneID = zoneID
	return nil
}

func (s *Shipment) setServiceType(serviceType ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}
	s.serviceType = serviceType
	return nil
}

func (s *Shipment) setParcelIDs(parcelIDs []kernel.UUID) error {
	if len(parcelIDs) == 0 {
		return ErrNoMemberParcels
	}
	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	s.parcelIDs = parcelIDs
	return nil
}

func (s *Shipment) setAggregates(totalWeight kernel.Weight, declaredValue kernel.Money) error {
	if err := errors.Join(totalWeight.Validate(), declaredValue.Validate()); err != nil {
		return err
	}
	s.totalWeight = totalWeight
	s.declaredValue = declaredValue
	return nil
}
