package parcel

import (
	"errors"

	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel was not created
	// through NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

	// ErrParcelNotMeasured indicates an operation that requires recorded
	// measurements, such as moving to ReadyToShip, on an unmeasured parcel.
	ErrParcelNotMeasured = errors.New("parcel has no recorded measurements")

	// ErrParcelAlreadyMeasured indicates a second measurement attempt.
	// Measurements are recorded once; corrections go through operations.
	ErrParcelAlreadyMeasured = errors.New("parcel measurements already recorded")
)

// Flags are the free-form handling markers of a parcel.
type Flags struct {
	Fragile           bool
	HighValue         bool
	Restricted        bool
	RequiresSignature bool
}

// Parcel is the aggregate root for a physical parcel. Its warehouse and
// owning customer are immutable after creation; its status moves only through
// the adjacency table in Status, and every accepted transition appends one
// StatusChange to the history.
type Parcel struct {
	id               kernel.UUID
	customerID       kernel.UUID
	warehouseID      kernel.UUID
	inboundTracking  string
	outboundTracking string

	weight           *kernel.Weight
	dimensions       *kernel.Dimensions
	volumetricWeight *kernel.Weight
	chargeableWeight *kernel.Weight

	declaredValue kernel.Money
	flags         Flags
	status        Status
	receivedAt    *time.Time
	scannedItemID *kernel.UUID
	documentIDs   []string
	history       []StatusChange

	guard kernel.ConstructorGuard
}

// NewParcel creates a parcel in Expected (pre-alerted) or Received (walked in
// from intake) status. Measurements are recorded separately once the parcel
// is on the scale.
func NewParcel(
	id kernel.UUID,
	customerID kernel.UUID,
	warehouseID kernel.UUID,
	inboundTracking string,
	declaredValue kernel.Money,
	flags Flags,
	scannedItemID *kernel.UUID,
	receivedAt *time.Time,
	initialStatus Status,
) (*Parcel, error) {
	if initialStatus != Expected && initialStatus != Received {
		return nil, errs.NewValueIsInvalidErrorWithCause("initialStatus",
			&InvalidTransitionError{From: StatusUnknown, To: initialStatus})
	}

	p := &Parcel{
		status: initialStatus,
		flags:  flags,
		guard:  kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setCustomerID(customerID),
		p.setWarehouseID(warehouseID),
		p.setInboundTracking(inboundTracking),
		p.setDeclaredValue(declaredValue),
	); err != nil {
		return nil, err
	}

	if scannedItemID != nil {
		if err := scannedItemID.Validate(); err != nil {
			return nil, err
		}
		p.scannedItemID = scannedItemID
	}
	p.receivedAt = receivedAt

	return p, nil
}

// RestoreParcel reconstructs a parcel from persistence, including its
// measurements and status history.
func RestoreParcel(
	id kernel.UUID,
	customerID kernel.UUID,
	warehouseID kernel.UUID,
	inboundTracking string,
	outboundTracking string,
	weight *kernel.Weight,
	dimensions *kernel.Dimensions,
	volumetricWeight *kernel.Weight,
	chargeableWeight *kernel.Weight,
	declaredValue kernel.Money,
	flags Flags,
	status Status,
	receivedAt *time.Time,
	scannedItemID *kernel.UUID,
	documentIDs []string,
	history []StatusChange,
) (*Parcel, error) {
	p, err := NewParcel(id, customerID, warehouseID, inboundTracking, declaredValue, flags, scannedItemID, receivedAt, Received)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	for _, change := range history {
		if err = change.Validate(); err != nil {
			return nil, err
		}
	}

	p.status = status
	p.outboundTracking = outboundTracking
	p.weight = weight
	p.dimensions = dimensions
	p.volumetricWeight = volumetricWeight
	p.chargeableWeight = chargeableWeight
	p.documentIDs = documentIDs
	p.history = history
	return p, nil
}

// Validate ensures the parcel was constructed through a constructor.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID { return p.id }

// Customer returns the owning customer. Immutable after creation.
func (p *Parcel) Customer() kernel.UUID { return p.customerID }

// Warehouse returns the holding warehouse. Immutable after creation.
func (p *Parcel) Warehouse() kernel.UUID { return p.warehouseID }

// InboundTracking returns the courier tracking number the parcel arrived under.
func (p *Parcel) InboundTracking() string { return p.inboundTracking }

// OutboundTracking returns the outbound carrier tracking number, empty until
// the parcel ships.
func (p *Parcel) OutboundTracking() string { return p.outboundTracking }

// Weight returns the actual weight, nil until measured.
func (p *Parcel) Weight() *kernel.Weight { return p.weight }

// Dimensions returns the measured dimensions, nil until measured.
func (p *Parcel) Dimensions() *kernel.Dimensions { return p.dimensions }

// VolumetricWeight returns the computed volumetric weight, nil until measured.
func (p *Parcel) VolumetricWeight() *kernel.Weight { return p.volumetricWeight }

// ChargeableWeight returns max(actual, volumetric), nil until measured.
func (p *Parcel) ChargeableWeight() *kernel.Weight { return p.chargeableWeight }

// DeclaredValue returns the customs/declared value of the contents.
func (p *Parcel) DeclaredValue() kernel.Money { return p.declaredValue }

// Flags returns the handling flags.
func (p *Parcel) Flags() Flags { return p.flags }

// Status returns the parcel's current lifecycle status.
func (p *Parcel) Status() Status { return p.status }

// ReceivedAt returns the time the parcel was physically received at the
// warehouse, nil while it is still only expected. Storage charges accrue
// from this moment.
func (p *Parcel) ReceivedAt() *time.Time { return p.receivedAt }

// ScannedItem returns the intake item the parcel was converted from, if any.
func (p *Parcel) ScannedItem() *kernel.UUID { return p.scannedItemID }

// Documents returns the attached blob-store document identifiers.
func (p *Parcel) Documents() []string { return p.documentIDs }

// History returns the append-only status history, oldest first.
func (p *Parcel) History() []StatusChange { return p.history }

// RecordMeasurements stores the scale readings and computes the volumetric
// and chargeable weights using the warehouse's volumetric divisor. Recorded
// once per parcel; the chargeable weight is always >= the actual weight.
func (p *Parcel) RecordMeasurements(weight kernel.Weight, dimensions kernel.Dimensions, volumetricDivisor float64) error {
	if p.weight != nil {
		return ErrParcelAlreadyMeasured
	}
	if err := errors.Join(weight.Validate(), dimensions.Validate()); err != nil {
		return err
	}

	volumetric, err := dimensions.VolumetricWeight(volumetricDivisor)
	if err != nil {
		return err
	}
	chargeable := kernel.ChargeableWeight(weight, volumetric)

	p.weight = &weight
	p.dimensions = &dimensions
	p.volumetricWeight = &volumetric
	p.chargeableWeight = &chargeable
	return nil
}

// TransitionTo moves the parcel to the target status if the adjacency table
// permits it, appending one history row. On failure nothing changes.
func (p *Parcel) TransitionTo(to Status, reason, actor string, at time.Time) error {
	newStatus, err := p.status.TransitionTo(to)
	if err != nil {
		return err
	}
	if to == ReadyToShip && p.chargeableWeight == nil {
		return ErrParcelNotMeasured
	}

	change, err := NewStatusChange(kernel.NewUUID(), p.id, p.status, newStatus, reason, actor, at)
	if err != nil {
		return err
	}

	if newStatus == Received && p.receivedAt == nil {
		receivedAt := at
		p.receivedAt = &receivedAt
	}
	p.status = newStatus
	p.history = append(p.history, change)
	return nil
}

// SetOutboundTracking records the outbound carrier tracking number.
func (p *Parcel) SetOutboundTracking(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("outboundTracking")
	}
	p.outboundTracking = trackingNumber
	return nil
}

// AttachDocument stores a blob-store document reference. Document content
// lives entirely in the external blob store.
func (p *Parcel) AttachDocument(documentID string) error {
	if documentID == "" {
		return errs.NewValueIsRequiredError("documentID")
	}
	p.documentIDs = append(p.documentIDs, documentID)
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	p.customerID = customerID
	return nil
}

func (p *Parcel) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}
	p.warehouseID = warehouseID
	return nil
}

func (p *Parcel) setInboundTracking(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("inboundTracking")
	}
	p.inboundTracking = trackingNumber
	return nil
}

func (p *Parcel) setDeclaredValue(declaredValue kernel.Money) error {
	if err := declaredValue.Validate(); err != nil {
		return err
	}
	p.declaredValue = declaredValue
	return nil
}
