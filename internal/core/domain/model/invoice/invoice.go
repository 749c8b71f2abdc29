package invoice

import (
	"errors"
	"fmt"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

var (
	// ErrInvoiceIsNotConstructed is returned when an Invoice was not created
	// through one of the constructors.
	ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via ForPaidShipment or RestoreInvoice")

	// ErrLineIsNotConstructed is returned when a Line was not created through
	// NewLine.
	ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

	// ErrLineSumMismatch indicates line totals that do not sum to the invoice
	// total. Such an invoice is never constructed.
	ErrLineSumMismatch = errors.New("invoice line totals do not sum to the invoice total")
)

// Type classifies an invoice.
type Type int

const (
	// TypeUnknown catches uninitialized values.
	TypeUnknown Type = iota

	// TypeShipment is an invoice for a paid shipment.
	TypeShipment

	// TypeStorage is an invoice for standalone storage charges.
	TypeStorage
)

// Validate checks that the type is one of the defined invoice types.
func (t Type) Validate() error {
	if t != TypeShipment && t != TypeStorage {
		return errs.NewValueIsInvalidErrorWithCause("invoice type",
			fmt.Errorf("%d is not a valid invoice type", t))
	}
	return nil
}

// PaymentStatus is the settlement state of an invoice.
type PaymentStatus int

const (
	// PaymentStatusUnknown catches uninitialized values.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPending is an issued, unsettled invoice.
	PaymentPending

	// PaymentPaid is a settled invoice.
	PaymentPaid

	// PaymentRefunded is a settled invoice whose payment was returned.
	PaymentRefunded
)

// Validate checks that the status is one of the defined payment states.
func (s PaymentStatus) Validate() error {
	if s != PaymentPending && s != PaymentPaid && s != PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// Line is one itemized row of an invoice.
type Line struct {
	id          kernel.UUID
	invoiceID   kernel.UUID
	description string
	quantity    int
	unitPrice   kernel.Money
	lineTotal   kernel.Money
	shipmentID  *kernel.UUID

	guard kernel.ConstructorGuard
}

// NewLine creates an invoice line. The line total is taken as given rather
// than recomputed from quantity and unit price: for evenly split charges the
// authoritative figure is the original charge, and integer division of the
// unit price must not be allowed to drift the sum.
func NewLine(id, invoiceID kernel.UUID, description string, quantity int, unitPrice, lineTotal kernel.Money, shipmentID *kernel.UUID) (Line, error) {
	if err := errors.Join(id.Validate(), invoiceID.Validate(), unitPrice.Validate(), lineTotal.Validate()); err != nil {
		return Line{}, err
	}
	if description == "" {
		return Line{}, errs.NewValueIsRequiredError("description")
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if shipmentID != nil {
		if err := shipmentID.Validate(); err != nil {
			return Line{}, err
		}
	}

	return Line{
		id:          id,
		invoiceID:   invoiceID,
		description: description,
		quantity:    quantity,
		unitPrice:   unitPrice,
		lineTotal:   lineTotal,
		shipmentID:  shipmentID,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the line was constructed through NewLine.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ID returns the line's identifier.
func (l Line) ID() kernel.UUID { return l.id }

// InvoiceID returns the owning invoice's identifier.
func (l Line) InvoiceID() kernel.UUID { return l.invoiceID }

// Description returns the line's description.
func (l Line) Description() string { return l.description }

// Quantity returns the billed quantity.
func (l Line) Quantity() int { return l.quantity }

// UnitPrice returns the price per unit.
func (l Line) UnitPrice() kernel.Money { return l.unitPrice }

// LineTotal returns the authoritative total of the line.
func (l Line) LineTotal() kernel.Money { return l.lineTotal }

// Shipment returns the shipment the line bills, if any.
func (l Line) Shipment() *kernel.UUID { return l.shipmentID }

// Invoice is the immutable financial record created exactly once per paid
// shipment. Its total equals the shipment's total cost at the instant of
// payment confirmation and is never re-derived later; the line totals sum
// exactly to it.
type Invoice struct {
	id               kernel.UUID
	number           string
	invoiceType      Type
	shipmentID       kernel.UUID
	customerID       kernel.UUID
	subtotal         kernel.Money
	tax              kernel.Money
	discount         kernel.Money
	total            kernel.Money
	paymentStatus    PaymentStatus
	paymentReference string
	issuedAt         time.Time
	paidAt           *time.Time
	lines            []Line

	guard kernel.ConstructorGuard
}

// ForPaidShipment builds the invoice for a successfully paid shipment:
// one line per non-zero cost component. The storage component is divided
// evenly across the member parcels — unit price is the per-parcel share,
// quantity the parcel count — while the persisted line total stays the exact
// storage fee, so the line sum always equals the stored shipment total.
func ForPaidShipment(
	id kernel.UUID,
	number string,
	shipmentID kernel.UUID,
	customerID kernel.UUID,
	shipping, insurance, handling, storage kernel.Money,
	memberParcelCount int,
	paymentReference string,
	issuedAt time.Time,
) (*Invoice, error) {
	if memberParcelCount <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("memberParcelCount",
			fmt.Errorf("%d is not greater than 0", memberParcelCount))
	}
	if paymentReference == "" {
		return nil, errs.NewValueIsRequiredError("paymentReference")
	}

	currency := shipping.Currency()
	zero, err := kernel.NewMoney(0, currency)
	if err != nil {
		return nil, err
	}

	total := zero
	lines := make([]Line, 0, 4)
	addLine := func(description string, quantity int, unitPrice, lineTotal kernel.Money) error {
		if lineTotal.IsZero() {
			return nil
		}
		line, lineErr := NewLine(kernel.NewUUID(), id, description, quantity, unitPrice, lineTotal, &shipmentID)
		if lineErr != nil {
			return lineErr
		}
		lines = append(lines, line)
		total, lineErr = total.Add(lineTotal)
		return lineErr
	}

	if err = addLine("Shipping", 1, shipping, shipping); err != nil {
		return nil, err
	}
	if err = addLine("Insurance", 1, insurance, insurance); err != nil {
		return nil, err
	}
	if err = addLine("Handling", 1, handling, handling); err != nil {
		return nil, err
	}
	storageUnit, err := kernel.NewMoney(storage.AmountMinor()/int64(memberParcelCount), currency)
	if err != nil {
		return nil, err
	}
	if err = addLine("Storage", memberParcelCount, storageUnit, storage); err != nil {
		return nil, err
	}

	paidAt := issuedAt
	return newInvoice(id, number, TypeShipment, shipmentID, customerID,
		total, zero, zero, total, PaymentPaid, paymentReference, issuedAt, &paidAt, lines)
}

// RestoreInvoice reconstructs an invoice from persistence, re-checking the
// line-sum invariant.
func RestoreInvoice(
	id kernel.UUID,
	number string,
	invoiceType Type,
	shipmentID kernel.UUID,
	customerID kernel.UUID,
	subtotal, tax, discount, total kernel.Money,
	paymentStatus PaymentStatus,
	paymentReference string,
	issuedAt time.Time,
	paidAt *time.Time,
	lines []Line,
) (*Invoice, error) {
	return newInvoice(id, number, invoiceType, shipmentID, customerID,
		subtotal, tax, discount, total, paymentStatus, paymentReference, issuedAt, paidAt, lines)
}

func newInvoice(
	id kernel.UUID,
	number string,
	invoiceType Type,
	shipmentID kernel.UUID,
	customerID kernel.UUID,
	subtotal, tax, discount, total kernel.Money,
	paymentStatus PaymentStatus,
	paymentReference string,
	issuedAt time.Time,
	paidAt *time.Time,
	lines []Line,
) (*Invoice, error) {
	if err := errors.Join(
		id.Validate(),
		shipmentID.Validate(),
		customerID.Validate(),
		invoiceType.Validate(),
		paymentStatus.Validate(),
		subtotal.Validate(),
		tax.Validate(),
		discount.Validate(),
		total.Validate(),
	); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("invoiceNumber")
	}

	var sum int64
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
		sum += line.LineTotal().AmountMinor()
	}
	if sum != total.AmountMinor() {
		return nil, ErrLineSumMismatch
	}

	return &Invoice{
		id:               id,
		number:           number,
		invoiceType:      invoiceType,
		shipmentID:       shipmentID,
		customerID:       customerID,
		subtotal:         subtotal,
		tax:              tax,
		discount:         discount,
		total:            total,
		paymentStatus:    paymentStatus,
		paymentReference: paymentReference,
		issuedAt:         issuedAt,
		paidAt:           paidAt,
		lines:            lines,
		guard:            kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the invoice was constructed through a constructor.
func (i *Invoice) Validate() error {
	if i == nil {
		return ErrInvoiceIsNotConstructed
	}
	return i.guard.Validate(ErrInvoiceIsNotConstructed)
}

// ID returns the invoice's unique identifier.
func (i *Invoice) ID() kernel.UUID { return i.id }

// Number returns the human-facing invoice number.
func (i *Invoice) Number() string { return i.number }

// InvoiceType returns the invoice classification.
func (i *Invoice) InvoiceType() Type { return i.invoiceType }

// Shipment returns the billed shipment.
func (i *Invoice) Shipment() kernel.UUID { return i.shipmentID }

// Customer returns the billed customer.
func (i *Invoice) Customer() kernel.UUID { return i.customerID }

// Subtotal returns the pre-tax subtotal.
func (i *Invoice) Subtotal() kernel.Money { return i.subtotal }

// Tax returns the tax amount.
func (i *Invoice) Tax() kernel.Money { return i.tax }

// Discount returns the discount amount.
func (i *Invoice) Discount() kernel.Money { return i.discount }

// Total returns the invoice total. Equal to the line totals' sum.
func (i *Invoice) Total() kernel.Money { return i.total }

// PaymentStatus returns the settlement state.
func (i *Invoice) PaymentStatus() PaymentStatus { return i.paymentStatus }

// PaymentReference returns the external gateway transaction id.
func (i *Invoice) PaymentReference() string { return i.paymentReference }

// IssuedAt returns the issue timestamp.
func (i *Invoice) IssuedAt() time.Time { return i.issuedAt }

// PaidAt returns the settlement timestamp, nil while pending.
func (i *Invoice) PaidAt() *time.Time { return i.paidAt }

// Lines returns the itemized invoice lines.
func (i *Invoice) Lines() []Line { return i.lines }
