// Package invoicerepo persists invoices and their lines. Invoices are
// immutable financial records: the repository inserts and reads, nothing
// else, and the unique index on shipment_id backs the one-invoice-per-paid-
// shipment guarantee at the storage level.
package invoicerepo

import (
	"time"

	"github.com/google/uuid"

	"forwarding/internal/core/domain/model/invoice"
	"forwarding/internal/core/domain/model/kernel"
)

// InvoiceDTO represents the database structure for invoices.
type InvoiceDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number           string     `gorm:"uniqueIndex"`
	Type             int        `gorm:""`
	ShipmentID       uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	CustomerID       uuid.UUID  `gorm:"type:uuid;index"`
	SubtotalMinor    int64      `gorm:""`
	TaxMinor         int64      `gorm:""`
	DiscountMinor    int64      `gorm:""`
	TotalMinor       int64      `gorm:""`
	Currency         string     `gorm:""`
	PaymentStatus    int        `gorm:""`
	PaymentReference string     `gorm:""`
	IssuedAt         time.Time  `gorm:""`
	PaidAt           *time.Time `gorm:""`

	Lines []InvoiceLineDTO `gorm:"foreignKey:InvoiceID"`
}

// TableName overrides GORM's default naming to use "invoices".
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// InvoiceLineDTO is one itemized row of an invoice.
type InvoiceLineDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	InvoiceID      uuid.UUID  `gorm:"type:uuid;index"`
	Description    string     `gorm:""`
	Quantity       int        `gorm:""`
	UnitPriceMinor int64      `gorm:""`
	LineTotalMinor int64      `gorm:""`
	ShipmentID     *uuid.UUID `gorm:"type:uuid"`
}

// TableName overrides GORM's default naming to use "invoice_lines".
func (InvoiceLineDTO) TableName() string {
	return "invoice_lines"
}

func fromDomain(aggregate *invoice.Invoice) InvoiceDTO {
	lines := make([]InvoiceLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, lineFromDomain(line))
	}

	return InvoiceDTO{
		ID:               aggregate.ID().Bytes(),
		Number:           aggregate.Number(),
		Type:             int(aggregate.InvoiceType()),
		ShipmentID:       aggregate.Shipment().Bytes(),
		CustomerID:       aggregate.Customer().Bytes(),
		SubtotalMinor:    aggregate.Subtotal().AmountMinor(),
		TaxMinor:         aggregate.Tax().AmountMinor(),
		DiscountMinor:    aggregate.Discount().AmountMinor(),
		TotalMinor:       aggregate.Total().AmountMinor(),
		Currency:         aggregate.Total().Currency().Code(),
		PaymentStatus:    int(aggregate.PaymentStatus()),
		PaymentReference: aggregate.PaymentReference(),
		IssuedAt:         aggregate.IssuedAt(),
		PaidAt:           aggregate.PaidAt(),
		Lines:            lines,
	}
}

func lineFromDomain(line invoice.Line) InvoiceLineDTO {
	var shipmentID *uuid.UUID
	if id := line.Shipment(); id != nil {
		raw := id.Bytes()
		shipmentID = &raw
	}

	return InvoiceLineDTO{
		ID:             line.ID().Bytes(),
		InvoiceID:      line.InvoiceID().Bytes(),
		Description:    line.Description(),
		Quantity:       line.Quantity(),
		UnitPriceMinor: line.UnitPrice().AmountMinor(),
		LineTotalMinor: line.LineTotal().AmountMinor(),
		ShipmentID:     shipmentID,
	}
}

func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	currency, err := kernel.CurrencyFromCode(dto.Currency)
	if err != nil {
		return nil, err
	}
	subtotal, err := kernel.NewMoney(dto.SubtotalMinor, currency)
	if err != nil {
		return nil, err
	}
	tax, err := kernel.NewMoney(dto.TaxMinor, currency)
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewMoney(dto.DiscountMinor, currency)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalMinor, currency)
	if err != nil {
		return nil, err
	}

	lines := make([]invoice.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO, currency)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return invoice.RestoreInvoice(
		id, dto.Number, invoice.Type(dto.Type), shipmentID, customerID,
		subtotal, tax, discount, total,
		invoice.PaymentStatus(dto.PaymentStatus),
		dto.PaymentReference,
		dto.IssuedAt, dto.PaidAt,
		lines,
	)
}

func lineToDomain(dto InvoiceLineDTO, currency kernel.Currency) (invoice.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return invoice.Line{}, err
	}
	invoiceID, err := kernel.UUIDFromBytes(dto.InvoiceID[:])
	if err != nil {
		return invoice.Line{}, err
	}

	var shipmentID *kernel.UUID
	if dto.ShipmentID != nil {
		sID, shipErr := kernel.UUIDFromBytes((*dto.ShipmentID)[:])
		if shipErr != nil {
			return invoice.Line{}, shipErr
		}
		shipmentID = &sID
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPriceMinor, currency)
	if err != nil {
		return invoice.Line{}, err
	}
	lineTotal, err := kernel.NewMoney(dto.LineTotalMinor, currency)
	if err != nil {
		return invoice.Line{}, err
	}

	return invoice.NewLine(id, invoiceID, dto.Description, dto.Quantity, unitPrice, lineTotal, shipmentID)
}
