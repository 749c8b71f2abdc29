package ports

import (
	"context"

	"forwarding/internal/core/domain/model/invoice"
	"forwarding/internal/core/domain/model/kernel"
)

// InvoiceRepository defines the persistence contract for invoices. Invoices
// are immutable financial records: there is no update operation.
type InvoiceRepository interface {
	// Add persists a new invoice with its lines.
	Add(ctx context.Context, aggregate *invoice.Invoice) error

	// Get retrieves an invoice with its lines.
	Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)

	// GetByShipment retrieves the invoice created for a shipment.
	// Returns an ObjectNotFoundError when the shipment has none.
	GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*invoice.Invoice, error)
}
