// Package commands contains the business operations that modify system
// state. Each command is a validated, constructor-guarded value; each handler
// drives one Unit of Work transaction: validate, begin, check-and-set,
// commit. Precondition checks and status writes always share one transaction
// so concurrent operations cannot interleave between them.
package commands

import (
	"context"

	"forwarding/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Handlers depend on the narrowest interface covering the
// repositories they touch.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// BatchRepoFactory provides access to the batch repository within a transaction.
	BatchRepoFactory interface {
		BatchRepository() ports.BatchRepository
	}

	// ScannedItemRepoFactory provides access to the scanned-item repository within a transaction.
	ScannedItemRepoFactory interface {
		ScannedItemRepository() ports.ScannedItemRepository
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// InvoiceRepoFactory provides access to the invoice repository within a transaction.
	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	// BatchUoW manages transactions for batch-only operations.
	BatchUoW interface {
		TxManager
		BatchRepoFactory
	}

	// BatchUoWFactory creates batch unit of work instances.
	BatchUoWFactory interface {
		Create() BatchUoW
	}

	// IntakeUoW manages transactions spanning batches, scanned items and
	// parcels, used by assignment and parcel registration.
	IntakeUoW interface {
		TxManager
		BatchRepoFactory
		ScannedItemRepoFactory
		ParcelRepoFactory
	}

	// IntakeUoWFactory creates intake unit of work instances.
	IntakeUoWFactory interface {
		Create() IntakeUoW
	}

	// ParcelUoW manages transactions for parcel-only operations.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
	}

	// ParcelUoWFactory creates parcel unit of work instances.
	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// ShipmentUoW manages transactions spanning shipments and parcels.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		ParcelRepoFactory
	}

	// ShipmentUoWFactory creates shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// BillingUoW manages the reconciliation transaction spanning shipments,
	// parcels and invoices.
	BillingUoW interface {
		TxManager
		ShipmentRepoFactory
		ParcelRepoFactory
		InvoiceRepoFactory
	}

	// BillingUoWFactory creates billing unit of work instances.
	BillingUoWFactory interface {
		Create() BillingUoW
	}
)
