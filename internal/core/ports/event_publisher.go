package ports

import (
	"context"
	"time"
)

// ShipmentStatusChanged is the integration event emitted when a shipment
// changes lifecycle status.
type ShipmentStatusChanged struct {
	ShipmentID     string    `json:"shipment_id"`
	ShipmentNumber string    `json:"shipment_number"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// EventPublisher publishes integration events to the message broker.
// Publishing happens after the local transaction commits and is best-effort:
// a publish failure is logged, never surfaced to the caller.
type EventPublisher interface {
	// PublishShipmentStatusChanged emits a shipment lifecycle event.
	PublishShipmentStatusChanged(ctx context.Context, event ShipmentStatusChanged) error
}
