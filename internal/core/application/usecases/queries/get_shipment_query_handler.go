package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/pkg/errs"
)

// GetShipmentQueryResponse is the customer-facing shipment read model.
// Cost fields are nil until the shipment has been quoted.
type GetShipmentQueryResponse struct {
	ID               string     `json:"id"`
	Number           string     `json:"number"`
	Status           string     `json:"status"`
	ServiceType      string     `json:"service_type"`
	TotalWeightKg    float64    `json:"total_weight_kg"`
	ShippingMinor    *int64     `json:"shipping_minor,omitempty"`
	InsuranceMinor   *int64     `json:"insurance_minor,omitempty"`
	HandlingMinor    *int64     `json:"handling_minor,omitempty"`
	StorageMinor     *int64     `json:"storage_minor,omitempty"`
	TotalMinor       *int64     `json:"total_minor,omitempty"`
	Currency         *string    `json:"currency,omitempty"`
	QuoteExpiresAt   *time.Time `json:"quote_expires_at,omitempty"`
	PaymentReference string     `json:"payment_reference,omitempty"`
	ParcelIDs        []string   `json:"parcel_ids"`
}

// GetShipmentQueryHandler reads one shipment projection with direct SQL.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for shipment reads.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle executes the shipment read. Shipments of other customers come back
// as not found.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	var response GetShipmentQueryResponse
	var id uuid.UUID
	var status, serviceType int
	var shipping, insurance, handling, storage, total sql.NullInt64
	var currency sql.NullString
	var quoteExpiresAt sql.NullTime
	var paymentReference sql.NullString

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			service_type,
			total_weight_kg,
			shipping_minor,
			insurance_minor,
			handling_minor,
			storage_minor,
			total_minor,
			currency,
			quote_expires_at,
			payment_reference
		FROM shipments
		WHERE id = ? AND customer_id = ?
	`, query.ShipmentID().Bytes(), query.CustomerID().Bytes()).Row()

	err := row.Scan(
		&id,
		&response.Number,
		&status,
		&serviceType,
		&response.TotalWeightKg,
		&shipping,
		&insurance,
		&handling,
		&storage,
		&total,
		&currency,
		&quoteExpiresAt,
		&paymentReference,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return GetShipmentQueryResponse{}, errs.NewObjectNotFoundError("shipmentID", query.ShipmentID())
		}
		return GetShipmentQueryResponse{}, err
	}

	response.ID = id.String()
	response.Status = shipment.Status(status).String()
	response.ServiceType = shipment.ServiceType(serviceType).String()
	if shipping.Valid {
		response.ShippingMinor = &shipping.Int64
		response.InsuranceMinor = &insurance.Int64
		response.HandlingMinor = &handling.Int64
		response.StorageMinor = &storage.Int64
		response.TotalMinor = &total.Int64
	}
	if currency.Valid {
		response.Currency = &currency.String
	}
	if quoteExpiresAt.Valid {
		response.QuoteExpiresAt = &quoteExpiresAt.Time
	}
	if paymentReference.Valid {
		response.PaymentReference = paymentReference.String
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT parcel_id
		FROM shipment_parcels
		WHERE shipment_id = ?
		ORDER BY parcel_id
	`, query.ShipmentID().Bytes()).Rows()
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var parcelID uuid.UUID
		if err = rows.Scan(&parcelID); err != nil {
			return GetShipmentQueryResponse{}, err
		}
		response.ParcelIDs = append(response.ParcelIDs, parcelID.String())
	}
	if err = rows.Err(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	return response, nil
}
