package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BatchItemResponse is one scanned item of a batch as the scanning UI sees
// it: the tracking number, whether it was a duplicate scan, and how far the
// item has progressed through assignment and conversion.
type BatchItemResponse struct {
	ID             string     `json:"id"`
	TrackingNumber string     `json:"tracking_number"`
	ScannedAt      time.Time  `json:"scanned_at"`
	Duplicate      bool       `json:"duplicate"`
	CustomerID     *string    `json:"customer_id,omitempty"`
	AssignedAt     *time.Time `json:"assigned_at,omitempty"`
	ParcelID       *string    `json:"parcel_id,omitempty"`
}

// GetBatchItemsQueryHandler reads batch items with direct SQL.
type GetBatchItemsQueryHandler struct {
	db *gorm.DB
}

// NewGetBatchItemsQueryHandler creates a handler for batch-item reads.
func NewGetBatchItemsQueryHandler(db *gorm.DB) GetBatchItemsQueryHandler {
	return GetBatchItemsQueryHandler{db: db}
}

// Handle executes the batch-items read, in scan order.
func (h GetBatchItemsQueryHandler) Handle(
	ctx context.Context,
	query GetBatchItemsQuery,
) ([]BatchItemResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	items := make([]BatchItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			scanned_at,
			duplicate,
			customer_id,
			assigned_at,
			parcel_id
		FROM scanned_items
		WHERE batch_id = ?
		ORDER BY scanned_at
	`, query.BatchID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item BatchItemResponse
		var id uuid.UUID
		var customerID uuid.NullUUID
		var assignedAt sql.NullTime
		var parcelID uuid.NullUUID

		err = rows.Scan(
			&id,
			&item.TrackingNumber,
			&item.ScannedAt,
			&item.Duplicate,
			&customerID,
			&assignedAt,
			&parcelID,
		)
		if err != nil {
			return nil, err
		}

		item.ID = id.String()
		if customerID.Valid {
			s := customerID.UUID.String()
			item.CustomerID = &s
		}
		if assignedAt.Valid {
			item.AssignedAt = &assignedAt.Time
		}
		if parcelID.Valid {
			s := parcelID.UUID.String()
			item.ParcelID = &s
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
