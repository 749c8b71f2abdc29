package batchrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"forwarding/internal/core/domain/model/intake"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

// aggregateTracker defines the unit-of-work surface the repositories need:
// aggregate tracking plus whether a transaction is active, which decides if
// row locks are meaningful.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
	InTransaction() bool
}

// GormBatchRepository implements BatchRepository using GORM.
type GormBatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormBatchRepository creates a new GORM batch repository.
func NewGormBatchRepository(db *gorm.DB, tracker aggregateTracker) *GormBatchRepository {
	return &GormBatchRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new batch and its items to the database.
func (r *GormBatchRepository) Add(ctx context.Context, aggregate *intake.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing batch, upserting its items: scanning appends
// items, it never removes them.
func (r *GormBatchRepository) Update(ctx context.Context, aggregate *intake.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&BatchDTO{}).
		Where("id = ?", dto.ID).
		Select("CourierID", "ExpectedPieces", "ArrivedAt", "Status").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if len(dto.Items) > 0 {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&dto.Items).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a batch with all its scanned items. Locks the batch row
// when a transaction is active, so concurrent scans of one batch serialize.
func (r *GormBatchRepository) Get(ctx context.Context, id kernel.UUID) (*intake.Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	session := r.db.WithContext(ctx)
	if r.tracker.InTransaction() {
		session = session.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: BatchDTO{}.TableName()}})
	}

	var dto BatchDTO
	if err := session.Preload("Items").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("batch", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GormScannedItemRepository implements ScannedItemRepository using GORM.
type GormScannedItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormScannedItemRepository creates a new GORM scanned-item repository.
func NewGormScannedItemRepository(db *gorm.DB, tracker aggregateTracker) *GormScannedItemRepository {
	return &GormScannedItemRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves one scanned item, locking its row when a transaction is
// active.
func (r *GormScannedItemRepository) Get(ctx context.Context, id kernel.UUID) (*intake.ScannedItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	session := r.db.WithContext(ctx)
	if r.tracker.InTransaction() {
		session = session.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto ScannedItemDTO
	if err := session.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("scannedItem", id.String())
		}
		return nil, err
	}

	return itemToDomain(dto)
}

// GetMany retrieves the items for the given ids under row locks, failing if
// any id is unknown. All-or-nothing assignment relies on both properties.
func (r *GormScannedItemRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*intake.ScannedItem, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	session := r.db.WithContext(ctx)
	if r.tracker.InTransaction() {
		session = session.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dtos []ScannedItemDTO
	if err := session.Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]bool, len(dtos))
	for _, dto := range dtos {
		found[dto.ID] = true
	}
	for i, id := range ids {
		if !found[raw[i]] {
			return nil, errs.NewObjectNotFoundError("scannedItem", id.String())
		}
	}

	items := make([]*intake.ScannedItem, 0, len(dtos))
	for _, dto := range dtos {
		item, err := itemToDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// Update saves one scanned item.
func (r *GormScannedItemRepository) Update(ctx context.Context, item *intake.ScannedItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := itemFromDomain(item)
	result := r.db.WithContext(ctx).Model(&ScannedItemDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(item.ID(), item)
	return nil
}
