package intake_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forwarding/internal/core/domain/model/intake"
	"forwarding/internal/core/domain/model/kernel"
)

func newBatch(t *testing.T) *intake.Batch {
	t.Helper()
	batch, err := intake.NewBatch(
		kernel.NewUUID(), kernel.NewUUID(), 10,
		time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return batch
}

func TestNewBatch(t *testing.T) {
	batch := newBatch(t)
	assert.Equal(t, intake.BatchPending, batch.Status())
	assert.Equal(t, 10, batch.ExpectedPieces())
	assert.Empty(t, batch.Items())
}

func TestNewBatch_RequiresPositiveExpectedPieces(t *testing.T) {
	_, err := intake.NewBatch(kernel.NewUUID(), kernel.NewUUID(), 0, time.Now())
	assert.Error(t, err)

	_, err = intake.NewBatch(kernel.NewUUID(), kernel.NewUUID(), -3, time.Now())
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	batch := newBatch(t)
	scannedAt := time.Date(2026, 3, 1, 8, 5, 0, 0, time.UTC)

	item, err := batch.Scan("1Z999AA10123456784", scannedAt)
	require.NoError(t, err)

	assert.False(t, item.IsDuplicate())
	assert.Equal(t, "1Z999AA10123456784", item.TrackingNumber())
	assert.Equal(t, scannedAt, item.ScannedAt())
	assert.Equal(t, batch.ID(), item.BatchID())
	assert.Equal(t, intake.BatchScanning, batch.Status())
	assert.Len(t, batch.Items(), 1)
}

func TestScan_RepeatedNumberYieldsDuplicateMarker(t *testing.T) {
	batch := newBatch(t)

	first, err := batch.Scan("TRACK-1", time.Now())
	require.NoError(t, err)

	second, err := batch.Scan("TRACK-1", time.Now())
	require.NoError(t, err)

	assert.False(t, first.IsDuplicate())
	assert.True(t, second.IsDuplicate())
	assert.Len(t, batch.Items(), 2)
	require.Len(t, batch.LiveItems(), 1)
	assert.Equal(t, first.ID(), batch.LiveItems()[0].ID())
}

func TestScan_RequiresTrackingNumber(t *testing.T) {
	batch := newBatch(t)
	_, err := batch.Scan("", time.Now())
	assert.Error(t, err)
}

func TestScan_AfterCompleteFails(t *testing.T) {
	batch := newBatch(t)
	_, err := batch.Scan("TRACK-1", time.Now())
	require.NoError(t, err)
	require.NoError(t, batch.Complete())

	_, err = batch.Scan("TRACK-2", time.Now())
	require.ErrorIs(t, err, intake.ErrBatchAlreadyScanned)
}

func TestComplete(t *testing.T) {
	batch := newBatch(t)
	_, err := batch.Scan("TRACK-1", time.Now())
	require.NoError(t, err)

	require.NoError(t, batch.Complete())
	assert.Equal(t, intake.BatchScanned, batch.Status())

	require.ErrorIs(t, batch.Complete(), intake.ErrBatchAlreadyScanned)
}

func TestComplete_EmptyBatch(t *testing.T) {
	batch := newBatch(t)
	require.ErrorIs(t, batch.Complete(), intake.ErrBatchIsEmpty)
}

func TestComplete_OnlyDuplicatesIsEmpty(t *testing.T) {
	// A batch whose single live item was restored as duplicate-only cannot
	// happen through Scan, so drive it through Restore.
	item, err := intake.NewScannedItem(kernel.NewUUID(), kernel.NewUUID(), "TRACK-1", time.Now(), true)
	require.NoError(t, err)

	batch, err := intake.RestoreBatch(
		kernel.NewUUID(), kernel.NewUUID(), 5, time.Now(),
		intake.BatchScanning, []*intake.ScannedItem{item},
	)
	require.NoError(t, err)

	require.ErrorIs(t, batch.Complete(), intake.ErrBatchIsEmpty)
}

func TestBatchValidate(t *testing.T) {
	assert.NoError(t, newBatch(t).Validate())

	var nilBatch *intake.Batch
	assert.ErrorIs(t, nilBatch.Validate(), intake.ErrBatchIsNotConstructed)
	assert.ErrorIs(t, (&intake.Batch{}).Validate(), intake.ErrBatchIsNotConstructed)
}
