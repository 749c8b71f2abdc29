package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forwarding/internal/core/domain/model/kernel"
)

func TestNewWeight(t *testing.T) {
	weight, err := kernel.NewWeight(2.5)
	require.NoError(t, err)
	assert.Equal(t, 2.5, weight.Kg())

	_, err = kernel.NewWeight(0)
	assert.Error(t, err)

	_, err = kernel.NewWeight(-1)
	assert.Error(t, err)
}

func TestNewDimensions(t *testing.T) {
	dims, err := kernel.NewDimensions(30, 20, 10)
	require.NoError(t, err)
	assert.Equal(t, 30.0, dims.LengthCm())
	assert.Equal(t, 20.0, dims.WidthCm())
	assert.Equal(t, 10.0, dims.HeightCm())

	_, err = kernel.NewDimensions(0, 20, 10)
	assert.Error(t, err)

	_, err = kernel.NewDimensions(30, -1, 10)
	assert.Error(t, err)
}

func TestVolumetricWeight(t *testing.T) {
	dims, err := kernel.NewDimensions(30, 20, 10)
	require.NoError(t, err)

	volumetric, err := dims.VolumetricWeight(5000)
	require.NoError(t, err)
	assert.InDelta(t, 1.2, volumetric.Kg(), 1e-9)

	_, err = dims.VolumetricWeight(0)
	assert.Error(t, err)
}

func TestChargeableWeight(t *testing.T) {
	tests := []struct {
		name       string
		actualKg   float64
		volumeKg   float64
		expectedKg float64
	}{
		{name: "actual heavier", actualKg: 2.0, volumeKg: 1.2, expectedKg: 2.0},
		{name: "volumetric heavier", actualKg: 0.8, volumeKg: 1.2, expectedKg: 1.2},
		{name: "equal weights", actualKg: 1.5, volumeKg: 1.5, expectedKg: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := kernel.NewWeight(tt.actualKg)
			require.NoError(t, err)
			volumetric, err := kernel.NewWeight(tt.volumeKg)
			require.NoError(t, err)

			chargeable := kernel.ChargeableWeight(actual, volumetric)
			assert.Equal(t, tt.expectedKg, chargeable.Kg())
		})
	}
}
