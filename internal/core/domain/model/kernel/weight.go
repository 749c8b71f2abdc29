package kernel

import (
	"fmt"

	"forwarding/internal/pkg/errs"
)

// Weight is a mass in kilograms. The zero value is invalid; construct with
// NewWeight.
type Weight struct {
	kg float64
}

// NewWeight creates a Weight from kilograms. Must be positive.
func NewWeight(kg float64) (Weight, error) {
	if kg <= 0 {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%v kg is not greater than 0", kg))
	}
	return Weight{kg: kg}, nil
}

// Kg returns the weight in kilograms.
func (w Weight) Kg() float64 {
	return w.kg
}

// IsGreaterThan reports whether w is strictly heavier than other.
func (w Weight) IsGreaterThan(other Weight) bool {
	return w.kg > other.kg
}

// Add returns the sum of two weights.
func (w Weight) Add(other Weight) Weight {
	return Weight{kg: w.kg + other.kg}
}

// Validate returns an error for the zero value.
func (w Weight) Validate() error {
	if w.kg <= 0 {
		return errs.NewValueIsRequiredError("weight must be created via NewWeight")
	}
	return nil
}

// Dimensions are the three sides of a parcel in centimeters.
// The zero value is invalid; construct with NewDimensions.
type Dimensions struct {
	lengthCm float64
	widthCm  float64
	heightCm float64
}

// NewDimensions creates Dimensions from centimeter sides. Each side must be
// positive.
func NewDimensions(lengthCm, widthCm, heightCm float64) (Dimensions, error) {
	for name, v := range map[string]float64{"length": lengthCm, "width": widthCm, "height": heightCm} {
		if v <= 0 {
			return Dimensions{}, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%v cm is not greater than 0", v))
		}
	}
	return Dimensions{lengthCm: lengthCm, widthCm: widthCm, heightCm: heightCm}, nil
}

// LengthCm returns the length in centimeters.
func (d Dimensions) LengthCm() float64 { return d.lengthCm }

// WidthCm returns the width in centimeters.
func (d Dimensions) WidthCm() float64 { return d.widthCm }

// HeightCm returns the height in centimeters.
func (d Dimensions) HeightCm() float64 { return d.heightCm }

// VolumetricWeight computes the dimensional-weight surrogate
// (L*W*H)/divisor. The divisor is warehouse/service configuration, never a
// constant of this package.
func (d Dimensions) VolumetricWeight(divisor float64) (Weight, error) {
	if divisor <= 0 {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("volumetricDivisor",
			fmt.Errorf("%v is not greater than 0", divisor))
	}
	return NewWeight(d.lengthCm * d.widthCm * d.heightCm / divisor)
}

// Validate returns an error for the zero value.
func (d Dimensions) Validate() error {
	if d.lengthCm <= 0 || d.widthCm <= 0 || d.heightCm <= 0 {
		return errs.NewValueIsRequiredError("dimensions must be created via NewDimensions")
	}
	return nil
}

// ChargeableWeight is the pricing basis: the greater of the actual and the
// volumetric weight. By construction it is always >= the actual weight.
func ChargeableWeight(actual Weight, volumetric Weight) Weight {
	if volumetric.IsGreaterThan(actual) {
		return volumetric
	}
	return actual
}
