package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/pkg/guard"
)

var ErrRegisterParcelCommandIsNotConstructed = errors.New(
	"RegisterParcelCommand must be created via NewRegisterParcelCommand constructor",
)

// RegisterParcelCommand represents the conversion of an assigned scanned
// item into a trackable parcel, with the scale and tape-measure readings
// taken at registration.
//
// Example:
//
//	weight, _ := kernel.NewWeight(2.0)
//	dims, _ := kernel.NewDimensions(30, 20, 10)
//	value, _ := kernel.NewMoney(12500, usd)
//
//	cmd, err := NewRegisterParcelCommand(parcelID, itemID, warehouseID,
//	    weight, dims, value, parcel.Flags{Fragile: true})
//	if err != nil {
//	    return err
//	}
//
//	handler := NewRegisterParcelCommandHandler(uowFactory, warehouses)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register parcel: %w", err)
//	}
type RegisterParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID      kernel.UUID
	scannedItemID kernel.UUID
	warehouseID   kernel.UUID
	weight        kernel.Weight
	dimensions    kernel.Dimensions
	declaredValue kernel.Money
	flags         parcel.Flags

	guard guard.ConstructorGuard
}

// NewRegisterParcelCommand creates a command to register a parcel from an
// assigned scanned item.
func NewRegisterParcelCommand(
	parcelID, scannedItemID, warehouseID kernel.UUID,
	weight kernel.Weight,
	dimensions kernel.Dimensions,
	declaredValue kernel.Money,
	flags parcel.Flags,
) (RegisterParcelCommand, error) {
	cmd := RegisterParcelCommand{
		flags: flags,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setScannedItemID(scannedItemID),
		cmd.setWarehouseID(warehouseID),
		cmd.setWeight(weight),
		cmd.setDimensions(dimensions),
		cmd.setDeclaredValue(declaredValue),
	); err != nil {
		return RegisterParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterParcelCommand) Validate() error {
	return c.guard.Validate(ErrRegisterParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier for the new parcel.
func (c RegisterParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// ScannedItemID returns the assigned item being converted.
func (c RegisterParcelCommand) ScannedItemID() kernel.UUID {
	return c.scannedItemID
}

// WarehouseID returns the warehouse holding the parcel.
func (c RegisterParcelCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// Weight returns the actual weight off the scale.
func (c RegisterParcelCommand) Weight() kernel.Weight {
	return c.weight
}

// Dimensions returns the measured dimensions.
func (c RegisterParcelCommand) Dimensions() kernel.Dimensions {
	return c.dimensions
}

// DeclaredValue returns the declared value of the contents.
func (c RegisterParcelCommand) DeclaredValue() kernel.Money {
	return c.declaredValue
}

// Flags returns the handling flags.
func (c RegisterParcelCommand) Flags() parcel.Flags {
	return c.flags
}

func (c *RegisterParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *RegisterParcelCommand) setScannedItemID(scannedItemID kernel.UUID) error {
	if err := scannedItemID.Validate(); err != nil {
		return err
	}

	c.scannedItemID = scannedItemID
	return nil
}

func (c *RegisterParcelCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	c.warehouseID = warehouseID
	return nil
}

func (c *RegisterParcelCommand) setWeight(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}

	c.weight = weight
	return nil
}

func (c *RegisterParcelCommand) setDimensions(dimensions kernel.Dimensions) error {
	if err := dimensions.Validate(); err != nil {
		return err
	}

	c.dimensions = dimensions
	return nil
}

func (c *RegisterParcelCommand) setDeclaredValue(declaredValue kernel.Money) error {
	if err := declaredValue.Validate(); err != nil {
		return err
	}

	c.declaredValue = declaredValue
	return nil
}
