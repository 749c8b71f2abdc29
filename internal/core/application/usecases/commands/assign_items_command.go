package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var (
	ErrAssignItemsCommandIsNotConstructed = errors.New(
		"AssignItemsCommand must be created via NewAssignItemsCommand constructor",
	)
	ErrItemIDsAreRequired = errors.New("at least one item id is required")
)

// AssignItemsCommand represents a request to assign a set of scanned items
// to one customer. The set may span batches; assignment is all-or-nothing.
//
// Example:
//
//	cmd, err := NewAssignItemsCommand([]kernel.UUID{itemA, itemB}, customerID)
//	if err != nil {
//	    return fmt.Errorf("invalid assignment: %w", err)
//	}
//
//	handler := NewAssignItemsCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    var assigned *intake.AlreadyAssignedError
//	    if errors.As(err, &assigned) {
//	        // assigned.ItemIDs names every item blocking the assignment
//	    }
//	    return err
//	}
type AssignItemsCommand struct { //nolint:recvcheck //using for validation
	itemIDs    []kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignItemsCommand creates a command to assign items to a customer.
func NewAssignItemsCommand(itemIDs []kernel.UUID, customerID kernel.UUID) (AssignItemsCommand, error) {
	cmd := AssignItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItemIDs(itemIDs),
		cmd.setCustomerID(customerID),
	); err != nil {
		return AssignItemsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignItemsCommand) Validate() error {
	return c.guard.Validate(ErrAssignItemsCommandIsNotConstructed)
}

// ItemIDs returns the scanned items to assign.
func (c AssignItemsCommand) ItemIDs() []kernel.UUID {
	return c.itemIDs
}

// CustomerID returns the customer receiving the items.
func (c AssignItemsCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c *AssignItemsCommand) setItemIDs(itemIDs []kernel.UUID) error {
	if len(itemIDs) == 0 {
		return ErrItemIDsAreRequired
	}
	for _, id := range itemIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.itemIDs = itemIDs
	return nil
}

func (c *AssignItemsCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}
