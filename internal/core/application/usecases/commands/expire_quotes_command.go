package commands

import (
	"errors"

	"forwarding/internal/pkg/guard"
)

var ErrExpireQuotesCommandIsNotConstructed = errors.New(
	"ExpireQuotesCommand must be created via NewExpireQuotesCommand constructor",
)

// ExpireQuotesCommand represents one sweep over lapsed quotes. Issued
// periodically by the quote-expiry job.
type ExpireQuotesCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewExpireQuotesCommand creates a command to sweep expired quotes.
func NewExpireQuotesCommand() (ExpireQuotesCommand, error) {
	return ExpireQuotesCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireQuotesCommand) Validate() error {
	return c.guard.Validate(ErrExpireQuotesCommandIsNotConstructed)
}
