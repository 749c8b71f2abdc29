package kernel

import (
	"fmt"
	"math"

	"forwarding/internal/pkg/errs"
)

// ErrCurrencyMismatch indicates an arithmetic operation between two Money
// values of different currencies.
var ErrCurrencyMismatch = errs.NewValueIsInvalidError("money operands must share one currency")

// knownCurrencies maps ISO 4217 codes to their configured decimal places.
// Currency master data is owned elsewhere; this registry is the read-only
// surface the engine consumes.
func knownCurrencies() map[string]int {
	return map[string]int{
		"USD": 2,
		"EUR": 2,
		"GBP": 2,
		"CAD": 2,
		"AUD": 2,
		"SGD": 2,
		"HKD": 2,
		"CNY": 2,
		"JPY": 0,
		"KRW": 0,
	}
}

// Currency is a value object holding an ISO 4217 code and its decimal places.
// The zero value is invalid; construct with CurrencyFromCode.
type Currency struct {
	code     string
	decimals int
}

// CurrencyFromCode resolves a currency from the registry.
// Returns a ValueIsInvalidError for unknown codes.
func CurrencyFromCode(code string) (Currency, error) {
	decimals, ok := knownCurrencies()[code]
	if !ok {
		return Currency{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a known currency code", code))
	}
	return Currency{code: code, decimals: decimals}, nil
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string {
	return c.code
}

// Decimals returns the number of decimal places of the currency's minor unit.
func (c Currency) Decimals() int {
	return c.decimals
}

// IsEqual compares two currencies by code.
func (c Currency) IsEqual(other Currency) bool {
	return c.code == other.code
}

// Validate returns an error for the zero value.
func (c Currency) Validate() error {
	if c.code == "" {
		return errs.NewValueIsRequiredError("currency must be created via CurrencyFromCode")
	}
	return nil
}

// Money is an immutable monetary amount stored in the currency's minor units
// (cents for USD). All billing amounts in the engine are Money values;
// comparisons against external payment amounts happen in minor units, never
// in floating decimals.
type Money struct {
	amountMinor int64
	currency    Currency
}

// NewMoney creates a Money value from an amount in minor units.
// Negative amounts are rejected: the engine only prices charges.
func NewMoney(amountMinor int64, currency Currency) (Money, error) {
	if err := currency.Validate(); err != nil {
		return Money{}, err
	}
	if amountMinor < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d minor units is negative", amountMinor))
	}
	return Money{amountMinor: amountMinor, currency: currency}, nil
}

// MoneyFromDecimal converts a decimal amount to Money, rounding half-up to
// the currency's decimal places. This is the single rounding point for rate
// calculations: intermediate terms are kept as decimals and rounded exactly
// once at the final amount.
func MoneyFromDecimal(amount float64, currency Currency) (Money, error) {
	if err := currency.Validate(); err != nil {
		return Money{}, err
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is not a valid monetary amount", amount))
	}
	scale := math.Pow10(currency.Decimals())
	minor := int64(math.Floor(amount*scale + 0.5))
	return Money{amountMinor: minor, currency: currency}, nil
}

// AmountMinor returns the amount in the currency's minor units.
func (m Money) AmountMinor() int64 {
	return m.amountMinor
}

// Decimal returns the amount as a decimal number of major units.
func (m Money) Decimal() float64 {
	return float64(m.amountMinor) / math.Pow10(m.currency.Decimals())
}

// Currency returns the currency of the amount.
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amountMinor == 0
}

// IsEqual compares two Money values by amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.amountMinor == other.amountMinor && m.currency.IsEqual(other.currency)
}

// Add returns the sum of two Money values.
// Returns ErrCurrencyMismatch if the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if !m.currency.IsEqual(other.currency) {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amountMinor: m.amountMinor + other.amountMinor, currency: m.currency}, nil
}

// String formats the amount with its currency code, e.g. "15.00 USD".
func (m Money) String() string {
	return fmt.Sprintf("%.*f %s", m.currency.Decimals(), m.Decimal(), m.currency.Code())
}

// Validate returns an error for the zero value.
func (m Money) Validate() error {
	return m.currency.Validate()
}
