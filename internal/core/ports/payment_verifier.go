package ports

import "context"

// PaymentVerification is the gateway's view of a payment reference: whether
// the payment completed successfully and for how much, in minor currency
// units. Amounts are compared in minor units, never in floating decimals.
type PaymentVerification struct {
	Reference    string
	Succeeded    bool
	AmountMinor  int64
	CurrencyCode string
}

// PaymentVerifier is the external payment collaborator. The engine calls it
// to verify a payment reference before entering the local transaction, so
// the transaction itself stays short-lived.
type PaymentVerifier interface {
	// Verify fetches the state of a payment reference from the gateway.
	Verify(ctx context.Context, reference string) (PaymentVerification, error)
}
