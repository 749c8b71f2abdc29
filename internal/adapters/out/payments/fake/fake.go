// Package fake is an in-memory payment verifier for local runs and tests.
package fake

import (
	"context"
	"sync"

	"forwarding/internal/core/ports"
)

// Verifier resolves references from a seeded in-memory table. Unknown
// references come back as not succeeded rather than as an error, matching
// how the gateway answers for references it never issued.
type Verifier struct {
	mu       sync.RWMutex
	payments map[string]ports.PaymentVerification
}

// New creates an empty fake verifier.
func New() *Verifier {
	return &Verifier{
		payments: make(map[string]ports.PaymentVerification),
	}
}

// Seed registers a verification result for a reference.
func (v *Verifier) Seed(verification ports.PaymentVerification) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.payments[verification.Reference] = verification
}

// Verify returns the seeded state of a payment reference.
func (v *Verifier) Verify(_ context.Context, reference string) (ports.PaymentVerification, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if verification, ok := v.payments[reference]; ok {
		return verification, nil
	}
	return ports.PaymentVerification{Reference: reference}, nil
}
