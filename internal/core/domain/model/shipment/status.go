package shipment

import (
	"fmt"

	"forwarding/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
//
// Main path:
//
//	QuoteRequested ──> Quoted ──> Paid ──> Processing ──> Dispatched
//	    ──> InTransit ──> OutForDelivery ──> Delivered
//
// Exits: Cancelled (before payment), Refunded (after payment),
// DeliveryFailed and Returned (carrier events). An expired quote drops back
// to QuoteRequested and must be re-requested.
type Status int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown Status = iota

	// QuoteRequested is the initial status: parcels selected, price pending.
	QuoteRequested

	// Quoted carries a priced, time-limited offer.
	Quoted

	// Paid is reached only through billing reconciliation.
	Paid

	// Processing is the warehouse preparing the consolidated shipment.
	Processing

	// Dispatched means handed over to the outbound carrier.
	Dispatched

	// InTransit is carrier linehaul.
	InTransit

	// OutForDelivery is the final carrier leg.
	OutForDelivery

	// Delivered is the terminal status of the happy path.
	Delivered

	// DeliveryFailed is a failed carrier delivery attempt.
	DeliveryFailed

	// Returned means the carrier returned the shipment.
	Returned

	// Cancelled is the pre-payment exit; member parcels are released.
	Cancelled

	// Refunded is the post-payment exit; the invoice is preserved.
	Refunded
)

// InvalidTransitionError reports a transition not present in the adjacency
// table. Nothing is written when it is returned.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid shipment transition: %s -> %s", e.From, e.To)
}

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "Unknown",
		QuoteRequested: "QuoteRequested",
		Quoted:         "Quoted",
		Paid:           "Paid",
		Processing:     "Processing",
		Dispatched:     "Dispatched",
		InTransit:      "InTransit",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		DeliveryFailed: "DeliveryFailed",
		Returned:       "Returned",
		Cancelled:      "Cancelled",
		Refunded:       "Refunded",
	}
}

// transitions is the explicit adjacency table of the shipment state machine.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		QuoteRequested: {Quoted, Cancelled},
		Quoted:         {Paid, Cancelled, QuoteRequested},
		Paid:           {Processing, Refunded},
		Processing:     {Dispatched, Refunded},
		Dispatched:     {InTransit},
		InTransit:      {OutForDelivery, DeliveryFailed, Returned},
		OutForDelivery: {Delivered, DeliveryFailed},
		DeliveryFailed: {OutForDelivery, Returned},
		Returned:       {Refunded},
		Delivered:      {},
		Cancelled:      {},
		Refunded:       {},
	}
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("shipment status",
			fmt.Errorf("%d is not a valid shipment status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString resolves a status by its name.
func StatusFromString(s string) (Status, error) {
	for status, name := range statusStrings() {
		if name == s && status != StatusUnknown {
			return status, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("shipment status",
		fmt.Errorf("%q is not a valid shipment status", s))
}

// CanTransitionTo reports whether the adjacency table permits moving from s
// to the target status.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the adjacency table permits the
// move, or an InvalidTransitionError otherwise.
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(to) {
		return 0, &InvalidTransitionError{From: s, To: to}
	}
	return to, nil
}

// ServiceType is the shipping service level of a shipment.
type ServiceType int

const (
	// ServiceTypeUnknown catches uninitialized values.
	ServiceTypeUnknown ServiceType = iota

	// Economy is the slowest, cheapest service.
	Economy

	// Standard is the default service.
	Standard

	// Express is the fastest service.
	Express
)

func serviceTypeStrings() map[ServiceType]string {
	return map[ServiceType]string{
		ServiceTypeUnknown: "Unknown",
		Economy:            "Economy",
		Standard:           "Standard",
		Express:            "Express",
	}
}

// AllServiceTypes returns the selectable service levels, used when ranking
// available services for a quote request.
func AllServiceTypes() []ServiceType {
	return []ServiceType{Economy, Standard, Express}
}

// ServiceTypeFromString resolves a service type by its name.
func ServiceTypeFromString(s string) (ServiceType, error) {
	for serviceType, name := range serviceTypeStrings() {
		if name == s && serviceType != ServiceTypeUnknown {
			return serviceType, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("service type",
		fmt.Errorf("%q is not a valid service type", s))
}

// Validate checks that the service type is one of the defined levels.
func (t ServiceType) Validate() error {
	if t != Economy && t != Standard && t != Express {
		return errs.NewValueIsInvalidErrorWithCause("service type",
			fmt.Errorf("%d is not a valid service type", t))
	}
	return nil
}

// String returns the human-readable name of the service type.
func (t ServiceType) String() string {
	if str, ok := serviceTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}
