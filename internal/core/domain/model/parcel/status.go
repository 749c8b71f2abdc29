package parcel

import (
	"fmt"

	"forwarding/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
//
// Main path:
//
//	Expected ──> Received ──> ReadyToShip ──> Shipped ──> Delivered
//
// Exception exits Held, Missing and Damaged branch off Received and
// ReadyToShip; Returned and Disposed are terminal and reachable only from the
// exception states. Held parcels can be released back to ReadyToShip and
// Missing parcels can be found back to Received.
type Status int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown Status = iota

	// Expected is a pre-alerted parcel not yet arrived at the warehouse.
	Expected

	// Received is a parcel physically checked in at the warehouse.
	Received

	// ReadyToShip is a measured parcel available for shipment consolidation.
	ReadyToShip

	// Shipped is a parcel dispatched as part of a paid shipment.
	Shipped

	// Delivered is the terminal status of the happy path.
	Delivered

	// Held is a parcel blocked by warehouse operations.
	Held

	// Missing is a parcel that cannot be located.
	Missing

	// Damaged is a parcel found damaged during handling.
	Damaged

	// Returned is a terminal exception exit back to the sender.
	Returned

	// Disposed is a terminal exception exit for destroyed parcels.
	Disposed
)

// InvalidTransitionError reports a transition not present in the adjacency
// table. Nothing is written when it is returned.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid parcel transition: %s -> %s", e.From, e.To)
}

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Expected:      "Expected",
		Received:      "Received",
		ReadyToShip:   "ReadyToShip",
		Shipped:       "Shipped",
		Delivered:     "Delivered",
		Held:          "Held",
		Missing:       "Missing",
		Damaged:       "Damaged",
		Returned:      "Returned",
		Disposed:      "Disposed",
	}
}

// transitions is the explicit adjacency table of the parcel state machine.
// A transition absent here does not exist.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Expected:    {Received},
		Received:    {ReadyToShip, Held, Missing, Damaged},
		ReadyToShip: {Shipped, Held, Missing, Damaged},
		Shipped:     {Delivered},
		Held:        {ReadyToShip, Returned, Disposed},
		Missing:     {Received, Returned, Disposed},
		Damaged:     {Returned, Disposed},
		Delivered:   {},
		Returned:    {},
		Disposed:    {},
	}
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("parcel status",
			fmt.Errorf("%d is not a valid parcel status", s))
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
	return 0, errs.NewValueIsInvalidErrorWithCause("parcel status",
		fmt.Errorf("%q is not a valid parcel status", s))
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

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(transitions()[s]) == 0
}
