package intake

import (
	"fmt"

	"forwarding/internal/pkg/errs"
)

// BatchStatus represents the lifecycle state of an incoming batch.
//
// State transitions:
//
//	Pending ──> Scanning ──> Scanned
//
// A batch is Pending when the scan session is opened, Scanning once the first
// tracking number is recorded, and Scanned when warehouse staff mark the
// session complete.
type BatchStatus int

const (
	// BatchStatusUnknown catches uninitialized values.
	BatchStatusUnknown BatchStatus = iota

	// BatchPending is the initial status of a freshly opened scan session.
	BatchPending

	// BatchScanning indicates at least one tracking number has been recorded.
	BatchScanning

	// BatchScanned is the terminal status of a completed scan session.
	BatchScanned
)

func batchStatusStrings() map[BatchStatus]string {
	return map[BatchStatus]string{
		BatchStatusUnknown: "Unknown",
		BatchPending:       "Pending",
		BatchScanning:      "Scanning",
		BatchScanned:       "Scanned",
	}
}

// Validate checks that the status is one of the defined lifecycle states.
func (s BatchStatus) Validate() error {
	if s != BatchPending && s != BatchScanning && s != BatchScanned {
		return errs.NewValueIsInvalidErrorWithCause("batch status",
			fmt.Errorf("%d is not a valid batch status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s BatchStatus) String() string {
	if str, ok := batchStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// AssignmentStatus represents the customer-assignment state of a scanned item.
type AssignmentStatus int

const (
	// AssignmentStatusUnknown catches uninitialized values.
	AssignmentStatusUnknown AssignmentStatus = iota

	// Unassigned is the initial status of a live scanned item.
	Unassigned

	// Assigned indicates the item has been linked to an owning customer.
	Assigned
)

func assignmentStatusStrings() map[AssignmentStatus]string {
	return map[AssignmentStatus]string{
		AssignmentStatusUnknown: "Unknown",
		Unassigned:              "Unassigned",
		Assigned:                "Assigned",
	}
}

// Validate checks that the status is one of the defined assignment states.
func (s AssignmentStatus) Validate() error {
	if s != Unassigned && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause("assignment status",
			fmt.Errorf("%d is not a valid assignment status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s AssignmentStatus) String() string {
	if str, ok := assignmentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
