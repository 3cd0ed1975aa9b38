package session

import (
	"fmt"

	"tableside/internal/pkg/errs"
)

// Status represents the lifecycle state of a dining session.
// It implements a two-state machine with a single irreversible transition:
//
//	Active ──> Closed
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Active is the initial status when a session is opened for a table.
	// Only sessions in this status accept new orders.
	Active

	// Closed indicates the bill has been settled and the table released.
	// This is a final state with no further transitions allowed.
	Closed
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "UNKNOWN",
		Active:  "ACTIVE",
		Closed:  "CLOSED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Active: "ACTIVE",
		Closed: "CLOSED",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Active, Closed.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid session status", s))
	}
	return nil
}

// String returns the persistence name of the status:
// "ACTIVE" or "CLOSED" for valid values, "UNKNOWN" otherwise.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a persistence name back into a Status.
// Used when reconstructing sessions from storage.
func StatusFromString(raw string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == raw {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid session status", raw),
	)
}

// Close transitions the status to Closed.
//
// Valid transitions:
//   - Active -> Closed (bill settled)
//
// Invalid transitions:
//   - Closed -> Closed (double close)
//   - Unknown -> Closed (invalid initial state)
//
// Returns:
//   - (Closed, nil) on valid transition
//   - (0, error) if the session is not Active
//
// The returned error unwraps to errs.ErrInvalidState so callers can map a
// double close to a client error distinct from validation failures.
func (s Status) Close() (Status, error) {
	if s != Active {
		return 0, errs.NewInvalidStateErrorWithCause(
			"session is already closed",
			fmt.Errorf("%s is not a valid status to close", s.String()),
		)
	}

	return Closed, nil
}
