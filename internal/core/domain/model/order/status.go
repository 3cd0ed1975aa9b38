package order

import (
	"fmt"
	"strings"

	"tableside/internal/pkg/errs"
)

// Status represents the lifecycle state of an order on the kitchen board.
// The expected forward path is
//
//	Pending ──> Confirmed ──> Preparing ──> AlmostDone ──> Ready ──> Served ──> Paid
//
// with Cancelled reachable from any non-terminal state. Transitions are not
// restricted to the immediate predecessor: the kitchen display is a trusted
// caller and may move an order to any named status while the order is not
// terminal. Terminal rules are enforced strictly: Served only admits Paid,
// and Cancelled and Paid admit nothing.
//
// Status is a value object that validates target states and provides the
// lowercase wire/persistence names of the versioned vocabulary.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every placed order.
	Pending

	// Confirmed indicates the kitchen has acknowledged the order.
	Confirmed

	// Preparing indicates cooking has started.
	Preparing

	// AlmostDone indicates the order is close to plating.
	AlmostDone

	// Ready indicates the order is ready for pickup by front of house.
	Ready

	// Served indicates the order reached the table. Only Paid may follow.
	Served

	// Cancelled is a terminal state reachable from any non-terminal state.
	Cancelled

	// Paid is the final terminal state, reachable from Served
	// (or set in bulk when a session is finished).
	Paid
)

// getStatusStrings returns a map of Status values to their wire names.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Confirmed:  "confirmed",
		Preparing:  "preparing",
		AlmostDone: "almost_done",
		Ready:      "ready",
		Served:     "served",
		Cancelled:  "cancelled",
		Paid:       "paid",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Confirmed:  "confirmed",
		Preparing:  "preparing",
		AlmostDone: "almost_done",
		Ready:      "ready",
		Served:     "served",
		Cancelled:  "cancelled",
		Paid:       "paid",
	}
}

// Validate checks if the Status value belongs to the vocabulary.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the lowercase wire name of the status.
// Returns "unknown" for values outside the vocabulary. This method
// implements the fmt.Stringer interface and is safe to call on any Status
// value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ParseStatus resolves a caller-supplied status name to a Status.
// Case is normalized at this boundary: "READY", "Ready" and "ready" all
// resolve to Ready. Unknown names yield an error that unwraps to
// errs.ErrValueIsInvalid; callers must reject the request without mutating
// the order.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for status, name := range getValidStatusStrings() {
		if name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid order status", raw),
	)
}

// IsTerminal reports whether no further transitions are allowed from s,
// except the served -> paid settlement step.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Paid
}

// IsActive reports whether the order still belongs on the kitchen board:
// not yet served, cancelled, or paid.
func (s Status) IsActive() bool {
	switch s {
	case Pending, Confirmed, Preparing, AlmostDone, Ready:
		return true
	default:
		return false
	}
}

// ActiveStatuses returns the kitchen-board subset of the vocabulary in
// forward order. Used by queries to build the default kitchen filter.
func ActiveStatuses() []Status {
	return []Status{Pending, Confirmed, Preparing, AlmostDone, Ready}
}

// TransitionTo validates moving from s to target and returns the resulting
// status.
//
// Rules:
//   - target must be a valid vocabulary member
//   - Cancelled and Paid admit no further transitions
//   - Served admits only Paid
//   - every other state admits any valid target (trusted-caller model)
//
// Returns:
//   - (target, nil) on a valid transition
//   - (0, error) unwrapping to errs.ErrValueIsInvalid for unknown targets
//     or errs.ErrInvalidState for forbidden transitions
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if s.IsTerminal() {
		return 0, errs.NewInvalidStateErrorWithCause(
			"order is in a terminal state",
			fmt.Errorf("%s does not admit a transition to %s", s.String(), target.String()),
		)
	}

	if s == Served && target != Paid {
		return 0, errs.NewInvalidStateErrorWithCause(
			"served orders can only be paid",
			fmt.Errorf("%s does not admit a transition to %s", s.String(), target.String()),
		)
	}

	return target, nil
}
