// Package session implements the dining-session aggregate.
//
// A dining session groups all orders placed by one table between being
// seated and requesting the bill. The aggregate enforces the session
// lifecycle: a session is created ACTIVE and transitions to CLOSED exactly
// once, irreversibly. The system-wide invariant that at most one ACTIVE
// session exists per table is upheld at the storage layer by a partial
// unique index; this package supplies the state machine and the close-once
// semantics.
package session
