package kernel

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Human-readable reference prefixes. Order numbers appear on printed bills
// and the kitchen display; session tokens are handed back to table clients.
const (
	orderNumberPrefix  = "ORD"
	sessionTokenPrefix = "SES"
)

// NewOrderNumber generates a human-readable order number of the form
// ORD20250101120000123: prefix, UTC timestamp to the second, and a three
// digit random suffix. Uniqueness is practical rather than guaranteed;
// callers insert under a unique constraint and retry on collision.
func NewOrderNumber() string {
	return newReference(orderNumberPrefix)
}

// NewSessionToken generates an opaque session token of the form
// SES20250101120000123. Consumers must not parse the format.
func NewSessionToken() string {
	return newReference(sessionTokenPrefix)
}

func newReference(prefix string) string {
	now := time.Now().UTC().Format("20060102150405")
	suffix := rand.IntN(900) + 100 //nolint:gosec // non-cryptographic uniqueness scheme
	return fmt.Sprintf("%s%s%d", prefix, now, suffix)
}
