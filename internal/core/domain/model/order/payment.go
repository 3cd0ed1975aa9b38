package order

import (
	"fmt"
	"strings"

	"tableside/internal/pkg/errs"
)

// PaymentMethod names how a customer intends to settle the bill.
type PaymentMethod int

const (
	PaymentMethodUnknown PaymentMethod = iota
	PaymentMethodCash
	PaymentMethodCard
	PaymentMethodUPI
	PaymentMethodWallet
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	//nolint:exhaustive // PaymentMethodUnknown is intentionally excluded as it's invalid
	return map[PaymentMethod]string{
		PaymentMethodCash:   "cash",
		PaymentMethodCard:   "card",
		PaymentMethodUPI:    "upi",
		PaymentMethodWallet: "wallet",
	}
}

// Validate checks if the PaymentMethod value belongs to the vocabulary.
func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment_method is invalid",
			fmt.Errorf("%d is not a valid payment method", m),
		)
	}
	return nil
}

// String returns the lowercase wire name of the payment method,
// or "unknown" for values outside the vocabulary.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// ParsePaymentMethod resolves a caller-supplied name case-insensitively.
// An empty name resolves to the default method, UPI, matching the
// behavior callers rely on when the field is omitted.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return PaymentMethodUPI, nil
	}
	for method, name := range getPaymentMethodStrings() {
		if name == normalized {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment_method is invalid",
		fmt.Errorf("%q is not a valid payment method", raw),
	)
}

// PaymentStatus tracks settlement of an order's amount.
type PaymentStatus int

const (
	PaymentStatusUnknown PaymentStatus = iota
	PaymentStatusPending
	PaymentStatusPaid
	PaymentStatusRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentStatusUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentStatusPending:  "pending",
		PaymentStatusPaid:     "paid",
		PaymentStatusRefunded: "refunded",
	}
}

// Validate checks if the PaymentStatus value belongs to the vocabulary.
func (p PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment_status is invalid",
			fmt.Errorf("%d is not a valid payment status", p),
		)
	}
	return nil
}

// String returns the lowercase wire name of the payment status,
// or "unknown" for values outside the vocabulary.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// ParsePaymentStatus resolves a stored name back into a PaymentStatus.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for status, name := range getPaymentStatusStrings() {
		if name == normalized {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment_status is invalid",
		fmt.Errorf("%q is not a valid payment status", raw),
	)
}
