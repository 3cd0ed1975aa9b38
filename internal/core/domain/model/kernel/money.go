package kernel

import (
	"fmt"

	"tableside/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyPlaces is the fixed scale for all monetary amounts.
// Matches the numeric(10,2) columns used for price fields.
const moneyPlaces = 2

// Money is a value object for monetary amounts. It wraps a fixed-point
// decimal so that price snapshots, subtotals and tax sums never accumulate
// binary floating-point drift.
//
// The zero value of Money is a valid zero amount. Negative amounts cannot be
// constructed; arithmetic on valid Money values always yields valid Money.
//
// Money is immutable: every operation returns a new value.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromString("100.00")
//	lineTotal := price.MulInt(2)          // 200.00
//	tax := lineTotal.MulRate(taxRate)     // rounded to 2 decimal places
//	grand := lineTotal.Add(tax)
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a Money of amount 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney creates a Money from a decimal amount.
// Returns an error if the amount is negative; the amount is rounded to the
// fixed two-decimal scale.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount.Round(moneyPlaces)}, nil
}

// NewMoneyFromString parses a decimal string such as "149.50" into Money.
// Used at configuration and persistence boundaries.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MulInt returns the amount multiplied by a non-negative integer factor,
// e.g. a unit price multiplied by an ordered quantity.
func (m Money) MulInt(factor int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor))).Round(moneyPlaces)}
}

// MulRate returns the amount multiplied by a fractional rate (e.g. a tax
// rate of 0.18), rounded to the fixed two-decimal scale.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate).Round(moneyPlaces)}
}

// Decimal returns the underlying decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64 for JSON responses.
// The value is exact for any amount representable in two decimal places
// within the numeric(10,2) range.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String returns the amount formatted with exactly two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(moneyPlaces)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two amounts for numeric equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}
