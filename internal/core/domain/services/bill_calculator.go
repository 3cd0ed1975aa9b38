package services

import (
	"github.com/shopspring/decimal"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/errs"
)

// Bill is the computed invoice for a dining session.
//
// Subtotal is the exact sum of the session's order totals, tax is
// subtotal multiplied by the configured rate and rounded to two decimal
// places, and grand total is their sum.
type Bill struct {
	Lines      []BillLine
	Subtotal   kernel.Money
	TaxRate    decimal.Decimal
	TaxAmount  kernel.Money
	GrandTotal kernel.Money
}

// BillLine is one order's contribution to the bill.
type BillLine struct {
	OrderID     kernel.UUID
	OrderNumber string
	Total       kernel.Money
}

// BillCalculator is a domain service that totals a session's orders into
// a bill. Cancelled orders contribute nothing; every other order counts
// regardless of kitchen status.
//
// Example usage:
//
//	calculator := services.NewBillCalculator(decimal.NewFromFloat(0.18))
//	bill, err := calculator.Calculate(orders)
//	if err != nil {
//	    // Handle validation failure
//	}
//	// bill.GrandTotal is subtotal plus tax
type BillCalculator struct {
	taxRate decimal.Decimal
}

// NewBillCalculator creates a BillCalculator with the given tax rate,
// expressed as a fraction (0.18 for 18%).
func NewBillCalculator(taxRate decimal.Decimal) (BillCalculator, error) {
	if taxRate.IsNegative() {
		return BillCalculator{}, errs.NewValueIsOutOfRangeError("tax_rate", taxRate.String(), "0", "1")
	}
	return BillCalculator{taxRate: taxRate}, nil
}

// TaxRate returns the configured tax fraction.
func (b BillCalculator) TaxRate() decimal.Decimal {
	return b.taxRate
}

// Calculate totals the given orders into a Bill. Each order must be a
// properly constructed aggregate; cancelled orders are skipped.
func (b BillCalculator) Calculate(orders []*order.Order) (Bill, error) {
	bill := Bill{
		Lines:    make([]BillLine, 0, len(orders)),
		Subtotal: kernel.ZeroMoney(),
		TaxRate:  b.taxRate,
	}

	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return Bill{}, err
		}

		if o.Status() == order.Cancelled {
			continue
		}

		bill.Lines = append(bill.Lines, BillLine{
			OrderID:     o.ID(),
			OrderNumber: o.Number(),
			Total:       o.TotalPrice(),
		})
		bill.Subtotal = bill.Subtotal.Add(o.TotalPrice())
	}

	bill.TaxAmount = bill.Subtotal.MulRate(b.taxRate)
	bill.GrandTotal = bill.Subtotal.Add(bill.TaxAmount)
	return bill, nil
}
