// Package ledger is the single source of truth for document money roll-ups
// and the quote/invoice status state machine. Every computation is a pure
// function over an in-memory snapshot: totals are always recomputed from the
// full line-item and payment sets, never accumulated in place.
//
// Amounts are carried at full precision and rounded to the currency minor
// unit exactly once, at the persistence/display boundary (Totals.Rounded).
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/juud-8/buildledger02/models"
)

var hundred = decimal.NewFromInt(100)

// ComputeSubtotal sums quantity * unit price over all items at full
// precision. An empty set yields zero. Negative quantities or prices fail
// with ErrInvalidInput.
func ComputeSubtotal(items []models.LineItem) (decimal.Decimal, error) {
	subtotal := decimal.Zero
	for _, it := range items {
		if it.Quantity.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: negative quantity %s", ErrInvalidInput, it.Quantity)
		}
		if it.UnitPrice.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: negative unit price %s", ErrInvalidInput, it.UnitPrice)
		}
		subtotal = subtotal.Add(it.Quantity.Mul(it.UnitPrice))
	}
	return subtotal, nil
}

// ComputeTax applies a percent tax rate to a subtotal. The rate must be >= 0.
func ComputeTax(subtotal, taxRatePercent decimal.Decimal) (decimal.Decimal, error) {
	if taxRatePercent.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative tax rate %s", ErrInvalidInput, taxRatePercent)
	}
	return subtotal.Mul(taxRatePercent).Div(hundred), nil
}

// ComputeTotal is the exact sum of subtotal and tax.
func ComputeTotal(subtotal, taxAmount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(taxAmount)
}

// ComputeAmountPaid sums the amounts of all recorded payments.
func ComputeAmountPaid(payments []models.Payment) decimal.Decimal {
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	return paid
}

// ComputeBalanceDue is total minus amount paid. A negative result means
// overpayment; the ledger does not clamp, display treatment is the caller's.
func ComputeBalanceDue(total, amountPaid decimal.Decimal) decimal.Decimal {
	return total.Sub(amountPaid)
}

// Totals is the full monetary roll-up of one document.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	BalanceDue  decimal.Decimal `json:"balance_due"`
}

// ComputeTotals derives the roll-up from scratch. Pass nil payments for a
// quote. The result is unrounded; call Rounded before persisting or
// rendering.
func ComputeTotals(items []models.LineItem, taxRatePercent decimal.Decimal, payments []models.Payment) (Totals, error) {
	subtotal, err := ComputeSubtotal(items)
	if err != nil {
		return Totals{}, err
	}
	tax, err := ComputeTax(subtotal, taxRatePercent)
	if err != nil {
		return Totals{}, err
	}
	total := ComputeTotal(subtotal, tax)
	paid := ComputeAmountPaid(payments)
	return Totals{
		Subtotal:    subtotal,
		TaxAmount:   tax,
		TotalAmount: total,
		AmountPaid:  paid,
		BalanceDue:  ComputeBalanceDue(total, paid),
	}, nil
}

// Rounded applies the single terminal rounding to two decimal places.
// BalanceDue is re-derived from the rounded total and paid amounts so the
// identity total - paid = balance survives rounding.
func (t Totals) Rounded() Totals {
	sub := t.Subtotal.Round(2)
	tax := t.TaxAmount.Round(2)
	total := t.TotalAmount.Round(2)
	paid := t.AmountPaid.Round(2)
	return Totals{
		Subtotal:    sub,
		TaxAmount:   tax,
		TotalAmount: total,
		AmountPaid:  paid,
		BalanceDue:  total.Sub(paid),
	}
}

// LineTotal is the display total of a single item. Rounding here is for
// rendering only; accumulation always uses the full-precision product.
func LineTotal(it models.LineItem) decimal.Decimal {
	return it.Quantity.Mul(it.UnitPrice).Round(2)
}
