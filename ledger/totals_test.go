package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juud-8/buildledger02/models"
)

func item(qty, price string) models.LineItem {
	return models.LineItem{
		Quantity:  decimal.RequireFromString(qty),
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestComputeSubtotalEmpty(t *testing.T) {
	sub, err := ComputeSubtotal(nil)
	require.NoError(t, err)
	assert.True(t, sub.IsZero())
}

func TestComputeSubtotalOrderInvariant(t *testing.T) {
	items := []models.LineItem{
		item("2", "50.00"),
		item("1", "25.00"),
		item("3.5", "19.99"),
		item("0.25", "120.00"),
	}
	reversed := []models.LineItem{items[3], items[2], items[1], items[0]}

	a, err := ComputeSubtotal(items)
	require.NoError(t, err)
	b, err := ComputeSubtotal(reversed)
	require.NoError(t, err)

	assert.True(t, a.Equal(b), "subtotal must not depend on item order: %s vs %s", a, b)

	want := decimal.Zero
	for _, it := range items {
		want = want.Add(it.Quantity.Mul(it.UnitPrice))
	}
	assert.True(t, a.Equal(want))
}

func TestComputeSubtotalRejectsNegatives(t *testing.T) {
	_, err := ComputeSubtotal([]models.LineItem{item("-1", "10")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeSubtotal([]models.LineItem{item("1", "-10")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeTaxMonotonic(t *testing.T) {
	subtotal := decimal.RequireFromString("125.00")

	zero, err := ComputeTax(subtotal, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	prev := decimal.Zero
	for _, rate := range []string{"1", "5", "8.5", "10", "25", "100"} {
		tax, err := ComputeTax(subtotal, decimal.RequireFromString(rate))
		require.NoError(t, err)
		assert.True(t, tax.GreaterThanOrEqual(prev), "tax must not decrease as the rate rises")
		prev = tax
	}
}

func TestComputeTaxRejectsNegativeRate(t *testing.T) {
	_, err := ComputeTax(decimal.RequireFromString("100"), decimal.RequireFromString("-1"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeTotalIdentity(t *testing.T) {
	for _, tc := range [][2]string{
		{"0", "0"},
		{"125.00", "10.625"},
		{"999999.9999", "0.0001"},
	} {
		s := decimal.RequireFromString(tc[0])
		tax := decimal.RequireFromString(tc[1])
		assert.True(t, ComputeTotal(s, tax).Equal(s.Add(tax)))
	}
}

func TestComputeBalanceDueMayGoNegative(t *testing.T) {
	bal := ComputeBalanceDue(decimal.RequireFromString("100"), decimal.RequireFromString("150"))
	assert.True(t, bal.Equal(decimal.RequireFromString("-50")), "overpayment is not clamped")
}

// Two items at 8.5% tax: the tax is carried unrounded (10.625) and the whole
// roll-up is rounded once at the end, never per line.
func TestComputeTotalsTerminalRounding(t *testing.T) {
	items := []models.LineItem{
		item("2", "50.00"),
		item("1", "25.00"),
	}
	rate := decimal.RequireFromString("8.5")

	totals, err := ComputeTotals(items, rate, nil)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("125.00")))
	assert.True(t, totals.TaxAmount.Equal(decimal.RequireFromString("10.625")))
	assert.True(t, totals.TotalAmount.Equal(decimal.RequireFromString("135.625")))

	rounded := totals.Rounded()
	assert.Equal(t, "10.63", rounded.TaxAmount.StringFixed(2))
	assert.Equal(t, "135.63", rounded.TotalAmount.StringFixed(2))
	assert.Equal(t, "135.63", rounded.BalanceDue.StringFixed(2))
}

func TestRoundedPreservesBalanceIdentity(t *testing.T) {
	totals := Totals{
		Subtotal:    decimal.RequireFromString("125.00"),
		TaxAmount:   decimal.RequireFromString("10.625"),
		TotalAmount: decimal.RequireFromString("135.625"),
		AmountPaid:  decimal.RequireFromString("100.004"),
	}
	totals.BalanceDue = ComputeBalanceDue(totals.TotalAmount, totals.AmountPaid)

	r := totals.Rounded()
	assert.True(t, r.BalanceDue.Equal(r.TotalAmount.Sub(r.AmountPaid)))
}

func TestLineTotalRoundsForDisplayOnly(t *testing.T) {
	it := item("3", "0.333")
	assert.Equal(t, "1.00", LineTotal(it).StringFixed(2))

	// Accumulation keeps the full product.
	sub, err := ComputeSubtotal([]models.LineItem{it})
	require.NoError(t, err)
	assert.True(t, sub.Equal(decimal.RequireFromString("0.999")))
}
