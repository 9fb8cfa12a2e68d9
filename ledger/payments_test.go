package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juud-8/buildledger02/models"
)

func testInvoice(total string) *models.Invoice {
	tot := decimal.RequireFromString(total)
	return &models.Invoice{
		ID:          uuid.New(),
		Status:      models.InvoiceSent,
		TotalAmount: tot,
		BalanceDue:  tot,
	}
}

func payment(amount string) models.Payment {
	return models.Payment{
		ID:     uuid.New(),
		Amount: decimal.RequireFromString(amount),
	}
}

func TestRecordPaymentRejectsNonPositive(t *testing.T) {
	inv := testInvoice("100.00")
	for _, amt := range []string{"0", "-10"} {
		_, err := RecordPayment(inv, nil, payment(amt), DefaultPolicy())
		assert.ErrorIs(t, err, ErrValidation, "amount %s", amt)
	}
	assert.True(t, inv.AmountPaid.IsZero(), "failed recording must not touch the invoice")
}

// Recording then deleting a payment returns amount paid and balance due to
// their prior values.
func TestRecordThenDeleteRoundTrips(t *testing.T) {
	inv := testInvoice("135.63")
	pay := payment("50.00")

	history, err := RecordPayment(inv, nil, pay, DefaultPolicy())
	require.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, "50.00", inv.AmountPaid.StringFixed(2))
	assert.Equal(t, "85.63", inv.BalanceDue.StringFixed(2))

	history, err = DeletePayment(inv, history, pay.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.True(t, inv.AmountPaid.IsZero())
	assert.True(t, inv.BalanceDue.Equal(inv.TotalAmount))
}

func TestPaymentInFullThenMarkPaid(t *testing.T) {
	inv := testInvoice("135.63")

	history, err := RecordPayment(inv, nil, payment("135.63"), DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, "135.63", inv.AmountPaid.StringFixed(2))
	assert.Equal(t, "0.00", inv.BalanceDue.StringFixed(2))
	assert.Equal(t, models.InvoiceSent, inv.Status, "recording alone does not transition")

	require.NoError(t, TransitionInvoice(inv, models.InvoicePaid, oneItem()))
	assert.True(t, inv.AmountPaid.Equal(inv.TotalAmount), "settlement is idempotent with the already-correct amount")
	_ = history
}

func TestDeletePaymentNotFound(t *testing.T) {
	inv := testInvoice("100.00")
	history, err := RecordPayment(inv, nil, payment("40.00"), DefaultPolicy())
	require.NoError(t, err)

	_, err = DeletePayment(inv, history, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "40.00", inv.AmountPaid.StringFixed(2), "failed delete must not recompute")
}

func TestOverpaymentPolicy(t *testing.T) {
	// Default: overpayment allowed, balance goes negative.
	inv := testInvoice("100.00")
	_, err := RecordPayment(inv, nil, payment("150.00"), DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, "-50.00", inv.BalanceDue.StringFixed(2))

	// Strict: rejected before the history changes.
	strict := Policy{AllowOverpayment: false}
	inv = testInvoice("100.00")
	history, err := RecordPayment(inv, nil, payment("60.00"), strict)
	require.NoError(t, err)
	_, err = RecordPayment(inv, history, payment("60.00"), strict)
	assert.ErrorIs(t, err, ErrOverpayment)
	assert.Equal(t, "60.00", inv.AmountPaid.StringFixed(2))

	// Exactly covering the total is not an overpayment.
	_, err = RecordPayment(inv, history, payment("40.00"), strict)
	require.NoError(t, err)
	assert.True(t, inv.BalanceDue.IsZero())
}

func TestAutoMarkPaid(t *testing.T) {
	pol := Policy{AllowOverpayment: true, AutoMarkPaid: true}

	inv := testInvoice("100.00")
	history, err := RecordPayment(inv, nil, payment("60.00"), pol)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceSent, inv.Status, "partial payment must not settle")

	_, err = RecordPayment(inv, history, payment("40.00"), pol)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, inv.Status)
}

func TestRecordPaymentRecomputesFromFullHistory(t *testing.T) {
	inv := testInvoice("300.00")
	var history []models.Payment
	var err error
	for _, amt := range []string{"100.00", "50.25", "25.50"} {
		history, err = RecordPayment(inv, history, payment(amt), DefaultPolicy())
		require.NoError(t, err)
	}
	assert.Equal(t, "175.75", inv.AmountPaid.StringFixed(2))
	assert.True(t, inv.AmountPaid.Equal(ComputeAmountPaid(history)))
	assert.Equal(t, "124.25", inv.BalanceDue.StringFixed(2))
}
