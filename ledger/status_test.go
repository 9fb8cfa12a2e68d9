package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juud-8/buildledger02/models"
)

func oneItem() []models.LineItem {
	return []models.LineItem{item("1", "100.00")}
}

func TestQuoteHappyPath(t *testing.T) {
	q := &models.Quote{Status: models.QuoteDraft}
	require.NoError(t, TransitionQuote(q, models.QuoteSent, oneItem()))
	require.NoError(t, TransitionQuote(q, models.QuoteApproved, oneItem()))
	assert.Equal(t, models.QuoteApproved, q.Status)
}

func TestQuoteSendGuard(t *testing.T) {
	q := &models.Quote{Status: models.QuoteDraft}
	err := TransitionQuote(q, models.QuoteSent, nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)
	assert.Equal(t, models.QuoteDraft, q.Status, "a rejected transition must not change status")

	require.NoError(t, TransitionQuote(q, models.QuoteSent, oneItem()))
}

func TestQuoteTransitionClosure(t *testing.T) {
	all := []models.QuoteStatus{
		models.QuoteDraft, models.QuoteSent, models.QuoteApproved,
		models.QuoteRejected, models.QuoteExpired,
	}
	allowed := map[[2]models.QuoteStatus]bool{
		{models.QuoteDraft, models.QuoteSent}:    true,
		{models.QuoteSent, models.QuoteApproved}: true,
		{models.QuoteSent, models.QuoteRejected}: true,
	}
	for _, from := range all {
		for _, to := range all {
			q := &models.Quote{Status: from}
			err := TransitionQuote(q, to, oneItem())
			if allowed[[2]models.QuoteStatus{from, to}] {
				assert.NoError(t, err, "%s -> %s", from, to)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", from, to)
			}
		}
	}
}

func TestInvoiceTransitionClosure(t *testing.T) {
	all := []models.InvoiceStatus{
		models.InvoiceDraft, models.InvoiceSent, models.InvoicePaid,
		models.InvoiceCancelled, models.InvoiceOverdue,
	}
	allowed := map[[2]models.InvoiceStatus]bool{
		{models.InvoiceDraft, models.InvoiceSent}:      true,
		{models.InvoiceDraft, models.InvoicePaid}:      true,
		{models.InvoiceDraft, models.InvoiceCancelled}: true,
		{models.InvoiceSent, models.InvoicePaid}:       true,
		{models.InvoiceSent, models.InvoiceCancelled}:  true,
		{models.InvoicePaid, models.InvoicePaid}:       true,
	}
	for _, from := range all {
		for _, to := range all {
			inv := &models.Invoice{Status: from}
			err := TransitionInvoice(inv, to, oneItem())
			if allowed[[2]models.InvoiceStatus{from, to}] {
				assert.NoError(t, err, "%s -> %s", from, to)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", from, to)
			}
		}
	}
}

func TestInvoiceSendGuard(t *testing.T) {
	inv := &models.Invoice{Status: models.InvoiceDraft}
	err := TransitionInvoice(inv, models.InvoiceSent, nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestPaidInvoiceCannotBeResent(t *testing.T) {
	inv := &models.Invoice{Status: models.InvoicePaid}
	err := TransitionInvoice(inv, models.InvoiceSent, oneItem())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var terr *TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "paid", terr.From)
	assert.Equal(t, "sent", terr.To)
}

func TestMarkPaidSettlesInFull(t *testing.T) {
	inv := &models.Invoice{
		Status:      models.InvoiceSent,
		TotalAmount: decimal.RequireFromString("135.63"),
		AmountPaid:  decimal.RequireFromString("50.00"),
		BalanceDue:  decimal.RequireFromString("85.63"),
	}
	require.NoError(t, TransitionInvoice(inv, models.InvoicePaid, oneItem()))
	assert.True(t, inv.AmountPaid.Equal(inv.TotalAmount))
	assert.True(t, inv.BalanceDue.IsZero())

	// Marking paid again is a no-op.
	require.NoError(t, TransitionInvoice(inv, models.InvoicePaid, oneItem()))
	assert.True(t, inv.AmountPaid.Equal(inv.TotalAmount))
}

func TestCancelledIsTerminal(t *testing.T) {
	inv := &models.Invoice{Status: models.InvoiceCancelled}
	for _, to := range []models.InvoiceStatus{models.InvoiceDraft, models.InvoiceSent, models.InvoicePaid} {
		assert.ErrorIs(t, TransitionInvoice(inv, to, oneItem()), ErrInvalidTransition)
	}
}

func TestDisplayStatusComputedClassifications(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	q := &models.Quote{Status: models.QuoteSent, ValidUntil: &past}
	assert.Equal(t, models.QuoteExpired, q.DisplayStatus(now))
	q.ValidUntil = &future
	assert.Equal(t, models.QuoteSent, q.DisplayStatus(now))

	inv := &models.Invoice{Status: models.InvoiceSent, DueDate: &past}
	assert.Equal(t, models.InvoiceOverdue, inv.DisplayStatus(now))

	inv.Status = models.InvoicePaid
	assert.Equal(t, models.InvoicePaid, inv.DisplayStatus(now), "paid invoices are never overdue")
}

func TestTransitionListings(t *testing.T) {
	q := &models.Quote{Status: models.QuoteSent}
	assert.ElementsMatch(t, []models.QuoteStatus{models.QuoteApproved, models.QuoteRejected}, QuoteTransitions(q))

	inv := &models.Invoice{Status: models.InvoiceCancelled}
	assert.Empty(t, InvoiceTransitions(inv))
}
