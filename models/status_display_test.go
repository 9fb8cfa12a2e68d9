package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuoteDisplayStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 30)

	q := Quote{Status: QuoteSent, ValidUntil: &past}
	assert.Equal(t, QuoteExpired, q.DisplayStatus(now))

	q.ValidUntil = &future
	assert.Equal(t, QuoteSent, q.DisplayStatus(now))

	// Only sent quotes read as expired; stored terminal states win.
	q = Quote{Status: QuoteApproved, ValidUntil: &past}
	assert.Equal(t, QuoteApproved, q.DisplayStatus(now))

	q = Quote{Status: QuoteDraft}
	assert.Equal(t, QuoteDraft, q.DisplayStatus(now))
}

func TestInvoiceDisplayStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 30)

	inv := Invoice{Status: InvoiceSent, DueDate: &past}
	assert.Equal(t, InvoiceOverdue, inv.DisplayStatus(now))

	inv.DueDate = &future
	assert.Equal(t, InvoiceSent, inv.DisplayStatus(now))

	inv = Invoice{Status: InvoicePaid, DueDate: &past}
	assert.Equal(t, InvoicePaid, inv.DisplayStatus(now))
	assert.False(t, inv.IsOverdue(now))

	inv = Invoice{Status: InvoiceCancelled, DueDate: &past}
	assert.False(t, inv.IsOverdue(now))

	inv = Invoice{Status: InvoiceSent}
	assert.False(t, inv.IsOverdue(now), "no due date means never overdue")
}
