package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/juud-8/buildledger02/models"
)

// Transition tables. Expired (quote) and overdue (invoice) are computed
// display classifications, not stored states, so they never appear here.
var quoteEdges = map[models.QuoteStatus][]models.QuoteStatus{
	models.QuoteDraft: {models.QuoteSent},
	models.QuoteSent:  {models.QuoteApproved, models.QuoteRejected},
}

var invoiceEdges = map[models.InvoiceStatus][]models.InvoiceStatus{
	models.InvoiceDraft: {models.InvoiceSent, models.InvoicePaid, models.InvoiceCancelled},
	models.InvoiceSent:  {models.InvoicePaid, models.InvoiceCancelled},
	// paid -> paid is an idempotent no-op so "mark as paid" can be retried.
	models.InvoicePaid: {models.InvoicePaid},
}

func hasEdge[S comparable](edges map[S][]S, from, to S) bool {
	for _, s := range edges[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TransitionQuote moves a quote to target, enforcing the transition table
// and the send guard (a quote with no line items cannot be sent).
func TransitionQuote(q *models.Quote, target models.QuoteStatus, items []models.LineItem) error {
	if !hasEdge(quoteEdges, q.Status, target) {
		return &TransitionError{From: string(q.Status), To: string(target), Reason: ErrInvalidTransition}
	}
	if target == models.QuoteSent && len(items) == 0 {
		return &TransitionError{From: string(q.Status), To: string(target), Reason: ErrEmptyDocument}
	}
	q.Status = target
	return nil
}

// TransitionInvoice moves an invoice to target. Marking paid is the full
// settlement shortcut: amount paid is overwritten with the invoice total and
// the balance zeroed, regardless of the recorded payment history.
func TransitionInvoice(inv *models.Invoice, target models.InvoiceStatus, items []models.LineItem) error {
	if !hasEdge(invoiceEdges, inv.Status, target) {
		return &TransitionError{From: string(inv.Status), To: string(target), Reason: ErrInvalidTransition}
	}
	if target == models.InvoiceSent && len(items) == 0 {
		return &TransitionError{From: string(inv.Status), To: string(target), Reason: ErrEmptyDocument}
	}
	inv.Status = target
	if target == models.InvoicePaid {
		inv.AmountPaid = inv.TotalAmount
		inv.BalanceDue = decimal.Zero
	}
	return nil
}

// QuoteTransitions lists the valid targets from the quote's current status,
// for callers that hide unavailable actions.
func QuoteTransitions(q *models.Quote) []models.QuoteStatus {
	return append([]models.QuoteStatus(nil), quoteEdges[q.Status]...)
}

// InvoiceTransitions lists the valid targets from the invoice's current status.
func InvoiceTransitions(inv *models.Invoice) []models.InvoiceStatus {
	return append([]models.InvoiceStatus(nil), invoiceEdges[inv.Status]...)
}
