package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteEmailDefaults(t *testing.T) {
	subject, text, html := QuoteEmail("Pat Jones", "QUO-20260301-042", "Acme Plumbing", "")

	assert.Equal(t, "Quote QUO-20260301-042 from Acme Plumbing", subject)
	assert.Contains(t, text, "Dear Pat Jones")
	assert.Contains(t, text, "QUO-20260301-042")
	assert.Contains(t, text, "Acme Plumbing")
	assert.Contains(t, html, "Quote QUO-20260301-042")
	assert.Contains(t, html, "BuildLedger")
}

func TestQuoteEmailCustomMessage(t *testing.T) {
	_, text, html := QuoteEmail("Pat", "QUO-1", "Acme", "Here is the revised quote.\nThanks.")

	assert.Equal(t, "Here is the revised quote.\nThanks.", text)
	assert.Contains(t, html, "Here is the revised quote.<br>Thanks.")
}

func TestInvoiceEmailBanner(t *testing.T) {
	subject, text, html := InvoiceEmail("Pat Jones", "INV-20260301-042", "Acme Plumbing", "Mar 31, 2026", "$135.63", "")

	assert.Equal(t, "Invoice INV-20260301-042 from Acme Plumbing", subject)
	assert.Contains(t, text, "$135.63")
	assert.Contains(t, text, "Mar 31, 2026")
	assert.Contains(t, html, "Amount Due: $135.63")
	assert.Contains(t, html, "Due Date: Mar 31, 2026")
}

func TestSendWithoutKey(t *testing.T) {
	c := NewClient("")
	_, err := c.Send(Message{To: "pat@example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestHTMLNewlines(t *testing.T) {
	_, _, html := QuoteEmail("Pat", "QUO-1", "Acme", "line one\nline two")
	assert.False(t, strings.Contains(html, "line one\nline two"), "newlines should be converted for html")
}
