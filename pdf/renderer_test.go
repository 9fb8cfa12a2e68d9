package pdf

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/juud-8/buildledger02/ledger"
	"github.com/juud-8/buildledger02/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "$0.00",
		"135.63":    "$135.63",
		"1234.5":    "$1,234.50",
		"1234567.8": "$1,234,567.80",
		"-42.1":     "-$42.10",
	}
	for in, want := range cases {
		d, err := decimal.NewFromString(in)
		require.NoError(t, err)
		assert.Equal(t, want, Money(d))
	}
}

func TestRenderInvoice(t *testing.T) {
	due := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	doc := Document{
		Kind:        KindInvoice,
		Number:      "INV-20260301-042",
		Status:      "sent",
		IssuedDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     &due,
		ProjectName: "Bathroom remodel",
		Items: []models.LineItem{
			{ItemType: models.ItemLabor, Description: "Demo and prep", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(25)},
		},
		TaxRate: decimal.NewFromFloat(8.5),
		Totals: ledger.Totals{
			Subtotal:    decimal.RequireFromString("125.00"),
			TaxAmount:   decimal.RequireFromString("10.63"),
			TotalAmount: decimal.RequireFromString("135.63"),
			AmountPaid:  decimal.Zero,
			BalanceDue:  decimal.RequireFromString("135.63"),
		},
		Notes: "Thanks for your business.",
	}
	branding := Branding{
		CompanyName: "Acme Plumbing",
		OwnerName:   "Sam Smith",
		Email:       "sam@acmeplumbing.test",
	}
	client := Party{Name: "Pat Jones", Address: "1 Main St"}

	data, err := Render(doc, branding, client)
	require.NoError(t, err)
	assert.True(t, len(data) > 1000, "expected a non-trivial PDF, got %d bytes", len(data))
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-ten", truncate("exactly-ten", 11))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklm", 10))

	// Multi-byte descriptions must cut on runes, never mid-character.
	long := "Fenêtre complète de la façade côté jardin avec finition"
	got := truncate(long, 20)
	assert.True(t, utf8.ValidString(got), "truncated string must stay valid UTF-8: %q", got)
	assert.Equal(t, 20, len([]rune(got)))
}

func TestRenderQuoteWithoutOptionalFields(t *testing.T) {
	doc := Document{
		Kind:       KindQuote,
		Number:     "QUO-20260301-007",
		Status:     "draft",
		IssuedDate: time.Now(),
		Items: []models.LineItem{
			{Description: "Site visit", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(80)},
		},
		Totals: ledger.Totals{
			Subtotal:    decimal.NewFromInt(80),
			TotalAmount: decimal.NewFromInt(80),
		},
	}

	data, err := Render(doc, Branding{CompanyName: "Acme"}, Party{})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}
