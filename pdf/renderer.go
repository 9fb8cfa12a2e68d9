// Package pdf renders quotes and invoices for download and email. The
// renderer consumes the ledger's computed totals verbatim and never does its
// own arithmetic; every figure on the page comes in through Document.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/juud-8/buildledger02/ledger"
	"github.com/juud-8/buildledger02/models"
)

type Kind string

const (
	KindQuote   Kind = "QUOTE"
	KindInvoice Kind = "INVOICE"
)

// Branding is the company block and logo settings from the user profile.
type Branding struct {
	CompanyName   string
	OwnerName     string
	Address       string
	City          string
	State         string
	ZipCode       string
	Phone         string
	Email         string
	Website       string
	LicenseNumber string

	LogoPath    string // filesystem path, empty to skip
	LogoEnabled bool
	LogoWidth   int // mm; 0 uses the default
}

// Party is the client block.
type Party struct {
	Name        string
	CompanyName string
	Address     string
	City        string
	State       string
	ZipCode     string
	Email       string
	Phone       string
}

// Document carries everything the page shows. Totals must already be the
// terminally rounded roll-up.
type Document struct {
	Kind        Kind
	Number      string
	Status      string
	IssuedDate  time.Time
	DueDate     *time.Time // invoice due date or quote valid-until
	ProjectName string
	Items       []models.LineItem
	TaxRate     decimal.Decimal
	Totals      ledger.Totals
	Notes       string
	Terms       string
}

// Render produces the PDF bytes.
func Render(doc Document, branding Branding, client Party) ([]byte, error) {
	f := gofpdf.New("P", "mm", "A4", "")
	f.SetAutoPageBreak(true, 20)
	f.AddPage()

	renderHeader(f, doc, branding)
	renderParties(f, branding, client)
	renderItemsTable(f, doc.Items)
	renderTotals(f, doc)
	renderFooter(f, doc)

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %s %s: %w", strings.ToLower(string(doc.Kind)), doc.Number, err)
	}
	return buf.Bytes(), nil
}

func renderHeader(f *gofpdf.Fpdf, doc Document, b Branding) {
	if b.LogoEnabled && b.LogoPath != "" {
		width := float64(b.LogoWidth)
		if width <= 0 || width > 60 {
			width = 40
		}
		f.ImageOptions(b.LogoPath, 15, 12, width, 0, false,
			gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		f.SetY(30)
	}

	f.SetFont("Helvetica", "B", 22)
	f.SetTextColor(33, 33, 33)
	f.CellFormat(0, 12, string(doc.Kind), "", 1, "R", false, 0, "")

	f.SetFont("Helvetica", "", 10)
	f.SetTextColor(90, 90, 90)
	f.CellFormat(0, 5, doc.Number, "", 1, "R", false, 0, "")
	f.CellFormat(0, 5, "Date: "+doc.IssuedDate.Format("Jan 2, 2006"), "", 1, "R", false, 0, "")
	if doc.DueDate != nil {
		label := "Due: "
		if doc.Kind == KindQuote {
			label = "Valid until: "
		}
		f.CellFormat(0, 5, label+doc.DueDate.Format("Jan 2, 2006"), "", 1, "R", false, 0, "")
	}
	f.Ln(4)
}

func renderParties(f *gofpdf.Fpdf, b Branding, client Party) {
	top := f.GetY()

	// From block.
	f.SetFont("Helvetica", "B", 10)
	f.SetTextColor(33, 33, 33)
	f.CellFormat(90, 5, "From", "", 1, "L", false, 0, "")
	f.SetFont("Helvetica", "", 9)
	f.SetTextColor(70, 70, 70)
	for _, line := range addressLines(b.CompanyName, b.OwnerName, b.Address, cityLine(b.City, b.State, b.ZipCode), b.Phone, b.Email) {
		f.CellFormat(90, 4.5, line, "", 1, "L", false, 0, "")
	}
	if b.LicenseNumber != "" {
		f.CellFormat(90, 4.5, "License #"+b.LicenseNumber, "", 1, "L", false, 0, "")
	}
	fromBottom := f.GetY()

	// Bill-to block, right column.
	f.SetXY(110, top)
	f.SetFont("Helvetica", "B", 10)
	f.SetTextColor(33, 33, 33)
	f.CellFormat(85, 5, "Bill To", "", 2, "L", false, 0, "")
	f.SetFont("Helvetica", "", 9)
	f.SetTextColor(70, 70, 70)
	for _, line := range addressLines(client.Name, client.CompanyName, client.Address, cityLine(client.City, client.State, client.ZipCode), client.Phone, client.Email) {
		f.SetX(110)
		f.CellFormat(85, 4.5, line, "", 1, "L", false, 0, "")
	}

	if f.GetY() < fromBottom {
		f.SetY(fromBottom)
	}
	f.Ln(6)
}

func renderItemsTable(f *gofpdf.Fpdf, items []models.LineItem) {
	const (
		wType  = 24.0
		wDesc  = 86.0
		wQty   = 20.0
		wPrice = 25.0
		wTotal = 25.0
	)

	f.SetFont("Helvetica", "B", 9)
	f.SetFillColor(240, 240, 240)
	f.SetTextColor(33, 33, 33)
	f.CellFormat(wType, 7, "Type", "1", 0, "L", true, 0, "")
	f.CellFormat(wDesc, 7, "Description", "1", 0, "L", true, 0, "")
	f.CellFormat(wQty, 7, "Qty", "1", 0, "R", true, 0, "")
	f.CellFormat(wPrice, 7, "Unit Price", "1", 0, "R", true, 0, "")
	f.CellFormat(wTotal, 7, "Total", "1", 1, "R", true, 0, "")

	f.SetFont("Helvetica", "", 9)
	f.SetTextColor(60, 60, 60)
	for _, it := range items {
		f.CellFormat(wType, 6.5, titleCase(string(it.ItemType)), "1", 0, "L", false, 0, "")
		f.CellFormat(wDesc, 6.5, truncate(it.Description, 58), "1", 0, "L", false, 0, "")
		f.CellFormat(wQty, 6.5, it.Quantity.String(), "1", 0, "R", false, 0, "")
		f.CellFormat(wPrice, 6.5, Money(it.UnitPrice), "1", 0, "R", false, 0, "")
		// Per-line rounding is display-only; the subtotal below comes from
		// the full-precision accumulation.
		f.CellFormat(wTotal, 6.5, Money(ledger.LineTotal(it)), "1", 1, "R", false, 0, "")
	}
	f.Ln(3)
}

func renderTotals(f *gofpdf.Fpdf, doc Document) {
	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		f.SetFont("Helvetica", style, 10)
		f.SetX(120)
		f.CellFormat(40, 6, label, "", 0, "L", false, 0, "")
		f.CellFormat(35, 6, value, "", 1, "R", false, 0, "")
	}

	t := doc.Totals
	row("Subtotal", Money(t.Subtotal), false)
	row(fmt.Sprintf("Tax (%s%%)", doc.TaxRate.String()), Money(t.TaxAmount), false)
	row("Total", Money(t.TotalAmount), true)
	if doc.Kind == KindInvoice {
		row("Amount Paid", Money(t.AmountPaid), false)
		row("Balance Due", Money(t.BalanceDue), true)
	}
	f.Ln(4)
}

func renderFooter(f *gofpdf.Fpdf, doc Document) {
	section := func(title, body string) {
		if body == "" {
			return
		}
		f.SetFont("Helvetica", "B", 9)
		f.SetTextColor(33, 33, 33)
		f.CellFormat(0, 5, title, "", 1, "L", false, 0, "")
		f.SetFont("Helvetica", "", 9)
		f.SetTextColor(90, 90, 90)
		f.MultiCell(0, 4.5, body, "", "L", false)
		f.Ln(2)
	}
	section("Notes", doc.Notes)
	section("Terms", doc.Terms)
}

// Money formats a decimal as a dollar amount with thousands separators.
func Money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	whole := parts[0]
	var grouped []string
	for len(whole) > 3 {
		grouped = append([]string{whole[len(whole)-3:]}, grouped...)
		whole = whole[:len(whole)-3]
	}
	grouped = append([]string{whole}, grouped...)

	out := "$" + strings.Join(grouped, ",") + "." + parts[1]
	if neg {
		out = "-" + out
	}
	return out
}

func cityLine(city, state, zip string) string {
	line := strings.TrimSpace(city)
	if state != "" {
		if line != "" {
			line += ", "
		}
		line += state
	}
	if zip != "" {
		if line != "" {
			line += " "
		}
		line += zip
	}
	return line
}

func addressLines(lines ...string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
