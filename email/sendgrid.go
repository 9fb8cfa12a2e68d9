// Package email sends quote and invoice emails through SendGrid.
package email

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var ErrNotConfigured = errors.New("sendgrid api key not configured")

// Sender delivers document emails.
type Sender interface {
	Send(msg Message) (messageID string, err error)
}

// Attachment is a rendered PDF destined for the email.
type Attachment struct {
	Filename string
	Content  []byte // raw bytes; encoded on send
}

type Message struct {
	To          string
	ToName      string
	From        string
	FromName    string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Client is the SendGrid-backed Sender.
type Client struct {
	apiKey string
}

func NewClient(apiKey string) *Client {
	return &Client{apiKey: apiKey}
}

func (c *Client) Send(msg Message) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(msg.FromName, msg.From))
	m.Subject = msg.Subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail(msg.ToName, msg.To))
	m.AddPersonalizations(p)

	m.AddContent(mail.NewContent("text/plain", msg.Text))
	if msg.HTML != "" {
		m.AddContent(mail.NewContent("text/html", msg.HTML))
	}

	for _, att := range msg.Attachments {
		a := mail.NewAttachment()
		a.SetContent(base64.StdEncoding.EncodeToString(att.Content))
		a.SetType("application/pdf")
		a.SetFilename(att.Filename)
		a.SetDisposition("attachment")
		m.AddAttachment(a)
	}

	resp, err := sendgrid.NewSendClient(c.apiKey).Send(m)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("sendgrid rejected the message: status %d", resp.StatusCode)
	}
	ids := resp.Headers["X-Message-Id"]
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

// QuoteEmail builds the subject/text/html for sending a quote.
func QuoteEmail(clientName, quoteNumber, companyName, message string) (subject, text, html string) {
	if message == "" {
		message = fmt.Sprintf(`Dear %s,

Please find attached your quote %s. We appreciate the opportunity to work with you.

If you have any questions or would like to proceed with this quote, please don't hesitate to contact us.

Best regards,
%s`, clientName, quoteNumber, companyName)
	}
	subject = fmt.Sprintf("Quote %s from %s", quoteNumber, companyName)
	return subject, message, wrapHTML("Quote "+quoteNumber, "", message)
}

// InvoiceEmail builds the subject/text/html for sending an invoice. The
// amount and due date are preformatted by the caller so the template never
// recomputes money.
func InvoiceEmail(clientName, invoiceNumber, companyName, dueDate, totalAmount, message string) (subject, text, html string) {
	if message == "" {
		message = fmt.Sprintf(`Dear %s,

Please find attached invoice %s in the amount of %s.

Payment is due by %s.

Thank you for your business!

Best regards,
%s`, clientName, invoiceNumber, totalAmount, dueDate, companyName)
	}
	banner := fmt.Sprintf(`<div style="background-color:#e3f2fd;padding:15px;border-radius:5px;margin-bottom:20px;">
<p style="margin:0;font-weight:bold;color:#1976d2;">Amount Due: %s</p>
<p style="margin:5px 0 0 0;color:#1976d2;">Due Date: %s</p>
</div>`, totalAmount, dueDate)

	subject = fmt.Sprintf("Invoice %s from %s", invoiceNumber, companyName)
	return subject, message, wrapHTML("Invoice "+invoiceNumber, banner, message)
}

func wrapHTML(heading, banner, message string) string {
	body := strings.ReplaceAll(message, "\n", "<br>")
	return fmt.Sprintf(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;">
<div style="background-color:#f8f9fa;padding:20px;border-radius:8px;">
<h2 style="color:#333;margin-bottom:20px;">%s</h2>
%s<p style="line-height:1.6;color:#555;">%s</p>
<div style="margin-top:30px;padding-top:20px;border-top:1px solid #ddd;">
<p style="color:#888;font-size:12px;">This email was sent from BuildLedger - Professional invoicing for tradespeople</p>
</div>
</div>
</div>`, heading, banner, body)
}
