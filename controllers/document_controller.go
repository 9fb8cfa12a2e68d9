package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/juud-8/buildledger02/config"
	"github.com/juud-8/buildledger02/email"
	"github.com/juud-8/buildledger02/ledger"
	"github.com/juud-8/buildledger02/models"
	"github.com/juud-8/buildledger02/pdf"
	"github.com/juud-8/buildledger02/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// mailer is constructed lazily so the API key is read after config load.
var mailer email.Sender

func getMailer() email.Sender {
	if mailer == nil {
		mailer = email.NewClient(config.Cfg.SendGridKey)
	}
	return mailer
}

func brandingFor(user *models.User) pdf.Branding {
	b := pdf.Branding{
		CompanyName:   user.CompanyName,
		OwnerName:     user.FullName,
		Address:       user.Address,
		City:          user.City,
		State:         user.State,
		ZipCode:       user.ZipCode,
		Phone:         user.Phone,
		Email:         user.Email,
		Website:       user.Website,
		LicenseNumber: user.LicenseNumber,
		LogoEnabled:   user.LogoEnabled,
		LogoWidth:     user.LogoWidth,
	}
	if user.LogoURL != "" {
		b.LogoPath = filepath.Join(config.Cfg.UploadDir, strings.TrimPrefix(user.LogoURL, "/uploads/"))
	}
	return b
}

func partyFor(client *models.Client) pdf.Party {
	if client == nil {
		return pdf.Party{}
	}
	return pdf.Party{
		Name:        client.Name,
		CompanyName: client.CompanyName,
		Address:     client.Address,
		City:        client.City,
		State:       client.State,
		ZipCode:     client.ZipCode,
		Email:       client.Email,
		Phone:       client.Phone,
	}
}

// renderQuotePDF assembles the document from the stored, already-rounded
// columns; the renderer consumes them verbatim.
func renderQuotePDF(user *models.User, quote *models.Quote, items []models.LineItem, client *models.Client) ([]byte, error) {
	doc := pdf.Document{
		Kind:       pdf.KindQuote,
		Number:     quote.QuoteNumber,
		Status:     string(quote.DisplayStatus(time.Now())),
		IssuedDate: quote.CreatedAt,
		DueDate:    quote.ValidUntil,
		Items:      items,
		TaxRate:    quote.TaxRate,
		Totals: ledger.Totals{
			Subtotal:    quote.Subtotal,
			TaxAmount:   quote.TaxAmount,
			TotalAmount: quote.TotalAmount,
		},
		Notes: quote.Notes,
		Terms: quote.Terms,
	}
	if quote.Project != nil {
		doc.ProjectName = quote.Project.Name
	}
	return pdf.Render(doc, brandingFor(user), partyFor(client))
}

func renderInvoicePDF(user *models.User, inv *models.Invoice, items []models.LineItem, client *models.Client) ([]byte, error) {
	doc := pdf.Document{
		Kind:       pdf.KindInvoice,
		Number:     inv.InvoiceNumber,
		Status:     string(inv.DisplayStatus(time.Now())),
		IssuedDate: inv.IssuedDate,
		DueDate:    inv.DueDate,
		Items:      items,
		TaxRate:    inv.TaxRate,
		Totals: ledger.Totals{
			Subtotal:    inv.Subtotal,
			TaxAmount:   inv.TaxAmount,
			TotalAmount: inv.TotalAmount,
			AmountPaid:  inv.AmountPaid,
			BalanceDue:  inv.BalanceDue,
		},
		Notes: inv.Notes,
		Terms: inv.Terms,
	}
	if inv.Project != nil {
		doc.ProjectName = inv.Project.Name
	}
	return pdf.Render(doc, brandingFor(user), partyFor(client))
}

func loadQuoteBundle(c *gin.Context) (*models.User, *models.Quote, []models.LineItem, *models.Client, bool) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return nil, nil, nil, nil, false
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid quote id", nil)
		return nil, nil, nil, nil, false
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", uid).Error; err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return nil, nil, nil, nil, false
	}
	var quote models.Quote
	if err := config.DB.Preload("Project").Preload("Project.Client").
		First(&quote, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Quote not found", nil)
		return nil, nil, nil, nil, false
	}
	var items []models.LineItem
	if err := config.DB.Where("project_id = ?", quote.ProjectID).
		Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not fetch line items", err)
		return nil, nil, nil, nil, false
	}
	var client *models.Client
	if quote.Project != nil {
		client = quote.Project.Client
	}
	return &user, &quote, items, client, true
}

func loadInvoiceBundle(c *gin.Context) (*models.User, *models.Invoice, []models.LineItem, *models.Client, bool) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return nil, nil, nil, nil, false
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid invoice id", nil)
		return nil, nil, nil, nil, false
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", uid).Error; err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return nil, nil, nil, nil, false
	}
	var invoice models.Invoice
	if err := config.DB.Preload("Project").Preload("Project.Client").
		First(&invoice, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Invoice not found", nil)
		return nil, nil, nil, nil, false
	}
	var items []models.LineItem
	if err := config.DB.Where("project_id = ?", invoice.ProjectID).
		Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not fetch line items", err)
		return nil, nil, nil, nil, false
	}
	var client *models.Client
	if invoice.Project != nil {
		client = invoice.Project.Client
	}
	return &user, &invoice, items, client, true
}

func DownloadQuotePDF(c *gin.Context) {
	user, quote, items, client, ok := loadQuoteBundle(c)
	if !ok {
		return
	}
	data, err := renderQuotePDF(user, quote, items, client)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not render PDF", err)
		return
	}
	serveInlinePDF(c, quote.QuoteNumber, data)
}

func DownloadInvoicePDF(c *gin.Context) {
	user, invoice, items, client, ok := loadInvoiceBundle(c)
	if !ok {
		return
	}
	data, err := renderInvoicePDF(user, invoice, items, client)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not render PDF", err)
		return
	}
	serveInlinePDF(c, invoice.InvoiceNumber, data)
}

func serveInlinePDF(c *gin.Context, number string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", number+".pdf"))
	c.Data(http.StatusOK, "application/pdf", data)
}

type SendDocumentInput struct {
	To      string `json:"to" binding:"omitempty,email"`
	Message string `json:"message" binding:"max=2000"`
}

func companyNameOr(user *models.User) string {
	if user.CompanyName != "" {
		return user.CompanyName
	}
	return user.FullName
}

// SendQuoteEmail mails the quote PDF to the client and marks a draft quote
// sent once delivery is accepted.
func SendQuoteEmail(c *gin.Context) {
	user, quote, items, client, ok := loadQuoteBundle(c)
	if !ok {
		return
	}

	var in SendDocumentInput
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}
	to, toName := recipient(in.To, client)
	if to == "" {
		utils.Error(c, http.StatusBadRequest, "No recipient email on file", nil)
		return
	}

	if quote.Status == models.QuoteDraft {
		// Fail before sending if the send guard would reject the transition.
		probe := *quote
		if err := ledger.TransitionQuote(&probe, models.QuoteSent, items); err != nil {
			utils.Error(c, http.StatusUnprocessableEntity, "Quote cannot be sent", err)
			return
		}
	}

	data, err := renderQuotePDF(user, quote, items, client)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not render PDF", err)
		return
	}

	subject, text, html := email.QuoteEmail(toName, quote.QuoteNumber, companyNameOr(user), in.Message)
	msgID, err := getMailer().Send(email.Message{
		To:       to,
		ToName:   toName,
		From:     config.Cfg.FromEmail,
		FromName: companyNameOr(user),
		Subject:  subject,
		Text:     text,
		HTML:     html,
		Attachments: []email.Attachment{
			{Filename: quote.QuoteNumber + ".pdf", Content: data},
		},
	})
	if err != nil {
		utils.Error(c, http.StatusBadGateway, "Could not send email", err)
		return
	}

	if quote.Status == models.QuoteDraft {
		if err := ledger.TransitionQuote(quote, models.QuoteSent, items); err == nil {
			if err := config.DB.Model(quote).Update("status", quote.Status).Error; err != nil {
				log.Error().Err(err).Str("quote", quote.ID.String()).Msg("email sent but status update failed")
			}
		}
	}

	log.Info().Str("quote", quote.QuoteNumber).Str("message_id", msgID).Msg("quote emailed")
	utils.Success(c, "Quote sent", gin.H{"message_id": msgID, "status": quote.Status})
}

// SendInvoiceEmail mails the invoice PDF to the client and marks a draft
// invoice sent once delivery is accepted.
func SendInvoiceEmail(c *gin.Context) {
	user, invoice, items, client, ok := loadInvoiceBundle(c)
	if !ok {
		return
	}

	var in SendDocumentInput
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}
	to, toName := recipient(in.To, client)
	if to == "" {
		utils.Error(c, http.StatusBadRequest, "No recipient email on file", nil)
		return
	}

	if invoice.Status == models.InvoiceDraft {
		probe := *invoice
		if err := ledger.TransitionInvoice(&probe, models.InvoiceSent, items); err != nil {
			utils.Error(c, http.StatusUnprocessableEntity, "Invoice cannot be sent", err)
			return
		}
	}

	data, err := renderInvoicePDF(user, invoice, items, client)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not render PDF", err)
		return
	}

	dueDate := "upon receipt"
	if invoice.DueDate != nil {
		dueDate = invoice.DueDate.Format("Jan 2, 2006")
	}
	subject, text, html := email.InvoiceEmail(
		toName, invoice.InvoiceNumber, companyNameOr(user),
		dueDate, pdf.Money(invoice.TotalAmount), in.Message,
	)
	msgID, err := getMailer().Send(email.Message{
		To:       to,
		ToName:   toName,
		From:     config.Cfg.FromEmail,
		FromName: companyNameOr(user),
		Subject:  subject,
		Text:     text,
		HTML:     html,
		Attachments: []email.Attachment{
			{Filename: invoice.InvoiceNumber + ".pdf", Content: data},
		},
	})
	if err != nil {
		utils.Error(c, http.StatusBadGateway, "Could not send email", err)
		return
	}

	if invoice.Status == models.InvoiceDraft {
		if err := ledger.TransitionInvoice(invoice, models.InvoiceSent, items); err == nil {
			if err := config.DB.Model(invoice).Update("status", invoice.Status).Error; err != nil {
				log.Error().Err(err).Str("invoice", invoice.ID.String()).Msg("email sent but status update failed")
			}
		}
	}

	log.Info().Str("invoice", invoice.InvoiceNumber).Str("message_id", msgID).Msg("invoice emailed")
	utils.Success(c, "Invoice sent", gin.H{"message_id": msgID, "status": invoice.Status})
}

func recipient(override string, client *models.Client) (addr, name string) {
	if client != nil {
		addr, name = client.Email, client.Name
	}
	if override != "" {
		addr = override
	}
	return addr, name
}
