package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/juud-8/buildledger02/config"
	"github.com/juud-8/buildledger02/ledger"
	"github.com/juud-8/buildledger02/models"
	"github.com/juud-8/buildledger02/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type QuoteInput struct {
	ProjectID   uuid.UUID       `json:"project_id" binding:"required"`
	QuoteNumber string          `json:"quote_number" binding:"max=50"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	ValidUntil  *time.Time      `json:"valid_until"`
	Notes       string          `json:"notes" binding:"max=500"`
	Terms       string          `json:"terms" binding:"max=500"`
	LineItems   []LineItemInput `json:"line_items"`
}

// CreateQuote drafts a quote for a project. The submitted line items replace
// the project's set and the stored totals come from a full ledger recompute,
// never from client-side arithmetic.
func CreateQuote(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var in QuoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", uid).Error; err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	items, err := buildLineItems(in.ProjectID, in.LineItems)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid line items", err)
		return
	}
	totals, err := ledger.ComputeTotals(items, in.TaxRate, nil)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid totals input", err)
		return
	}
	rounded := totals.Rounded()

	number := in.QuoteNumber
	if number == "" {
		number = utils.NewDocumentNumber(user.QuotePrefix)
	}

	quote := models.Quote{
		UserID:      uid,
		ProjectID:   in.ProjectID,
		QuoteNumber: number,
		Status:      models.QuoteDraft,
		Subtotal:    rounded.Subtotal,
		TaxRate:     in.TaxRate,
		TaxAmount:   rounded.TaxAmount,
		TotalAmount: rounded.TotalAmount,
		ValidUntil:  in.ValidUntil,
		Notes:       in.Notes,
		Terms:       in.Terms,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ? AND user_id = ?", in.ProjectID, uid).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		if project.Status == models.ProjectDraft {
			if err := tx.Model(&project).Update("status", models.ProjectQuoted).Error; err != nil {
				return err
			}
		}
		return tx.Create(&quote).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Project not found", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Could not create quote", err)
		return
	}
	utils.Created(c, "Quote created", quote)
}

func ListQuotes(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var quotes []models.Quote
	q := config.DB.Preload("Project").Preload("Project.Client").
		Where("user_id = ?", uid).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&quotes).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not fetch quotes", err)
		return
	}
	utils.Success(c, "Quotes fetched", quotes)
}

func GetQuote(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid quote id", nil)
		return
	}

	var quote models.Quote
	if err := config.DB.Preload("Project").Preload("Project.Client").Preload("Project.LineItems").
		First(&quote, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Quote not found", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "Quote fetched",
		"data":              quote,
		"display_status":    quote.DisplayStatus(time.Now()),
		"valid_transitions": ledger.QuoteTransitions(&quote),
	})
}

// UpdateQuote rewrites a draft quote (metadata and line items together).
// Sent and decided quotes are immutable apart from status.
func UpdateQuote(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid quote id", nil)
		return
	}

	var quote models.Quote
	if err := config.DB.First(&quote, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Quote not found", nil)
		return
	}
	if quote.Status != models.QuoteDraft {
		utils.Error(c, http.StatusConflict, "Only draft quotes can be edited", nil)
		return
	}

	var in QuoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	items, err := buildLineItems(quote.ProjectID, in.LineItems)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid line items", err)
		return
	}
	totals, err := ledger.ComputeTotals(items, in.TaxRate, nil)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid totals input", err)
		return
	}
	rounded := totals.Rounded()

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", quote.ProjectID).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		updates := map[string]interface{}{
			"subtotal":     rounded.Subtotal,
			"tax_rate":     in.TaxRate,
			"tax_amount":   rounded.TaxAmount,
			"total_amount": rounded.TotalAmount,
			"valid_until":  in.ValidUntil,
			"notes":        in.Notes,
			"terms":        in.Terms,
		}
		if in.QuoteNumber != "" {
			updates["quote_number"] = in.QuoteNumber
		}
		return tx.Model(&quote).Updates(updates).Error
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not update quote", err)
		return
	}
	utils.Success(c, "Quote updated", quote)
}

func DeleteQuote(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid quote id", nil)
		return
	}

	var quote models.Quote
	if err := config.DB.First(&quote, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Quote not found", nil)
		return
	}
	// Only undecided quotes may be deleted.
	if quote.Status != models.QuoteDraft && quote.Status != models.QuoteSent {
		utils.Error(c, http.StatusConflict, "Approved or rejected quotes cannot be deleted", nil)
		return
	}

	if err := config.DB.Delete(&quote).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not delete quote", err)
		return
	}
	utils.Success(c, "Quote deleted", nil)
}

type StatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateQuoteStatus routes every stored status change through the ledger's
// transition table.
func UpdateQuoteStatus(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid quote id", nil)
		return
	}

	var in StatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	var quote models.Quote
	if err := config.DB.First(&quote, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Quote not found", nil)
		return
	}

	var items []models.LineItem
	if err := config.DB.Where("project_id = ?", quote.ProjectID).Find(&items).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not fetch line items", err)
		return
	}

	if err := ledger.TransitionQuote(&quote, models.QuoteStatus(in.Status), items); err != nil {
		status := http.StatusConflict
		if errors.Is(err, ledger.ErrEmptyDocument) {
			status = http.StatusUnprocessableEntity
		}
		utils.Error(c, status, "Status change rejected", err)
		return
	}

	if err := config.DB.Model(&quote).Update("status", quote.Status).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not update status", err)
		return
	}
	utils.Success(c, "Quote status updated", quote)
}

// ConvertQuoteToInvoice generates a draft invoice from an approved quote.
// The invoice re-derives its totals from the same project line items and
// keeps a non-owning back-reference to the quote.
func ConvertQuoteToInvoice(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid quote id", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", uid).Error; err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var quote models.Quote
	if err := config.DB.First(&quote, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Quote not found", nil)
		return
	}
	if quote.Status != models.QuoteApproved {
		utils.Error(c, http.StatusConflict, "Only approved quotes can be converted", nil)
		return
	}

	var items []models.LineItem
	if err := config.DB.Where("project_id = ?", quote.ProjectID).Find(&items).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not fetch line items", err)
		return
	}
	totals, err := ledger.ComputeTotals(items, quote.TaxRate, nil)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not compute totals", err)
		return
	}
	rounded := totals.Rounded()

	now := time.Now()
	due := now.AddDate(0, 0, user.DefaultPaymentTerms)
	invoice := models.Invoice{
		UserID:        uid,
		ProjectID:     quote.ProjectID,
		QuoteID:       &quote.ID,
		InvoiceNumber: utils.NewDocumentNumber(user.InvoicePrefix),
		Status:        models.InvoiceDraft,
		Subtotal:      rounded.Subtotal,
		TaxRate:       quote.TaxRate,
		TaxAmount:     rounded.TaxAmount,
		TotalAmount:   rounded.TotalAmount,
		AmountPaid:    decimal.Zero,
		BalanceDue:    rounded.TotalAmount,
		IssuedDate:    now,
		DueDate:       &due,
		Notes:         quote.Notes,
		Terms:         quote.Terms,
	}
	if err := config.DB.Create(&invoice).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not create invoice", err)
		return
	}
	utils.Created(c, "Invoice generated from quote", invoice)
}
