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

type InvoiceInput struct {
	ProjectID     uuid.UUID       `json:"project_id" binding:"required"`
	InvoiceNumber string          `json:"invoice_number" binding:"max=50"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	IssuedDate    *time.Time      `json:"issued_date"`
	DueDate       *time.Time      `json:"due_date"`
	Notes         string          `json:"notes" binding:"max=500"`
	Terms         string          `json:"terms" binding:"max=500"`
	LineItems     []LineItemInput `json:"line_items"`
}

// CreateInvoice drafts an invoice for a project. Totals are always derived
// server-side from the full line-item set.
func CreateInvoice(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var in InvoiceInput
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

	number := in.InvoiceNumber
	if number == "" {
		number = utils.NewDocumentNumber(user.InvoicePrefix)
	}
	issued := time.Now()
	if in.IssuedDate != nil {
		issued = *in.IssuedDate
	}
	due := in.DueDate
	if due == nil {
		d := issued.AddDate(0, 0, user.DefaultPaymentTerms)
		due = &d
	}
	if due.Before(issued) {
		utils.Error(c, http.StatusBadRequest, "Due date must be after issued date", nil)
		return
	}

	invoice := models.Invoice{
		UserID:        uid,
		ProjectID:     in.ProjectID,
		InvoiceNumber: number,
		Status:        models.InvoiceDraft,
		Subtotal:      rounded.Subtotal,
		TaxRate:       in.TaxRate,
		TaxAmount:     rounded.TaxAmount,
		TotalAmount:   rounded.TotalAmount,
		AmountPaid:    decimal.Zero,
		BalanceDue:    rounded.TotalAmount,
		IssuedDate:    issued,
		DueDate:       due,
		Notes:         in.Notes,
		Terms:         in.Terms,
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
		return tx.Create(&invoice).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Project not found", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Could not create invoice", err)
		return
	}
	utils.Created(c, "Invoice created", invoice)
}

func ListInvoices(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var invoices []models.Invoice
	q := config.DB.Preload("Project").Preload("Project.Client").
		Where("user_id = ?", uid).Order("created_at DESC")
	switch status := c.Query("status"); status {
	case "":
	case string(models.InvoiceOverdue):
		// Overdue is computed, not stored: unpaid sent invoices past due.
		q = q.Where("status = ? AND due_date IS NOT NULL AND due_date < ?", models.InvoiceSent, time.Now())
	default:
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&invoices).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not fetch invoices", err)
		return
	}
	utils.Success(c, "Invoices fetched", invoices)
}

func GetInvoice(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid invoice id", nil)
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Project").Preload("Project.Client").Preload("Project.LineItems").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date ASC, created_at ASC")
		}).
		First(&invoice, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Invoice not found", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "Invoice fetched",
		"data":              invoice,
		"display_status":    invoice.DisplayStatus(time.Now()),
		"valid_transitions": ledger.InvoiceTransitions(&invoice),
	})
}

// UpdateInvoice rewrites a draft invoice.
func UpdateInvoice(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid invoice id", nil)
		return
	}

	var invoice models.Invoice
	if err := config.DB.First(&invoice, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Invoice not found", nil)
		return
	}
	if invoice.Status != models.InvoiceDraft {
		utils.Error(c, http.StatusConflict, "Only draft invoices can be edited", nil)
		return
	}

	var in InvoiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	items, err := buildLineItems(invoice.ProjectID, in.LineItems)
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
		if err := tx.Where("project_id = ?", invoice.ProjectID).Delete(&models.LineItem{}).Error; err != nil {
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
			"balance_due":  rounded.TotalAmount.Sub(invoice.AmountPaid),
			"due_date":     in.DueDate,
			"notes":        in.Notes,
			"terms":        in.Terms,
		}
		if in.InvoiceNumber != "" {
			updates["invoice_number"] = in.InvoiceNumber
		}
		if in.IssuedDate != nil {
			updates["issued_date"] = *in.IssuedDate
		}
		return tx.Model(&invoice).Updates(updates).Error
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not update invoice", err)
		return
	}
	utils.Success(c, "Invoice updated", invoice)
}

func DeleteInvoice(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid invoice id", nil)
		return
	}

	var invoice models.Invoice
	if err := config.DB.First(&invoice, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Invoice not found", nil)
		return
	}
	if invoice.Status != models.InvoiceDraft {
		utils.Error(c, http.StatusConflict, "Only draft invoices can be deleted; cancel instead", nil)
		return
	}

	if err := config.DB.Select("Payments").Delete(&invoice).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not delete invoice", err)
		return
	}
	utils.Success(c, "Invoice deleted", nil)
}

// UpdateInvoiceStatus routes stored status changes through the ledger.
// Marking paid settles the full amount; earlier partial payments stay in the
// history untouched (no reconciling record is synthesized).
func UpdateInvoiceStatus(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid invoice id", nil)
		return
	}

	var in StatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.Clauses(lockForUpdate()).
			First(&invoice, "id = ? AND user_id = ?", id, uid).Error; err != nil {
			return err
		}

		var items []models.LineItem
		if err := tx.Where("project_id = ?", invoice.ProjectID).Find(&items).Error; err != nil {
			return err
		}

		if err := ledger.TransitionInvoice(&invoice, models.InvoiceStatus(in.Status), items); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":      invoice.Status,
			"amount_paid": invoice.AmountPaid,
			"balance_due": invoice.BalanceDue,
		}
		if err := tx.Model(&models.Invoice{}).Where("id = ?", invoice.ID).Updates(updates).Error; err != nil {
			return err
		}
		c.Set("invoice", invoice)
		return nil
	})
	if err != nil {
		var terr *ledger.TransitionError
		switch {
		case errors.As(err, &terr) && errors.Is(err, ledger.ErrEmptyDocument):
			utils.Error(c, http.StatusUnprocessableEntity, "Status change rejected", err)
		case errors.As(err, &terr):
			utils.Error(c, http.StatusConflict, "Status change rejected", err)
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.Error(c, http.StatusNotFound, "Invoice not found", nil)
		default:
			utils.Error(c, http.StatusInternalServerError, "Could not update status", err)
		}
		return
	}

	invoice, _ := c.Get("invoice")
	utils.Success(c, "Invoice status updated", invoice)
}
