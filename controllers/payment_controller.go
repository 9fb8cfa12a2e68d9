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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// paymentPolicy is process-wide; both knobs come from the environment.
func paymentPolicy() ledger.Policy {
	pol := ledger.DefaultPolicy()
	if config.Cfg.RejectOverpayment {
		pol.AllowOverpayment = false
	}
	if config.Cfg.AutoMarkPaid {
		pol.AutoMarkPaid = true
	}
	return pol
}

func ListPayments(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid invoice id", nil)
		return
	}

	var invoice models.Invoice
	if err := config.DB.Select("id").First(&invoice, "id = ? AND user_id = ?", invoiceID, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Invoice not found", nil)
		return
	}

	var payments []models.Payment
	if err := config.DB.Where("invoice_id = ?", invoice.ID).
		Order("payment_date ASC, created_at ASC").Find(&payments).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not fetch payments", err)
		return
	}
	utils.Success(c, "Payments fetched", payments)
}

type PaymentInput struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate     *time.Time      `json:"payment_date"`
	PaymentMethod   string          `json:"payment_method" binding:"max=20"`
	ReferenceNumber string          `json:"reference_number" binding:"max=50"`
	Notes           string          `json:"notes" binding:"max=500"`
}

// RecordPayment applies a payment inside a row-locked transaction so the
// denormalized amount_paid/balance_due are always rewritten from the full
// payment history, never incremented.
func RecordPayment(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid invoice id", nil)
		return
	}

	var in PaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	paidAt := time.Now()
	if in.PaymentDate != nil {
		paidAt = *in.PaymentDate
	}
	payment := models.Payment{
		UserID:          uid,
		InvoiceID:       invoiceID,
		Amount:          in.Amount,
		PaymentDate:     paidAt,
		PaymentMethod:   in.PaymentMethod,
		ReferenceNumber: in.ReferenceNumber,
		Notes:           in.Notes,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.Clauses(lockForUpdate()).
			First(&invoice, "id = ? AND user_id = ?", invoiceID, uid).Error; err != nil {
			return err
		}
		if invoice.Status == models.InvoiceCancelled {
			return errors.New("cannot record a payment against a cancelled invoice")
		}

		var history []models.Payment
		if err := tx.Where("invoice_id = ?", invoice.ID).Find(&history).Error; err != nil {
			return err
		}

		if _, err := ledger.RecordPayment(&invoice, history, payment, paymentPolicy()); err != nil {
			return err
		}

		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{
			"amount_paid": invoice.AmountPaid,
			"balance_due": invoice.BalanceDue,
			"status":      invoice.Status,
		}
		if err := tx.Model(&models.Invoice{}).Where("id = ?", invoice.ID).Updates(updates).Error; err != nil {
			return err
		}
		c.Set("invoice", invoice)
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrValidation):
			utils.Error(c, http.StatusBadRequest, "Invalid payment", err)
		case errors.Is(err, ledger.ErrOverpayment):
			utils.Error(c, http.StatusUnprocessableEntity, "Payment exceeds balance due", err)
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.Error(c, http.StatusNotFound, "Invoice not found", nil)
		default:
			utils.Error(c, http.StatusInternalServerError, "Could not record payment", err)
		}
		return
	}

	invoice, _ := c.Get("invoice")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment recorded",
		"data":    payment,
		"invoice": invoice,
	})
}

// DeletePayment removes a recorded payment and rewrites the invoice's
// denormalized fields from the remaining history.
func DeletePayment(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	paymentID, err := parseIDParam(c, "paymentID")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payment id", nil)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, "id = ? AND user_id = ?", paymentID, uid).Error; err != nil {
			return err
		}

		var invoice models.Invoice
		if err := tx.Clauses(lockForUpdate()).
			First(&invoice, "id = ?", payment.InvoiceID).Error; err != nil {
			return err
		}

		var history []models.Payment
		if err := tx.Where("invoice_id = ?", invoice.ID).Find(&history).Error; err != nil {
			return err
		}

		if _, err := ledger.DeletePayment(&invoice, history, payment.ID); err != nil {
			return err
		}

		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{
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
		switch {
		case errors.Is(err, ledger.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
			utils.Error(c, http.StatusNotFound, "Payment not found", nil)
		default:
			utils.Error(c, http.StatusInternalServerError, "Could not delete payment", err)
		}
		return
	}

	invoice, _ := c.Get("invoice")
	c.JSON(http.StatusOK, gin.H{
		"message": "Payment deleted",
		"invoice": invoice,
	})
}
