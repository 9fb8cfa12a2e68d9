package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceCancelled InvoiceStatus = "cancelled"

	// InvoiceOverdue is a display classification of an unpaid invoice past
	// its due date. It is never written to the status column.
	InvoiceOverdue InvoiceStatus = "overdue"
)

// Invoice is a billable demand for a project, optionally generated from an
// approved quote (non-owning back-reference). AmountPaid and BalanceDue are
// denormalized from the payment history and rewritten from a full recompute
// on every payment mutation.
type Invoice struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	ProjectID uuid.UUID  `gorm:"type:uuid;index;not null" json:"project_id"`
	Project   *Project   `json:"project,omitempty"`
	QuoteID   *uuid.UUID `gorm:"type:uuid;index" json:"quote_id"`

	InvoiceNumber string        `gorm:"size:50;not null;index" json:"invoice_number"`
	Status        InvoiceStatus `gorm:"size:10;not null;default:'draft';index" json:"status"`

	Subtotal    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"subtotal"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0" json:"tax_rate"` // percent
	TaxAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"tax_amount"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_amount"`
	AmountPaid  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"amount_paid"`
	BalanceDue  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"balance_due"`

	IssuedDate time.Time  `gorm:"not null" json:"issued_date"`
	DueDate    *time.Time `gorm:"index" json:"due_date"`
	Notes      string     `gorm:"size:500" json:"notes"`
	Terms      string     `gorm:"size:500" json:"terms"`

	Payments []Payment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"payments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (inv *Invoice) BeforeCreate(tx *gorm.DB) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	return nil
}

// IsOverdue reports whether the invoice is past due and still unpaid.
func (inv *Invoice) IsOverdue(now time.Time) bool {
	return inv.DueDate != nil && inv.DueDate.Before(now) &&
		inv.Status != InvoicePaid && inv.Status != InvoiceCancelled
}

// DisplayStatus is the status shown to the user: a sent invoice past its
// due date reads as overdue without a stored transition.
func (inv *Invoice) DisplayStatus(now time.Time) InvoiceStatus {
	if inv.Status == InvoiceSent && inv.IsOverdue(now) {
		return InvoiceOverdue
	}
	return inv.Status
}
