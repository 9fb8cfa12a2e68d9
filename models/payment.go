package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment methods are stored as free-form strings; these are the values the
// client offers.
const (
	PaymentCash         = "cash"
	PaymentCheck        = "check"
	PaymentCreditCard   = "credit_card"
	PaymentBankTransfer = "bank_transfer"
	PaymentOther        = "other"
)

// Payment is one recorded payment against an invoice.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"invoice_id"`

	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	PaymentDate     time.Time       `gorm:"not null" json:"payment_date"`
	PaymentMethod   string          `gorm:"size:20" json:"payment_method"`
	ReferenceNumber string          `gorm:"size:50" json:"reference_number"`
	Notes           string          `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
