package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "draft"
	QuoteSent     QuoteStatus = "sent"
	QuoteApproved QuoteStatus = "approved"
	QuoteRejected QuoteStatus = "rejected"

	// QuoteExpired is a display classification of a sent quote past its
	// valid_until date. It is never written to the status column.
	QuoteExpired QuoteStatus = "expired"
)

// Quote is a priced proposal for a project. Totals are recomputed from the
// project line items on every write; the stored columns are the terminally
// rounded values.
type Quote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ProjectID uuid.UUID `gorm:"type:uuid;index;not null" json:"project_id"`
	Project   *Project  `json:"project,omitempty"`

	QuoteNumber string      `gorm:"size:50;not null;index" json:"quote_number"`
	Status      QuoteStatus `gorm:"size:10;not null;default:'draft';index" json:"status"`

	Subtotal    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"subtotal"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0" json:"tax_rate"` // percent
	TaxAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"tax_amount"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_amount"`

	ValidUntil *time.Time `json:"valid_until"`
	Notes      string     `gorm:"size:500" json:"notes"`
	Terms      string     `gorm:"size:500" json:"terms"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// IsExpired reports whether the quote's validity window has passed.
func (q *Quote) IsExpired(now time.Time) bool {
	return q.ValidUntil != nil && q.ValidUntil.Before(now)
}

// DisplayStatus is the status shown to the user: a sent quote past its
// valid_until date reads as expired without a stored transition.
func (q *Quote) DisplayStatus(now time.Time) QuoteStatus {
	if q.Status == QuoteSent && q.IsExpired(now) {
		return QuoteExpired
	}
	return q.Status
}
