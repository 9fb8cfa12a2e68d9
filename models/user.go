package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a tradesperson account. Company/branding/settings columns live on
// the same row (one profile per account).
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:254;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`

	FullName    string `gorm:"size:100" json:"full_name"`
	CompanyName string `gorm:"size:100" json:"company_name"`
	Phone       string `gorm:"size:30" json:"phone"`
	Address     string `gorm:"size:200" json:"address"`
	City        string `gorm:"size:50" json:"city"`
	State       string `gorm:"size:50" json:"state"`
	ZipCode     string `gorm:"size:10" json:"zip_code"`
	Country     string `gorm:"size:50" json:"country"`

	TradeType     string `gorm:"size:50" json:"trade_type"`
	LicenseNumber string `gorm:"size:50" json:"license_number"`
	Website       string `gorm:"size:200" json:"website"`
	TaxID         string `gorm:"size:50" json:"tax_id"`

	// Company logo shown on rendered documents.
	LogoURL      string `gorm:"size:500" json:"logo_url"`
	LogoFilename string `gorm:"size:200" json:"logo_filename"`
	LogoEnabled  bool   `gorm:"not null;default:false" json:"logo_enabled"`
	LogoPosition string `gorm:"size:20;default:'left'" json:"logo_position"`
	LogoWidth    int    `gorm:"default:0" json:"logo_width"`
	LogoHeight   int    `gorm:"default:0" json:"logo_height"`

	// Document defaults.
	NotificationsEmail  bool   `gorm:"not null;default:true" json:"notifications_email"`
	NotificationsSMS    bool   `gorm:"not null;default:false" json:"notifications_sms"`
	DefaultPaymentTerms int    `gorm:"not null;default:30" json:"default_payment_terms"` // days
	DefaultCurrency     string `gorm:"size:3;not null;default:'USD'" json:"default_currency"`
	InvoicePrefix       string `gorm:"size:10;not null;default:'INV'" json:"invoice_prefix"`
	QuotePrefix         string `gorm:"size:10;not null;default:'QUO'" json:"quote_prefix"`
	AutoSendReminders   bool   `gorm:"not null;default:true" json:"auto_send_reminders"`
	ReminderDays        int    `gorm:"not null;default:7" json:"reminder_days"`
	Theme               string `gorm:"size:10;default:'system'" json:"theme"`
	Timezone            string `gorm:"size:50;default:'America/New_York'" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
