package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a customer of the account owner.
type Client struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Email       string `gorm:"size:254" json:"email"`
	Phone       string `gorm:"size:30" json:"phone"`
	CompanyName string `gorm:"size:100" json:"company_name"`
	Address     string `gorm:"size:200" json:"address"`
	City        string `gorm:"size:50" json:"city"`
	State       string `gorm:"size:50" json:"state"`
	ZipCode     string `gorm:"size:10" json:"zip_code"`
	Notes       string `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (cl *Client) BeforeCreate(tx *gorm.DB) error {
	if cl.ID == uuid.Nil {
		cl.ID = uuid.New()
	}
	return nil
}
