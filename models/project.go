package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectDraft      ProjectStatus = "draft"
	ProjectQuoted     ProjectStatus = "quoted"
	ProjectApproved   ProjectStatus = "approved"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

// Project is a job for a client. Line items hang off the project and are
// consumed by the quote/invoice drafted for it.
type Project struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"client_id"`
	Client   *Client   `json:"client,omitempty"`

	Name        string        `gorm:"size:100;not null" json:"name"`
	Description string        `gorm:"size:500" json:"description"`
	Address     string        `gorm:"size:200" json:"address"`
	City        string        `gorm:"size:50" json:"city"`
	State       string        `gorm:"size:50" json:"state"`
	ZipCode     string        `gorm:"size:10" json:"zip_code"`
	Status      ProjectStatus `gorm:"size:12;not null;default:'draft';index" json:"status"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`

	LineItems []LineItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"line_items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
