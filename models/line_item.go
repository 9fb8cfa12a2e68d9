package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ItemType string

const (
	ItemService  ItemType = "service"
	ItemMaterial ItemType = "material"
	ItemLabor    ItemType = "labor"
)

// LineItem is one billable row of a project. Edits replace the whole set
// (delete + reinsert), never patch rows in place.
type LineItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;index;not null" json:"project_id"`

	ItemType    ItemType        `gorm:"size:10;not null;default:'service'" json:"item_type"`
	Description string          `gorm:"size:200;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_price"` // quantity * unit_price

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (li *LineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}
