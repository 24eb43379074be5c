package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus is the lifecycle state of a catalog product. The only
// transition is ProductActive -> ProductInactive (soft delete).
type ProductStatus string

const (
	ProductActive   ProductStatus = "ACTIVE"
	ProductInactive ProductStatus = "INACTIVE"
)

// Product represents a catalog product row. Timestamps are stamped by the
// lifecycle service, not by GORM hooks.
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"size:255;not null;index" json:"name"`
	Code        string          `gorm:"size:50;not null;index" json:"code"`
	Description string          `gorm:"type:text" json:"description"`
	Image       string          `gorm:"type:text" json:"image"` // base64 encoded upload
	Cost        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`
	Status      ProductStatus   `gorm:"size:16;not null;default:ACTIVE" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
