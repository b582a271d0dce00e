package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product belongs to exactly one vendor. Price is a fixed-point decimal with
// two fractional digits; Stock is clamped at zero on decrement and never
// goes negative.
type Product struct {
	gorm.Model
	VendorID    uint            `gorm:"index;not null"              json:"vendor_id"`
	Vendor      *Vendor         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name        string          `gorm:"size:255;not null"           json:"name"`
	Description string          `gorm:"type:text"                   json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0"          json:"stock"`
}
