package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatusPending is the status every order starts in. Status is
// otherwise free-form and mutated only through the status endpoint.
const OrderStatusPending = "pending"

// Order belongs to exactly one vendor. Total is computed by the order
// workflow from snapshotted item prices and is never client-supplied.
// Customer is optional (staff and owners create phone orders) and survives
// customer deletion as NULL. AssignedTo references a staff user.
type Order struct {
	gorm.Model
	VendorID     uint            `gorm:"index;not null"                  json:"vendor_id"`
	Vendor       *Vendor         `gorm:"constraint:OnDelete:CASCADE"     json:"-"`
	CustomerID   *uint           `gorm:"index"                           json:"customer_id"`
	Customer     *Customer       `gorm:"constraint:OnDelete:SET NULL"    json:"-"`
	Status       string          `gorm:"size:50;not null;default:pending" json:"status"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"     json:"total"`
	AssignedToID *uint           `gorm:"index"                           json:"assigned_to_id"`
	AssignedTo   *User           `gorm:"constraint:OnDelete:SET NULL"    json:"-"`
	Items        []OrderItem     `gorm:"constraint:OnDelete:CASCADE"     json:"items"`
}

// OrderItem is owned by its order and cascade-deleted with it. Price is the
// product price at order-creation time; later product price changes must
// never alter it. The product reference is deletion-protected.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `gorm:"index;not null"               json:"order_id"`
	ProductID uint            `gorm:"index;not null"               json:"product_id"`
	Product   *Product        `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Quantity  int             `gorm:"not null"                     json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"  json:"price"`
}
