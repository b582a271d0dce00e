package models

import "gorm.io/gorm"

// Customer is the per-tenant profile created automatically for customer-role
// users at registration. Only customer-role users have one.
type Customer struct {
	gorm.Model
	UserID   uint    `gorm:"uniqueIndex;not null"        json:"user_id"`
	User     *User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	VendorID uint    `gorm:"index;not null"              json:"vendor_id"`
	Vendor   *Vendor `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Phone    string  `gorm:"size:50"                     json:"phone"`
	Address  string  `gorm:"type:text"                   json:"address"`
}
