package models

import "gorm.io/gorm"

// Role is the closed set of user roles. Stored as a string column but only
// ever one of the three constants below; validation rejects anything else at
// the boundary.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// User is the primary account model. Every user belongs to exactly one
// vendor once registration completes; VendorID is nullable only because the
// row is created before the association is validated.
type User struct {
	gorm.Model
	Username string  `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email    string  `gorm:"size:255;not null"             json:"email"`
	Password string  `gorm:"size:255;not null"             json:"-"` // bcrypt hash, never serialised
	Role     Role    `gorm:"size:20;not null"              json:"role"`
	VendorID *uint   `gorm:"index"                         json:"vendor_id"`
	Vendor   *Vendor `gorm:"constraint:OnDelete:CASCADE"   json:"-"`
}

// BelongsTo reports whether the user is a member of the given vendor.
func (u *User) BelongsTo(vendor *Vendor) bool {
	return vendor != nil && u.VendorID != nil && *u.VendorID == vendor.ID
}
