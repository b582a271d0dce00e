package models

import "gorm.io/gorm"

// Vendor is a tenant: an isolated store sharing the deployment with others.
// The unique Domain is the tenant resolution key; requests carry it in the
// X-Tenant-Domain header or as the host name.
type Vendor struct {
	gorm.Model
	Name         string `gorm:"size:200;not null"          json:"name"`
	ContactEmail string `gorm:"size:255"                   json:"contact_email"`
	Domain       string `gorm:"uniqueIndex;size:255;not null" json:"domain"`
}
