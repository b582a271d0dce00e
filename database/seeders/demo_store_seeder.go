package seeders

import (
	"github.com/shopspring/decimal"
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/auth"
	"gorm.io/gorm"
)

// DemoStoreSeeder creates a demo vendor with an owner, a staff member, a
// customer, and a handful of products. Useful for local development and
// manual API poking.
type DemoStoreSeeder struct{}

func init() {
	Register(&DemoStoreSeeder{})
}

func (DemoStoreSeeder) Name() string { return "demo_store" }

func (DemoStoreSeeder) Run(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		vendor := models.Vendor{
			Name:         "Demo Outfitters",
			ContactEmail: "hello@demo.localhost",
			Domain:       "demo.localhost",
		}
		if err := tx.Where("domain = ?", vendor.Domain).
			FirstOrCreate(&vendor).Error; err != nil {
			return err
		}

		hash, err := auth.HashPassword("password")
		if err != nil {
			return err
		}

		users := []models.User{
			{Username: "demo-owner", Email: "owner@demo.localhost", Password: hash, Role: models.RoleOwner, VendorID: &vendor.ID},
			{Username: "demo-staff", Email: "staff@demo.localhost", Password: hash, Role: models.RoleStaff, VendorID: &vendor.ID},
			{Username: "demo-customer", Email: "customer@demo.localhost", Password: hash, Role: models.RoleCustomer, VendorID: &vendor.ID},
		}
		for i := range users {
			if err := tx.Where("username = ?", users[i].Username).
				FirstOrCreate(&users[i]).Error; err != nil {
				return err
			}
		}

		customer := models.Customer{
			UserID:   users[2].ID,
			VendorID: vendor.ID,
			Phone:    "+1-555-0100",
			Address:  "1 Demo Street",
		}
		if err := tx.Where("user_id = ?", customer.UserID).
			FirstOrCreate(&customer).Error; err != nil {
			return err
		}

		products := []models.Product{
			{VendorID: vendor.ID, Name: "Canvas Tote", Description: "Heavy canvas tote bag", Price: decimal.NewFromFloat(24.50), Stock: 40},
			{VendorID: vendor.ID, Name: "Enamel Mug", Description: "12oz camp mug", Price: decimal.NewFromFloat(12.00), Stock: 120},
			{VendorID: vendor.ID, Name: "Wool Blanket", Description: "Queen-size wool blanket", Price: decimal.NewFromFloat(89.99), Stock: 8},
		}
		for i := range products {
			if err := tx.Where("vendor_id = ? AND name = ?", vendor.ID, products[i].Name).
				FirstOrCreate(&products[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
