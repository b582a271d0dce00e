package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vendora/vendora/app/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database. The pool is capped at
// one connection so every query sees the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Vendor{},
		&models.User{},
		&models.Customer{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))

	return db
}

func seedVendor(t *testing.T, db *gorm.DB, domain string) *models.Vendor {
	t.Helper()
	vendor := &models.Vendor{Name: domain + " store", ContactEmail: "owner@" + domain, Domain: domain}
	require.NoError(t, db.Create(vendor).Error)
	return vendor
}

func seedUser(t *testing.T, db *gorm.DB, vendor *models.Vendor, role models.Role, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
		VendorID: &vendor.ID,
		Vendor:   vendor,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCustomerProfile(t *testing.T, db *gorm.DB, user *models.User, vendor *models.Vendor) *models.Customer {
	t.Helper()
	customer := &models.Customer{UserID: user.ID, VendorID: vendor.ID}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func seedProduct(t *testing.T, db *gorm.DB, vendor *models.Vendor, name, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		VendorID: vendor.ID,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
