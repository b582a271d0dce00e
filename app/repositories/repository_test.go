package repositories_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/app/repositories"
	"github.com/vendora/vendora/pkg/apperr"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

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
	vendor := &models.Vendor{Name: domain + " store", Domain: domain}
	require.NoError(t, db.Create(vendor).Error)
	return vendor
}

func seedProduct(t *testing.T, db *gorm.DB, vendor *models.Vendor, name string) *models.Product {
	t.Helper()
	product := &models.Product{
		VendorID: vendor.ID,
		Name:     name,
		Price:    decimal.RequireFromString("10.00"),
		Stock:    5,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestProductFindForVendorScopesByTenant(t *testing.T) {
	db := newTestDB(t)
	acme := seedVendor(t, db, "acme.test")
	rival := seedVendor(t, db, "rival.test")
	product := seedProduct(t, db, acme, "Widget")

	repo := repositories.NewProductRepository(db)

	found, err := repo.FindForVendor(product.ID, acme)
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)

	// A guessed id from another tenant reads as missing.
	_, err = repo.FindForVendor(product.ID, rival)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = repo.FindForVendor(product.ID, nil)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestProductListByVendor(t *testing.T) {
	db := newTestDB(t)
	acme := seedVendor(t, db, "acme.test")
	rival := seedVendor(t, db, "rival.test")
	for i := 0; i < 25; i++ {
		seedProduct(t, db, acme, fmt.Sprintf("Widget %02d", i))
	}
	seedProduct(t, db, rival, "Gadget")

	repo := repositories.NewProductRepository(db)

	page1, pagination, err := repo.ListByVendor(acme, 1, 20)
	require.NoError(t, err)
	assert.Len(t, page1, 20)
	assert.EqualValues(t, 25, pagination.Total)
	assert.Equal(t, 2, pagination.TotalPages)

	page2, _, err := repo.ListByVendor(acme, 2, 20)
	require.NoError(t, err)
	assert.Len(t, page2, 5)

	empty, _, err := repo.ListByVendor(nil, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProductDeleteProtectedWhenReferenced(t *testing.T) {
	db := newTestDB(t)
	acme := seedVendor(t, db, "acme.test")
	product := seedProduct(t, db, acme, "Widget")

	order := &models.Order{VendorID: acme.ID, Status: models.OrderStatusPending, Total: decimal.Zero}
	require.NoError(t, db.Create(order).Error)
	item := &models.OrderItem{OrderID: order.ID, ProductID: product.ID, Quantity: 1, Price: product.Price}
	require.NoError(t, db.Create(item).Error)

	repo := repositories.NewProductRepository(db)
	err := repo.Delete(product)
	require.ErrorIs(t, err, apperr.ErrValidation)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Unreferenced products delete normally.
	free := seedProduct(t, db, acme, "Unreferenced")
	require.NoError(t, repo.Delete(free))
}

func TestOrderFindForVendorScopesByTenant(t *testing.T) {
	db := newTestDB(t)
	acme := seedVendor(t, db, "acme.test")
	rival := seedVendor(t, db, "rival.test")

	order := &models.Order{VendorID: acme.ID, Status: models.OrderStatusPending, Total: decimal.Zero}
	require.NoError(t, db.Create(order).Error)

	repo := repositories.NewOrderRepository(db)

	found, err := repo.FindForVendor(order.ID, acme)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = repo.FindForVendor(order.ID, rival)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = repo.FindForVendor(order.ID, nil)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestOrderListByVendorFiltersByCustomer(t *testing.T) {
	db := newTestDB(t)
	acme := seedVendor(t, db, "acme.test")

	user := &models.User{Username: "cust", Email: "c@example.com", Password: "x", Role: models.RoleCustomer, VendorID: &acme.ID}
	require.NoError(t, db.Create(user).Error)
	customer := &models.Customer{UserID: user.ID, VendorID: acme.ID}
	require.NoError(t, db.Create(customer).Error)

	mine := &models.Order{VendorID: acme.ID, CustomerID: &customer.ID, Status: models.OrderStatusPending, Total: decimal.Zero}
	require.NoError(t, db.Create(mine).Error)
	other := &models.Order{VendorID: acme.ID, Status: models.OrderStatusPending, Total: decimal.Zero}
	require.NoError(t, db.Create(other).Error)

	repo := repositories.NewOrderRepository(db)

	all, _, err := repo.ListByVendor(acme, nil, 1, 20)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, _, err := repo.ListByVendor(acme, customer, 1, 20)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, mine.ID, scoped[0].ID)
}

func TestUserFindStaffRequiresRoleAndVendor(t *testing.T) {
	db := newTestDB(t)
	acme := seedVendor(t, db, "acme.test")
	rival := seedVendor(t, db, "rival.test")

	staff := &models.User{Username: "staff", Email: "s@example.com", Password: "x", Role: models.RoleStaff, VendorID: &acme.ID}
	require.NoError(t, db.Create(staff).Error)
	customer := &models.User{Username: "cust", Email: "c@example.com", Password: "x", Role: models.RoleCustomer, VendorID: &acme.ID}
	require.NoError(t, db.Create(customer).Error)

	repo := repositories.NewUserRepository(db)

	found, err := repo.FindStaff(staff.ID, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, found.ID)

	_, err = repo.FindStaff(customer.ID, acme.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = repo.FindStaff(staff.ID, rival.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestVendorGetOrCreateByDomain(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewVendorRepository(db)

	created, err := repo.GetOrCreateByDomain("acme.test", "Acme", "owner@acme.test")
	require.NoError(t, err)
	assert.Equal(t, "Acme", created.Name)

	again, err := repo.GetOrCreateByDomain("acme.test", "Different Name", "other@acme.test")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "Acme", again.Name, "existing vendors keep their record")

	var count int64
	require.NoError(t, db.Model(&models.Vendor{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestVendorFindByDomain(t *testing.T) {
	db := newTestDB(t)
	acme := seedVendor(t, db, "acme.test")
	repo := repositories.NewVendorRepository(db)

	found, err := repo.FindByDomain("acme.test")
	require.NoError(t, err)
	assert.Equal(t, acme.ID, found.ID)

	_, err = repo.FindByDomain("nowhere.test")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
