package services_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/app/services"
	"github.com/vendora/vendora/pkg/apperr"
)

func TestOrderCreateComputesTotalAndDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	owner := seedUser(t, db, vendor, models.RoleOwner, "acme-owner")
	product := seedProduct(t, db, vendor, "Widget", "10.00", 5)

	svc := services.NewOrderService(db)
	order, err := svc.Create(vendor, owner, []services.OrderItemInput{
		{ProductID: product.ID, Quantity: 3},
	})
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(decimal.RequireFromString("30.00")),
		"total = %s", order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].Price.Equal(decimal.RequireFromString("10.00")))

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 2, reloaded.Stock)
}

func TestOrderCreateSnapshotsPrice(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	owner := seedUser(t, db, vendor, models.RoleOwner, "acme-owner")
	product := seedProduct(t, db, vendor, "Widget", "10.00", 10)

	svc := services.NewOrderService(db)
	order, err := svc.Create(vendor, owner, []services.OrderItemInput{
		{ProductID: product.ID, Quantity: 1},
	})
	require.NoError(t, err)

	// A later price change must not touch the recorded item price.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("99.99")).Error)

	var item models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&item).Error)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("10.00")))
}

func TestOrderCreateClampsStockAtZero(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	owner := seedUser(t, db, vendor, models.RoleOwner, "acme-owner")
	product := seedProduct(t, db, vendor, "Widget", "10.00", 2)

	svc := services.NewOrderService(db)
	order, err := svc.Create(vendor, owner, []services.OrderItemInput{
		{ProductID: product.ID, Quantity: 5},
	})
	require.NoError(t, err)

	// Ordered quantity is honored in the total even when stock runs out.
	assert.True(t, order.Total.Equal(decimal.RequireFromString("50.00")))

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 0, reloaded.Stock)
}

func TestOrderCreateRollsBackOnCrossTenantProduct(t *testing.T) {
	db := newTestDB(t)
	acme := seedVendor(t, db, "acme.test")
	rival := seedVendor(t, db, "rival.test")
	owner := seedUser(t, db, acme, models.RoleOwner, "acme-owner")
	ours := seedProduct(t, db, acme, "Widget", "10.00", 5)
	theirs := seedProduct(t, db, rival, "Gadget", "7.00", 5)

	svc := services.NewOrderService(db)
	_, err := svc.Create(acme, owner, []services.OrderItemInput{
		{ProductID: ours.ID, Quantity: 2},
		{ProductID: theirs.ID, Quantity: 1},
	})
	require.ErrorIs(t, err, apperr.ErrCrossTenantProduct)

	// Nothing from the failed order may persist.
	var orders, items int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, ours.ID).Error)
	assert.Equal(t, 5, reloaded.Stock, "stock decrement must roll back")
}

func TestOrderCreateUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	owner := seedUser(t, db, vendor, models.RoleOwner, "acme-owner")

	svc := services.NewOrderService(db)
	_, err := svc.Create(vendor, owner, []services.OrderItemInput{
		{ProductID: 9999, Quantity: 1},
	})
	require.ErrorIs(t, err, apperr.ErrValidation)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestOrderCreateRequiresTenant(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)

	_, err := svc.Create(nil, nil, nil)
	require.ErrorIs(t, err, apperr.ErrTenantRequired)
}

func TestOrderCreateLinksCustomerProfile(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	user := seedUser(t, db, vendor, models.RoleCustomer, "acme-customer")
	profile := seedCustomerProfile(t, db, user, vendor)
	product := seedProduct(t, db, vendor, "Widget", "10.00", 5)

	svc := services.NewOrderService(db)
	order, err := svc.Create(vendor, user, []services.OrderItemInput{
		{ProductID: product.ID, Quantity: 1},
	})
	require.NoError(t, err)
	require.NotNil(t, order.CustomerID)
	assert.Equal(t, profile.ID, *order.CustomerID)
}

func TestOrderCreateConcurrentStockDecrement(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	owner := seedUser(t, db, vendor, models.RoleOwner, "acme-owner")
	product := seedProduct(t, db, vendor, "Widget", "10.00", 50)

	svc := services.NewOrderService(db)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(vendor, owner, []services.OrderItemInput{
				{ProductID: product.ID, Quantity: 30},
			})
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	// 50 - 30 - 30 clamps at zero; the decrements must not race past each
	// other and leave stale stock behind.
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 0, reloaded.Stock)
}

func TestOrderUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	owner := seedUser(t, db, vendor, models.RoleOwner, "acme-owner")
	product := seedProduct(t, db, vendor, "Widget", "10.00", 5)

	svc := services.NewOrderService(db)
	order, err := svc.Create(vendor, owner, []services.OrderItemInput{
		{ProductID: product.ID, Quantity: 1},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(vendor, owner, order.ID, "shipped")
	require.NoError(t, err)
	assert.Equal(t, "shipped", updated.Status)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, "shipped", reloaded.Status)
}

func TestOrderUpdateStatusForbiddenForCustomer(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	owner := seedUser(t, db, vendor, models.RoleOwner, "acme-owner")
	customer := seedUser(t, db, vendor, models.RoleCustomer, "acme-customer")
	product := seedProduct(t, db, vendor, "Widget", "10.00", 5)

	svc := services.NewOrderService(db)
	order, err := svc.Create(vendor, owner, []services.OrderItemInput{
		{ProductID: product.ID, Quantity: 1},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(vendor, customer, order.ID, "shipped")
	require.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestOrderAssignStaff(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	owner := seedUser(t, db, vendor, models.RoleOwner, "acme-owner")
	staff := seedUser(t, db, vendor, models.RoleStaff, "acme-staff")
	product := seedProduct(t, db, vendor, "Widget", "10.00", 5)

	svc := services.NewOrderService(db)
	order, err := svc.Create(vendor, owner, []services.OrderItemInput{
		{ProductID: product.ID, Quantity: 1},
	})
	require.NoError(t, err)

	result, err := svc.AssignStaff(vendor, owner, order.ID, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, result.OrderID)
	assert.Equal(t, staff.ID, result.StaffID)
	assert.Equal(t, staff.Username, result.StaffName)
	assert.Equal(t, vendor.Name, result.Vendor)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	require.NotNil(t, reloaded.AssignedToID)
	assert.Equal(t, staff.ID, *reloaded.AssignedToID)
}

func TestOrderAssignStaffRejectsNonStaffTarget(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	rival := seedVendor(t, db, "rival.test")
	owner := seedUser(t, db, vendor, models.RoleOwner, "acme-owner")
	customer := seedUser(t, db, vendor, models.RoleCustomer, "acme-customer")
	foreignStaff := seedUser(t, db, rival, models.RoleStaff, "rival-staff")
	product := seedProduct(t, db, vendor, "Widget", "10.00", 5)

	svc := services.NewOrderService(db)
	order, err := svc.Create(vendor, owner, []services.OrderItemInput{
		{ProductID: product.ID, Quantity: 1},
	})
	require.NoError(t, err)

	for _, target := range []uint{customer.ID, foreignStaff.ID, 9999} {
		_, err := svc.AssignStaff(vendor, owner, order.ID, target)
		require.ErrorIs(t, err, apperr.ErrValidation, "target %d", target)
	}

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Nil(t, reloaded.AssignedToID, "failed assignment must leave the order unchanged")
}

func TestMyOrdersRequiresCustomerProfile(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	user := seedUser(t, db, vendor, models.RoleCustomer, "acme-customer")

	svc := services.NewOrderService(db)
	_, err := svc.MyOrders(vendor, user)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMyOrdersReturnsOwnOrdersOnly(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	owner := seedUser(t, db, vendor, models.RoleOwner, "acme-owner")
	user := seedUser(t, db, vendor, models.RoleCustomer, "acme-customer")
	seedCustomerProfile(t, db, user, vendor)
	product := seedProduct(t, db, vendor, "Widget", "10.00", 10)

	svc := services.NewOrderService(db)

	mine, err := svc.Create(vendor, user, []services.OrderItemInput{
		{ProductID: product.ID, Quantity: 1},
	})
	require.NoError(t, err)

	// An order recorded by the owner has no customer linkage.
	_, err = svc.Create(vendor, owner, []services.OrderItemInput{
		{ProductID: product.ID, Quantity: 1},
	})
	require.NoError(t, err)

	orders, err := svc.MyOrders(vendor, user)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, mine.ID, orders[0].ID)
}
