package repositories

import (
	"errors"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/apperr"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for Order and its items.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// ListByVendor returns the vendor's orders, newest first. When customer is
// non-nil the result is further restricted to that customer's orders, so
// customer-role callers never see anyone else's records.
func (r *OrderRepository) ListByVendor(vendor *models.Vendor, customer *models.Customer, page, limit int) ([]models.Order, Pagination, error) {
	orders := []models.Order{}
	if vendor == nil {
		return orders, Pagination{Page: 1, Limit: limit}, nil
	}

	query := r.db.Model(&models.Order{}).
		Preload("Items").
		Preload("Customer").
		Where("vendor_id = ?", vendor.ID).
		Order("created_at DESC")

	if customer != nil {
		query = query.Where("customer_id = ?", customer.ID)
	}

	pagination, err := paginate(query, &orders, page, limit)
	return orders, pagination, err
}

// ListByCustomer returns all orders linked to the customer under the vendor.
func (r *OrderRepository) ListByCustomer(customer *models.Customer, vendor *models.Vendor) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.db.
		Preload("Items").
		Where("customer_id = ? AND vendor_id = ?", customer.ID, vendor.ID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// FindForVendor returns one order scoped to the vendor, with items and the
// customer relation loaded for object-level authorization.
func (r *OrderRepository) FindForVendor(id uint, vendor *models.Vendor) (*models.Order, error) {
	if vendor == nil {
		return nil, apperr.ErrNotFound
	}

	var order models.Order
	err := r.db.
		Preload("Items").
		Preload("Customer").
		Where("id = ? AND vendor_id = ?", id, vendor.ID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Create persists a new order record.
func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// CreateItem persists a new order item.
func (r *OrderRepository) CreateItem(item *models.OrderItem) error {
	return r.db.Create(item).Error
}

// Update persists changes to an existing order.
func (r *OrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// UpdateStatus writes only the status column.
func (r *OrderRepository) UpdateStatus(order *models.Order, status string) error {
	return r.db.Model(order).Update("status", status).Error
}

// AssignStaff writes only the assigned_to_id column.
func (r *OrderRepository) AssignStaff(order *models.Order, staffID uint) error {
	return r.db.Model(order).Update("assigned_to_id", staffID).Error
}

// Delete removes an order; items cascade with it.
func (r *OrderRepository) Delete(order *models.Order) error {
	if err := r.db.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return r.db.Delete(order).Error
}
