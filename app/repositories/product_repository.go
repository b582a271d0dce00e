package repositories

import (
	"errors"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository handles database operations for Product. Every read is
// scoped by vendor; an out-of-scope id behaves exactly like a missing one.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{db: tx}
}

// ListByVendor returns the vendor's products with pagination. A nil vendor
// yields an empty page, not an error.
func (r *ProductRepository) ListByVendor(vendor *models.Vendor, page, limit int) ([]models.Product, Pagination, error) {
	products := []models.Product{}
	if vendor == nil {
		return products, Pagination{Page: 1, Limit: limit}, nil
	}

	pagination, err := paginate(
		r.db.Model(&models.Product{}).Where("vendor_id = ?", vendor.ID),
		&products, page, limit,
	)
	return products, pagination, err
}

// FindForVendor returns one product scoped to the vendor.
func (r *ProductRepository) FindForVendor(id uint, vendor *models.Vendor) (*models.Product, error) {
	if vendor == nil {
		return nil, apperr.ErrNotFound
	}

	var product models.Product
	err := r.db.Where("id = ? AND vendor_id = ?", id, vendor.ID).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindForUpdate loads a product with a row-level write lock. The order
// workflow uses this so concurrent stock decrements on the same product
// serialize instead of losing updates. Must run inside a transaction.
// SQLite has no row locks; its whole-database write lock covers the same
// guarantee there.
func (r *ProductRepository) FindForUpdate(id uint) (*models.Product, error) {
	query := r.db
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var product models.Product
	err := query.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create persists a new product record.
func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete removes a product unless order items still reference it. Order
// items snapshot prices but keep the product reference for reporting, so
// referenced products are deletion-protected.
func (r *ProductRepository) Delete(product *models.Product) error {
	var refs int64
	if err := r.db.Model(&models.OrderItem{}).Where("product_id = ?", product.ID).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return apperr.ValidationField("product", "product is referenced by existing orders")
	}
	return r.db.Delete(product).Error
}
