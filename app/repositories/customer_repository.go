package repositories

import (
	"errors"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/apperr"
	"gorm.io/gorm"
)

// CustomerRepository handles database operations for Customer profiles.
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *CustomerRepository) WithTx(tx *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: tx}
}

// FindByUser returns the customer profile linked to the given user, if any.
func (r *CustomerRepository) FindByUser(userID uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("user_id = ?", userID).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByUserAndVendor returns the customer profile for the (user, vendor)
// pairing. The my-orders endpoint requires this to exist.
func (r *CustomerRepository) FindByUserAndVendor(userID, vendorID uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("user_id = ? AND vendor_id = ?", userID, vendorID).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Create persists a new customer profile.
func (r *CustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}
