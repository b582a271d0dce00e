package repositories

import (
	"errors"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/apperr"
	"gorm.io/gorm"
)

// VendorRepository handles database operations for Vendor.
type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *VendorRepository) WithTx(tx *gorm.DB) *VendorRepository {
	return &VendorRepository{db: tx}
}

// FindByDomain looks a vendor up by its unique tenant domain. Satisfies
// tenant.Resolver.
func (r *VendorRepository) FindByDomain(domain string) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.Where("domain = ?", domain).First(&vendor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetOrCreateByDomain returns the vendor registered under domain, creating
// it with the given defaults when absent. Used only by owner registration,
// the single path that creates tenants.
func (r *VendorRepository) GetOrCreateByDomain(domain, name, contactEmail string) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.Where("domain = ?", domain).First(&vendor).Error
	if err == nil {
		return &vendor, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	vendor = models.Vendor{Name: name, ContactEmail: contactEmail, Domain: domain}
	if err := r.db.Create(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// FindByID looks up a vendor by primary key.
func (r *VendorRepository) FindByID(id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.First(&vendor, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// All returns all vendors with pagination.
func (r *VendorRepository) All(page, limit int) ([]models.Vendor, Pagination, error) {
	var vendors []models.Vendor
	pagination, err := paginate(r.db.Model(&models.Vendor{}), &vendors, page, limit)
	return vendors, pagination, err
}

// Create persists a new vendor record.
func (r *VendorRepository) Create(vendor *models.Vendor) error {
	return r.db.Create(vendor).Error
}

// Update persists changes to an existing vendor.
func (r *VendorRepository) Update(vendor *models.Vendor) error {
	return r.db.Save(vendor).Error
}
