package controllers

import (
	"net/http"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/app/repositories"
	"github.com/vendora/vendora/pkg/authz"
	"github.com/vendora/vendora/pkg/bind"
	"github.com/vendora/vendora/pkg/middleware"
	"github.com/vendora/vendora/pkg/response"
	"github.com/vendora/vendora/pkg/tenant"
)

// VendorController manages the tenant's own vendor record. Every operation
// is owner-only; records of other tenants are never visible here. Vendors
// are created through owner registration, never deleted.
type VendorController struct {
	vendors *repositories.VendorRepository
}

func NewVendorController(vendors *repositories.VendorRepository) *VendorController {
	return &VendorController{vendors: vendors}
}

type vendorInput struct {
	Name         string `json:"name"          validate:"required,max=200"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
}

// Index handles GET /api/vendors: the caller's own vendor record.
func (c *VendorController) Index(w http.ResponseWriter, r *http.Request) {
	vendor := tenant.FromCtx(r.Context())
	user := middleware.UserFromCtx(r.Context())

	if err := authz.CanManageVendor(user, vendor); err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, []models.Vendor{*vendor})
}

// Store handles POST /api/vendors. Owners may register additional storefront
// records (e.g. a second domain to be claimed by a later owner registration);
// the new record carries no members until someone registers under it.
func (c *VendorController) Store(w http.ResponseWriter, r *http.Request) {
	vendor := tenant.FromCtx(r.Context())
	user := middleware.UserFromCtx(r.Context())

	if err := authz.CanManageVendor(user, vendor); err != nil {
		response.Err(w, r, err)
		return
	}

	var input struct {
		Name         string `json:"name"          validate:"required,max=200"`
		ContactEmail string `json:"contact_email" validate:"required,email"`
		Domain       string `json:"domain"        validate:"required,max=255"`
	}
	errs, err := bind.JSON(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	created := &models.Vendor{
		Name:         input.Name,
		ContactEmail: input.ContactEmail,
		Domain:       input.Domain,
	}
	if err := c.vendors.Create(created); err != nil {
		response.Err(w, r, err)
		return
	}

	response.Created(w, created)
}

// Show handles GET /api/vendors/{id}. Cross-tenant ids read as not found.
func (c *VendorController) Show(w http.ResponseWriter, r *http.Request) {
	vendor := tenant.FromCtx(r.Context())
	user := middleware.UserFromCtx(r.Context())

	if err := authz.CanManageVendor(user, vendor); err != nil {
		response.Err(w, r, err)
		return
	}

	id, ok := idParam(r)
	if !ok || id != vendor.ID {
		response.NotFound(w)
		return
	}

	response.Success(w, vendor)
}

// Update handles PUT and PATCH /api/vendors/{id}: name and contact email
// only. The domain is fixed at registration; changing it would reroute an
// entire tenant's traffic.
func (c *VendorController) Update(w http.ResponseWriter, r *http.Request) {
	vendor := tenant.FromCtx(r.Context())
	user := middleware.UserFromCtx(r.Context())

	if err := authz.CanManageVendor(user, vendor); err != nil {
		response.Err(w, r, err)
		return
	}

	id, ok := idParam(r)
	if !ok || id != vendor.ID {
		response.NotFound(w)
		return
	}

	input := vendorInput{Name: vendor.Name, ContactEmail: vendor.ContactEmail}
	errs, err := bind.JSON(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	vendor.Name = input.Name
	vendor.ContactEmail = input.ContactEmail
	if err := c.vendors.Update(vendor); err != nil {
		response.Err(w, r, err)
		return
	}

	// resolution cache may hold the old record
	tenant.InvalidateDomain(vendor.Domain)

	response.Success(w, vendor)
}
