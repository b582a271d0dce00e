package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/app/repositories"
	"github.com/vendora/vendora/pkg/authz"
	"github.com/vendora/vendora/pkg/bind"
	"github.com/vendora/vendora/pkg/middleware"
	"github.com/vendora/vendora/pkg/response"
	"github.com/vendora/vendora/pkg/tenant"
)

type ProductController struct {
	products *repositories.ProductRepository
}

func NewProductController(products *repositories.ProductRepository) *ProductController {
	return &ProductController{products: products}
}

// productInput is shared by create and update. Price accepts a JSON number
// or string; zero values are allowed, negatives are not.
type productInput struct {
	Name        string          `json:"name"        validate:"required,max=255"`
	Description string          `json:"description" validate:"nullable"`
	Price       decimal.Decimal `json:"price"       validate:"nullable,numeric,gte=0"`
	Stock       int             `json:"stock"       validate:"nullable,gte=0"`
}

// Index handles GET /api/products. Scoped to the resolved tenant; no tenant
// means an empty page, not an error.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	products, pagination, err := c.products.ListByVendor(tenant.FromCtx(r.Context()), page, limit)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"items":      products,
		"pagination": pagination,
	})
}

// Show handles GET /api/products/{id}.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.NotFound(w)
		return
	}

	product, err := c.products.FindForVendor(id, tenant.FromCtx(r.Context()))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, product)
}

// Store handles POST /api/products. Owner and staff of the resolved tenant.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	vendor := tenant.FromCtx(r.Context())
	user := middleware.UserFromCtx(r.Context())

	if err := authz.CanWriteProduct(user, vendor); err != nil {
		response.Err(w, r, err)
		return
	}

	var input productInput
	errs, err := bind.JSON(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product := &models.Product{
		VendorID:    vendor.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
	}
	if err := c.products.Create(product); err != nil {
		response.Err(w, r, err)
		return
	}

	response.Created(w, product)
}

// Update handles PUT and PATCH /api/products/{id}.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	vendor := tenant.FromCtx(r.Context())
	user := middleware.UserFromCtx(r.Context())

	if err := authz.CanWriteProduct(user, vendor); err != nil {
		response.Err(w, r, err)
		return
	}

	id, ok := idParam(r)
	if !ok {
		response.NotFound(w)
		return
	}

	product, err := c.products.FindForVendor(id, vendor)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	input := productInput{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
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

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	if err := c.products.Update(product); err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, product)
}

// Destroy handles DELETE /api/products/{id}. Products referenced by order
// items are deletion-protected.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	vendor := tenant.FromCtx(r.Context())
	user := middleware.UserFromCtx(r.Context())

	if err := authz.CanWriteProduct(user, vendor); err != nil {
		response.Err(w, r, err)
		return
	}

	id, ok := idParam(r)
	if !ok {
		response.NotFound(w)
		return
	}

	product, err := c.products.FindForVendor(id, vendor)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	if err := c.products.Delete(product); err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{"deleted": product.ID})
}
