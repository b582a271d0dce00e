package controllers

import (
	"errors"
	"net/http"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/app/repositories"
	"github.com/vendora/vendora/app/services"
	"github.com/vendora/vendora/pkg/apperr"
	"github.com/vendora/vendora/pkg/authz"
	"github.com/vendora/vendora/pkg/bind"
	"github.com/vendora/vendora/pkg/middleware"
	"github.com/vendora/vendora/pkg/response"
	"github.com/vendora/vendora/pkg/tenant"
)

type OrderController struct {
	service   *services.OrderService
	orders    *repositories.OrderRepository
	customers *repositories.CustomerRepository
}

func NewOrderController(service *services.OrderService, orders *repositories.OrderRepository, customers *repositories.CustomerRepository) *OrderController {
	return &OrderController{service: service, orders: orders, customers: customers}
}

// Index handles GET /api/orders. Tenant-scoped; customer-role callers are
// additionally restricted to their own orders, and a customer without a
// profile sees an empty page rather than an error.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	vendor := tenant.FromCtx(r.Context())
	user := middleware.UserFromCtx(r.Context())
	page, limit := pageParams(r)

	var customer *models.Customer
	if user != nil && user.Role == models.RoleCustomer {
		profile, err := c.customers.FindByUser(user.ID)
		if err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				response.Err(w, r, err)
				return
			}
			// no profile: nothing is visible
			response.Success(w, map[string]interface{}{
				"items":      []models.Order{},
				"pagination": repositories.Pagination{Page: page, Limit: limit},
			})
			return
		}
		customer = profile
	}

	orders, pagination, err := c.orders.ListByVendor(vendor, customer, page, limit)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"items":      orders,
		"pagination": pagination,
	})
}

// Show handles GET /api/orders/{id}.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	vendor := tenant.FromCtx(r.Context())
	user := middleware.UserFromCtx(r.Context())

	id, ok := idParam(r)
	if !ok {
		response.NotFound(w)
		return
	}

	order, err := c.orders.FindForVendor(id, vendor)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	if err := authz.CanTouchOrder(user, vendor, order); err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, order)
}

// Store handles POST /api/orders: the atomic order-creation workflow.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	vendor := tenant.FromCtx(r.Context())
	user := middleware.UserFromCtx(r.Context())

	if err := authz.CanCreateOrder(user, vendor); err != nil {
		response.Err(w, r, err)
		return
	}

	var input struct {
		Items []services.OrderItemInput `json:"items"`
	}
	if _, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	// bind does not descend into slices; check line items here.
	for _, item := range input.Items {
		if item.ProductID == 0 {
			response.ValidationError(w, map[string]string{"product_id": "The product_id field is required."})
			return
		}
		if item.Quantity < 1 {
			response.ValidationError(w, map[string]string{"quantity": "The quantity must be at least 1."})
			return
		}
	}

	order, err := c.service.Create(vendor, user, input.Items)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Created(w, order)
}

// Update handles PUT and PATCH /api/orders/{id}. Only the status field is
// mutable after creation; totals and items are fixed.
func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	vendor := tenant.FromCtx(r.Context())
	user := middleware.UserFromCtx(r.Context())

	id, ok := idParam(r)
	if !ok {
		response.NotFound(w)
		return
	}

	var input struct {
		Status string `json:"status" validate:"required,max=50"`
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

	order, err := c.service.UpdateStatus(vendor, user, id, input.Status)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, order)
}

// Destroy handles DELETE /api/orders/{id}. Owner and managing staff only;
// items cascade with the order.
func (c *OrderController) Destroy(w http.ResponseWriter, r *http.Request) {
	vendor := tenant.FromCtx(r.Context())
	user := middleware.UserFromCtx(r.Context())

	id, ok := idParam(r)
	if !ok {
		response.NotFound(w)
		return
	}

	order, err := c.orders.FindForVendor(id, vendor)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	if err := authz.CanTransitionOrder(user, vendor, order); err != nil {
		response.Err(w, r, err)
		return
	}

	if err := c.orders.Delete(order); err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{"deleted": order.ID})
}

// Status handles PATCH /api/orders/{id}/status.
func (c *OrderController) Status(w http.ResponseWriter, r *http.Request) {
	c.Update(w, r)
}

// AssignStaff handles PATCH /api/orders/{id}/assign-staff.
func (c *OrderController) AssignStaff(w http.ResponseWriter, r *http.Request) {
	vendor := tenant.FromCtx(r.Context())
	user := middleware.UserFromCtx(r.Context())

	id, ok := idParam(r)
	if !ok {
		response.NotFound(w)
		return
	}

	var input struct {
		StaffID uint `json:"staff_id" validate:"required"`
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

	result, err := c.service.AssignStaff(vendor, user, id, input.StaffID)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, result)
}

// My handles GET /api/orders/my: the caller's own orders for the resolved
// tenant. Requires the (caller, tenant) customer profile to exist.
func (c *OrderController) My(w http.ResponseWriter, r *http.Request) {
	vendor := tenant.FromCtx(r.Context())
	user := middleware.UserFromCtx(r.Context())

	orders, err := c.service.MyOrders(vendor, user)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, orders)
}
